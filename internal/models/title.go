package models

// TitleRecord is the normalized shape of a movie or TV title returned by
// the catalog client.
type TitleRecord struct {
	TMDBId      int     `json:"tmdb_id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Year        *int    `json:"year"`
	PosterURL   string  `json:"poster_url,omitempty"`
	BackdropURL string  `json:"backdrop_url,omitempty"`
	Overview    string  `json:"overview"`
	Rating      float64 `json:"rating"`
	Popularity  float64 `json:"popularity"`
}

// TitleDetail is a TitleRecord plus the fields only the detail endpoint has.
type TitleDetail struct {
	TitleRecord
	Genres     []string `json:"genres"`
	Runtime    *int     `json:"runtime"`
	Seasons    *int     `json:"seasons"`
	TrailerKey string   `json:"trailer_key,omitempty"`
	Tagline    string   `json:"tagline"`
}

// Media kinds understood by the catalog.
const (
	KindMovie = "movie"
	KindTV    = "tv"
)

// ValidKind reports whether kind names a catalog media kind.
func ValidKind(kind string) bool {
	return kind == KindMovie || kind == KindTV
}

const (
	TMDBImageBaseW500     = "https://image.tmdb.org/t/p/w500"
	TMDBImageBaseOriginal = "https://image.tmdb.org/t/p/original"
)
