package models

// RecommendRequest is the request body for POST /api/recommend.
type RecommendRequest struct {
	UserID   string `json:"user_id"`
	MoodText string `json:"mood_text"`
}

// RecommendedTitle is a TitleRecord annotated with why it matches the mood.
type RecommendedTitle struct {
	TitleRecord
	WhyItFits string `json:"why_it_fits"`
}

// RecommendResponse is the response body for POST /api/recommend.
type RecommendResponse struct {
	OK              bool               `json:"ok"`
	MoodSummary     string             `json:"mood_summary"`
	MoodTags        []string           `json:"mood_tags"`
	Genres          []string           `json:"genres"`
	Recommendations []RecommendedTitle `json:"recommendations"`
}

// TitleResponse is the response body for GET /api/title/:type/:tmdb_id.
type TitleResponse struct {
	OK bool `json:"ok"`
	TitleDetail
	AIDescription string `json:"ai_description"`
	AIViewerFit   string `json:"ai_viewer_fit"`
}

// SimilarResponse is the response body for GET /api/title/:type/:tmdb_id/similar.
type SimilarResponse struct {
	OK    bool          `json:"ok"`
	Items []TitleRecord `json:"items"`
}

// DiscoverSection is one captioned carousel on the discover page.
type DiscoverSection struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Caption string        `json:"caption"`
	Items   []TitleRecord `json:"items"`
}

// DiscoverResponse is the response body for GET /api/discover.
type DiscoverResponse struct {
	OK       bool              `json:"ok"`
	Sections []DiscoverSection `json:"sections"`
}

// TagCount is one row of the mood-tag frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// GenreCount is one row of the genre frequency table.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// ProfileStats summarizes a user's history.
type ProfileStats struct {
	TotalMoods     int          `json:"total_moods"`
	TotalFavorites int          `json:"total_favorites"`
	TotalViewed    int          `json:"total_viewed"`
	TopMoodTags    []TagCount   `json:"top_mood_tags"`
	TopGenres      []GenreCount `json:"top_genres"`
}

// ProfileResponse is the response body for GET /api/profile/:user_id.
type ProfileResponse struct {
	OK                bool          `json:"ok"`
	CinemaPersonality string        `json:"cinema_personality"`
	MoodHistory       []MoodQuery   `json:"mood_history"`
	Favorites         []Favorite    `json:"favorites"`
	ViewedTitles      []ViewedTitle `json:"viewed_titles"`
	Stats             ProfileStats  `json:"stats"`
}

// Favorite actions.
const (
	FavoriteAdd    = "add"
	FavoriteRemove = "remove"
)

// FavoriteRequest is the request body for POST /api/favorite.
type FavoriteRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	TMDBId    int    `json:"tmdb_id" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,oneof=movie tv"`
	Title     string `json:"title" validate:"required_if=Action add"`
	PosterURL string `json:"poster_url"`
	Action    string `json:"action" validate:"required,oneof=add remove"`
}

// ViewedRequest is the request body for POST /api/viewed.
type ViewedRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	TMDBId    int    `json:"tmdb_id" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,oneof=movie tv"`
	Title     string `json:"title" validate:"required"`
	PosterURL string `json:"poster_url"`
}

// LibraryResponse is the response body for favorite and viewed mutations.
type LibraryResponse struct {
	OK      bool   `json:"ok"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatRequest is the request body for POST /chat.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Image   string `json:"image" validate:"omitempty,startswith=data:image/"`
}

// ChatResponse is the response body for POST /chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// EnvelopeError is the error body on the ok-envelope routes.
type EnvelopeError struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ErrorResponse is the error body on the legacy chat routes.
type ErrorResponse struct {
	Error string `json:"error"`
}
