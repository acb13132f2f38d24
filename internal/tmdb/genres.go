package tmdb

import "strings"

// genreIDs maps lowercase genre names to TMDB genre identifiers.
var genreIDs = map[string]int{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"sci-fi":          878,
	"thriller":        53,
	"war":             10752,
	"western":         37,
	"tv movie":        10770,
}

// MapGenresToIDs converts genre names to TMDB ids, case-insensitively.
// Unknown names are dropped and duplicate ids are collapsed.
func MapGenresToIDs(names []string) []int {
	ids := make([]int, 0, len(names))
	seen := make(map[int]bool, len(names))
	for _, n := range names {
		id, ok := genreIDs[strings.ToLower(strings.TrimSpace(n))]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// KnownGenre reports whether name is in the genre table.
func KnownGenre(name string) bool {
	_, ok := genreIDs[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
