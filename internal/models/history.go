package models

import "time"

// Turn is one prompt/reply exchange of the chat assistant.
type Turn struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodQuery is one mood search and what the language model made of it.
type MoodQuery struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MoodText  string    `json:"mood_text"`
	MoodTags  []string  `json:"mood_tags"`
	Genres    []string  `json:"genres"`
	CreatedAt time.Time `json:"created_at"`
}

// Recommendation links a recommended title to the MoodQuery that produced it.
type Recommendation struct {
	UserID    string `json:"user_id"`
	MoodID    string `json:"mood_id"`
	TMDBId    int    `json:"tmdb_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	WhyItFits string `json:"why_it_fits"`
}

// Favorite is a title the user explicitly saved.
type Favorite struct {
	UserID    string    `json:"user_id"`
	TMDBId    int       `json:"tmdb_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewedTitle is an entry in the append-only log of opened titles.
type ViewedTitle struct {
	UserID    string    `json:"user_id"`
	TMDBId    int       `json:"tmdb_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url"`
	CreatedAt time.Time `json:"created_at"`
}
