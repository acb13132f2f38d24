package service

import (
	"context"
	"errors"

	"cinemood/internal/models"
	"cinemood/internal/tmdb"
)

var (
	// ErrValidation marks errors caused by bad client input.
	ErrValidation = errors.New("validation error")
	// ErrNotConfigured is returned when a required credential is absent.
	ErrNotConfigured = errors.New("server configuration error")
	// ErrNotFound is returned when a looked-up title does not exist.
	ErrNotFound = errors.New("not found")
)

// AnonymousUser is used when a request carries no user_id.
const AnonymousUser = "anonymous"

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &validationError{msg: msg}
}

// Catalog is the media catalog used by the services.
type Catalog interface {
	Configured() bool
	DiscoverTitles(ctx context.Context, kind string, genreIDs []int, opts tmdb.DiscoverOptions) []models.TitleRecord
	GetTitleDetails(ctx context.Context, kind string, tmdbID int) (*models.TitleDetail, error)
	GetTrending(ctx context.Context, mediaType, window string, limit int) []models.TitleRecord
	GetPopular(ctx context.Context, kind string, limit int) []models.TitleRecord
	GetSimilar(ctx context.Context, kind string, tmdbID, limit int) []models.TitleRecord
}

// TurnStore persists chat turns.
type TurnStore interface {
	ListTurns(ctx context.Context, userID string) ([]models.Turn, error)
	InsertTurn(ctx context.Context, t models.Turn) error
}

// MoodStore persists mood queries and their recommendations.
type MoodStore interface {
	InsertMoodQuery(ctx context.Context, q models.MoodQuery) error
	InsertRecommendations(ctx context.Context, recs []models.Recommendation) error
	ListMoodQueries(ctx context.Context, userID string, limit int) ([]models.MoodQuery, error)
}

// LibraryStore persists favorites and viewed titles.
type LibraryStore interface {
	ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, f models.Favorite) (bool, error)
	RemoveFavorite(ctx context.Context, userID string, tmdbID int) (bool, error)
	InsertViewed(ctx context.Context, v models.ViewedTitle) error
	ListViewed(ctx context.Context, userID string, limit int) ([]models.ViewedTitle, error)
}
