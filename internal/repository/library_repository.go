package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cinemood/internal/models"
)

// LibraryRepository handles favorites and the viewed-titles log.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a new LibraryRepository.
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// ListFavorites returns all favorites of a user, newest first.
func (r *LibraryRepository) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, tmdb_id, type, title, poster_url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	favs := make([]models.Favorite, 0)
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.UserID, &f.TMDBId, &f.Type, &f.Title, &f.PosterURL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

// AddFavorite stores a favorite unless the user already has that title.
// It reports whether a row was inserted.
func (r *LibraryRepository) AddFavorite(ctx context.Context, f models.Favorite) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, tmdb_id, type, title, poster_url)
		SELECT $1::varchar, $2::integer, $3::varchar, $4::varchar, $5::text
		WHERE NOT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND tmdb_id = $2
		)
	`, f.UserID, f.TMDBId, f.Type, f.Title, f.PosterURL)
	if err != nil {
		return false, fmt.Errorf("insert favorite: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveFavorite deletes a favorite. It reports whether anything was removed.
func (r *LibraryRepository) RemoveFavorite(ctx context.Context, userID string, tmdbID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND tmdb_id = $2
	`, userID, tmdbID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// InsertViewed appends to the viewed-titles log.
func (r *LibraryRepository) InsertViewed(ctx context.Context, v models.ViewedTitle) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO viewed_titles (user_id, tmdb_id, type, title, poster_url)
		VALUES ($1, $2, $3, $4, $5)
	`, v.UserID, v.TMDBId, v.Type, v.Title, v.PosterURL)
	if err != nil {
		return fmt.Errorf("insert viewed title: %w", err)
	}
	return nil
}

// ListViewed returns the most recently viewed titles of a user, newest first.
func (r *LibraryRepository) ListViewed(ctx context.Context, userID string, limit int) ([]models.ViewedTitle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, tmdb_id, type, title, poster_url, created_at
		FROM viewed_titles
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query viewed titles: %w", err)
	}
	defer rows.Close()

	viewed := make([]models.ViewedTitle, 0)
	for rows.Next() {
		var v models.ViewedTitle
		if err := rows.Scan(&v.UserID, &v.TMDBId, &v.Type, &v.Title, &v.PosterURL, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan viewed title: %w", err)
		}
		viewed = append(viewed, v)
	}
	return viewed, rows.Err()
}
