package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"cinemood/internal/models"
)

// MoodRepository handles mood queries and the recommendations they produced.
type MoodRepository struct {
	db *sql.DB
}

// NewMoodRepository creates a new MoodRepository.
func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

// InsertMoodQuery stores a mood query. q.ID must already be set.
func (r *MoodRepository) InsertMoodQuery(ctx context.Context, q models.MoodQuery) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mood_queries (id, user_id, mood_text, mood_tags, genres)
		VALUES ($1, $2, $3, $4, $5)
	`, q.ID, q.UserID, q.MoodText, pq.Array(q.MoodTags), pq.Array(q.Genres))
	if err != nil {
		return fmt.Errorf("insert mood query: %w", err)
	}
	return nil
}

// InsertRecommendations stores all recommendations of one mood query in a single statement.
func (r *MoodRepository) InsertRecommendations(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	const cols = 6
	placeholders := make([]string, 0, len(recs))
	args := make([]interface{}, 0, len(recs)*cols)
	for i, rec := range recs {
		n := i * cols
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, rec.UserID, rec.MoodID, rec.TMDBId, rec.Type, rec.Title, rec.WhyItFits)
	}

	query := `INSERT INTO recommendations (user_id, mood_id, tmdb_id, type, title, why_it_fits) VALUES ` +
		strings.Join(placeholders, ", ")
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert recommendations: %w", err)
	}
	return nil
}

// ListMoodQueries returns the most recent mood queries for a user, newest first.
func (r *MoodRepository) ListMoodQueries(ctx context.Context, userID string, limit int) ([]models.MoodQuery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, mood_text, mood_tags, genres, created_at
		FROM mood_queries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query mood queries: %w", err)
	}
	defer rows.Close()

	moods := make([]models.MoodQuery, 0)
	for rows.Next() {
		var m models.MoodQuery
		if err := rows.Scan(&m.ID, &m.UserID, &m.MoodText,
			pq.Array(&m.MoodTags), pq.Array(&m.Genres), &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood query: %w", err)
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}
