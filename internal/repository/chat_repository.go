package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cinemood/internal/models"
)

// ChatRepository handles database operations for chat turns.
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// ListTurns returns every turn for a user, oldest first.
func (r *ChatRepository) ListTurns(ctx context.Context, userID string) ([]models.Turn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, prompt, reply, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	turns := make([]models.Turn, 0)
	for rows.Next() {
		var t models.Turn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Prompt, &t.Reply, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// InsertTurn appends one turn.
func (r *ChatRepository) InsertTurn(ctx context.Context, t models.Turn) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_history (user_id, prompt, reply)
		VALUES ($1, $2, $3)
	`, t.UserID, t.Prompt, t.Reply)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}
