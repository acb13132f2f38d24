package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"cinemood/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS chat_history (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			prompt TEXT NOT NULL DEFAULT '',
			reply TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS mood_queries (
			id UUID PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			mood_text TEXT NOT NULL,
			mood_tags TEXT[] NOT NULL DEFAULT '{}',
			genres TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			mood_id UUID NOT NULL REFERENCES mood_queries(id) ON DELETE CASCADE,
			tmdb_id INTEGER NOT NULL,
			type VARCHAR(10) NOT NULL,
			title VARCHAR(500) NOT NULL,
			why_it_fits TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			tmdb_id INTEGER NOT NULL,
			type VARCHAR(10) NOT NULL,
			title VARCHAR(500) NOT NULL,
			poster_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS viewed_titles (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			tmdb_id INTEGER NOT NULL,
			type VARCHAR(10) NOT NULL,
			title VARCHAR(500) NOT NULL,
			poster_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// Indexes for per-user history reads
		`CREATE INDEX IF NOT EXISTS idx_chat_history_user ON chat_history(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_queries_user ON mood_queries(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_mood ON recommendations(mood_id)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id, tmdb_id)`,
		`CREATE INDEX IF NOT EXISTS idx_viewed_titles_user ON viewed_titles(user_id, created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
