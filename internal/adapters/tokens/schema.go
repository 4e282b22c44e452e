package tokens

import (
	"activity-map-service/internal/platform/db"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite credential schema.
func InitSqliteSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init sqlite schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init sqlite schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS athlete_tokens (
		athlete_id INTEGER PRIMARY KEY,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_athlete_tokens_expires_at
	ON athlete_tokens(expires_at);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init sqlite schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sqlite schema: commit tx: %w", err)
	}

	return nil
}

// Initialize the Postgres credential schema.
func InitPostgresSchema(ctx context.Context, q db.Querier) error {
	if q == nil {
		return errors.New("init postgres schema: querier is nil")
	}

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS athlete_tokens (
		athlete_id BIGINT PRIMARY KEY,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_athlete_tokens_expires_at
	ON athlete_tokens(expires_at);
	`,
	}

	for i, stmt := range statements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
