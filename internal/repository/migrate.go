package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The document columns are JSONB: a transcript is replaced wholesale on
// re-upload, so there is nothing to gain from normalizing course rows into
// their own table.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS transcripts (
		user_id        UUID PRIMARY KEY,
		student_info   JSONB NOT NULL DEFAULT '{}'::jsonb,
		courses        JSONB NOT NULL DEFAULT '[]'::jsonb,
		term_totals    JSONB NOT NULL DEFAULT '[]'::jsonb,
		overall_totals JSONB NOT NULL DEFAULT '{}'::jsonb,
		source         TEXT  NOT NULL,
		upload_date    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS parse_jobs (
		id            UUID PRIMARY KEY,
		user_id       UUID NOT NULL,
		filename      TEXT NOT NULL,
		file_size     BIGINT NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		strategy      TEXT NOT NULL,
		text_method   TEXT NOT NULL DEFAULT '',
		text_pages    INT  NOT NULL DEFAULT 0,
		confidence    REAL NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		raw_output    TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_parse_jobs_user_id ON parse_jobs (user_id)`,
}

// Migrate applies the schema idempotently at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error("migration statement failed", "error", err)
			return err
		}
	}
	logger.Info("database schema up to date")
	return nil
}
