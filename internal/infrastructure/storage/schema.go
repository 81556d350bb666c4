package storage

import (
	"context"
	"fmt"
)

// EnsureSchema creates the records table when it does not exist yet.
// The schema is append-only; there are no destructive migrations.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}

	const ddl = `
		CREATE TABLE IF NOT EXISTS swipe_records (
			id BIGSERIAL PRIMARY KEY,
			dating_account_id BIGINT NOT NULL,
			target_name VARCHAR(100) NOT NULL DEFAULT '',
			target_age INTEGER NOT NULL DEFAULT 0,
			target_bio TEXT NOT NULL DEFAULT '',
			target_photos TEXT[] NOT NULL DEFAULT '{}',
			target_distance INTEGER NOT NULL DEFAULT 0,
			swipe_direction VARCHAR(10) NOT NULL,
			is_match BOOLEAN NOT NULL DEFAULT FALSE,
			ai_score DECIMAL(5,2),
			decision_reason TEXT,
			swiped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create swipe_records: %w", err)
	}

	const idx = `
		CREATE INDEX IF NOT EXISTS idx_swipe_records_account
		ON swipe_records (dating_account_id, swiped_at)`

	if _, err := r.db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("index swipe_records: %w", err)
	}
	return nil
}
