package cli

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"swipepilot/internal/infrastructure/storage"
)

// openRepository connects to Postgres and makes sure the schema exists.
// The caller owns the returned *sql.DB and must close it.
func openRepository(ctx context.Context, dsn string) (*sql.DB, *storage.PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, repo, nil
}
