package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/vlatan/media-hub/migrations"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate runs the embedded goose migrations against the pool
func (s *service) Migrate(ctx context.Context) error {

	// Goose works with database/sql,
	// so wrap the pool for the duration of the migration.
	db := stdlib.OpenDBFromPool(s.db)
	defer db.Close()

	return runMigrations(ctx, db)
}

// runMigrations sets up goose with the embedded migrations and runs them
func runMigrations(ctx context.Context, db *sql.DB) error {

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set the migrations dialect; %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run the migrations; %w", err)
	}

	return nil
}
