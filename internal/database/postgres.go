package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 5 * time.Second

// InitializePostgresDB opens a pool, checks connectivity and applies pending migrations.
func InitializePostgresDB(databaseURL, migrationsDir string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not create connection pool: %w", err)
	}

	if err = db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	if err = ExecuteMigrations(databaseURL, migrationsDir); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func ExecuteMigrations(databaseURL, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("could not resolve migrations dir %q: %w", dir, err)
	}
	srcURL := (&url.URL{Scheme: "file", Path: absDir}).String()

	m, err := migrate.New(srcURL, databaseURL)
	if err != nil {
		return fmt.Errorf("could not load migrations: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	return nil
}
