package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/ecotracker/ecotracker-backend/internal/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func newProvider(db *sql.DB, log *zap.Logger) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return goose.NewProvider(goose.DialectSQLite3, db, fsys,
		goose.WithLogger(logging.NewGooseLogger(log)),
	)
}

// Migrate applies all pending schema migrations and returns the resulting version.
func Migrate(ctx context.Context, db *sql.DB, log *zap.Logger) (int64, error) {
	provider, err := newProvider(db, log)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		log.Info("applied migration",
			zap.String("source", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}

	return provider.GetDBVersion(ctx)
}

// SchemaVersion reports the currently applied migration version.
func SchemaVersion(ctx context.Context, db *sql.DB, log *zap.Logger) (int64, error) {
	provider, err := newProvider(db, log)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}
	return provider.GetDBVersion(ctx)
}
