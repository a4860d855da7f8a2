package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/liftoff/internal/migrations"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const driverName = "sqlite3"

// Open opens the local sqlite database at path and applies pending migrations.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	dsn := path + "?_busy_timeout=5000&_foreign_keys=on"
	if path != ":memory:" {
		dsn += "&_journal_mode=WAL"
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// a single connection keeps ":memory:" databases alive and serializes writes
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	applied, err := migrations.Apply(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.InfoContext(ctx, "applied migrations", xslog.Count(len(applied)))
	}

	return sqlDB, nil
}
