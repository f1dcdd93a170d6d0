package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blog-api/internal/observability"

	_ "github.com/lib/pq"
)

// NewPostgresConnection opens a PostgreSQL pool configured from cfg and verifies it.
func NewPostgresConnection(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ReportPoolStats copies pool statistics into the db gauges until ctx is done.
func ReportPoolStats(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			recordPoolStats(db.Stats())
		}
	}
}

func recordPoolStats(stats sql.DBStats) {
	observability.DBConnectionsOpen.Set(float64(stats.OpenConnections))
	observability.DBConnectionsInUse.Set(float64(stats.InUse))
	observability.DBConnectionsIdle.Set(float64(stats.Idle))
}
