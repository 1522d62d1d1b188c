package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/quotepulse/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

const (
	postgresPingTimeout = 5 * time.Second
	postgresMaxConns    = 4
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens the PostgreSQL handle used by the fetch journal.
//
// Behavior:
//   - Builds the DSN from cfg.Postgres.
//   - Opens a small pool; the journal writes at most once per refresh.
//   - Pings with a timeout so a dead host fails startup instead of hanging.
//
// Returns:
//   - *sql.DB: an open pool (safe for concurrent use).
//   - error: if opening or pinging the database fails.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(postgresMaxConns)
	db.SetMaxIdleConns(postgresMaxConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), postgresPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by openJournal; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
