package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/logger"

	_ "modernc.org/sqlite" // pure-Go SQLite driver for database/sql
)

// SQLiteJournal is a single-file journal for local runs without PostgreSQL.
type SQLiteJournal struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLiteJournal opens (or creates) the database at path and migrates it.
func OpenSQLiteJournal(path string) (*SQLiteJournal, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers inspect the journal while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.L().Info().Str("path", path).Msg("sqlite journal opened")
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_journal (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol          TEXT NOT NULL,
			period          TEXT NOT NULL,
			sample_interval TEXT NOT NULL,
			outcome         TEXT NOT NULL,
			bar_count       INTEGER NOT NULL,
			latest_close    REAL,
			latency_ms      INTEGER NOT NULL,
			fetched_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_journal_key ON fetch_journal(symbol, period, fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordFetch inserts one row. fetched_at is stored as unix milliseconds.
func (j *SQLiteJournal) RecordFetch(ctx context.Context, rec models.FetchRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.ExecContext(ctx, `INSERT INTO fetch_journal
		(symbol, period, sample_interval, outcome, bar_count, latest_close, latency_ms, fetched_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.Symbol, string(rec.Period), rec.Interval, string(rec.Outcome),
		rec.BarCount, nullFloat(rec.LatestClose), rec.LatencyMs, rec.FetchedAt.UnixMilli(),
	)
	return err
}

// Ping checks the database handle; used by the readiness probe.
func (j *SQLiteJournal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

func (j *SQLiteJournal) Close() error {
	logger.L().Info().Msg("closing sqlite journal")
	return j.db.Close()
}
