package storage

import (
	"context"
	"database/sql"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// postgresJournal writes fetch records into the fetch_journal table.
// The schema lives in db/migrations.
type postgresJournal struct {
	db *sql.DB
}

// NewPostgresJournal wraps an open PostgreSQL handle. Close closes db.
func NewPostgresJournal(db *sql.DB) FetchJournal {
	return &postgresJournal{db: db}
}

// RecordFetch inserts one row.
func (j *postgresJournal) RecordFetch(ctx context.Context, rec models.FetchRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO fetch_journal (symbol, period, sample_interval, outcome, bar_count, latest_close, latency_ms, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.Symbol,
		string(rec.Period),
		rec.Interval,
		string(rec.Outcome),
		rec.BarCount,
		nullFloat(rec.LatestClose),
		rec.LatencyMs,
		rec.FetchedAt,
	)
	return err
}

func (j *postgresJournal) Close() error {
	return j.db.Close()
}
