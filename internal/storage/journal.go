package storage

import (
	"context"
	"database/sql"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// FetchJournal records every upstream fetch made by the aggregator.
type FetchJournal interface {
	RecordFetch(ctx context.Context, rec models.FetchRecord) error
	Close() error
}

// NoopJournal discards records; used when no journal driver is configured.
type NoopJournal struct{}

func NewNoopJournal() *NoopJournal { return &NoopJournal{} }

func (NoopJournal) RecordFetch(context.Context, models.FetchRecord) error { return nil }
func (NoopJournal) Close() error                                        { return nil }

// nullFloat maps an invalid point to SQL NULL.
func nullFloat(p models.Point) sql.NullFloat64 {
	return sql.NullFloat64{Float64: p.Value, Valid: p.Valid}
}
