package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/quotepulse/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockJournal(t *testing.T) (*postgresJournal, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	j := &postgresJournal{db: db}
	cleanup := func() { _ = db.Close() }
	return j, mock, cleanup
}

var insertRegex = regexp.QuoteMeta("INSERT INTO fetch_journal (symbol, period, sample_interval, outcome, bar_count, latest_close, latency_ms, fetched_at)")

func TestPostgresJournal_RecordFetch(t *testing.T) {
	at := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name      string
		rec       models.FetchRecord
		wantClose interface{}
		execErr   error
	}{
		{
			name:      "ok with close",
			rec:       models.FetchRecord{Symbol: "AAPL", Period: models.Period1D, Interval: "5m", Outcome: models.OutcomeOK, BarCount: 78, LatestClose: models.Some(189.5), LatencyMs: 120, FetchedAt: at},
			wantClose: 189.5,
		},
		{
			name:      "upstream error without close",
			rec:       models.FetchRecord{Symbol: "AAPL", Period: models.Period5D, Interval: "5m", Outcome: models.OutcomeUpstreamError, LatencyMs: 5000, FetchedAt: at},
			wantClose: nil,
		},
		{
			name:    "exec error",
			rec:     models.FetchRecord{Symbol: "X", Period: models.Period1D, Interval: "5m", Outcome: models.OutcomeOK, FetchedAt: at},
			execErr: dummyErr{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j, mock, done := newMockJournal(t)
			defer done()

			exp := mock.ExpectExec(insertRegex)
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WithArgs(tc.rec.Symbol, string(tc.rec.Period), tc.rec.Interval, string(tc.rec.Outcome),
					tc.rec.BarCount, tc.wantClose, tc.rec.LatencyMs, tc.rec.FetchedAt).
					WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err := j.RecordFetch(context.Background(), tc.rec)
			if tc.execErr != nil && err == nil {
				t.Fatalf("expected error")
			}
			if tc.execErr == nil && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestNewPostgresJournal_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectClose()
	j := NewPostgresJournal(db)
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNoopJournal(t *testing.T) {
	var j FetchJournal = NewNoopJournal()
	if err := j.RecordFetch(context.Background(), models.FetchRecord{}); err != nil {
		t.Fatalf("noop record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("noop close: %v", err)
	}
}

func TestSQLiteJournal_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := OpenSQLiteJournal(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = j.Close() }()

	if err := j.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	at := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)
	recs := []models.FetchRecord{
		{Symbol: "AAPL", Period: models.Period1D, Interval: "5m", Outcome: models.OutcomeOK, BarCount: 78, LatestClose: models.Some(189.5), LatencyMs: 10, FetchedAt: at},
		{Symbol: "ZZZZ", Period: models.Period1D, Interval: "5m", Outcome: models.OutcomeInvalidSymbol, LatencyMs: 7, FetchedAt: at},
	}
	for _, r := range recs {
		if err := j.RecordFetch(context.Background(), r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	var count int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM fetch_journal`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d want 2", count)
	}

	var closeVal sql.NullFloat64
	var fetchedAt int64
	if err := j.db.QueryRow(`SELECT latest_close, fetched_at FROM fetch_journal WHERE symbol = ?`, "ZZZZ").Scan(&closeVal, &fetchedAt); err != nil {
		t.Fatalf("select: %v", err)
	}
	if closeVal.Valid {
		t.Fatalf("expected NULL close for invalid symbol")
	}
	if fetchedAt != at.UnixMilli() {
		t.Fatalf("fetched_at=%d want %d", fetchedAt, at.UnixMilli())
	}

	// Reopening must not fail on existing schema.
	_ = j.Close()
	j2, err := OpenSQLiteJournal(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = j2.Close()
}
