//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "quotepulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=quotepulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "quotepulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func TestPostgresJournal_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	if err := MigratePostgres(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run is a no-op
	if err := MigratePostgres(db); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	j := NewPostgresJournal(db)
	defer func() { _ = j.Close() }()

	at := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		name      string
		rec       models.FetchRecord
		wantClose bool
	}{
		{
			name:      "ok fetch",
			rec:       models.FetchRecord{Symbol: "AAPL", Period: models.Period1D, Interval: "5m", Outcome: models.OutcomeOK, BarCount: 78, LatestClose: models.Some(189.5), LatencyMs: 120, FetchedAt: at},
			wantClose: true,
		},
		{
			name: "invalid symbol",
			rec:  models.FetchRecord{Symbol: "ZZZZ", Period: models.Period5D, Interval: "5m", Outcome: models.OutcomeInvalidSymbol, LatencyMs: 30, FetchedAt: at},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := j.RecordFetch(context.Background(), tc.rec); err != nil {
				t.Fatalf("record: %v", err)
			}
			var outcome string
			var closeVal sql.NullFloat64
			var fetchedAt time.Time
			err := db.QueryRow(`SELECT outcome, latest_close, fetched_at FROM fetch_journal WHERE symbol = $1 ORDER BY id DESC LIMIT 1`, tc.rec.Symbol).
				Scan(&outcome, &closeVal, &fetchedAt)
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			if outcome != string(tc.rec.Outcome) || closeVal.Valid != tc.wantClose || !fetchedAt.Equal(at) {
				t.Fatalf("unexpected row: outcome=%s close=%+v at=%v", outcome, closeVal, fetchedAt)
			}
		})
	}
}
