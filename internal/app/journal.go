package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/quotepulse/config"
	"github.com/guttosm/quotepulse/internal/api"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/storage"
)

// Indirections overridden in tests to avoid real databases.
var (
	journalMigrator = storage.MigratePostgres
	sqliteOpener    = storage.OpenSQLiteJournal
)

// openJournal returns the configured fetch journal and the readiness checks
// that go with it.
func openJournal(cfg config.Config) (storage.FetchJournal, map[string]api.ReadinessCheck, error) {
	switch cfg.Journal.Driver {
	case config.JournalPostgres:
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := journalMigrator(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.L().Info().Str("driver", cfg.Journal.Driver).Str("host", cfg.Postgres.Host).Msg("fetch journal enabled")
		return storage.NewPostgresJournal(db), checksFor(db), nil

	case config.JournalSQLite:
		j, err := sqliteOpener(cfg.Journal.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.L().Info().Str("driver", cfg.Journal.Driver).Str("path", cfg.Journal.SQLitePath).Msg("fetch journal enabled")
		return j, map[string]api.ReadinessCheck{"journal": j.Ping}, nil

	case "", config.JournalNone:
		return storage.NewNoopJournal(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown journal driver %q", cfg.Journal.Driver)
	}
}

func checksFor(db *sql.DB) map[string]api.ReadinessCheck {
	return map[string]api.ReadinessCheck{"journal": db.PingContext}
}
