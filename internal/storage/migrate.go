package storage

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/quotepulse/db/migrations"
	"github.com/guttosm/quotepulse/internal/logger"
	goose "github.com/pressly/goose/v3"
)

// MigratePostgres applies the embedded goose migrations to db.
func MigratePostgres(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	logger.L().Info().Int64("version", version).Msg("journal schema migrated")
	return nil
}
