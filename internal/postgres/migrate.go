package postgres

import (
	"errors"
	"fmt"

	"github.com/coachportal/portalproxy/internal/config"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// NewMigrator opens a migrate instance over the configured migrations directory
func NewMigrator(cfg *config.Configuration) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+cfg.Postgres.MigrationsPath, cfg.Postgres.GetMigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrations: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending up migration
func RunMigrations(cfg *config.Configuration, logger *logger.Logger) error {
	m, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			logger.Warnw("failed to close migration resources", "source_error", sourceErr, "db_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Infow("database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Infow("applied database migrations", "version", version, "dirty", dirty)
	return nil
}
