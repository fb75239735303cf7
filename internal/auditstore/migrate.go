package auditstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/labsyncio/labsync/internal/auditstore/migrations"
)

// runMigrations applies pending goose migrations from the embedded FS.
// goose requires a *sql.DB, so the pool's connection string is reopened
// through the pgx stdlib driver for the duration of the run.
func (s *Store) runMigrations(ctx context.Context) error {
	sqlDB, err := sql.Open("pgx", s.pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("opening sql.DB for migrations: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", r.Source.Version, r.Source.Path, r.Error)
		}
		s.log.WithFields(logrus.Fields{
			"version": r.Source.Version,
			"file":    r.Source.Path,
		}).Info("audit migration applied")
	}
	return nil
}
