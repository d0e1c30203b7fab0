package store

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending migration against db's backend. It is
// idempotent: running it against an already-migrated database is a
// no-op.
func Migrate(db *DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("store: opening embedded migration source: %w", err)
	}

	var driver interface {
		Close() error
	}
	var m *migrate.Migrate

	switch db.driver {
	case DriverPostgres:
		pgDriver, err := postgres.WithInstance(StdDB(db), &postgres.Config{})
		if err != nil {
			return fmt.Errorf("store: creating postgres migration driver: %w", err)
		}
		driver = pgDriver
		m, err = migrate.NewWithInstance("iofs", source, "postgres", pgDriver)
		if err != nil {
			return fmt.Errorf("store: creating migrate instance: %w", err)
		}
	default:
		liteDriver, err := sqlite3.WithInstance(StdDB(db), &sqlite3.Config{})
		if err != nil {
			return fmt.Errorf("store: creating sqlite migration driver: %w", err)
		}
		driver = liteDriver
		m, err = migrate.NewWithInstance("iofs", source, "sqlite3", liteDriver)
		if err != nil {
			return fmt.Errorf("store: creating migrate instance: %w", err)
		}
	}
	defer driver.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("store: running migrations: %w", err)
	}
	return nil
}
