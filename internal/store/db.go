// Package store persists scenario and replay bundles: the durable
// records a CLI or test harness loads from and writes back to. It is
// pure plumbing around the engine — nothing here ever feeds back into
// apply_action's determinism.
package store

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ctclostio/tabletop-engine/pkg/logger"
)

// Driver selects which SQL backend Connect dials.
type Driver string

const (
	DriverSQLite   Driver = "sqlite3"
	DriverPostgres Driver = "postgres"
)

// Config holds the connection parameters for either backend. DSN is
// used verbatim for sqlite (a file path or ":memory:"); for postgres
// it's a standard "host=... user=... dbname=..." connection string.
type Config struct {
	Driver       Driver
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// DB wraps a sqlx connection so bundle repositories can Rebind queries
// between sqlite's "?" and postgres's "$1" placeholder styles.
type DB struct {
	*sqlx.DB
	driver Driver
}

func StdDB(db *DB) *sql.DB { return db.DB.DB }

// Connect opens a pooled connection to the configured backend.
func Connect(cfg Config) (*DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	conn, err := sqlx.Open(string(cfg.Driver), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s connection: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("store: pinging %s connection: %w", cfg.Driver, err)
	}
	logger.Info().Str("driver", string(cfg.Driver)).Msg("store: connected")
	return &DB{DB: conn, driver: cfg.Driver}, nil
}

// rebind adapts a "?"-style query to the connection's native
// placeholder syntax.
func (db *DB) rebind(query string) string {
	return db.Rebind(query)
}
