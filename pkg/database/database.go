// Package database provides SQLite and PostgreSQL connection management with
// lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/JaimeStill/hawkcalc/pkg/lifecycle"
)

// System manages database connections and lifecycle coordination.
type System interface {
	// Connection returns the underlying database connection pool.
	Connection() *sql.DB
	// Driver returns the configured driver name.
	Driver() string
	// Start verifies connectivity and registers a shutdown hook that closes the pool.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	driver      string
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a database system with the given configuration.
// It calls sql.Open to validate the DSN and configure pool parameters,
// but does not establish a connection until Start is called.
// SQLite connections are limited to a single writer.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open(cfg.Driver, cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		driver:      cfg.Driver,
		logger:      logger.With("system", "database", "driver", cfg.Driver),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Driver() string {
	return d.driver
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	pingCtx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
	defer cancel()

	if err := d.conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	d.logger.Info("database connection established")

	lc.OnShutdown("database", func() {
		d.logger.Info("closing database connection")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
