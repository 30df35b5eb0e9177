// Package migrations embeds the cache schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var FS embed.FS

// Up applies all pending migrations to db. driver is "sqlite" or "pgx".
// The migrator is not closed because closing it would close db.
func Up(db *sql.DB, driver string) error {
	source, err := iofs.New(FS, ".")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	var target database.Driver
	switch driver {
	case "sqlite":
		target, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case "pgx":
		target, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		return fmt.Errorf("unsupported migration driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
