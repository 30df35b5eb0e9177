// Package infrastructure provides core service initialization for application startup.
// It assembles logging, lifecycle coordination, and the backend selected for
// offline cache storage.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/hawkcalc/internal/cachestore"
	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/internal/migrations"
	"github.com/JaimeStill/hawkcalc/pkg/database"
	"github.com/JaimeStill/hawkcalc/pkg/lifecycle"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/pkg/storage"
)

// Infrastructure holds the core systems shared by the service's modules.
// Database and Storage are nil unless the offline cache is configured to use them.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System

	store   string
	started bool
}

// New creates an Infrastructure from the application configuration, logging
// to out. It initializes the configured backend but does not connect; call
// Start separately.
func New(cfg *config.Config, out io.Writer) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level()}))

	infra := &Infrastructure{
		Lifecycle: lifecycle.New(logger),
		Logger:    logger,
		store:     cfg.Offline.Store,
	}

	if cfg.UsesDatabase() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	if cfg.UsesStorage() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	return infra, nil
}

// Start connects the configured backend. The database schema is migrated
// before Start returns.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
		if err := migrations.Up(i.Database.Connection(), i.Database.Driver()); err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	i.started = true
	return nil
}

// CacheStorage returns the offline cache backend. A persistent backend that
// has not started successfully yields nil, which leaves the offline manager
// online-only.
func (i *Infrastructure) CacheStorage() offline.CacheStorage {
	switch {
	case i.Database != nil && i.started:
		return cachestore.NewSQL(i.Database)
	case i.Storage != nil && i.started:
		return cachestore.NewBlob(i.Storage)
	case i.store == offline.StoreMemory:
		return offline.NewMemoryStorage()
	}
	return nil
}
