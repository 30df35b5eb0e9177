// Package config loads service configuration from config.toml, an optional
// environment overlay, and HAWKCALC_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/hawkcalc/pkg/database"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvHawkcalcEnv             = "HAWKCALC_ENV"
	EnvHawkcalcShutdownTimeout = "HAWKCALC_SHUTDOWN_TIMEOUT"
	EnvHawkcalcVersion         = "HAWKCALC_VERSION"
	EnvHawkcalcLogLevel        = "HAWKCALC_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	Driver:          "HAWKCALC_DB_DRIVER",
	Path:            "HAWKCALC_DB_PATH",
	Host:            "HAWKCALC_DB_HOST",
	Port:            "HAWKCALC_DB_PORT",
	Name:            "HAWKCALC_DB_NAME",
	User:            "HAWKCALC_DB_USER",
	Password:        "HAWKCALC_DB_PASSWORD",
	SSLMode:         "HAWKCALC_DB_SSL_MODE",
	MaxOpenConns:    "HAWKCALC_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "HAWKCALC_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "HAWKCALC_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "HAWKCALC_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "HAWKCALC_STORAGE_CONTAINER_NAME",
	ConnectionString: "HAWKCALC_STORAGE_CONNECTION_STRING",
	AccountURL:       "HAWKCALC_STORAGE_ACCOUNT_URL",
	MaxRetries:       "HAWKCALC_STORAGE_MAX_RETRIES",
}

var offlineEnv = &offline.Env{
	Disabled:     "HAWKCALC_OFFLINE_DISABLED",
	Name:         "HAWKCALC_OFFLINE_NAME",
	Version:      "HAWKCALC_OFFLINE_VERSION",
	InstallMode:  "HAWKCALC_OFFLINE_INSTALL_MODE",
	Store:        "HAWKCALC_OFFLINE_STORE",
	Origin:       "HAWKCALC_OFFLINE_ORIGIN",
	FetchTimeout: "HAWKCALC_OFFLINE_FETCH_TIMEOUT",
	MaxAssetSize: "HAWKCALC_OFFLINE_MAX_ASSET_SIZE",
	Concurrency:  "HAWKCALC_OFFLINE_CONCURRENCY",
}

// Config is the root configuration for the hawkcalc service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	API             APIConfig       `toml:"api"`
	Offline         offline.Config  `toml:"offline"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	LogLevel        string          `toml:"log_level"`
	Version         string          `toml:"version"`
}

// Env returns the HAWKCALC_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvHawkcalcEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// UsesDatabase reports whether the offline cache is stored in the database.
func (c *Config) UsesDatabase() bool {
	return !c.Offline.IsDisabled() && c.Offline.Store == offline.StoreDatabase
}

// UsesStorage reports whether the offline cache is stored in blob storage.
func (c *Config) UsesStorage() bool {
	return !c.Offline.IsDisabled() && c.Offline.Store == offline.StoreBlob
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with the config files resolved relative to dir.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{}

	base := dir + "/" + BaseConfigFile
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Offline.Merge(&overlay.Offline)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Offline.Finalize(offlineEnv); err != nil {
		return fmt.Errorf("offline: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil && c.UsesDatabase() {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil && c.UsesStorage() {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvHawkcalcShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvHawkcalcLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvHawkcalcVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvHawkcalcEnv); env != "" {
		path := dir + "/" + fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
