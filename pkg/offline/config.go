package offline

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/hawkcalc/pkg/formatting"
)

// InstallMode selects how install reacts to assets that cannot be fetched.
type InstallMode string

const (
	// Strict aborts the install when any asset fails; nothing is cached.
	Strict InstallMode = "strict"
	// BestEffort caches every asset that could be fetched and logs the rest.
	BestEffort InstallMode = "best_effort"
)

// Store names a CacheStorage backend.
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
	StoreBlob     = "blob"
)

// Config holds offline cache settings.
type Config struct {
	Disabled     *bool       `toml:"disabled"`
	Name         string      `toml:"name"`
	Version      string      `toml:"version"`
	InstallMode  InstallMode `toml:"install_mode"`
	Store        string      `toml:"store"`
	Origin       string      `toml:"origin"`
	FetchTimeout string      `toml:"fetch_timeout"`
	MaxAssetSize string      `toml:"max_asset_size"`
	Concurrency  int         `toml:"concurrency"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Disabled     string
	Name         string
	Version      string
	InstallMode  string
	Store        string
	Origin       string
	FetchTimeout string
	MaxAssetSize string
	Concurrency  string
}

// IsDisabled reports whether the offline cache is switched off.
func (c *Config) IsDisabled() bool {
	return c.Disabled != nil && *c.Disabled
}

// BucketName returns the versioned name of the current bucket.
func (c *Config) BucketName() string {
	return c.Name + "-" + c.Version
}

// FetchTimeoutDuration returns FetchTimeout as a time.Duration.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.FetchTimeout)
	return d
}

// MaxAssetSizeBytes returns MaxAssetSize in bytes.
func (c *Config) MaxAssetSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxAssetSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields the overlay sets.
func (c *Config) Merge(overlay *Config) {
	if overlay.Disabled != nil {
		disabled := *overlay.Disabled
		c.Disabled = &disabled
	}

	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.InstallMode != "" {
		c.InstallMode = overlay.InstallMode
	}
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if overlay.Origin != "" {
		c.Origin = overlay.Origin
	}
	if overlay.FetchTimeout != "" {
		c.FetchTimeout = overlay.FetchTimeout
	}
	if overlay.MaxAssetSize != "" {
		c.MaxAssetSize = overlay.MaxAssetSize
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
}

func (c *Config) loadDefaults() {
	if c.Name == "" {
		c.Name = "hawk-sexing"
	}
	if c.Version == "" {
		c.Version = "v2"
	}
	if c.InstallMode == "" {
		c.InstallMode = Strict
	}
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.FetchTimeout == "" {
		c.FetchTimeout = "10s"
	}
	if c.MaxAssetSize == "" {
		c.MaxAssetSize = "10MB"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Disabled != "" {
		if v := os.Getenv(env.Disabled); v != "" {
			if disabled, err := strconv.ParseBool(v); err == nil {
				c.Disabled = &disabled
			}
		}
	}
	if env.Name != "" {
		if v := os.Getenv(env.Name); v != "" {
			c.Name = v
		}
	}
	if env.Version != "" {
		if v := os.Getenv(env.Version); v != "" {
			c.Version = v
		}
	}
	if env.InstallMode != "" {
		if v := os.Getenv(env.InstallMode); v != "" {
			c.InstallMode = InstallMode(v)
		}
	}
	if env.Store != "" {
		if v := os.Getenv(env.Store); v != "" {
			c.Store = v
		}
	}
	if env.Origin != "" {
		if v := os.Getenv(env.Origin); v != "" {
			c.Origin = v
		}
	}
	if env.FetchTimeout != "" {
		if v := os.Getenv(env.FetchTimeout); v != "" {
			c.FetchTimeout = v
		}
	}
	if env.MaxAssetSize != "" {
		if v := os.Getenv(env.MaxAssetSize); v != "" {
			c.MaxAssetSize = v
		}
	}
	if env.Concurrency != "" {
		if v := os.Getenv(env.Concurrency); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.Concurrency = n
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.InstallMode {
	case Strict, BestEffort:
	default:
		return fmt.Errorf("invalid install_mode: %s", c.InstallMode)
	}
	switch c.Store {
	case StoreMemory, StoreDatabase, StoreBlob:
	default:
		return fmt.Errorf("invalid store: %s", c.Store)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("invalid fetch_timeout: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxAssetSize); err != nil {
		return fmt.Errorf("invalid max_asset_size: %w", err)
	}
	return nil
}
