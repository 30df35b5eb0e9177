package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "HAWKCALC_SERVER_HOST"
	EnvServerPort              = "HAWKCALC_SERVER_PORT"
	EnvServerReadHeaderTimeout = "HAWKCALC_SERVER_READ_HEADER_TIMEOUT"
	EnvServerReadTimeout       = "HAWKCALC_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout      = "HAWKCALC_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "HAWKCALC_SERVER_IDLE_TIMEOUT"
)

// ServerConfig holds HTTP server parameters. Timeouts are Go duration strings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	ReadTimeout       string `toml:"read_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Timeouts returns the parsed read-header, read, write and idle timeouts.
func (c *ServerConfig) Timeouts() (readHeader, read, write, idle time.Duration) {
	readHeader, _ = time.ParseDuration(c.ReadHeaderTimeout)
	read, _ = time.ParseDuration(c.ReadTimeout)
	write, _ = time.ParseDuration(c.WriteTimeout)
	idle, _ = time.ParseDuration(c.IdleTimeout)
	return
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for dst, src := range c.durations(overlay) {
		if *src != "" {
			*dst = *src
		}
	}
}

func (c *ServerConfig) durations(other *ServerConfig) map[*string]*string {
	return map[*string]*string{
		&c.ReadHeaderTimeout: &other.ReadHeaderTimeout,
		&c.ReadTimeout:       &other.ReadTimeout,
		&c.WriteTimeout:      &other.WriteTimeout,
		&c.IdleTimeout:       &other.IdleTimeout,
	}
}

func (c *ServerConfig) loadDefaults() {
	defaults := &ServerConfig{
		Host:              "0.0.0.0",
		Port:              8080,
		ReadHeaderTimeout: "5s",
		ReadTimeout:       "15s",
		WriteTimeout:      "30s",
		IdleTimeout:       "2m",
	}
	if c.Host == "" {
		c.Host = defaults.Host
	}
	if c.Port == 0 {
		c.Port = defaults.Port
	}
	for dst, src := range c.durations(defaults) {
		if *dst == "" {
			*dst = *src
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for name, dst := range map[string]*string{
		EnvServerReadHeaderTimeout: &c.ReadHeaderTimeout,
		EnvServerReadTimeout:       &c.ReadTimeout,
		EnvServerWriteTimeout:      &c.WriteTimeout,
		EnvServerIdleTimeout:       &c.IdleTimeout,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for name, v := range map[string]string{
		"read_header_timeout": c.ReadHeaderTimeout,
		"read_timeout":        c.ReadTimeout,
		"write_timeout":       c.WriteTimeout,
		"idle_timeout":        c.IdleTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}
