package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/hawkcalc/pkg/formatting"
	"github.com/JaimeStill/hawkcalc/pkg/middleware"
	"github.com/JaimeStill/hawkcalc/pkg/openapi"
)

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "HAWKCALC_OPENAPI_TITLE",
	Description: "HAWKCALC_OPENAPI_DESCRIPTION",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "HAWKCALC_CORS_ENABLED",
	Origins:          "HAWKCALC_CORS_ORIGINS",
	AllowedMethods:   "HAWKCALC_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "HAWKCALC_CORS_ALLOWED_HEADERS",
	AllowCredentials: "HAWKCALC_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "HAWKCALC_CORS_MAX_AGE",
}

// APIConfig holds API routing, request size, CORS, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 64 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("HAWKCALC_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("HAWKCALC_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
