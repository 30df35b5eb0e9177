// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/internal/infrastructure"
	"github.com/JaimeStill/hawkcalc/pkg/middleware"
	"github.com/JaimeStill/hawkcalc/pkg/module"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
)

// NewModule creates the API module with the calculator and cache handlers.
// manager may be nil, in which case the cache endpoints report the cache as
// unsupported.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, manager *offline.Manager) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, manager)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
