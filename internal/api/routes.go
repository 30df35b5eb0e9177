package api

import (
	"net/http"

	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/pkg/middleware"
	"github.com/JaimeStill/hawkcalc/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	calc := domain.Calculator.Routes()
	calc.Middleware.Use(middleware.MaxBody(runtime.MaxBodySize))

	spec, err := NewSpec(cfg)
	if err != nil {
		return err
	}
	docs, err := openAPIRoutes(spec)
	if err != nil {
		return err
	}

	routes.Register(
		mux,
		calc,
		newCacheHandler(domain.Offline, runtime.Logger).routes(),
		docs,
	)
	return nil
}
