package main

import (
	"net/http"

	"github.com/JaimeStill/hawkcalc/internal/api"
	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/internal/infrastructure"
	"github.com/JaimeStill/hawkcalc/pkg/handlers"
	"github.com/JaimeStill/hawkcalc/pkg/middleware"
	"github.com/JaimeStill/hawkcalc/pkg/module"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/web/app"
)

// Modules holds the API module and the offline-fronted web app.
type Modules struct {
	API     *module.Module
	App     *app.App
	Offline *offline.Manager

	logger middleware.Func
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	web, err := app.New("/", infra.Logger)
	if err != nil {
		return nil, err
	}

	fetcher, err := newFetcher(&cfg.Offline, web)
	if err != nil {
		return nil, err
	}

	manager, err := offline.New(&cfg.Offline, app.Manifest, infra.CacheStorage(), fetcher, infra.Logger)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, infra, manager)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:     apiModule,
		App:     web,
		Offline: manager,
		logger:  middleware.Logger(infra.Logger.With("module", "web")),
	}, nil
}

// Mount attaches the API module and routes everything else through the
// offline manager.
func (m *Modules) Mount(router *module.Router) error {
	if err := router.Mount(m.API); err != nil {
		return err
	}
	router.Handle("/", middleware.Chain{m.logger}.Then(m.Offline))
	return nil
}

// newFetcher returns the network the offline manager falls through to. With no
// origin configured the web app is fetched in-process.
func newFetcher(cfg *offline.Config, web http.Handler) (offline.Fetcher, error) {
	if cfg.Origin == "" {
		return offline.HandlerFetcher(web), nil
	}
	client := &http.Client{Timeout: cfg.FetchTimeoutDuration()}
	fetcher, err := offline.NewHTTPFetcher(cfg.Origin, client, cfg.MaxAssetSizeBytes())
	if err != nil {
		return nil, err
	}
	return fetcher, nil
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		checks := infra.Lifecycle.Status()
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not ready",
				"checks": checks,
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	})

	return router
}
