package main

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/internal/infrastructure"
	"github.com/JaimeStill/hawkcalc/pkg/middleware"
)

type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	handler http.Handler
	http    *httpServer
}

// NewServer assembles the service. The cache backend is connected here so the
// offline manager is built against a live store; a backend that fails to
// connect is logged and the manager runs online-only.
func NewServer(cfg *config.Config, logOut io.Writer) (*Server, error) {
	infra, err := infrastructure.New(cfg, logOut)
	if err != nil {
		return nil, err
	}

	if err := infra.Start(); err != nil {
		infra.Logger.Error("cache backend unavailable", "store", cfg.Offline.Store, "error", err)
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	if err := modules.Mount(router); err != nil {
		return nil, err
	}

	handler := middleware.Chain{middleware.RequestID()}.Then(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"bucket", modules.Offline.BucketName(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		handler: handler,
		http:    newHTTPServer(&cfg.Server, cfg.ShutdownTimeoutDuration(), handler, infra.Logger),
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Logger returns the service logger.
func (s *Server) Logger() *slog.Logger {
	return s.infra.Logger
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	s.modules.Offline.Register(s.infra.Lifecycle)

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("startup completed with errors", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready", "offline", s.modules.Offline.State())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
