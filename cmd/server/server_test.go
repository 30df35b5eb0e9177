package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/pkg/middleware"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
)

func newTestServer(t *testing.T, env map[string]string) *Server {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	srv, err := NewServer(cfg, io.Discard)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(func() { srv.Shutdown(5 * time.Second) })
	return srv
}

// startup runs registration without opening a listener.
func startup(t *testing.T, srv *Server) {
	t.Helper()
	srv.modules.Offline.Register(srv.infra.Lifecycle)
	if err := srv.infra.Lifecycle.WaitForStartup(); err != nil {
		t.Fatalf("startup: %v", err)
	}
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(srv.Handler(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("response missing request id")
	}
}

func TestReadiness(t *testing.T) {
	srv := newTestServer(t, nil)

	if rec := get(srv.Handler(), "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("before startup: got %d, want 503", rec.Code)
	}

	startup(t, srv)

	rec := get(srv.Handler(), "/readyz")
	if rec.Code != http.StatusOK {
		t.Fatalf("after startup: got %d, want 200", rec.Code)
	}

	var body struct {
		Status string          `json:"status"`
		Checks map[string]bool `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ready" || !body.Checks["offline"] {
		t.Errorf("readiness body: %+v", body)
	}
}

func TestOfflineServesCachedAssets(t *testing.T) {
	srv := newTestServer(t, nil)
	startup(t, srv)

	if !srv.modules.Offline.Active() {
		t.Fatalf("offline state: got %s, want active", srv.modules.Offline.State())
	}

	for _, target := range []string{"/", "/index.html", "/style.css", "/app.js", "/manifest.webmanifest", "/icon-192.png", "/icon-512.png", "/WTHA.jpg"} {
		t.Run(target, func(t *testing.T) {
			rec := get(srv.Handler(), target)
			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
		})
	}

	if rec := get(srv.Handler(), "/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("uncached miss: got %d, want 404", rec.Code)
	}
}

func TestFormSubmitBypassesCache(t *testing.T) {
	srv := newTestServer(t, nil)
	startup(t, srv)

	form := url.Values{"action": {"calculate"}, "wing": {"400"}, "culmen": {"22"}, "hallux": {"28"}}
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "-1.938") {
		t.Error("rendered page missing score")
	}
}

func TestAPIMounted(t *testing.T) {
	srv := newTestServer(t, nil)
	startup(t, srv)

	if rec := get(srv.Handler(), "/api/ranges"); rec.Code != http.StatusOK {
		t.Errorf("ranges: got %d, want 200", rec.Code)
	}

	rec := get(srv.Handler(), "/api/cache")
	if rec.Code != http.StatusOK {
		t.Fatalf("cache status: got %d, want 200", rec.Code)
	}
	var status struct {
		State offline.State `json:"state"`
	}
	json.NewDecoder(rec.Body).Decode(&status)
	if status.State != offline.StateActive {
		t.Errorf("cache state: got %s, want active", status.State)
	}
}

func TestDisabledOfflineIsPassThrough(t *testing.T) {
	srv := newTestServer(t, map[string]string{"HAWKCALC_OFFLINE_DISABLED": "true"})
	startup(t, srv)

	if srv.modules.Offline.Active() {
		t.Error("disabled cache should not activate")
	}
	if rec := get(srv.Handler(), "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("readyz: got %d, want 200", rec.Code)
	}
	if rec := get(srv.Handler(), "/style.css"); rec.Code != http.StatusOK {
		t.Errorf("pass-through: got %d, want 200", rec.Code)
	}
}

func TestUnavailableBackendIsOnlineOnly(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"HAWKCALC_OFFLINE_STORE":             offline.StoreBlob,
		"HAWKCALC_STORAGE_CONNECTION_STRING": "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:1/devstoreaccount1;",
		"HAWKCALC_STORAGE_MAX_RETRIES":       "-1",
	})
	startup(t, srv)

	if got := srv.modules.Offline.State(); got != offline.StateFailed {
		t.Errorf("state: got %s, want failed", got)
	}
	if rec := get(srv.Handler(), "/"); rec.Code != http.StatusOK {
		t.Errorf("online-only: got %d, want 200", rec.Code)
	}
}
