package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/hawkcalc/pkg/handlers"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/pkg/routes"
	"github.com/JaimeStill/hawkcalc/pkg/storage"
)

// CacheStatus reports the offline cache's lifecycle state and contents.
type CacheStatus struct {
	State   offline.State `json:"state"`
	Active  bool          `json:"active"`
	Bucket  string        `json:"bucket"`
	Assets  []string      `json:"assets"`
	Buckets []string      `json:"buckets"`
}

// CacheEntry describes one cached response without its body.
type CacheEntry struct {
	Key         string `json:"key"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type cacheHandler struct {
	manager *offline.Manager
	logger  *slog.Logger
}

func newCacheHandler(manager *offline.Manager, logger *slog.Logger) *cacheHandler {
	return &cacheHandler{
		manager: manager,
		logger:  logger.With("handler", "cache"),
	}
}

func (h *cacheHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/cache",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.status},
			{Method: "GET", Pattern: "/entries/{key...}", Handler: h.entry},
		},
	}
}

func (h *cacheHandler) status(w http.ResponseWriter, r *http.Request) {
	if h.manager == nil {
		handlers.RespondError(w, h.logger, http.StatusServiceUnavailable, offline.ErrUnsupported)
		return
	}

	status := CacheStatus{
		State:   h.manager.State(),
		Active:  h.manager.Active(),
		Bucket:  h.manager.BucketName(),
		Assets:  h.manager.Assets(),
		Buckets: []string{},
	}

	buckets, err := h.manager.Buckets(r.Context())
	if err != nil && !errors.Is(err, offline.ErrUnsupported) {
		handlers.RespondError(w, h.logger, errorStatus(err), err)
		return
	}
	if buckets != nil {
		status.Buckets = buckets
	}

	handlers.RespondJSON(w, http.StatusOK, status)
}

func (h *cacheHandler) entry(w http.ResponseWriter, r *http.Request) {
	if h.manager == nil {
		handlers.RespondError(w, h.logger, http.StatusServiceUnavailable, offline.ErrUnsupported)
		return
	}

	key := "/" + r.PathValue("key")

	resp, err := h.manager.Lookup(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, errorStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CacheEntry{
		Key:         key,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        len(resp.Body),
	})
}

// errorStatus maps offline errors first, then blob storage errors surfaced
// through the blob-backed cache store.
func errorStatus(err error) int {
	if status := offline.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return storage.MapHTTPStatus(err)
}
