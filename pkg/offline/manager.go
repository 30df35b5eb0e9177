package offline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/hawkcalc/pkg/formatting"
	"github.com/JaimeStill/hawkcalc/pkg/handlers"
	"github.com/JaimeStill/hawkcalc/pkg/lifecycle"
)

// State is the manager's position in the install/activate lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateInstalling State = "installing"
	StateInstalled  State = "installed"
	StateActivating State = "activating"
	StateActive     State = "active"
	StateFailed     State = "failed"
)

// Manager pre-caches a manifest into a versioned bucket and serves requests
// cache-first once active. Until activation succeeds every request goes to
// the network.
type Manager struct {
	cfg      *Config
	keys     []string
	storage  CacheStorage
	network  Fetcher
	logger   *slog.Logger
	disabled bool

	mu     sync.RWMutex
	state  State
	bucket Bucket
}

// New creates a Manager for manifest. A nil storage is accepted and makes
// installation fail with ErrUnsupported, leaving the manager online-only.
func New(cfg *Config, manifest Manifest, storage CacheStorage, network Fetcher, logger *slog.Logger) (*Manager, error) {
	if network == nil {
		return nil, errors.New("network fetcher required")
	}

	keys, err := manifest.Keys()
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	settings := *cfg
	settings.loadDefaults()
	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Manager{
		cfg:      &settings,
		keys:     keys,
		storage:  storage,
		network:  network,
		logger:   logger.With("system", "offline", "bucket", settings.BucketName()),
		disabled: settings.IsDisabled(),
		state:    StateIdle,
	}, nil
}

// BucketName returns the name of the current bucket.
func (m *Manager) BucketName() string {
	return m.cfg.BucketName()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Active reports whether requests are being answered from the cache.
func (m *Manager) Active() bool {
	return m.State() == StateActive
}

// Ready implements lifecycle.ReadinessChecker. The manager is ready once
// registration has settled, whether or not it ended active.
func (m *Manager) Ready() bool {
	switch m.State() {
	case StateActive, StateFailed:
		return true
	case StateIdle:
		return m.disabled
	}
	return false
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Install opens the current bucket and stores every manifest asset in it.
// In Strict mode any failed asset aborts the install before anything is
// written. In BestEffort mode failed assets are skipped, and the install only
// fails when no asset could be fetched.
func (m *Manager) Install(ctx context.Context) error {
	if m.storage == nil {
		m.setState(StateFailed)
		return ErrUnsupported
	}

	m.setState(StateInstalling)
	runID := uuid.New()
	logger := m.logger.With("install", runID.String())
	logger.Info("installing offline cache", "assets", len(m.keys), "mode", m.cfg.InstallMode)

	bucket, err := m.storage.Open(ctx, m.BucketName())
	if err != nil {
		m.setState(StateFailed)
		return fmt.Errorf("%w: open bucket: %w", ErrInstall, err)
	}

	entries, failures := m.fetchAll(ctx)
	if len(failures) > 0 {
		if m.cfg.InstallMode == Strict || len(entries) == 0 {
			m.setState(StateFailed)
			return fmt.Errorf("%w: %w", ErrInstall, errors.Join(failures...))
		}
		for _, err := range failures {
			logger.Warn("asset skipped", "error", err)
		}
	}

	if err := bucket.PutAll(ctx, entries); err != nil {
		m.setState(StateFailed)
		return fmt.Errorf("%w: store assets: %w", ErrInstall, err)
	}

	m.mu.Lock()
	m.bucket = bucket
	m.state = StateInstalled
	m.mu.Unlock()

	var size int64
	for _, e := range entries {
		size += int64(len(e.Body))
	}
	logger.Info("offline cache installed",
		"cached", len(entries),
		"skipped", len(failures),
		"size", formatting.FormatBytes(size, 1),
	)
	return nil
}

func (m *Manager) fetchAll(ctx context.Context) (map[string]*Response, []error) {
	g := new(errgroup.Group)
	gctx := ctx
	if m.cfg.InstallMode == Strict {
		g, gctx = errgroup.WithContext(ctx)
	}
	g.SetLimit(m.cfg.Concurrency)

	results := make([]*Response, len(m.keys))
	errs := make([]error, len(m.keys))

	for i, key := range m.keys {
		g.Go(func() error {
			resp, err := m.fetchAsset(gctx, key)
			if err != nil {
				errs[i] = err
				if m.cfg.InstallMode == Strict {
					return err
				}
				return nil
			}
			results[i] = resp
			return nil
		})
	}
	g.Wait()

	entries := make(map[string]*Response, len(m.keys))
	var failures []error
	for i, key := range m.keys {
		if errs[i] != nil {
			failures = append(failures, errs[i])
			continue
		}
		if results[i] != nil {
			entries[key] = results[i]
		}
	}
	return entries, failures
}

func (m *Manager) fetchAsset(ctx context.Context, key string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", key, err)
	}

	resp, err := m.network.Fetch(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("fetch %s: %w: %d", key, ErrAssetStatus, resp.Status)
	}
	return resp, nil
}

// Activate deletes every bucket other than the current one and starts
// answering requests from the cache.
func (m *Manager) Activate(ctx context.Context) error {
	switch m.State() {
	case StateInstalled, StateActive:
	default:
		return ErrNotInstalled
	}

	m.setState(StateActivating)

	names, err := m.storage.Keys(ctx)
	if err != nil {
		m.setState(StateFailed)
		return fmt.Errorf("list buckets: %w", err)
	}

	current := m.BucketName()
	for _, name := range names {
		if name == current {
			continue
		}
		if _, err := m.storage.Delete(ctx, name); err != nil {
			m.setState(StateFailed)
			return fmt.Errorf("delete bucket %s: %w", name, err)
		}
		m.logger.Info("stale bucket deleted", "stale", name)
	}

	m.setState(StateActive)
	m.logger.Info("offline cache active")
	return nil
}

// HandleFetch answers req from the current bucket when the manager is active
// and the request is a GET or HEAD with a cached entry. Everything else is
// fetched from the network; network responses are never stored.
func (m *Manager) HandleFetch(req *http.Request) (*Response, error) {
	if resp, ok := m.match(req); ok {
		return resp, nil
	}
	return m.network.Fetch(req)
}

func (m *Manager) match(req *http.Request) (*Response, bool) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return nil, false
	}

	m.mu.RLock()
	active, bucket := m.state == StateActive, m.bucket
	m.mu.RUnlock()

	if !active || bucket == nil {
		return nil, false
	}

	resp, err := bucket.Match(req.Context(), RequestKey(req))
	if err != nil {
		if !errors.Is(err, ErrNotCached) {
			m.logger.Warn("cache lookup failed", "key", RequestKey(req), "error", err)
		}
		return nil, false
	}
	return resp, true
}

// Lookup returns the entry cached under key in the current bucket. It returns
// ErrNotCached when the manager is not active or the key is absent.
func (m *Manager) Lookup(ctx context.Context, key string) (*Response, error) {
	m.mu.RLock()
	active, bucket := m.state == StateActive, m.bucket
	m.mu.RUnlock()

	if !active || bucket == nil {
		return nil, ErrNotCached
	}
	return bucket.Match(ctx, key)
}

// Assets returns the normalized manifest keys in manifest order.
func (m *Manager) Assets() []string {
	return slices.Clone(m.keys)
}

// Buckets lists every bucket present in storage.
func (m *Manager) Buckets(ctx context.Context) ([]string, error) {
	if m.storage == nil {
		return nil, ErrUnsupported
	}
	return m.storage.Keys(ctx)
}

// ServeHTTP writes the result of HandleFetch. Network failures answer 502.
func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := m.HandleFetch(r)
	if err != nil {
		handlers.RespondError(w, m.logger, http.StatusBadGateway, err)
		return
	}
	resp.Write(w)
}

// Register installs and activates the cache during lifecycle startup.
// A failure is logged and the manager stays online-only; it never blocks
// startup or reaches the user.
func (m *Manager) Register(lc *lifecycle.Coordinator) {
	if m.disabled {
		m.logger.Info("offline cache disabled")
		return
	}

	lc.Check("offline", m)
	lc.OnStartup("offline", func(ctx context.Context) error {
		if err := m.register(ctx); err != nil {
			m.logger.Error("offline registration failed, continuing online-only", "error", err)
		}
		return nil
	})
}

func (m *Manager) register(ctx context.Context) error {
	if err := m.Install(ctx); err != nil {
		return err
	}
	return m.Activate(ctx)
}
