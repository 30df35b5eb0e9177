// Package lifecycle coordinates startup and shutdown hooks and aggregates
// subsystem readiness.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Hook is a startup function. A returned error is logged and reported by
// WaitForStartup but does not stop other hooks.
type Hook func(ctx context.Context) error

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *slog.Logger
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup

	mu     sync.RWMutex
	ready  bool
	errs   []error
	checks map[string]ReadinessChecker
}

// New creates a Coordinator with a cancellable context.
func New(logger *slog.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("system", "lifecycle"),
		checks: make(map[string]ReadinessChecker),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently with other startup hooks.
func (c *Coordinator) OnStartup(name string, fn Hook) {
	c.startupWg.Go(func() {
		start := time.Now()
		if err := fn(c.ctx); err != nil {
			c.logger.Error("startup hook failed", "hook", name, "error", err)
			c.mu.Lock()
			c.errs = append(c.errs, fmt.Errorf("%s: %w", name, err))
			c.mu.Unlock()
			return
		}
		c.logger.Debug("startup hook complete", "hook", name, "duration", time.Since(start))
	})
}

// OnShutdown registers fn to run once the coordinator's context is cancelled.
func (c *Coordinator) OnShutdown(name string, fn func()) {
	c.shutdownWg.Go(func() {
		<-c.ctx.Done()
		c.logger.Debug("running shutdown hook", "hook", name)
		fn()
	})
}

// Check registers a named readiness checker consulted by Status and Ready.
func (c *Coordinator) Check(name string, rc ReadinessChecker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = rc
}

// Ready returns true after all startup hooks have completed and every
// registered checker reports ready.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready {
		return false
	}
	for _, rc := range c.checks {
		if !rc.Ready() {
			return false
		}
	}
	return true
}

// Status reports the readiness of each registered checker.
func (c *Coordinator) Status() map[string]bool {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	status := make(map[string]bool, len(checks))
	for name, rc := range checks {
		status[name] = rc.Ready()
	}
	return status
}

// WaitForStartup blocks until all startup hooks have completed, sets the
// ready flag, and returns the joined hook errors.
func (c *Coordinator) WaitForStartup() error {
	c.startupWg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = true
	return errors.Join(c.errs...)
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
