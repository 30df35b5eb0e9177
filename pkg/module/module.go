// Package module mounts self-contained HTTP handlers under single-level path
// prefixes, each with its own middleware chain.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/hawkcalc/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner
// handler wrapped in the module's middleware.
type Module struct {
	prefix  string
	handler http.Handler
	chain   middleware.Chain
}

// New creates a Module with a single-level prefix such as "/api".
func New(prefix string, handler http.Handler) (*Module, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Module{prefix: prefix, handler: handler}, nil
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's chain.
func (m *Module) Use(fns ...middleware.Func) {
	m.chain.Use(fns...)
}

// ServeHTTP strips the module prefix and dispatches to the inner handler.
func (m *Module) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, m.prefix)
	if rest == "" {
		rest = "/"
	}

	inner := req.Clone(req.Context())
	inner.URL.Path = rest
	inner.URL.RawPath = ""

	m.chain.Then(m.handler).ServeHTTP(w, inner)
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case len(prefix) == 1 || strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be a single-level sub-path: %s", prefix)
	}
	return nil
}
