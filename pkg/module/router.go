package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by first path segment and
// falls back to a native ServeMux for everything else.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

// NewRouter creates a Router with no modules and an empty fallback mux.
func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// Handle registers a handler on the fallback mux.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.native.Handle(pattern, handler)
}

// HandleFunc registers a handler function on the fallback mux.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers a module for its prefix. Mounting two modules on the same
// prefix is an error.
func (r *Router) Mount(m *Module) error {
	if _, ok := r.modules[m.prefix]; ok {
		return fmt.Errorf("module already mounted at %s", m.prefix)
	}
	r.modules[m.prefix] = m
	return nil
}

// ServeHTTP dispatches to the module owning the first path segment, or to the
// fallback mux. A trailing slash is dropped before module dispatch.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if m, ok := r.modules["/"+segment]; ok {
		if path != req.URL.Path {
			req = req.Clone(req.Context())
			req.URL.Path = path
			req.URL.RawPath = ""
		}
		m.ServeHTTP(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}
