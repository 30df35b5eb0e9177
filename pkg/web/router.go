package web

import "net/http"

// Router is a ServeMux that hands unmatched requests to a fallback handler
// instead of the default 404.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

// NewRouter creates a Router with the given fallback. A nil fallback keeps
// the ServeMux default.
func NewRouter(fallback http.Handler) *Router {
	return &Router{mux: http.NewServeMux(), fallback: fallback}
}

// Mux exposes the underlying ServeMux for route registration.
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// ServeHTTP dispatches to the matching route or to the fallback.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.fallback.ServeHTTP(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
