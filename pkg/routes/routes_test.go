package routes_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/hawkcalc/pkg/middleware"
	"github.com/JaimeStill/hawkcalc/pkg/routes"
)

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func header(name string) middleware.Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Trace", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()

	patterns := routes.Register(mux, routes.Group{
		Prefix:     "/calc",
		Middleware: middleware.Chain{header("calc")},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/ranges", Handler: status(http.StatusOK)},
			{Method: "POST", Pattern: "/calculate", Handler: status(http.StatusCreated)},
		},
		Children: []routes.Group{
			{
				Prefix:     "/view",
				Middleware: middleware.Chain{header("view")},
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/dispatch", Handler: status(http.StatusAccepted)},
				},
			},
		},
	})

	want := []string{"GET /calc/ranges", "POST /calc/calculate", "POST /calc/view/dispatch"}
	if !slices.Equal(patterns, want) {
		t.Errorf("patterns: got %v, want %v", patterns, want)
	}

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantTrace  []string
	}{
		{"GET", "/calc/ranges", http.StatusOK, []string{"calc"}},
		{"POST", "/calc/calculate", http.StatusCreated, []string{"calc"}},
		{"POST", "/calc/view/dispatch", http.StatusAccepted, []string{"calc", "view"}},
		{"GET", "/calc/calculate", http.StatusMethodNotAllowed, nil},
		{"GET", "/missing", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Values("X-Trace"); !slices.Equal(got, tt.wantTrace) {
				t.Errorf("middleware: got %v, want %v", got, tt.wantTrace)
			}
		})
	}
}

func TestRouteString(t *testing.T) {
	if got := (routes.Route{Method: "GET", Pattern: "/ranges"}).String(); got != "GET /ranges" {
		t.Errorf("got %q", got)
	}
	if got := (routes.Route{Pattern: "/"}).String(); got != "/" {
		t.Errorf("got %q", got)
	}
}
