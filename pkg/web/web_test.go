package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/hawkcalc/pkg/web"
)

var fsys = fstest.MapFS{
	"templates/layout.html":       {Data: []byte(`{{ define "layout" }}<title>{{ .Title }}</title><base href="{{ .BasePath }}">{{ template "content" . }}{{ end }}`)},
	"templates/home.html":         {Data: []byte(`{{ define "content" }}home {{ .Data }}{{ end }}`)},
	"templates/broken.html":       {Data: []byte(`{{ define "content" }}{{ .Data.Missing }}{{ end }}`)},
	"public/style.css":            {Data: []byte("body{}")},
	"public/app.js":               {Data: []byte("console.log(1)")},
	"public/manifest.webmanifest": {Data: []byte("{}")},
}

func TestTemplates(t *testing.T) {
	ts, err := web.NewTemplates(fsys, "templates/layout.html", "layout", "/",
		"templates/home.html", "templates/broken.html")
	if err != nil {
		t.Fatalf("NewTemplates: %v", err)
	}

	t.Run("render", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := ts.Render(rec, http.StatusOK, "templates/home.html", web.Page{Title: "Hawk", Data: 42}); err != nil {
			t.Fatalf("Render: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d", rec.Code)
		}
		if got, want := rec.Body.String(), `<title>Hawk</title><base href="/">home 42`; got != want {
			t.Errorf("body: got %q, want %q", got, want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
			t.Errorf("content-type: got %q", ct)
		}
	})

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ts.Render(rec, http.StatusNotFound, "templates/home.html", web.Page{})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})

	t.Run("execution error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := ts.Render(rec, http.StatusOK, "templates/broken.html", web.Page{Data: 1})
		if err == nil {
			t.Fatal("expected render error")
		}
		if rec.Body.Len() != 0 {
			t.Errorf("partial output written: %q", rec.Body.String())
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		if err := ts.Render(httptest.NewRecorder(), http.StatusOK, "missing.html", web.Page{}); err == nil {
			t.Error("expected error for unknown page")
		}
	})
}

func TestNewTemplatesMissingLayout(t *testing.T) {
	_, err := web.NewTemplates(fsys, "templates/layout.html", "nope", "/", "templates/home.html")
	if err == nil || !strings.Contains(err.Error(), `layout "nope"`) {
		t.Errorf("got %v, want missing layout error", err)
	}
}

func TestFileRoutes(t *testing.T) {
	router := web.NewRouter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for _, r := range web.FileRoutes(fsys, "public/style.css", "public/app.js", "public/manifest.webmanifest") {
		router.Mux().HandleFunc(r.String(), r.Handler)
	}

	tests := []struct {
		path       string
		wantStatus int
		wantType   string
	}{
		{"/public/style.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/public/app.js", http.StatusOK, "text/javascript; charset=utf-8"},
		{"/public/manifest.webmanifest", http.StatusOK, "application/manifest+json"},
		{"/public/missing.css", http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantType != "" && rec.Header().Get("Content-Type") != tt.wantType {
				t.Errorf("content-type: got %q, want %q", rec.Header().Get("Content-Type"), tt.wantType)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"icon-192.png":         "image/png",
		"WTHA.jpg":             "image/jpeg",
		"manifest.webmanifest": "application/manifest+json",
		"unknown.zzz":          "",
	}
	for name, want := range tests {
		if got := web.ContentType(name); got != want {
			t.Errorf("ContentType(%s) = %q, want %q", name, got, want)
		}
	}
}
