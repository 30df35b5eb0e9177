package web

import (
	"bytes"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/JaimeStill/hawkcalc/pkg/routes"
)

// types covers extensions the platform MIME table may not know.
var types = map[string]string{
	".webmanifest": "application/manifest+json",
	".js":          "text/javascript; charset=utf-8",
	".css":         "text/css; charset=utf-8",
}

// ContentType returns the MIME type for name's extension, or "" when unknown.
func ContentType(name string) string {
	ext := path.Ext(name)
	if t, ok := types[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}

// File serves a single file from fsys. Missing files answer 404.
func File(fsys fs.FS, name string) http.HandlerFunc {
	ct := ContentType(name)
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		http.ServeContent(w, r, path.Base(name), time.Time{}, bytes.NewReader(data))
	}
}

// FileRoutes returns a GET route at "/<file>" for each file in fsys.
func FileRoutes(fsys fs.FS, files ...string) []routes.Route {
	list := make([]routes.Route, len(files))
	for i, file := range files {
		list[i] = routes.Route{
			Method:  "GET",
			Pattern: "/" + file,
			Handler: File(fsys, file),
		}
	}
	return list
}
