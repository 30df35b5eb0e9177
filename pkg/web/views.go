// Package web renders server-side pages from Go templates and serves embedded
// static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
)

// Page is the data passed to every template. Data carries the page-specific model.
type Page struct {
	Title    string
	BasePath string
	Data     any
}

// Templates holds one parsed template tree per page, each built from a clone
// of the shared layouts.
type Templates struct {
	pages    map[string]*template.Template
	layout   string
	basePath string
}

// NewTemplates parses every file matching layoutGlob as a layout, then clones
// the layouts for each page file. layout names the template executed on render.
func NewTemplates(fsys fs.FS, layoutGlob, layout, basePath string, pages ...string) (*Templates, error) {
	layouts, err := template.ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", page, err)
		}
		if _, err := t.ParseFS(fsys, page); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page, err)
		}
		if t.Lookup(layout) == nil {
			return nil, fmt.Errorf("layout %q not defined for %s", layout, page)
		}
		set[page] = t
	}

	return &Templates{
		pages:    set,
		layout:   layout,
		basePath: basePath,
	}, nil
}

// Render executes page into a buffer and writes it with the given status, so
// a template error never produces a partial response.
func (ts *Templates) Render(w http.ResponseWriter, status int, page string, p Page) error {
	t, ok := ts.pages[page]
	if !ok {
		return fmt.Errorf("template not found: %s", page)
	}

	p.BasePath = ts.basePath

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, ts.layout, p); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
