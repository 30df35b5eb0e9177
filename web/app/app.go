// Package app serves the calculator web page and its static assets from
// embedded files. The page is rendered server-side from a calculator.View;
// form posts apply calculate and reset through calculator.Reduce.
package app

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/hawkcalc/internal/calculator"
	"github.com/JaimeStill/hawkcalc/internal/measurements"
	"github.com/JaimeStill/hawkcalc/pkg/handlers"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/pkg/routes"
	"github.com/JaimeStill/hawkcalc/pkg/web"
)

//go:embed templates public
var content embed.FS

// Title is the page title.
const Title = "Hawk Sexing Calculator"

// Assets lists the files served from public/ at the site root.
var Assets = []string{
	"style.css",
	"app.js",
	"manifest.webmanifest",
	"icon-192.png",
	"icon-512.png",
	"WTHA.jpg",
}

// Manifest is the offline pre-cache list: the page at both of its URLs plus
// every public asset.
var Manifest = offline.Manifest{
	"./",
	"./index.html",
	"./style.css",
	"./app.js",
	"./manifest.webmanifest",
	"./icon-192.png",
	"./icon-512.png",
	"./WTHA.jpg",
}

const (
	indexPage    = "templates/index.html"
	notFoundPage = "templates/notfound.html"
)

// App is the web application handler.
type App struct {
	templates *web.Templates
	router    *web.Router
	logger    *slog.Logger
}

// FieldView is one input row on the page.
type FieldView struct {
	Field measurements.Field
	Label string
	Range string
	Value string
	Focus bool
}

// IndexData is the model for the calculator page.
type IndexData struct {
	Fields []FieldView
}

// New parses the embedded templates and registers page and asset routes.
// basePath is emitted as the document base URL.
func New(basePath string, logger *slog.Logger) (*App, error) {
	ts, err := web.NewTemplates(content, "templates/layout.html", "layout", basePath, indexPage, notFoundPage)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	public, err := fs.Sub(content, "public")
	if err != nil {
		return nil, fmt.Errorf("public assets: %w", err)
	}

	a := &App{
		templates: ts,
		logger:    logger.With("handler", "web"),
	}
	a.router = web.NewRouter(http.HandlerFunc(a.notFound))

	routes.Register(a.router.Mux(), routes.Group{
		Routes: append([]routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: a.index},
			{Method: "GET", Pattern: "/index.html", Handler: a.index},
			{Method: "POST", Pattern: "/{$}", Handler: a.submit},
			{Method: "POST", Pattern: "/index.html", Handler: a.submit},
		}, web.FileRoutes(public, Assets...)...),
	})

	return a, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, calculator.Initial())
}

func (a *App) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handlers.RespondError(w, a.logger, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}

	view := calculator.Initial()
	for _, f := range measurements.Fields {
		view.Inputs = view.Inputs.With(f, r.PostForm.Get(string(f)))
	}

	var action calculator.Action
	switch r.PostForm.Get("action") {
	case "", string(calculator.ActionCalculate):
		action = calculator.Calculate()
	case string(calculator.ActionReset):
		action = calculator.Reset()
	default:
		handlers.RespondError(w, a.logger, http.StatusBadRequest, calculator.ErrInvalidAction)
		return
	}

	a.render(w, http.StatusOK, calculator.Reduce(view, action))
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	if err := a.templates.Render(w, http.StatusNotFound, notFoundPage, web.Page{Title: "Not found"}); err != nil {
		a.logger.Error("render failed", "page", notFoundPage, "error", err)
		http.NotFound(w, r)
	}
}

func (a *App) render(w http.ResponseWriter, status int, v calculator.View) {
	data := IndexData{}
	for _, f := range measurements.Fields {
		rng, _ := measurements.RangeOf(f)
		data.Fields = append(data.Fields, FieldView{
			Field: f,
			Label: f.Label(),
			Range: fmt.Sprintf("%g–%g mm", rng.Min, rng.Max),
			Value: v.Inputs.Get(f),
			Focus: v.Focus == f,
		})
	}

	page := web.Page{
		Title: Title,
		Data:  pageData{View: v, IndexData: data},
	}
	if err := a.templates.Render(w, status, indexPage, page); err != nil {
		a.logger.Error("render failed", "page", indexPage, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type pageData struct {
	calculator.View
	IndexData
}
