package app_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/hawkcalc/web/app"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New("/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a
}

func post(a *app.App, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/", "/index.html"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rec.Code)
			}
			body := rec.Body.String()
			for _, want := range []string{
				"<title>Hawk Sexing Calculator</title>",
				`class="output neutral"`,
				`<strong id="scoreOut">—</strong>`,
				`<strong id="sexOut">—</strong>`,
				"Wing chord",
				"300–500 mm",
				`<dialog id="alertBox" >`,
			} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestSubmit(t *testing.T) {
	a := newApp(t)

	tests := []struct {
		name string
		form url.Values
		want []string
	}{
		{
			name: "female",
			form: url.Values{"wing": {"500"}, "culmen": {"30"}, "hallux": {"35"}, "action": {"calculate"}},
			want: []string{`class="output female"`, ">10.981<", ">Female<", "Score &gt; 1 → Female", `value="500"`},
		},
		{
			name: "male",
			form: url.Values{"wing": {"300"}, "culmen": {"15"}, "hallux": {"20"}},
			want: []string{`class="output male"`, ">-14.824<", ">Male<"},
		},
		{
			name: "invalid raises alert",
			form: url.Values{"wing": {""}, "culmen": {"20"}, "hallux": {"25"}, "action": {"calculate"}},
			want: []string{
				`class="output neutral"`,
				"<dialog id=\"alertBox\" open>",
				"Wing chord is required.",
				"Enter valid measurements to calculate.",
				`value="20"`,
			},
		},
		{
			name: "out of range",
			form: url.Values{"wing": {"400"}, "culmen": {"31"}, "hallux": {"25"}},
			want: []string{"Culmen length must be between 15 and 30 mm."},
		},
		{
			name: "reset",
			form: url.Values{"wing": {"400"}, "culmen": {"20"}, "hallux": {"25"}, "action": {"reset"}},
			want: []string{`class="output neutral"`, `value="" autofocus`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(a, tt.form)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rec.Code)
			}
			body := rec.Body.String()
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}

	t.Run("unknown action", func(t *testing.T) {
		rec := post(a, url.Values{"action": {"launch"}})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestManifestServed(t *testing.T) {
	a := newApp(t)

	keys, err := app.Manifest.Keys()
	if err != nil {
		t.Fatalf("manifest keys: %v", err)
	}
	if len(keys) != 8 {
		t.Fatalf("manifest entries: got %d, want 8", len(keys))
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.ServeHTTP(rec, httptest.NewRequest("GET", key, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
			if rec.Body.Len() == 0 {
				t.Error("empty body")
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	a := newApp(t)

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest("GET", "/service-worker.js", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Back to the calculator") {
		t.Error("not-found page not rendered")
	}
}
