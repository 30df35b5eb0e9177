package offline_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"github.com/JaimeStill/hawkcalc/pkg/offline"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := offline.NewMemoryStorage()

	a, err := s.Open(ctx, "app-v1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Open(ctx, "app-v2"); err != nil {
		t.Fatalf("open: %v", err)
	}
	again, _ := s.Open(ctx, "app-v1")
	if again != a {
		t.Error("open should return the existing bucket")
	}

	keys, _ := s.Keys(ctx)
	if !slices.Equal(keys, []string{"app-v1", "app-v2"}) {
		t.Errorf("keys: got %v", keys)
	}

	existed, err := s.Delete(ctx, "app-v1")
	if err != nil || !existed {
		t.Errorf("delete: existed=%v err=%v", existed, err)
	}
	existed, _ = s.Delete(ctx, "app-v1")
	if existed {
		t.Error("second delete should report missing bucket")
	}

	keys, _ = s.Keys(ctx)
	if !slices.Equal(keys, []string{"app-v2"}) {
		t.Errorf("keys after delete: got %v", keys)
	}
}

func TestMemoryBucket(t *testing.T) {
	ctx := context.Background()
	b, _ := offline.NewMemoryStorage().Open(ctx, "app-v1")

	if _, err := b.Match(ctx, "/"); !errors.Is(err, offline.ErrNotCached) {
		t.Errorf("match empty: got %v, want ErrNotCached", err)
	}

	resp := &offline.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"text/css"}},
		Body:   []byte("body{}"),
	}
	if err := b.Put(ctx, "/style.css", resp); err != nil {
		t.Fatalf("put: %v", err)
	}

	resp.Body[0] = 'X'

	got, err := b.Match(ctx, "/style.css")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if string(got.Body) != "body{}" {
		t.Errorf("body: got %q, stored entry should be isolated from caller", got.Body)
	}

	err = b.PutAll(ctx, map[string]*offline.Response{
		"/a.js": {Status: 200, Header: http.Header{}, Body: []byte("a")},
		"/b.js": {Status: 200, Header: http.Header{}, Body: []byte("b")},
	})
	if err != nil {
		t.Fatalf("put all: %v", err)
	}
	for _, key := range []string{"/a.js", "/b.js"} {
		if _, err := b.Match(ctx, key); err != nil {
			t.Errorf("match %s: %v", key, err)
		}
	}
}
