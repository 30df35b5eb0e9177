package offline_test

import (
	"testing"

	"github.com/JaimeStill/hawkcalc/pkg/offline"
)

var testEnv = &offline.Env{
	Disabled:     "TEST_OFFLINE_DISABLED",
	Version:      "TEST_OFFLINE_VERSION",
	InstallMode:  "TEST_OFFLINE_INSTALL_MODE",
	Store:        "TEST_OFFLINE_STORE",
	Concurrency:  "TEST_OFFLINE_CONCURRENCY",
	MaxAssetSize: "TEST_OFFLINE_MAX_ASSET_SIZE",
}

func TestConfigDefaults(t *testing.T) {
	cfg := &offline.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.BucketName() != "hawk-sexing-v2" {
		t.Errorf("bucket: got %s, want hawk-sexing-v2", cfg.BucketName())
	}
	if cfg.InstallMode != offline.Strict {
		t.Errorf("install mode: got %s, want strict", cfg.InstallMode)
	}
	if cfg.Store != offline.StoreMemory {
		t.Errorf("store: got %s, want memory", cfg.Store)
	}
	if cfg.FetchTimeoutDuration().Seconds() != 10 {
		t.Errorf("fetch timeout: got %v, want 10s", cfg.FetchTimeoutDuration())
	}
	if cfg.MaxAssetSizeBytes() != 10*1024*1024 {
		t.Errorf("max asset size: got %d", cfg.MaxAssetSizeBytes())
	}
	if cfg.Concurrency != 4 {
		t.Errorf("concurrency: got %d, want 4", cfg.Concurrency)
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("TEST_OFFLINE_DISABLED", "true")
	t.Setenv("TEST_OFFLINE_VERSION", "v3")
	t.Setenv("TEST_OFFLINE_INSTALL_MODE", "best_effort")
	t.Setenv("TEST_OFFLINE_STORE", "database")
	t.Setenv("TEST_OFFLINE_CONCURRENCY", "8")
	t.Setenv("TEST_OFFLINE_MAX_ASSET_SIZE", "1MB")

	cfg := &offline.Config{}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if !cfg.IsDisabled() {
		t.Error("disabled: got false, want true")
	}
	if cfg.BucketName() != "hawk-sexing-v3" {
		t.Errorf("bucket: got %s", cfg.BucketName())
	}
	if cfg.InstallMode != offline.BestEffort {
		t.Errorf("install mode: got %s", cfg.InstallMode)
	}
	if cfg.Store != offline.StoreDatabase {
		t.Errorf("store: got %s", cfg.Store)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("concurrency: got %d", cfg.Concurrency)
	}
	if cfg.MaxAssetSizeBytes() != 1024*1024 {
		t.Errorf("max asset size: got %d", cfg.MaxAssetSizeBytes())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  offline.Config
	}{
		{"install mode", offline.Config{InstallMode: "sometimes"}},
		{"store", offline.Config{Store: "redis"}},
		{"fetch timeout", offline.Config{FetchTimeout: "soon"}},
		{"max asset size", offline.Config{MaxAssetSize: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := &offline.Config{Name: "hawk-sexing", Version: "v2", Store: offline.StoreMemory}
	base.Merge(&offline.Config{Version: "v3", Origin: "https://example.com/hawk/"})

	if base.Version != "v3" || base.Origin != "https://example.com/hawk/" {
		t.Errorf("merge: got %+v", base)
	}
	if base.Name != "hawk-sexing" || base.Store != offline.StoreMemory {
		t.Errorf("merge overwrote unset fields: %+v", base)
	}
}

func TestConfigMergeDisabled(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name    string
		base    *bool
		overlay *bool
		want    bool
	}{
		{"overlay silent keeps base disabled", &on, nil, true},
		{"overlay silent keeps base enabled", nil, nil, false},
		{"overlay disables", nil, &on, true},
		{"overlay re-enables", &on, &off, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &offline.Config{Disabled: tt.base}
			base.Merge(&offline.Config{Disabled: tt.overlay})
			if got := base.IsDisabled(); got != tt.want {
				t.Errorf("disabled: got %v, want %v", got, tt.want)
			}
		})
	}
}
