package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"orbit/internal/layout"
	"orbit/internal/relevance"
	"orbit/internal/visibility"
)

const minimal = "project: test\nversion: 1\n"

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Relevance != (relevance.Weights{Exact: 4, Partial: 1, Label: 2}) {
			t.Fatalf("unexpected weights %+v", cfg.Relevance)
		}
		if cfg.Layout.Jitter != 3 || cfg.Layout.TileWidth != layout.DefaultConfig.TileWidth {
			t.Fatalf("expected jitter kept and tile width defaulted, got %+v", cfg.Layout)
		}
		opts := cfg.GestureOptions()
		if opts.TapMaxDuration != 180*time.Millisecond || opts.ZoomMax != 3 || opts.ZoomMin != 0.4 {
			t.Fatalf("unexpected gesture options %+v", opts)
		}
		if cfg.Chat.Provider != ProviderGemini || cfg.Chat.Model == "" {
			t.Fatalf("unexpected chat config %+v", cfg.Chat)
		}
	})

	t.Run("minimal config gets defaults", func(t *testing.T) {
		cfg, err := LoadProjectConfig(writeTempConfig(t, minimal))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Visibility != visibility.DefaultPolicy {
			t.Fatalf("expected default visibility, got %+v", cfg.Visibility)
		}
		if cfg.Layout != layout.DefaultConfig {
			t.Fatalf("expected default layout, got %+v", cfg.Layout)
		}
		if cfg.Chat.Provider != ProviderNone || cfg.Log.Level != "info" {
			t.Fatalf("unexpected defaults chat=%+v log=%+v", cfg.Chat, cfg.Log)
		}
	})

	t.Run("api key from environment", func(t *testing.T) {
		t.Setenv("ORBIT_TEST_KEY", "secret")
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Chat.APIKey() != "secret" {
			t.Fatalf("expected key from env, got %q", cfg.Chat.APIKey())
		}
	})

	invalid := map[string]string{
		"missing project name": "version: 1\n",
		"unsupported version":  "project: test\nversion: 2\n",
		"negative tile width":  minimal + "layout:\n  tile_width: -1\n",
		"negative jitter":      minimal + "layout:\n  jitter: -2\n",
		"tile wider than ring": minimal + "layout:\n  tile_width: 2000\n",
		"floor above ceiling":  minimal + "visibility:\n  floor: 70\n  ceiling: 60\n",
		"inverted zoom range":  minimal + "viewport:\n  zoom_min: 3\n  zoom_max: 2\n",
		"negative tap time":    minimal + "gesture:\n  tap_max_ms: -5\n",
		"unknown provider":     minimal + "chat:\n  provider: carrier-pigeon\n",
		"unknown log level":    minimal + "log:\n  level: loud\n",
		"invalid yaml":         "project: [\n",
	}
	for name, contents := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadProjectConfig(writeTempConfig(t, contents)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
