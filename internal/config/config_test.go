package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Exists {
		t.Fatalf("expected Exists=false")
	}
	if res.Config.Persistence.Backend != "file" {
		t.Fatalf("expected default backend, got %q", res.Config.Persistence.Backend)
	}
}

func TestLoadFromPath_EmptyFileYieldsDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Exists {
		t.Fatalf("expected Exists=true")
	}
	if res.Config.Animation.DurationMS != 250 {
		t.Fatalf("expected default duration, got %d", res.Config.Animation.DurationMS)
	}
}

func TestLoadFromPath_OverlaysDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, `
animation:
  duration_ms: 400
window:
  tiers:
    - max_viewport: 900
      width: 500
      height: 400
persistence:
  backend: sqlite
  debounce_ms: 50
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := res.Config
	if got := cfg.AnimationTunables().Duration; got != 400*time.Millisecond {
		t.Fatalf("expected 400ms, got %v", got)
	}
	if cfg.AnimationTunables().OutlineCount != 6 {
		t.Fatalf("expected untouched outline_count to keep default")
	}
	if len(cfg.Window.Tiers) != 1 || cfg.LayoutPolicy().Tiers[0].Width != 500 {
		t.Fatalf("expected tiers to be replaced, got %+v", cfg.Window.Tiers)
	}
	if cfg.DebounceDelay() != 50*time.Millisecond {
		t.Fatalf("expected 50ms debounce, got %v", cfg.DebounceDelay())
	}
	if _, ok := res.Sources["persistence.backend"]; !ok {
		t.Fatalf("expected source for persistence.backend")
	}
}

func TestLoadFromPath_RejectsUnknownFields(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "animation:\n  speed: 3\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadFromPath_ValidationErrorCarriesSource(t *testing.T) {
	path := writeConfig(t, "log_level: info\npersistence:\n  backend: redis\n")
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "persistence.backend" {
		t.Fatalf("unexpected path %q", verr.Path)
	}
	if verr.Source.Line != 3 {
		t.Fatalf("expected line 3, got %d", verr.Source.Line)
	}
	if !strings.HasPrefix(err.Error(), path+":3:") {
		t.Fatalf("expected file:line prefix, got %q", err.Error())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"min width", func(c *Config) { c.Window.MinWidth = 0 }, "window.min_width"},
		{"frame interval", func(c *Config) { c.Animation.FrameIntervalMS = 0 }, "animation.frame_interval_ms"},
		{"tiers order", func(c *Config) {
			c.Window.Tiers = []SizeTier{{MaxViewport: 1024, Height: 500}, {MaxViewport: 768, Height: 600}}
		}, "window.tiers"},
		{"item width", func(c *Config) { c.Dock.ItemWidth = -1 }, "dock.item_width"},
		{"debounce", func(c *Config) { c.Persistence.DebounceMS = -5 }, "persistence.debounce_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Dock.ItemGap = 12
	cfg.Display.SeedFromX11 = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Dock.ItemGap != 12 || !res.Config.Display.SeedFromX11 {
		t.Fatalf("round trip lost values: %+v", res.Config)
	}
}

func TestDefaultConfigPath_HonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/tmp/xdg/dxdesk/config.yaml" {
		t.Fatalf("unexpected path %q", path)
	}
}
