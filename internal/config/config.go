package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/dxdesk/internal/animation"
	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/layout"
)

// Config represents the dxdesk configuration
type Config struct {
	LogLevel    string            `yaml:"log_level"`
	WatchConfig bool              `yaml:"watch_config"`
	Viewport    ViewportConfig    `yaml:"viewport"`
	Window      WindowConfig      `yaml:"window"`
	Animation   AnimationConfig   `yaml:"animation"`
	Dock        DockConfig        `yaml:"dock"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Display     DisplayConfig     `yaml:"display"`
}

// ViewportConfig is the viewport assumed until the UI reports its size
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SizeTier picks the default window size for viewports narrower than max_viewport
type SizeTier struct {
	MaxViewport float64 `yaml:"max_viewport"`
	Width       float64 `yaml:"width"` // 0 fills the viewport
	Height      float64 `yaml:"height"`
}

// WindowConfig holds window placement rules
type WindowConfig struct {
	MinWidth       float64    `yaml:"min_width"`
	MinHeight      float64    `yaml:"min_height"`
	VerticalMargin float64    `yaml:"vertical_margin"`
	CascadeInset   float64    `yaml:"cascade_inset"`
	CascadeStep    float64    `yaml:"cascade_step"`
	DefaultWidth   float64    `yaml:"default_width"`
	DefaultHeight  float64    `yaml:"default_height"`
	Tiers          []SizeTier `yaml:"tiers"`
}

// Point is a viewport coordinate
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AnimationConfig holds minimize/restore animation timing
type AnimationConfig struct {
	DurationMS      int     `yaml:"duration_ms"`
	FrameIntervalMS int     `yaml:"frame_interval_ms"`
	OutlineCount    int     `yaml:"outline_count"`
	OutlineStep     float64 `yaml:"outline_step"`
	OutlineFade     float64 `yaml:"outline_fade"`
	IconSize        float64 `yaml:"icon_size"`
	FallbackDock    Point   `yaml:"fallback_dock"`
}

// DockConfig holds dock icon metrics
type DockConfig struct {
	ItemWidth   float64 `yaml:"item_width"`
	ItemGap     float64 `yaml:"item_gap"`
	ItemOffsetY float64 `yaml:"item_offset_y"`
	HotZone     float64 `yaml:"hot_zone"`
}

// PersistenceConfig selects where desktop state is stored
type PersistenceConfig struct {
	Backend        string `yaml:"backend"`
	Path           string `yaml:"path"`
	DebounceMS     int    `yaml:"debounce_ms"`
	RestoreWindows bool   `yaml:"restore_windows"`
}

// DisplayConfig controls probing the host display for chrome geometry
type DisplayConfig struct {
	SeedFromX11 bool `yaml:"seed_from_x11"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	policy := layout.DefaultPolicy()
	tiers := make([]SizeTier, 0, len(policy.Tiers))
	for _, t := range policy.Tiers {
		tiers = append(tiers, SizeTier{MaxViewport: t.MaxViewport, Width: t.Width, Height: t.Height})
	}
	anim := animation.DefaultConfig()
	metrics := dock.DefaultLayout()

	return &Config{
		LogLevel:    "info",
		WatchConfig: true,
		Viewport:    ViewportConfig{Width: 1920, Height: 1080},
		Window: WindowConfig{
			MinWidth:       policy.MinWidth,
			MinHeight:      policy.MinHeight,
			VerticalMargin: policy.VerticalMargin,
			CascadeInset:   policy.CascadeInset,
			CascadeStep:    policy.CascadeStep,
			DefaultWidth:   policy.Default.Width,
			DefaultHeight:  policy.Default.Height,
			Tiers:          tiers,
		},
		Animation: AnimationConfig{
			DurationMS:      int(anim.Duration / time.Millisecond),
			FrameIntervalMS: int(anim.FrameInterval / time.Millisecond),
			OutlineCount:    anim.OutlineCount,
			OutlineStep:     anim.OutlineStep,
			OutlineFade:     anim.OutlineFade,
			IconSize:        anim.IconSize,
			FallbackDock:    Point{X: 600, Y: 700},
		},
		Dock: DockConfig{
			ItemWidth:   metrics.ItemWidth,
			ItemGap:     metrics.ItemGap,
			ItemOffsetY: metrics.ItemOffsetY,
			HotZone:     dock.DefaultHotZone,
		},
		Persistence: PersistenceConfig{
			Backend:        "file",
			DebounceMS:     100,
			RestoreWindows: true,
		},
		Display: DisplayConfig{SeedFromX11: false},
	}
}

// LayoutPolicy converts the window section into placement rules.
func (c *Config) LayoutPolicy() layout.Policy {
	tiers := make([]layout.SizeTier, 0, len(c.Window.Tiers))
	for _, t := range c.Window.Tiers {
		tiers = append(tiers, layout.SizeTier{MaxViewport: t.MaxViewport, Width: t.Width, Height: t.Height})
	}
	return layout.Policy{
		MinWidth:       c.Window.MinWidth,
		MinHeight:      c.Window.MinHeight,
		VerticalMargin: c.Window.VerticalMargin,
		CascadeInset:   c.Window.CascadeInset,
		CascadeStep:    c.Window.CascadeStep,
		Tiers:          tiers,
		Default:        layout.Size{Width: c.Window.DefaultWidth, Height: c.Window.DefaultHeight},
	}
}

// AnimationTunables converts the animation section.
func (c *Config) AnimationTunables() animation.Config {
	return animation.Config{
		Duration:      time.Duration(c.Animation.DurationMS) * time.Millisecond,
		FrameInterval: time.Duration(c.Animation.FrameIntervalMS) * time.Millisecond,
		OutlineCount:  c.Animation.OutlineCount,
		OutlineStep:   c.Animation.OutlineStep,
		OutlineFade:   c.Animation.OutlineFade,
		IconSize:      c.Animation.IconSize,
	}
}

// FallbackDock is where windows fly when no dock slot is measurable.
func (c *Config) FallbackDock() layout.Point {
	return layout.Point{X: c.Animation.FallbackDock.X, Y: c.Animation.FallbackDock.Y}
}

// DockMetrics converts the dock section. The container is left unset.
func (c *Config) DockMetrics() dock.Layout {
	return dock.Layout{
		ItemWidth:   c.Dock.ItemWidth,
		ItemGap:     c.Dock.ItemGap,
		ItemOffsetY: c.Dock.ItemOffsetY,
	}
}

// ViewportSize returns the fallback viewport.
func (c *Config) ViewportSize() layout.Size {
	return layout.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// DebounceDelay returns the persistence quiet period.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Persistence.DebounceMS) * time.Millisecond
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the configuration to path, or the standard location when
// path is empty.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("viewport width and height must be > 0")}
	}
	if c.Window.MinWidth <= 0 {
		return &ValidationError{Path: "window.min_width", Err: fmt.Errorf("min_width must be > 0")}
	}
	if c.Window.MinHeight <= 0 {
		return &ValidationError{Path: "window.min_height", Err: fmt.Errorf("min_height must be > 0")}
	}
	if c.Window.VerticalMargin < 0 {
		return &ValidationError{Path: "window.vertical_margin", Err: fmt.Errorf("vertical_margin must be >= 0")}
	}
	if c.Window.CascadeInset < 0 || c.Window.CascadeStep < 0 {
		return &ValidationError{Path: "window.cascade_step", Err: fmt.Errorf("cascade_inset and cascade_step must be >= 0")}
	}
	if c.Window.DefaultWidth <= 0 || c.Window.DefaultHeight <= 0 {
		return &ValidationError{Path: "window.default_width", Err: fmt.Errorf("default_width and default_height must be > 0")}
	}
	prev := 0.0
	for i, t := range c.Window.Tiers {
		path := fmt.Sprintf("window.tiers[%d]", i)
		if t.MaxViewport <= prev {
			return &ValidationError{Path: "window.tiers", Err: fmt.Errorf("%s: max_viewport must be increasing and > 0", path)}
		}
		if t.Width < 0 || t.Height <= 0 {
			return &ValidationError{Path: "window.tiers", Err: fmt.Errorf("%s: width must be >= 0 and height > 0", path)}
		}
		prev = t.MaxViewport
	}
	if c.Animation.DurationMS < 0 {
		return &ValidationError{Path: "animation.duration_ms", Err: fmt.Errorf("duration_ms must be >= 0")}
	}
	if c.Animation.FrameIntervalMS <= 0 {
		return &ValidationError{Path: "animation.frame_interval_ms", Err: fmt.Errorf("frame_interval_ms must be > 0")}
	}
	if c.Animation.OutlineCount < 0 {
		return &ValidationError{Path: "animation.outline_count", Err: fmt.Errorf("outline_count must be >= 0")}
	}
	if c.Animation.OutlineStep < 0 || c.Animation.OutlineFade < 0 {
		return &ValidationError{Path: "animation.outline_step", Err: fmt.Errorf("outline_step and outline_fade must be >= 0")}
	}
	if c.Animation.IconSize <= 0 {
		return &ValidationError{Path: "animation.icon_size", Err: fmt.Errorf("icon_size must be > 0")}
	}
	if c.Dock.ItemWidth <= 0 {
		return &ValidationError{Path: "dock.item_width", Err: fmt.Errorf("item_width must be > 0")}
	}
	if c.Dock.ItemGap < 0 || c.Dock.HotZone < 0 {
		return &ValidationError{Path: "dock.item_gap", Err: fmt.Errorf("item_gap and hot_zone must be >= 0")}
	}
	switch c.Persistence.Backend {
	case "file", "sqlite", "memory":
	default:
		return &ValidationError{Path: "persistence.backend", Err: fmt.Errorf("backend must be one of: file, sqlite, memory")}
	}
	if c.Persistence.DebounceMS < 0 {
		return &ValidationError{Path: "persistence.debounce_ms", Err: fmt.Errorf("debounce_ms must be >= 0")}
	}
	return nil
}
