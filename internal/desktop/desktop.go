// Package desktop assembles the window registry, animation engine,
// persistence and preference stores into the single desktop instance the
// daemon serves.
package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/dxdesk/internal/animation"
	"github.com/1broseidon/dxdesk/internal/chrome"
	"github.com/1broseidon/dxdesk/internal/config"
	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/persist"
	"github.com/1broseidon/dxdesk/internal/platform"
	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/theme"
	"github.com/1broseidon/dxdesk/internal/vibe"
	"github.com/1broseidon/dxdesk/internal/window"
)

// Option customises Open.
type Option func(*options)

type options struct {
	store      persist.Store
	display    platform.Backend
	animOpts   []animation.Option
	writerOpts []persist.WriterOption
	newID      func() string
}

// WithStore uses s instead of the configured backend. The caller keeps
// ownership and Close leaves it open.
func WithStore(s persist.Store) Option { return func(o *options) { o.store = s } }

// WithDisplay probes b instead of opening the host display backend.
func WithDisplay(b platform.Backend) Option { return func(o *options) { o.display = b } }

// WithAnimationOptions passes opts to the animation engine.
func WithAnimationOptions(opts ...animation.Option) Option {
	return func(o *options) { o.animOpts = append(o.animOpts, opts...) }
}

// WithWriterOptions passes opts to every persistence writer.
func WithWriterOptions(opts ...persist.WriterOption) Option {
	return func(o *options) { o.writerOpts = append(o.writerOpts, opts...) }
}

// WithIDGenerator replaces the window id generator.
func WithIDGenerator(fn func() string) Option { return func(o *options) { o.newID = fn } }

// Desktop is the process-wide desktop state.
type Desktop struct {
	mu        sync.Mutex
	cfg       *config.Config
	logger    *slog.Logger
	store     persist.Store
	ownsStore bool

	Chrome     *chrome.State
	Engine     *animation.Engine
	Windows    *window.Registry
	Settings   *settings.Store
	Theme      *theme.Theme
	Background *theme.Background
	Vibes      *vibe.Selector
	Dock       *dock.AutoHide

	windowWriter *persist.Writer
}

// Open builds the desktop described by cfg and loads persisted state.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Desktop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := &Desktop{cfg: cfg, logger: logger, store: o.store}
	if d.store == nil {
		store, err := persist.Open(ctx, cfg.Persistence.Backend, cfg.Persistence.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.Persistence.Backend, err)
		}
		d.store = store
		d.ownsStore = true
	}

	writerOpts := append([]persist.WriterOption{
		persist.WithDelay(cfg.DebounceDelay()),
		persist.WithWriterLogger(logger),
	}, o.writerOpts...)

	d.Chrome = chrome.NewState(cfg.ViewportSize(), cfg.DockMetrics())
	d.Engine = animation.NewEngine(cfg.AnimationTunables(),
		append([]animation.Option{animation.WithLogger(logger)}, o.animOpts...)...)

	regOpts := []window.RegistryOption{
		window.WithPolicy(cfg.LayoutPolicy()),
		window.WithDockLayout(d.Chrome),
		window.WithFallbackDock(cfg.FallbackDock()),
		window.WithLogger(logger),
	}
	if o.newID != nil {
		regOpts = append(regOpts, window.WithIDGenerator(o.newID))
	}
	d.Windows = window.NewRegistry(d.Chrome, d.Engine, regOpts...)

	d.windowWriter = persist.NewWriter(d.store, persist.KeyWindows, writerOpts...)
	if cfg.Persistence.RestoreWindows {
		var stored []window.Window
		if raw, ok := persist.LoadJSON(ctx, d.store, persist.KeyWindows, &stored, logger); ok {
			d.Windows.Load(stored)
			d.windowWriter.Prime(raw)
			logger.Info("restored windows", "count", d.Windows.Len())
		}
	}
	d.Windows.Subscribe(func(ws []window.Window) {
		d.windowWriter.Submit(window.ForStorage(ws))
	})

	d.Settings = settings.Open(ctx, d.store, logger, writerOpts...)
	d.Settings.SetValidator("theme", func(v string) error {
		_, err := theme.ParseMode(v)
		return err
	})
	d.Settings.SetValidator("background", theme.ValidateBackground)
	d.Theme = theme.Open(ctx, d.store, logger, writerOpts...)
	d.Background = theme.OpenBackground(ctx, d.store, logger, writerOpts...)
	d.Vibes = vibe.NewSelector(logger)
	d.Dock = dock.NewAutoHide(d.Settings.Get().AutoHideDock, cfg.Dock.HotZone)
	d.Settings.Subscribe(d.applySettings)

	if cfg.Display.SeedFromX11 {
		d.seedChrome(o.display)
	}
	return d, nil
}

// seedChrome measures the host display until the UI reports real chrome.
// Probe failures are logged and the configured viewport stays in use.
func (d *Desktop) seedChrome(backend platform.Backend) {
	if backend == nil {
		b, err := platform.Open()
		if err != nil {
			d.logger.Warn("display probe unavailable", "error", err)
			return
		}
		defer b.Close()
		backend = b
	}
	disp, err := backend.ActiveDisplay()
	if err != nil {
		d.logger.Warn("display probe failed", "error", err)
		return
	}
	if d.SeedChrome(chrome.ReportFromDisplay(disp)) {
		d.logger.Info("seeded chrome from display", "display", disp.Name,
			"width", disp.Bounds.Width, "height", disp.Bounds.Height)
	}
}

// SeedChrome applies a host-display approximation unless the UI has
// already reported, and re-clamps windows when it does.
func (d *Desktop) SeedChrome(r chrome.Report) bool {
	if !d.Chrome.Seed(r) {
		return false
	}
	d.Windows.EnsureInBounds()
	return true
}

func (d *Desktop) applySettings(s settings.Settings) {
	d.Dock.SetEnabled(s.AutoHideDock)
	if s.Theme != string(d.Theme.Mode()) {
		if err := d.Theme.Set(s.Theme); err != nil {
			d.logger.Warn("ignoring theme setting", "error", err)
		}
	}
	if s.Background != d.Background.ID() {
		if err := d.Background.Set(s.Background); err != nil {
			d.logger.Warn("ignoring background setting", "error", err)
		}
	}
}

// Config returns the active configuration.
func (d *Desktop) Config() *config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Reload applies new placement, animation and dock tunables. The storage
// backend is fixed for the life of the desktop.
func (d *Desktop) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	prev := d.cfg
	d.cfg = cfg
	d.mu.Unlock()

	if prev.Persistence.Backend != cfg.Persistence.Backend || prev.Persistence.Path != cfg.Persistence.Path {
		d.logger.Warn("persistence changes take effect on restart",
			"backend", cfg.Persistence.Backend, "path", cfg.Persistence.Path)
	}

	d.Engine.SetConfig(cfg.AnimationTunables())
	d.Chrome.SetFallback(cfg.ViewportSize())
	d.Chrome.SetDockMetrics(cfg.Dock.ItemWidth, cfg.Dock.ItemGap, cfg.Dock.ItemOffsetY)
	d.Dock.SetHotZone(cfg.Dock.HotZone)
	d.windowWriter.SetDelay(cfg.DebounceDelay())
	d.Windows.SetFallbackDock(cfg.FallbackDock())
	d.Windows.SetPolicy(cfg.LayoutPolicy())
	d.Windows.EnsureInBounds()
	return nil
}

// ApplyChrome records a UI measurement and pulls windows back on screen.
func (d *Desktop) ApplyChrome(r chrome.Report) {
	d.Chrome.Apply(r)
	d.Windows.EnsureInBounds()
}

// SetTheme selects a theme mode and mirrors it into the settings.
func (d *Desktop) SetTheme(name string) error {
	if err := d.Theme.Set(name); err != nil {
		return err
	}
	mode := string(d.Theme.Mode())
	d.Settings.Update(func(s *settings.Settings) { s.Theme = mode })
	return nil
}

// SetBackground selects a gradient and mirrors it into the settings.
func (d *Desktop) SetBackground(id string) error {
	if err := d.Background.Set(id); err != nil {
		return err
	}
	d.Settings.Update(func(s *settings.Settings) { s.Background = id })
	return nil
}

// SetVibe switches the ambient playlist.
func (d *Desktop) SetVibe(key string) error {
	if !d.Vibes.Set(key) {
		return fmt.Errorf("unknown vibe %q", key)
	}
	return nil
}

// DockPointer feeds a pointer position to the auto-hide tracker and
// returns whether the dock should be shown.
func (d *Desktop) DockPointer(x, y float64) bool {
	return d.Dock.HandlePointer(x, y, d.Chrome.Chrome().Dock)
}

// Flush writes every pending change now.
func (d *Desktop) Flush() {
	d.windowWriter.Flush()
	d.Settings.Flush()
	d.Theme.Flush()
	d.Background.Flush()
}

// Close stops animations, flushes pending writes and closes the store
// when Open created it.
func (d *Desktop) Close() error {
	d.Engine.Close()
	d.Flush()
	if d.ownsStore {
		if err := d.store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	return nil
}
