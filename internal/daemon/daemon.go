// Package daemon runs the desktop behind the IPC socket and keeps it in
// step with the config file and the host display.
package daemon

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/dxdesk/internal/chrome"
	"github.com/1broseidon/dxdesk/internal/config"
	"github.com/1broseidon/dxdesk/internal/desktop"
	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/platform"
)

// Option customises a Daemon.
type Option func(*Daemon)

// WithSocketPath overrides the IPC socket location.
func WithSocketPath(p string) Option { return func(d *Daemon) { d.socketPath = p } }

// WithLogOutput sends structured logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option { return func(d *Daemon) { d.logOut = w } }

// WithDesktopOptions passes opts to desktop.Open.
func WithDesktopOptions(opts ...desktop.Option) Option {
	return func(d *Daemon) { d.deskOpts = append(d.deskOpts, opts...) }
}

// WithProbe replaces the host display probe used by the reconciler.
func WithProbe(p DisplayProbe) Option { return func(d *Daemon) { d.probe = p } }

// WithReconcileInterval sets how often the host display is re-probed.
func WithReconcileInterval(iv time.Duration) Option {
	return func(d *Daemon) { d.interval = iv }
}

// Daemon owns the desktop and its outer surfaces.
type Daemon struct {
	configPath string
	socketPath string
	logOut     io.Writer
	deskOpts   []desktop.Option
	probe      DisplayProbe
	interval   time.Duration

	reloadMu sync.Mutex
	level    *slog.LevelVar
	logger   *slog.Logger
	desk     *desktop.Desktop
	server   *ipc.Server
}

// New loads the config at configPath and opens the desktop.
func New(ctx context.Context, configPath string, opts ...Option) (*Daemon, error) {
	d := &Daemon{
		configPath: configPath,
		logOut:     os.Stderr,
		level:      new(slog.LevelVar),
	}
	for _, opt := range opts {
		opt(d)
	}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	d.level.Set(cfg.SlogLevel())
	d.logger = slog.New(slog.NewTextHandler(d.logOut, &slog.HandlerOptions{Level: d.level}))
	if !res.Exists {
		log.Printf("No config at %s, using defaults", configPath)
	}

	desk, err := desktop.Open(ctx, cfg, d.logger, d.deskOpts...)
	if err != nil {
		return nil, err
	}
	d.desk = desk

	if d.socketPath != "" {
		d.server = ipc.NewServerAt(d.socketPath, desk, d.Reload)
	} else {
		d.server, err = ipc.NewServer(desk, d.Reload)
		if err != nil {
			desk.Close()
			return nil, err
		}
	}
	return d, nil
}

// Desktop returns the served desktop.
func (d *Daemon) Desktop() *desktop.Desktop { return d.desk }

// SocketPath returns the IPC socket location.
func (d *Daemon) SocketPath() string { return d.server.SocketPath() }

// Reload re-reads the config file and applies it. On error the running
// config is kept.
func (d *Daemon) Reload() error {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	res, err := config.LoadFromPath(d.configPath)
	if err != nil {
		return err
	}
	if err := d.desk.Reload(res.Config); err != nil {
		return err
	}
	d.level.Set(res.Config.SlogLevel())
	d.logger.Info("config reloaded", "path", d.configPath)
	return nil
}

// Run serves IPC until ctx is cancelled, then flushes state and closes
// the desktop.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.server.Start(); err != nil {
		d.desk.Close()
		return err
	}
	log.Println("dxdesk daemon started successfully")

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	cfg := d.desk.Config()
	if cfg.WatchConfig {
		w, err := NewConfigWatcher(d.configPath, DefaultSettle, d.reloadFromWatcher, d.logger)
		if err != nil {
			d.logger.Warn("config hot reload disabled", "error", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Run(ctx)
			}()
		}
	}

	if cfg.Display.SeedFromX11 {
		probe := d.probe
		if probe == nil {
			probe = hostProbe
		}
		r := NewReconciler(ReconcilerConfig{Interval: d.interval, Logger: d.logger}, d.desk, probe)
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Run(ctx)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down dxdesk daemon...")
	d.server.Stop()
	cancel()
	wg.Wait()

	if err := d.desk.Close(); err != nil {
		return fmt.Errorf("failed to close desktop: %w", err)
	}
	return nil
}

func (d *Daemon) reloadFromWatcher() {
	if err := d.Reload(); err != nil {
		d.logger.Warn("config reload failed", "error", err)
	}
}

// hostProbe opens the platform backend for a single measurement.
func hostProbe() (chrome.Report, error) {
	b, err := platform.Open()
	if err != nil {
		return chrome.Report{}, err
	}
	defer b.Close()
	disp, err := b.ActiveDisplay()
	if err != nil {
		return chrome.Report{}, err
	}
	return chrome.ReportFromDisplay(disp), nil
}
