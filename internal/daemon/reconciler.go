package daemon

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/1broseidon/dxdesk/internal/chrome"
)

// DisplayProbe returns the chrome approximation for the host display.
type DisplayProbe func() (chrome.Report, error)

// Seeder accepts display approximations. It reports whether one was used.
type Seeder interface {
	SeedChrome(r chrome.Report) bool
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-probes the host display and keeps the seeded
// chrome in step with monitor changes until the UI reports real geometry.
type Reconciler struct {
	interval time.Duration
	probe    DisplayProbe
	target   Seeder
	logger   *slog.Logger
	last     *chrome.Report
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, target Seeder, probe DisplayProbe) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Reconciler{
		interval: interval,
		probe:    probe,
		target:   target,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	report, err := r.probe()
	if err != nil {
		r.logger.Warn("reconciler: display probe failed", "error", err)
		return
	}
	if r.last != nil && reflect.DeepEqual(*r.last, report) {
		return
	}
	r.last = &report

	if r.target.SeedChrome(report) {
		r.logger.Info("reconciler: display geometry changed",
			"width", report.ViewportWidth, "height", report.ViewportHeight)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
