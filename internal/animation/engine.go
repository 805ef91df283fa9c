package animation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/dxdesk/internal/layout"
)

// ApplyFunc commits a frame. It returns false when the run has been
// superseded, which stops further ticks.
type ApplyFunc func(run Run, f Frame) bool

// Engine drives minimize/restore runs on a fixed tick.
//
// Each window holds at most one current generation. Starting or cancelling
// a run moves the window to a fresh generation, so ticks from older runs
// find a mismatch and stop. Generations are never reused.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	clock     Clock
	scheduler Scheduler
	logger    *slog.Logger

	nextGen uint64
	current map[string]uint64
	closed  bool
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithScheduler replaces the timer scheduler.
func WithScheduler(s Scheduler) Option { return func(e *Engine) { e.scheduler = s } }

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// NewEngine creates an engine with the given config.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		clock:     SystemClock{},
		scheduler: TimerScheduler{},
		logger:    slog.New(slog.DiscardHandler),
		current:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the active tunables.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetConfig replaces the tunables for runs started afterwards.
func (e *Engine) SetConfig(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
}

// Now reads the engine clock.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Start supersedes any run on id and schedules a new one.
func (e *Engine) Start(id string, dir Direction, origin, target layout.Rect, apply ApplyFunc) Run {
	e.mu.Lock()
	e.nextGen++
	if prev, ok := e.current[id]; ok {
		e.logger.Debug("animation superseded", "window", id, "generation", prev)
	}
	e.current[id] = e.nextGen
	run := Run{
		WindowID:   id,
		Direction:  dir,
		Origin:     origin,
		Target:     target,
		Start:      e.clock.Now(),
		Duration:   e.cfg.Duration,
		Generation: e.nextGen,
	}
	cfg := e.cfg
	e.mu.Unlock()

	e.scheduler.Schedule(cfg.FrameInterval, func() { e.tick(run, cfg, apply) })
	return run
}

// Cancel supersedes any run on id without starting a new one.
func (e *Engine) Cancel(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen, ok := e.current[id]; ok {
		e.logger.Debug("animation cancelled", "window", id, "generation", gen)
		delete(e.current, id)
	}
}

// IsCurrent reports whether gen is still the live run for id.
func (e *Engine) IsCurrent(id string, gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && e.current[id] == gen
}

// Active returns the number of windows with a live run.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.current)
}

// Close stops all runs; pending ticks become no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.current = make(map[string]uint64)
}

func (e *Engine) tick(run Run, cfg Config, apply ApplyFunc) {
	if !e.IsCurrent(run.WindowID, run.Generation) {
		return
	}

	frame := run.Frame(e.clock.Now(), cfg)
	if !apply(run, frame) {
		return
	}

	if frame.Done {
		e.finish(run)
		return
	}
	e.scheduler.Schedule(cfg.FrameInterval, func() { e.tick(run, cfg, apply) })
}

func (e *Engine) finish(run Run) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current[run.WindowID] == run.Generation {
		delete(e.current, run.WindowID)
	}
}
