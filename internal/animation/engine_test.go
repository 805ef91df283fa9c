package animation

import (
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/testutil"
)

type recorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *recorder) apply(e *Engine) ApplyFunc {
	return func(run Run, f Frame) bool {
		if !e.IsCurrent(run.WindowID, run.Generation) {
			return false
		}
		r.mu.Lock()
		r.frames = append(r.frames, f)
		r.mu.Unlock()
		return true
	}
}

func (r *recorder) last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func newTestEngine() (*Engine, *testutil.FakeClock) {
	clock := testutil.NewFakeClock()
	return NewEngine(DefaultConfig(), WithClock(clock), WithScheduler(clock)), clock
}

var (
	origin = layout.Rect{X: 100, Y: 100, Width: 800, Height: 600}
	dockAt = layout.Rect{X: 600, Y: 700, Width: 60, Height: 60}
)

func TestEngine_RunsToCompletion(t *testing.T) {
	e, clock := newTestEngine()
	rec := &recorder{}

	e.Start("w1", Minimizing, origin, dockAt, rec.apply(e))
	if e.Active() != 1 {
		t.Fatalf("expected 1 active run, got %d", e.Active())
	}

	clock.Advance(time.Second)

	f := rec.last()
	if !f.Done || f.Progress != 1 {
		t.Fatalf("expected completed frame, got %+v", f)
	}
	if f.Rect != dockAt {
		t.Fatalf("expected exact target %+v, got %+v", dockAt, f.Rect)
	}
	if len(f.Outlines) != 0 {
		t.Fatalf("expected outlines cleared, got %d", len(f.Outlines))
	}
	if e.Active() != 0 {
		t.Fatalf("expected no active runs, got %d", e.Active())
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending ticks, got %d", clock.Pending())
	}
}

func TestEngine_ProgressMonotonic(t *testing.T) {
	e, clock := newTestEngine()
	rec := &recorder{}

	e.Start("w1", Restoring, dockAt, origin, rec.apply(e))
	clock.Advance(time.Second)

	prev := -1.0
	for i, f := range rec.frames {
		if f.Progress < prev {
			t.Fatalf("frame %d: progress went backwards %v -> %v", i, prev, f.Progress)
		}
		if f.Progress < 0 || f.Progress > 1 {
			t.Fatalf("frame %d: progress out of range %v", i, f.Progress)
		}
		prev = f.Progress
	}
	if len(rec.frames) < 10 {
		t.Fatalf("expected a frame every tick, got %d", len(rec.frames))
	}
}

func TestEngine_SupersededRunStops(t *testing.T) {
	e, clock := newTestEngine()
	first := &recorder{}
	second := &recorder{}

	r1 := e.Start("w1", Minimizing, origin, dockAt, first.apply(e))
	clock.Advance(50 * time.Millisecond)
	seen := len(first.frames)

	r2 := e.Start("w1", Restoring, dockAt, origin, second.apply(e))
	if r2.Generation <= r1.Generation {
		t.Fatalf("expected generation to increase, got %d after %d", r2.Generation, r1.Generation)
	}
	if e.IsCurrent("w1", r1.Generation) {
		t.Fatalf("expected first run to be superseded")
	}

	clock.Advance(time.Second)
	if len(first.frames) != seen {
		t.Fatalf("superseded run kept ticking: %d -> %d frames", seen, len(first.frames))
	}
	if f := second.last(); !f.Done || f.Rect != origin {
		t.Fatalf("expected second run to complete at origin, got %+v", f)
	}
}

func TestEngine_CancelStopsTicks(t *testing.T) {
	e, clock := newTestEngine()
	rec := &recorder{}

	e.Start("w1", Minimizing, origin, dockAt, rec.apply(e))
	clock.Advance(40 * time.Millisecond)
	e.Cancel("w1")
	n := len(rec.frames)

	clock.Advance(time.Second)
	if len(rec.frames) != n {
		t.Fatalf("cancelled run kept ticking")
	}
	if e.Active() != 0 {
		t.Fatalf("expected no active runs after cancel")
	}
}

func TestEngine_IndependentWindows(t *testing.T) {
	e, clock := newTestEngine()
	a := &recorder{}
	b := &recorder{}

	e.Start("a", Minimizing, origin, dockAt, a.apply(e))
	e.Start("b", Minimizing, origin, dockAt, b.apply(e))
	clock.Advance(time.Second)

	if !a.last().Done || !b.last().Done {
		t.Fatalf("expected both runs to complete")
	}
}

func TestEngine_ApplyRejectionStops(t *testing.T) {
	e, clock := newTestEngine()
	calls := 0
	e.Start("w1", Minimizing, origin, dockAt, func(Run, Frame) bool {
		calls++
		return false
	})
	clock.Advance(time.Second)
	if calls != 1 {
		t.Fatalf("expected a single apply call, got %d", calls)
	}
}
