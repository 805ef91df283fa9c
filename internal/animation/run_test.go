package animation

import (
	"testing"
	"time"

	"github.com/1broseidon/dxdesk/internal/layout"
)

func TestRunProgress(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Run{Start: start, Duration: 200 * time.Millisecond}

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{at: -time.Second, want: 0},
		{at: 0, want: 0},
		{at: 50 * time.Millisecond, want: 0.25},
		{at: 200 * time.Millisecond, want: 1},
		{at: time.Second, want: 1},
	}
	for _, tt := range tests {
		if got := r.Progress(start.Add(tt.at)); got != tt.want {
			t.Fatalf("at %v: expected %v, got %v", tt.at, tt.want, got)
		}
	}

	if got := (Run{Start: start}).Progress(start); got != 1 {
		t.Fatalf("expected zero duration to complete immediately, got %v", got)
	}
}

func TestTrail(t *testing.T) {
	cfg := DefaultConfig()
	from := layout.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	to := layout.Rect{X: 100, Y: 100, Width: 60, Height: 60}

	tests := []struct {
		name     string
		progress float64
		count    int
	}{
		{name: "start", progress: 0, count: 0},
		{name: "first tick", progress: 0.1, count: 1},
		{name: "quarter", progress: 0.25, count: 2},
		{name: "half", progress: 0.5, count: 4},
		{name: "late", progress: 0.9, count: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trail(from, to, tt.progress, cfg)
			if len(got) != tt.count {
				t.Fatalf("expected %d outlines, got %d", tt.count, len(got))
			}
		})
	}

	trail := Trail(from, to, 0.9, cfg)
	wantOpacity := []float64{1, 0.75, 0.5, 0.25, 0, 0}
	for i, o := range trail {
		if o.Opacity != wantOpacity[i] {
			t.Fatalf("outline %d: expected opacity %v, got %v", i, wantOpacity[i], o.Opacity)
		}
	}
	if trail[0].X != 90 || trail[0].Width != 64 {
		t.Fatalf("expected leading outline at progress 0.9, got %+v", trail[0])
	}
}

func TestFrameDoneClearsOutlines(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Run{
		Origin:   layout.Rect{X: 10, Y: 10, Width: 500, Height: 400},
		Target:   layout.Rect{X: 600, Y: 700, Width: 60, Height: 60},
		Start:    start,
		Duration: 250 * time.Millisecond,
	}
	f := r.Frame(start.Add(300*time.Millisecond), DefaultConfig())
	if !f.Done || f.Outlines != nil || f.Rect != r.Target {
		t.Fatalf("unexpected final frame %+v", f)
	}

	mid := r.Frame(start.Add(125*time.Millisecond), DefaultConfig())
	if mid.Done || mid.Progress != 0.5 || len(mid.Outlines) == 0 {
		t.Fatalf("unexpected mid frame %+v", mid)
	}
}
