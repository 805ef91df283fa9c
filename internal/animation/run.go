package animation

import (
	"math"
	"time"

	"github.com/1broseidon/dxdesk/internal/layout"
)

// Direction is which way a window travels relative to the dock.
type Direction string

const (
	Minimizing Direction = "minimizing"
	Restoring  Direction = "restoring"
)

// Outline is one ghost frame of the trail drawn behind an animating window.
type Outline struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
}

// Config holds the animation tunables.
type Config struct {
	Duration      time.Duration
	FrameInterval time.Duration
	OutlineCount  int
	OutlineStep   float64
	OutlineFade   float64
	IconSize      float64
}

// DefaultConfig returns the stock minimize/restore timing.
func DefaultConfig() Config {
	return Config{
		Duration:      250 * time.Millisecond,
		FrameInterval: 16 * time.Millisecond,
		OutlineCount:  6,
		OutlineStep:   0.15,
		OutlineFade:   0.25,
		IconSize:      60,
	}
}

// IconRect returns the dock icon rectangle anchored at p.
func (c Config) IconRect(p layout.Point) layout.Rect {
	return layout.Rect{X: p.X, Y: p.Y, Width: c.IconSize, Height: c.IconSize}
}

// Run is a single in-flight animation.
type Run struct {
	WindowID   string
	Direction  Direction
	Origin     layout.Rect
	Target     layout.Rect
	Start      time.Time
	Duration   time.Duration
	Generation uint64
}

// Frame is the state of a run at one instant.
type Frame struct {
	Rect     layout.Rect
	Progress float64
	Outlines []Outline
	Done     bool
}

// Progress returns elapsed/duration clamped to [0, 1].
func (r Run) Progress(now time.Time) float64 {
	if r.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(r.Start)) / float64(r.Duration)
	return math.Max(0, math.Min(1, p))
}

// Frame computes the interpolated geometry and trail at now.
func (r Run) Frame(now time.Time, cfg Config) Frame {
	p := r.Progress(now)
	f := Frame{
		Rect:     layout.Lerp(r.Origin, r.Target, p),
		Progress: p,
		Done:     p >= 1,
	}
	if !f.Done {
		f.Outlines = Trail(r.Origin, r.Target, p, cfg)
	}
	return f
}

// Trail builds the ghost outlines lagging behind progress. Outline i sits
// at progress-i*step and is omitted once that drops to zero.
func Trail(origin, target layout.Rect, progress float64, cfg Config) []Outline {
	var outlines []Outline
	for i := 0; i < cfg.OutlineCount; i++ {
		p := math.Max(0, progress-float64(i)*cfg.OutlineStep)
		if p <= 0 {
			continue
		}
		r := layout.Lerp(origin, target, p)
		outlines = append(outlines, Outline{
			X:       r.X,
			Y:       r.Y,
			Width:   r.Width,
			Height:  r.Height,
			Opacity: math.Max(0, 1-float64(i)*cfg.OutlineFade),
		})
	}
	return outlines
}
