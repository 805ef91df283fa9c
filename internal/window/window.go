package window

import (
	"github.com/1broseidon/dxdesk/internal/animation"
	"github.com/1broseidon/dxdesk/internal/layout"
)

// Window is one simulated desktop window.
type Window struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Route       string  `json:"route"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	IsMinimized bool    `json:"isMinimized"`
	IsMaximized bool    `json:"isMaximized"`
	IsVisible   bool    `json:"isVisible"`
	ZIndex      int     `json:"zIndex"`

	// OriginalPosition is the geometry captured when the window last left
	// the desktop for the dock. Restore animates back to it.
	OriginalPosition *layout.Rect  `json:"originalPosition,omitempty"`
	DockPosition     *layout.Point `json:"dockPosition,omitempty"`

	// Animation is attached only while a minimize or restore run owns the
	// window.
	Animation *AnimationState `json:"animation,omitempty"`
}

// AnimationState is the transient part of an animating window.
type AnimationState struct {
	Direction  animation.Direction `json:"direction"`
	Progress   float64             `json:"progress"`
	Outlines   []animation.Outline `json:"outlines"`
	Generation uint64              `json:"-"`
}

// Rect returns the window geometry.
func (w Window) Rect() layout.Rect {
	return layout.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

func (w *Window) setRect(r layout.Rect) {
	w.X, w.Y, w.Width, w.Height = r.X, r.Y, r.Width, r.Height
}

// IsAnimating reports whether a run currently owns the window.
func (w Window) IsAnimating() bool { return w.Animation != nil }

// AnimationProgress returns the current run progress, or 1 when idle.
func (w Window) AnimationProgress() float64 {
	if w.Animation == nil {
		return 1
	}
	return w.Animation.Progress
}

// RendersMaximized reports whether the UI should draw the window
// maximized. Minimized always wins; the maximized flag is kept so the
// window comes back maximized after restore.
func (w Window) RendersMaximized() bool {
	return w.IsMaximized && !w.IsMinimized
}

// Clone returns a deep copy.
func (w Window) Clone() Window {
	c := w
	if w.OriginalPosition != nil {
		r := *w.OriginalPosition
		c.OriginalPosition = &r
	}
	if w.DockPosition != nil {
		p := *w.DockPosition
		c.DockPosition = &p
	}
	if w.Animation != nil {
		a := *w.Animation
		a.Outlines = append([]animation.Outline(nil), w.Animation.Outlines...)
		c.Animation = &a
	}
	return c
}

// ForStorage strips transient animation state from a snapshot.
func ForStorage(ws []Window) []Window {
	out := make([]Window, len(ws))
	for i, w := range ws {
		c := w.Clone()
		c.Animation = nil
		out[i] = c
	}
	return out
}
