// Package chrome tracks the measured geometry of the desktop furniture
// (viewport, top bar, dock) as reported by the UI layer.
package chrome

import (
	"sync"

	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/platform"
)

// Report is a measurement pushed by the UI. Nil rects mean "not rendered".
type Report struct {
	ViewportWidth  float64      `json:"viewportWidth"`
	ViewportHeight float64      `json:"viewportHeight"`
	TopBar         *layout.Rect `json:"topBar,omitempty"`
	Dock           *layout.Rect `json:"dock,omitempty"`
	DockContainer  *layout.Rect `json:"dockContainer,omitempty"`
}

// State is the live chrome geometry. It implements layout.ChromeProvider
// and dock.LayoutProvider.
type State struct {
	mu       sync.RWMutex
	fallback layout.Size
	chrome   layout.Chrome
	dock     dock.Layout
	reported bool
}

var (
	_ layout.ChromeProvider = (*State)(nil)
	_ dock.LayoutProvider   = (*State)(nil)
)

// NewState creates a state with nothing measured. fallback is used as the
// viewport until the UI reports one.
func NewState(fallback layout.Size, metrics dock.Layout) *State {
	metrics.Container = nil
	return &State{fallback: fallback, dock: metrics}
}

// Chrome returns the current geometry, substituting the fallback viewport
// for unreported dimensions.
func (s *State) Chrome() layout.Chrome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.chrome
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = s.fallback.Width
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = s.fallback.Height
	}
	c.TopBar = cloneRect(c.TopBar)
	c.Dock = cloneRect(c.Dock)
	return c
}

// DockLayout returns the dock container and icon metrics.
func (s *State) DockLayout() dock.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l := s.dock
	l.Container = cloneRect(l.Container)
	return l
}

// Apply records a UI measurement. A report without a dock container
// keeps the dock rect as the container.
func (s *State) Apply(r Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reported = true
	s.applyLocked(r)
}

// Seed records a host-display approximation. It is ignored once the UI
// has reported, and reports whether it was applied.
func (s *State) Seed(r Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reported {
		return false
	}
	s.applyLocked(r)
	return true
}

// Reported reports whether the UI has sent any measurement.
func (s *State) Reported() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reported
}

func (s *State) applyLocked(r Report) {
	s.chrome = layout.Chrome{
		ViewportWidth:  r.ViewportWidth,
		ViewportHeight: r.ViewportHeight,
		TopBar:         cloneRect(r.TopBar),
		Dock:           cloneRect(r.Dock),
	}
	container := r.DockContainer
	if container == nil {
		container = r.Dock
	}
	s.dock.Container = cloneRect(container)
}

// SetDockMetrics replaces the icon metrics, keeping the measured container.
func (s *State) SetDockMetrics(itemWidth, itemGap, itemOffsetY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dock.ItemWidth = itemWidth
	s.dock.ItemGap = itemGap
	s.dock.ItemOffsetY = itemOffsetY
}

// SetFallback changes the viewport used before the UI reports one.
func (s *State) SetFallback(size layout.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = size
}

// Measured reports whether the UI has sent a viewport.
func (s *State) Measured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chrome.ViewportWidth > 0 && s.chrome.ViewportHeight > 0
}

// ReportFromDisplay approximates the chrome from a host display: reserved
// top space becomes the top bar and reserved bottom space the dock.
func ReportFromDisplay(d platform.Display) Report {
	w := float64(d.Bounds.Width)
	h := float64(d.Bounds.Height)
	r := Report{ViewportWidth: w, ViewportHeight: h}
	if d.Reserved.Top > 0 {
		r.TopBar = &layout.Rect{Width: w, Height: float64(d.Reserved.Top)}
	}
	if d.Reserved.Bottom > 0 {
		bottom := float64(d.Reserved.Bottom)
		r.Dock = &layout.Rect{Y: h - bottom, Width: w, Height: bottom}
	}
	return r
}

func cloneRect(r *layout.Rect) *layout.Rect {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
