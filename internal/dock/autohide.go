package dock

import (
	"sync"

	"github.com/1broseidon/dxdesk/internal/layout"
)

// DefaultHotZone is how far outside the dock the pointer still counts as near.
const DefaultHotZone = 20

// AutoHide tracks dock visibility when auto-hide is on.
type AutoHide struct {
	mu      sync.Mutex
	enabled bool
	visible bool
	near    bool
	hotZone float64
}

// NewAutoHide creates a tracker. A disabled tracker keeps the dock shown.
func NewAutoHide(enabled bool, hotZone float64) *AutoHide {
	return &AutoHide{
		enabled: enabled,
		visible: !enabled,
		hotZone: hotZone,
	}
}

// SetEnabled switches auto-hide. Enabling hides the dock right away;
// disabling shows it.
func (a *AutoHide) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	a.visible = !enabled
	a.near = false
}

// SetHotZone changes the hot zone margin.
func (a *AutoHide) SetHotZone(d float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hotZone = d
}

// HandlePointer updates visibility for a pointer at (x, y). dockRect is
// nil when the dock is not rendered. It returns the resulting visibility.
func (a *AutoHide) HandlePointer(x, y float64, dockRect *layout.Rect) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.enabled || dockRect == nil {
		return a.visible
	}
	inZone := dockRect.Inflate(a.hotZone).Contains(layout.Point{X: x, Y: y})
	switch {
	case inZone && !a.near:
		a.near = true
		a.visible = true
	case !inZone && a.near:
		a.near = false
		a.visible = false
	}
	return a.visible
}

// Visible reports whether the dock should be drawn.
func (a *AutoHide) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// Enabled reports whether auto-hide is on.
func (a *AutoHide) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}
