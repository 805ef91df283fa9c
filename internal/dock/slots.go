package dock

import "github.com/1broseidon/dxdesk/internal/layout"

// Layout describes the rendered dock container and its icon metrics.
// Container is nil while the dock is not measurable.
type Layout struct {
	Container   *layout.Rect `json:"container,omitempty"`
	ItemWidth   float64      `json:"itemWidth"`
	ItemGap     float64      `json:"itemGap"`
	ItemOffsetY float64      `json:"itemOffsetY"`
}

// LayoutProvider supplies the live dock layout.
type LayoutProvider interface {
	DockLayout() Layout
}

// DefaultLayout returns the stock icon metrics with no container.
func DefaultLayout() Layout {
	return Layout{ItemWidth: 60, ItemGap: 8, ItemOffsetY: 20}
}

// SlotPosition returns the top-left of the ordinal-th of count icons,
// with the group centred in the container.
func SlotPosition(ordinal, count int, l Layout) layout.Point {
	c := l.Container
	pitch := l.ItemWidth + l.ItemGap
	total := float64(count)*pitch - l.ItemGap
	startX := c.X + (c.Width-total)/2
	return layout.Point{
		X: startX + float64(ordinal)*pitch,
		Y: c.Y + l.ItemOffsetY,
	}
}

// Resolve finds id among the minimized window ids and returns its slot.
// The fallback is returned when id is not minimized or the dock cannot be
// measured.
func Resolve(id string, minimized []string, l Layout, fallback layout.Point) layout.Point {
	if l.Container == nil {
		return fallback
	}
	for i, m := range minimized {
		if m == id {
			return SlotPosition(i, len(minimized), l)
		}
	}
	return fallback
}
