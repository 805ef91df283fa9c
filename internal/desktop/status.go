package desktop

import (
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/window"
)

// Status summarises the desktop.
type Status struct {
	Windows     int         `json:"windows"`
	Visible     int         `json:"visible"`
	Minimized   int         `json:"minimized"`
	Animating   int         `json:"animating"`
	NextZIndex  int         `json:"next_z_index"`
	Theme       string      `json:"theme"`
	Resolved    string      `json:"resolved_theme"`
	Background  string      `json:"background"`
	Vibe        string      `json:"vibe"`
	DockVisible bool        `json:"dock_visible"`
	Measured    bool        `json:"chrome_measured"`
	Viewport    layout.Size `json:"viewport"`
	Backend     string      `json:"backend"`
}

// Status returns a snapshot of the desktop.
func (d *Desktop) Status() Status {
	ws := d.Windows.Windows()
	c := d.Chrome.Chrome()
	st := Status{
		Windows:     len(ws),
		NextZIndex:  d.Windows.NextZIndex(),
		Theme:       string(d.Theme.Mode()),
		Resolved:    string(d.Theme.Current()),
		Background:  d.Background.ID(),
		Vibe:        d.Vibes.CurrentKey(),
		DockVisible: d.Dock.Visible(),
		Measured:    d.Chrome.Measured(),
		Viewport:    layout.Size{Width: c.ViewportWidth, Height: c.ViewportHeight},
		Backend:     d.Config().Persistence.Backend,
	}
	for _, w := range ws {
		countWindow(&st, w)
	}
	return st
}

func countWindow(st *Status, w window.Window) {
	if w.IsVisible && !w.IsMinimized {
		st.Visible++
	}
	if w.IsMinimized {
		st.Minimized++
	}
	if w.IsAnimating() {
		st.Animating++
	}
}
