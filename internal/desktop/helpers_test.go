package desktop

import "github.com/1broseidon/dxdesk/internal/window"

func windowOptsNone() window.Options { return window.Options{} }

func windowOptsSize(w, h float64) window.Options {
	return window.Options{Width: &w, Height: &h}
}
