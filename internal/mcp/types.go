package mcp

import "github.com/1broseidon/dxdesk/internal/window"

// WindowInfo is the MCP view of a window.
type WindowInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Route       string  `json:"route"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ZIndex      int     `json:"z_index"`
	Minimized   bool    `json:"minimized"`
	Maximized   bool    `json:"maximized"`
	Animating   bool    `json:"animating"`
	AnimatingTo string  `json:"animating_to,omitempty"`
}

func windowInfo(w window.Window) WindowInfo {
	info := WindowInfo{
		ID:        w.ID,
		Title:     w.Title,
		Route:     w.Route,
		X:         w.X,
		Y:         w.Y,
		Width:     w.Width,
		Height:    w.Height,
		ZIndex:    w.ZIndex,
		Minimized: w.IsMinimized,
		Maximized: w.IsMaximized,
		Animating: w.IsAnimating(),
	}
	if w.Animation != nil {
		info.AnimatingTo = string(w.Animation.Direction)
	}
	return info
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	IncludeMinimized *bool `json:"include_minimized,omitempty" jsonschema:"Include windows minimized to the dock (default: true)"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	Route  string   `json:"route" jsonschema:"required,App route to open (e.g. /notes). Reopening a route focuses the existing window."`
	Title  string   `json:"title,omitempty" jsonschema:"Window title (default: the route)"`
	X      *float64 `json:"x,omitempty" jsonschema:"Left edge in viewport pixels. Used only together with y."`
	Y      *float64 `json:"y,omitempty" jsonschema:"Top edge in viewport pixels. Used only together with x."`
	Width  *float64 `json:"width,omitempty" jsonschema:"Width in pixels. Used only together with height; clamped to the viewport."`
	Height *float64 `json:"height,omitempty" jsonschema:"Height in pixels. Used only together with width; clamped to the viewport."`
}

// WindowRefInput names a window for the single-window tools.
type WindowRefInput struct {
	Window string `json:"window" jsonschema:"required,Window id or route"`
}

// MinimizeWindowInput is the input for the minimize_window tool.
type MinimizeWindowInput struct {
	Window  string `json:"window" jsonschema:"required,Window id or route"`
	Animate *bool  `json:"animate,omitempty" jsonschema:"Play the genie animation towards the dock (default: true)"`
}

// WindowOutput reports a window after an operation.
type WindowOutput struct {
	Window *WindowInfo `json:"window,omitempty"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	Closed bool `json:"closed"`
}

// SetThemeInput is the input for the set_theme tool.
type SetThemeInput struct {
	Mode string `json:"mode" jsonschema:"required,Theme mode: light, dark or auto"`
}

// SetThemeOutput is the output for the set_theme tool.
type SetThemeOutput struct {
	Mode     string `json:"mode"`
	Resolved string `json:"resolved"`
}

// SetVibeInput is the input for the set_vibe tool.
type SetVibeInput struct {
	Vibe string `json:"vibe" jsonschema:"required,Vibe key (citypop, synthwave or lofi)"`
}

// SetVibeOutput is the output for the set_vibe tool.
type SetVibeOutput struct {
	Vibe        string `json:"vibe"`
	Name        string `json:"name"`
	PlaylistURL string `json:"playlist_url"`
	Videos      int    `json:"videos"`
}
