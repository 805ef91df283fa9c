package layout

// Chrome describes the desktop furniture that bounds window placement.
// TopBar and Dock are nil until the UI has rendered them.
type Chrome struct {
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
	TopBar         *Rect   `json:"topBar,omitempty"`
	Dock           *Rect   `json:"dock,omitempty"`
}

// ChromeProvider supplies the live chrome geometry.
type ChromeProvider interface {
	Chrome() Chrome
}

// Envelope is the range a window's top-left corner may occupy.
type Envelope struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Envelope computes the allowed top-left range for a window of the given size.
func (c Chrome) Envelope(size Size) Envelope {
	env := Envelope{
		MinX: 0,
		MaxX: c.ViewportWidth - size.Width,
		MinY: 0,
		MaxY: c.ViewportHeight - size.Height,
	}
	if c.TopBar != nil {
		env.MinY = c.TopBar.Bottom()
	}
	if c.Dock != nil {
		env.MaxY = c.Dock.Y - size.Height
	}
	return env
}

// MaxSize returns the largest window the viewport can hold between the
// top bar and the dock.
func (c Chrome) MaxSize(p Policy) Size {
	maxHeight := c.ViewportHeight - p.VerticalMargin
	if c.TopBar != nil {
		maxHeight = c.ViewportHeight - c.TopBar.Bottom() - p.VerticalMargin
	}
	if c.Dock != nil {
		if dockLimit := c.Dock.Y - p.VerticalMargin; dockLimit < maxHeight {
			maxHeight = dockLimit
		}
	}
	return Size{Width: c.ViewportWidth, Height: maxHeight}
}
