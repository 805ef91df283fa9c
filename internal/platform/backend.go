package platform

import "errors"

// ErrUnsupported is returned when no display backend exists for the host.
var ErrUnsupported = errors.New("display probing is not supported on this platform")

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Insets are the bands along each screen edge reserved by system panels.
type Insets struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Display describes a physical display and the panel space it reserves.
type Display struct {
	ID       int
	Name     string
	Bounds   Rect
	Reserved Insets
}

// Backend abstracts display discovery across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	Close()
}
