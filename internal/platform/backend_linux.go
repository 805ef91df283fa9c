//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/dxdesk/internal/x11"
)

// LinuxBackend reads display geometry from X11.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// Open connects to the X server.
func Open() (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Close disconnects from the X server.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	screens, err := b.conn.Screens()
	if err != nil {
		return nil, err
	}
	out := make([]Display, 0, len(screens))
	for _, s := range screens {
		out = append(out, fromScreen(s))
	}
	return out, nil
}

// ActiveDisplay returns the display holding the focused window.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	s, err := b.conn.ActiveScreen()
	if err != nil {
		return Display{}, err
	}
	return fromScreen(s), nil
}

func fromScreen(s x11.Screen) Display {
	return Display{
		ID:   s.ID,
		Name: s.Name,
		Bounds: Rect{
			X:      s.X,
			Y:      s.Y,
			Width:  s.Width,
			Height: s.Height,
		},
		Reserved: Insets{
			Top:    s.Reserved.Top,
			Bottom: s.Reserved.Bottom,
			Left:   s.Reserved.Left,
			Right:  s.Reserved.Right,
		},
	}
}
