package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/window"
)

// Desk is the slice of the daemon API the TUI drives. *ipc.Client
// implements it.
type Desk interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() ([]window.Window, error)
	FocusWindow(ref string) (*window.Window, error)
	MinimizeWindow(ref string, animate bool, target *layout.Point) (*window.Window, error)
	RestoreWindow(ref string) (*window.Window, error)
	MaximizeWindow(ref string) (*window.Window, error)
	CloseWindow(ref string) error
	GetSettings() (settings.Settings, error)
	SetSetting(key, value string) (settings.Settings, error)
	ResetSettings() (settings.Settings, error)
	ListVibes() (*ipc.VibesData, error)
	SetVibe(key string) (*ipc.VibesData, error)
}

// Run starts the TUI against the given daemon client.
func Run(desk Desk) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(desk), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
