package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/window"
)

const windowsHelp = "enter/f: focus  m: minimize  r: restore  z: maximize  c: close"

// windowItem implements list.Item for the window list.
type windowItem struct {
	num int
	w   window.Window
}

func (i windowItem) Title() string {
	return fmt.Sprintf("%d %s %s", i.num, windowMarker(i.w), i.w.Title)
}

func (i windowItem) Description() string {
	return fmt.Sprintf("%s  %.0fx%.0f @ %.0f,%.0f", i.w.Route, i.w.Width, i.w.Height, i.w.X, i.w.Y)
}

func (i windowItem) FilterValue() string { return i.w.Title }

// windowMarker is a one-glyph state indicator.
func windowMarker(w window.Window) string {
	switch {
	case w.IsAnimating():
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("~")
	case w.IsMinimized:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("_")
	case w.IsMaximized:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("□")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	}
}

// sortWindows orders windows front to back, minimized ones last.
func sortWindows(ws []window.Window) []window.Window {
	out := append([]window.Window(nil), ws...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsMinimized != out[j].IsMinimized {
			return !out[i].IsMinimized
		}
		return out[i].ZIndex > out[j].ZIndex
	})
	return out
}

// WindowsTab lists open windows next to a scaled map of the desktop.
type WindowsTab struct {
	list     list.Model
	desk     Desk
	windows  []window.Window
	viewport layout.Size

	width  int
	height int
	ready  bool
}

func NewWindowsTab(desk Desk) WindowsTab {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return WindowsTab{list: l, desk: desk}
}

// SetWindows replaces the listed windows, keeping the cursor on the same
// window when it still exists.
func (wt *WindowsTab) SetWindows(ws []window.Window, viewport layout.Size) {
	selected := wt.selectedID()
	wt.windows = sortWindows(ws)
	wt.viewport = viewport

	items := make([]list.Item, len(wt.windows))
	cursor := 0
	for i, w := range wt.windows {
		items[i] = windowItem{num: i + 1, w: w}
		if w.ID == selected {
			cursor = i
		}
	}
	wt.list.SetItems(items)
	if len(items) > 0 {
		wt.list.Select(cursor)
	}
}

func (wt WindowsTab) selectedID() string {
	item, ok := wt.list.SelectedItem().(windowItem)
	if !ok {
		return ""
	}
	return item.w.ID
}

// Update implements tea.Model.
func (wt WindowsTab) Update(msg tea.Msg) (WindowsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		wt.width = msg.Width
		wt.height = msg.Height
		wt.list.SetSize(wt.sidebarWidth(), wt.height)
		wt.ready = true
		return wt, nil

	case tea.KeyMsg:
		if cmd := wt.actionFor(msg.String()); cmd != nil {
			return wt, cmd
		}
	}

	var cmd tea.Cmd
	wt.list, cmd = wt.list.Update(msg)
	return wt, cmd
}

// actionFor maps a key to an IPC call on the selected window.
func (wt WindowsTab) actionFor(key string) tea.Cmd {
	item, ok := wt.list.SelectedItem().(windowItem)
	if !ok || wt.desk == nil {
		return nil
	}
	id, title := item.w.ID, item.w.Title

	switch key {
	case "enter", "f":
		return runAction("focused: "+title, func() error {
			_, err := wt.desk.FocusWindow(id)
			return err
		})
	case "m":
		return runAction("minimized: "+title, func() error {
			_, err := wt.desk.MinimizeWindow(id, true, nil)
			return err
		})
	case "r":
		return runAction("restored: "+title, func() error {
			_, err := wt.desk.RestoreWindow(id)
			return err
		})
	case "z":
		return runAction("toggled maximize: "+title, func() error {
			_, err := wt.desk.MaximizeWindow(id)
			return err
		})
	case "c":
		return runAction("closed: "+title, func() error {
			return wt.desk.CloseWindow(id)
		})
	}
	return nil
}

func (wt WindowsTab) sidebarWidth() int {
	sw := wt.width * 40 / 100
	if sw < 24 {
		sw = 24
	}
	if sw > 48 {
		sw = 48
	}
	return sw
}

// View implements tea.Model.
func (wt WindowsTab) View() string {
	if !wt.ready || wt.width == 0 || wt.height == 0 {
		return ""
	}

	sidebarWidth := wt.sidebarWidth()
	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(wt.height).
		Render(wt.listView())

	mapWidth := wt.width - sidebarWidth - 3
	if mapWidth < 10 {
		mapWidth = 10
	}
	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Render(strings.Repeat("│\n", wt.height-1) + "│")

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " "+sep, wt.mapView(mapWidth))
}

func (wt WindowsTab) listView() string {
	if len(wt.windows) == 0 {
		return dimStyle.Render("  no open windows")
	}
	return wt.list.View()
}

func (wt WindowsTab) mapView(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Render(fmt.Sprintf(" desktop %.0fx%.0f", wt.viewport.Width, wt.viewport.Height))

	h := wt.height - 2
	if h < 3 {
		h = 3
	}
	lines := renderDesktopMap(wt.windows, wt.viewport, width-1, h)
	block := lipgloss.NewStyle().
		Foreground(lipgloss.Color("247")).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, title, block)
}
