package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dxdesk/internal/ipc"
)

const vibesHelp = "enter: select vibe"

type vibeItem struct {
	key     string
	label   string
	current bool
}

func (i vibeItem) Title() string {
	if i.current {
		return "* " + i.label
	}
	return "  " + i.label
}

func (i vibeItem) Description() string { return i.key }
func (i vibeItem) FilterValue() string { return i.label }

// VibesTab picks the ambient vibe and shows its playlist.
type VibesTab struct {
	list  list.Model
	desk  Desk
	vibes *ipc.VibesData

	width  int
	height int
}

func NewVibesTab(desk Desk) VibesTab {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Vibes"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return VibesTab{list: l, desk: desk}
}

// SetVibes replaces the catalog view.
func (vt *VibesTab) SetVibes(v *ipc.VibesData) {
	if v == nil {
		return
	}
	vt.vibes = v
	cursor := vt.list.Index()
	items := make([]list.Item, len(v.Options))
	for i, o := range v.Options {
		items[i] = vibeItem{key: o.Value, label: o.Label, current: o.Value == v.Current}
	}
	vt.list.SetItems(items)
	if cursor < len(items) {
		vt.list.Select(cursor)
	}
}

// Update implements tea.Model.
func (vt VibesTab) Update(msg tea.Msg) (VibesTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		vt.width = msg.Width
		vt.height = msg.Height
		vt.list.SetSize(vt.width/2, vt.height)
		return vt, nil
	case tea.KeyMsg:
		if msg.String() == "enter" {
			item, ok := vt.list.SelectedItem().(vibeItem)
			if !ok || vt.desk == nil {
				return vt, nil
			}
			desk := vt.desk
			return vt, runAction("vibe: "+item.label, func() error {
				_, err := desk.SetVibe(item.key)
				return err
			})
		}
	}

	var cmd tea.Cmd
	vt.list, cmd = vt.list.Update(msg)
	return vt, cmd
}

// View implements tea.Model.
func (vt VibesTab) View() string {
	if vt.vibes == nil {
		return lipgloss.NewStyle().
			Width(vt.width).
			Height(vt.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No vibes loaded")
	}
	left := lipgloss.NewStyle().Width(vt.width / 2).Height(vt.height).Render(vt.list.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, playlistView(vt.vibes))
}

func playlistView(v *ipc.VibesData) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render(v.Name)
	lines := []string{title, dimStyle.Render(v.PlaylistURL), ""}
	for i, video := range v.Playlist {
		line := fmt.Sprintf("%2d. %s  from %ds", i+1, video.ID, video.StartTime)
		if video.PlayDuration > 0 {
			line += fmt.Sprintf(" for %ds", video.PlayDuration)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
