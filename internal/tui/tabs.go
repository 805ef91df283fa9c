package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dxdesk/internal/ipc"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabWindows Tab = iota
	TabSettings
	TabVibes
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabWindows:
		return "Windows"
	case TabSettings:
		return "Settings"
	case TabVibes:
		return "Vibes"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d:%s", int(i)+1, i)
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// statusLine summarises the daemon state for the status bar.
func statusLine(connected bool, st *ipc.StatusData) string {
	if !connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		return dot + " daemon not running"
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	parts := []string{dot + " daemon connected"}
	if st != nil {
		parts = append(parts,
			fmt.Sprintf("windows:%d", st.Windows),
			fmt.Sprintf("minimized:%d", st.Minimized),
			"theme:"+st.Resolved,
		)
		if st.Vibe != "" {
			parts = append(parts, "vibe:"+st.Vibe)
		}
		if st.Animating > 0 {
			parts = append(parts, fmt.Sprintf("animating:%d", st.Animating))
		}
	}
	return strings.Join(parts, "  ")
}

func renderStatusBar(connected bool, st *ipc.StatusData, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(statusLine(connected, st))
}

// renderHelpBar renders the bottom keybinding bar with an optional flash
// message on the left.
func renderHelpBar(flash, tabHelp string, width int) string {
	help := "tab: switch  1-3: jump  " + tabHelp + "  q: quit"
	left := ""
	if flash != "" {
		left = flashStyle.Render(flash)
	}
	right := dimStyle.Render(help)

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(left + strings.Repeat(" ", gap) + right)
}
