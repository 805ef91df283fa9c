package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/window"
)

const (
	refreshInterval = time.Second
	flashDuration   = 3 * time.Second
)

// snapshotMsg carries one poll of the daemon.
type snapshotMsg struct {
	status   *ipc.StatusData
	windows  []window.Window
	settings settings.Settings
	vibes    *ipc.VibesData
	err      error
}

// actionMsg is sent after an IPC action completes.
type actionMsg struct {
	text string
}

type clearFlashMsg struct{}

type refreshTickMsg struct{}

// fetchSnapshot polls the daemon. A failed status call means the daemon is
// unreachable and the rest is skipped.
func fetchSnapshot(desk Desk) tea.Cmd {
	return func() tea.Msg {
		st, err := desk.GetStatus()
		if err != nil {
			return snapshotMsg{err: err}
		}
		msg := snapshotMsg{status: st}
		if msg.windows, err = desk.ListWindows(); err != nil {
			msg.err = err
			return msg
		}
		if msg.settings, err = desk.GetSettings(); err != nil {
			msg.err = err
			return msg
		}
		msg.vibes, msg.err = desk.ListVibes()
		return msg
	}
}

// runAction wraps an IPC call into a command reporting its outcome.
func runAction(done string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionMsg{text: fmt.Sprintf("error: %v", err)}
		}
		return actionMsg{text: done}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

// model is the root bubbletea model for the TUI.
type model struct {
	desk Desk

	activeTab Tab

	windowsTab  WindowsTab
	settingsTab SettingsTab
	vibesTab    VibesTab

	connected bool
	status    *ipc.StatusData
	flash     string

	width  int
	height int
}

func newModel(desk Desk) model {
	return model{
		desk:        desk,
		activeTab:   TabWindows,
		windowsTab:  NewWindowsTab(desk),
		settingsTab: NewSettingsTab(desk),
		vibesTab:    NewVibesTab(desk),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(fetchSnapshot(m.desk), scheduleRefresh())
}

func (m model) capturing() bool {
	return m.activeTab == TabSettings && m.settingsTab.editing
}

func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) resize(msg tea.WindowSizeMsg) model {
	m.width = msg.Width
	m.height = msg.Height
	sub := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	m.windowsTab, _ = m.windowsTab.Update(sub)
	m.settingsTab, _ = m.settingsTab.Update(sub)
	m.vibesTab, _ = m.vibesTab.Update(sub)
	return m
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil

	case snapshotMsg:
		m.connected = msg.status != nil
		m.status = msg.status
		if msg.err == nil {
			m.windowsTab.SetWindows(msg.windows, msg.status.Viewport)
			m.settingsTab.SetSettings(msg.settings)
			m.vibesTab.SetVibes(msg.vibes)
		}
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(fetchSnapshot(m.desk), scheduleRefresh())

	case actionMsg:
		m.flash = msg.text
		return m, tea.Batch(
			fetchSnapshot(m.desk),
			tea.Tick(flashDuration, func(time.Time) tea.Msg { return clearFlashMsg{} }),
		)

	case clearFlashMsg:
		m.flash = ""
		return m, nil
	}

	// The settings form consumes keys while editing; only ctrl+c escapes.
	if m.capturing() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = nextTab(m.activeTab, 1)
			return m, nil
		case "shift+tab":
			m.activeTab = nextTab(m.activeTab, -1)
			return m, nil
		case "1":
			m.activeTab = TabWindows
			return m, nil
		case "2":
			m.activeTab = TabSettings
			return m, nil
		case "3":
			m.activeTab = TabVibes
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabWindows:
		m.windowsTab, cmd = m.windowsTab.Update(msg)
	case TabSettings:
		m.settingsTab, cmd = m.settingsTab.Update(msg)
	case TabVibes:
		m.vibesTab, cmd = m.vibesTab.Update(msg)
	}
	return m, cmd
}

func nextTab(t Tab, step int) Tab {
	return Tab((int(t) + step + int(tabCount)) % int(tabCount))
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, m.status, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)

	var content, help string
	switch m.activeTab {
	case TabWindows:
		content, help = m.windowsTab.View(), windowsHelp
	case TabSettings:
		content, help = m.settingsTab.View(), m.settingsTab.Help()
	case TabVibes:
		content, help = m.vibesTab.View(), vibesHelp
	}
	helpBar := renderHelpBar(m.flash, help, m.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
