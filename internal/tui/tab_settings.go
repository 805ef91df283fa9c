package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/theme"
)

// settingChange is one key the form changed.
type settingChange struct {
	Key   string
	Value string
}

// settingChanges diffs two settings in settings.Keys order.
func settingChanges(old, next settings.Settings) []settingChange {
	var out []settingChange
	add := func(key, a, b string) {
		if a != b {
			out = append(out, settingChange{Key: key, Value: b})
		}
	}
	add("theme", old.Theme, next.Theme)
	add("background", old.Background, next.Background)
	add("dockPosition", old.DockPosition, next.DockPosition)
	add("showClock", strconv.FormatBool(old.ShowClock), strconv.FormatBool(next.ShowClock))
	add("dockMagnification", strconv.FormatBool(old.DockMagnification), strconv.FormatBool(next.DockMagnification))
	add("notifications", strconv.FormatBool(old.Notifications), strconv.FormatBool(next.Notifications))
	add("soundEffects", strconv.FormatBool(old.SoundEffects), strconv.FormatBool(next.SoundEffects))
	add("autoHideDock", strconv.FormatBool(old.AutoHideDock), strconv.FormatBool(next.AutoHideDock))
	return out
}

// SettingsTab shows the desktop preferences and edits them with a form.
type SettingsTab struct {
	desk    Desk
	current settings.Settings
	loaded  bool

	width  int
	height int

	editing bool
	form    *huh.Form
	// draft is heap-allocated so the form's bound pointers outlive the
	// value copies bubbletea makes of this struct.
	draft *settings.Settings
}

func NewSettingsTab(desk Desk) SettingsTab {
	return SettingsTab{desk: desk, current: settings.Defaults()}
}

// SetSettings records the daemon's settings. Ignored while a form is open.
func (st *SettingsTab) SetSettings(s settings.Settings) {
	if st.editing {
		return
	}
	st.current = s
	st.loaded = true
}

// Help returns the keybinding hint for the current mode.
func (st SettingsTab) Help() string {
	if st.editing {
		return "esc: cancel"
	}
	return "e: edit  R: reset to defaults"
}

// Update implements tea.Model.
func (st SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if st.editing {
		return st.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			st.startEditing()
			return st, st.form.Init()
		case "R":
			if st.desk == nil {
				return st, nil
			}
			return st, runAction("settings reset", func() error {
				_, err := st.desk.ResetSettings()
				return err
			})
		}
	case tea.WindowSizeMsg:
		st.width = msg.Width
		st.height = msg.Height
	}
	return st, nil
}

func (st SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			st.stopEditing()
			return st, nil
		}
	case tea.WindowSizeMsg:
		st.width = msg.Width
		st.height = msg.Height
	}

	form, cmd := st.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		st.form = f
	}

	switch st.form.State {
	case huh.StateCompleted:
		changes := settingChanges(st.current, *st.draft)
		st.stopEditing()
		return st, st.apply(changes)
	case huh.StateAborted:
		st.stopEditing()
		return st, nil
	}
	return st, cmd
}

func (st *SettingsTab) stopEditing() {
	st.editing = false
	st.form = nil
	st.draft = nil
}

// apply sends each changed key to the daemon, stopping at the first error.
func (st SettingsTab) apply(changes []settingChange) tea.Cmd {
	if len(changes) == 0 {
		return func() tea.Msg { return actionMsg{text: "no changes"} }
	}
	if st.desk == nil {
		return nil
	}
	keys := make([]string, len(changes))
	for i, c := range changes {
		keys[i] = c.Key
	}
	desk := st.desk
	return runAction("saved: "+strings.Join(keys, ", "), func() error {
		for _, c := range changes {
			if _, err := desk.SetSetting(c.Key, c.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (st *SettingsTab) startEditing() {
	draft := st.current
	st.draft = &draft

	themeOpts := []huh.Option[string]{
		huh.NewOption("Auto (follow system)", string(theme.Auto)),
		huh.NewOption("Light", string(theme.Light)),
		huh.NewOption("Dark", string(theme.Dark)),
	}
	var bgOpts []huh.Option[string]
	for _, g := range theme.Gradients() {
		bgOpts = append(bgOpts, huh.NewOption(g.ID, g.ID))
	}
	dockOpts := []huh.Option[string]{
		huh.NewOption("Bottom", settings.DockBottom),
		huh.NewOption("Left", settings.DockLeft),
		huh.NewOption("Right", settings.DockRight),
	}

	w := st.width - 4
	if w < 40 {
		w = 40
	}

	st.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("theme").
				Title("Theme").
				Options(themeOpts...).
				Value(&st.draft.Theme),
			huh.NewSelect[string]().
				Key("background").
				Title("Background").
				Description("Desktop gradient").
				Options(bgOpts...).
				Value(&st.draft.Background),
			huh.NewSelect[string]().
				Key("dockPosition").
				Title("Dock Position").
				Options(dockOpts...).
				Value(&st.draft.DockPosition),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("autoHideDock").
				Title("Auto-hide Dock").
				Value(&st.draft.AutoHideDock),
			huh.NewConfirm().
				Key("dockMagnification").
				Title("Dock Magnification").
				Value(&st.draft.DockMagnification),
			huh.NewConfirm().
				Key("showClock").
				Title("Show Clock").
				Value(&st.draft.ShowClock),
			huh.NewConfirm().
				Key("notifications").
				Title("Notifications").
				Value(&st.draft.Notifications),
			huh.NewConfirm().
				Key("soundEffects").
				Title("Sound Effects").
				Value(&st.draft.SoundEffects),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	st.editing = true
}

// View implements tea.Model.
func (st SettingsTab) View() string {
	style := lipgloss.NewStyle().
		Width(st.width).
		Height(st.height).
		Padding(1, 2)

	if st.editing && st.form != nil {
		header := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Render("Editing Settings") +
			dimStyle.Render("  (esc to cancel)")
		return style.Render(header + "\n\n" + st.form.View())
	}

	if !st.loaded {
		return lipgloss.NewStyle().
			Width(st.width).
			Height(st.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Settings unavailable (daemon not running)")
	}
	return style.Render(settingsLines(st.current))
}

func settingsLines(s settings.Settings) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(22).
		Align(lipgloss.Right).
		PaddingRight(2)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	lines := []string{
		row("Theme", s.Theme),
		row("Background", s.Background),
		"",
		row("Dock Position", s.DockPosition),
		row("Auto-hide Dock", onOff(s.AutoHideDock)),
		row("Dock Magnification", onOff(s.DockMagnification)),
		"",
		row("Show Clock", onOff(s.ShowClock)),
		row("Notifications", onOff(s.Notifications)),
		row("Sound Effects", onOff(s.SoundEffects)),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}
	return strings.Join(lines, "\n")
}
