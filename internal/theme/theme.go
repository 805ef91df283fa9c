package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/dxdesk/internal/persist"
)

// Mode is a theme selection. Auto follows the system preference.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	Auto  Mode = "auto"
)

// DefaultMode is used when nothing is stored.
const DefaultMode = Auto

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark, Auto:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (valid: light, dark, auto)", s)
	}
}

// Resolve turns auto into light or dark.
func Resolve(m Mode, prefersDark bool) Mode {
	if m != Auto {
		return m
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Palette is the set of CSS custom properties for a resolved theme.
type Palette map[string]string

var palettes = map[Mode]Palette{
	Dark: {
		"--text-primary":   "#ffffff",
		"--text-secondary": "rgba(255, 255, 255, 0.8)",
		"--border-color":   "rgba(255, 255, 255, 0.2)",
		"--glass-bg":       "rgba(255, 255, 255, 0.1)",
		"--glass-border":   "rgba(255, 255, 255, 0.2)",
	},
	Light: {
		"--text-primary":   "#1d1d1f",
		"--text-secondary": "rgba(29, 29, 31, 0.8)",
		"--border-color":   "rgba(0, 0, 0, 0.1)",
		"--glass-bg":       "rgba(255, 255, 255, 0.8)",
		"--glass-border":   "rgba(0, 0, 0, 0.1)",
	},
}

// PaletteFor returns a copy of the palette for a resolved mode. Anything
// other than dark gets the light palette.
func PaletteFor(m Mode) Palette {
	src := palettes[Light]
	if m == Dark {
		src = palettes[Dark]
	}
	out := make(Palette, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// ClassName is the document class for a resolved mode.
func ClassName(m Mode) string {
	return "theme-" + string(m)
}

// Theme is the persisted theme selection.
type Theme struct {
	mu          sync.Mutex
	mode        Mode
	prefersDark bool
	writer      *persist.Writer
}

// Open loads the stored theme, defaulting to auto.
func Open(ctx context.Context, store persist.Store, logger *slog.Logger, opts ...persist.WriterOption) *Theme {
	t := &Theme{
		mode:   DefaultMode,
		writer: persist.NewWriter(store, persist.KeyTheme, append([]persist.WriterOption{persist.WithWriterLogger(logger)}, opts...)...),
	}
	var stored string
	if raw, ok := persist.LoadJSON(ctx, store, persist.KeyTheme, &stored, logger); ok {
		if m, err := ParseMode(stored); err == nil {
			t.mode = m
			t.writer.Prime(raw)
		} else {
			logger.Warn("ignoring stored theme", "error", err)
		}
	}
	return t
}

// Mode returns the selected mode.
func (t *Theme) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Set selects a mode.
func (t *Theme) Set(name string) error {
	m, err := ParseMode(name)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = m
	t.writer.Submit(string(m))
	return nil
}

// SetSystemPreference records the host's dark-mode preference.
func (t *Theme) SetSystemPreference(dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prefersDark = dark
}

// Current returns the resolved mode.
func (t *Theme) Current() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Resolve(t.mode, t.prefersDark)
}

// Palette returns the CSS properties for the resolved mode.
func (t *Theme) Palette() Palette {
	return PaletteFor(t.Current())
}

// Flush writes any pending change.
func (t *Theme) Flush() {
	t.writer.Flush()
}
