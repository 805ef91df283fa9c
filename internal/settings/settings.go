package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/1broseidon/dxdesk/internal/persist"
)

// Dock placements.
const (
	DockBottom = "bottom"
	DockLeft   = "left"
	DockRight  = "right"
)

// Settings are the user-facing desktop preferences.
type Settings struct {
	Theme             string `json:"theme"`
	Background        string `json:"background"`
	DockPosition      string `json:"dockPosition"`
	ShowClock         bool   `json:"showClock"`
	DockMagnification bool   `json:"dockMagnification"`
	Notifications     bool   `json:"notifications"`
	SoundEffects      bool   `json:"soundEffects"`
	AutoHideDock      bool   `json:"autoHideDock"`
}

// Defaults returns the factory settings.
func Defaults() Settings {
	return Settings{
		Theme:             "dark",
		Background:        "gradient-1",
		DockPosition:      DockBottom,
		ShowClock:         true,
		DockMagnification: true,
		Notifications:     true,
		SoundEffects:      false,
		AutoHideDock:      false,
	}
}

// Validator checks a value for a string-valued key. Theme and background
// validation live with their owners and are injected here.
type Validator func(string) error

// Store holds the settings and persists every change.
type Store struct {
	mu        sync.Mutex
	hookMu    sync.Mutex
	current   Settings
	writer    *persist.Writer
	logger    *slog.Logger
	hooks     []func(Settings)
	validates map[string]Validator
}

// Open loads settings from store, falling back to defaults when nothing
// valid is stored.
func Open(ctx context.Context, store persist.Store, logger *slog.Logger, opts ...persist.WriterOption) *Store {
	s := &Store{
		current: Defaults(),
		logger:  logger,
		writer:  persist.NewWriter(store, persist.KeySettings, append([]persist.WriterOption{persist.WithWriterLogger(logger)}, opts...)...),
		validates: map[string]Validator{
			"dockPosition": validateDockPosition,
		},
	}
	loaded := Defaults()
	if raw, ok := persist.LoadJSON(ctx, store, persist.KeySettings, &loaded, logger); ok {
		s.current = loaded
		s.writer.Prime(raw)
	}
	return s
}

// SetValidator installs validation for a string-valued key.
func (s *Store) SetValidator(key string, v Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validates[key] = v
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to a copy of the settings and commits the result.
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	next := s.current
	fn(&next)
	return s.commitLocked(next)
}

// Set parses value for key and stores it.
func (s *Store) Set(key, value string) (Settings, error) {
	s.mu.Lock()
	next := s.current
	if err := s.assignLocked(&next, key, strings.TrimSpace(value)); err != nil {
		s.mu.Unlock()
		return Settings{}, err
	}
	return s.commitLocked(next), nil
}

// Reset restores the factory settings.
func (s *Store) Reset() Settings {
	s.mu.Lock()
	return s.commitLocked(Defaults())
}

// Subscribe registers fn to run after every change. fn must not modify
// the store.
func (s *Store) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Flush writes any pending change.
func (s *Store) Flush() {
	s.writer.Flush()
}

// commitLocked stores and submits next, releases the lock, then runs hooks.
func (s *Store) commitLocked(next Settings) Settings {
	changed := next != s.current
	s.current = next
	if changed {
		s.writer.Submit(next)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return next
}

// notify runs the hooks with the latest settings. Deliveries are
// serialized, so the last hook call always carries the current value.
func (s *Store) notify() {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()

	s.mu.Lock()
	cur := s.current
	hooks := append(([]func(Settings))(nil), s.hooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(cur)
	}
}

// Keys lists the settable keys.
func Keys() []string {
	return []string{
		"theme", "background", "dockPosition", "showClock",
		"dockMagnification", "notifications", "soundEffects", "autoHideDock",
	}
}

func (s *Store) assignLocked(dst *Settings, key, value string) error {
	if v, ok := s.validates[key]; ok {
		if err := v(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	switch key {
	case "theme":
		dst.Theme = value
	case "background":
		dst.Background = value
	case "dockPosition":
		dst.DockPosition = value
	case "showClock", "dockMagnification", "notifications", "soundEffects", "autoHideDock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: expected true or false, got %q", key, value)
		}
		switch key {
		case "showClock":
			dst.ShowClock = b
		case "dockMagnification":
			dst.DockMagnification = b
		case "notifications":
			dst.Notifications = b
		case "soundEffects":
			dst.SoundEffects = b
		case "autoHideDock":
			dst.AutoHideDock = b
		}
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func validateDockPosition(v string) error {
	switch v {
	case DockBottom, DockLeft, DockRight:
		return nil
	default:
		return fmt.Errorf("must be one of bottom, left, right; got %q", v)
	}
}
