package vibe

import (
	"log/slog"
	"sync"
)

// Selector holds the active vibe for the session.
type Selector struct {
	mu     sync.Mutex
	key    string
	logger *slog.Logger
}

// NewSelector starts on the default vibe.
func NewSelector(logger *slog.Logger) *Selector {
	return &Selector{key: DefaultKey, logger: logger}
}

// Set switches to key. Unknown keys are rejected and leave the selection
// unchanged.
func (s *Selector) Set(key string) bool {
	if _, ok := Lookup(key); !ok {
		s.logger.Debug("invalid vibe key", "vibe", key)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != key {
		s.logger.Debug("vibe changed", "vibe", key)
	}
	s.key = key
	return true
}

// CurrentKey returns the selected key.
func (s *Selector) CurrentKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Current returns the selected vibe.
func (s *Selector) Current() Vibe {
	v, ok := Lookup(s.CurrentKey())
	if !ok {
		v, _ = Lookup(DefaultKey)
	}
	return v
}

// Playlist returns the selected vibe's video rotation.
func (s *Selector) Playlist() []Video { return s.Current().Playlist }

// PlaylistURL returns the selected vibe's audio playlist.
func (s *Selector) PlaylistURL() string { return s.Current().PlaylistURL }

// Name returns the selected vibe's display name.
func (s *Selector) Name() string { return s.Current().Name }
