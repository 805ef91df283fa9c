package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long the watcher waits for a burst of editor
// writes to finish before reloading.
const DefaultSettle = 250 * time.Millisecond

// ConfigWatcher calls a function whenever the config file changes.
// It watches the parent directory so editors that replace the file by
// rename are still seen.
type ConfigWatcher struct {
	path     string
	settle   time.Duration
	onChange func()
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// NewConfigWatcher starts watching the directory holding path.
func NewConfigWatcher(path string, settle time.Duration, onChange func(), logger *slog.Logger) (*ConfigWatcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &ConfigWatcher{
		path:     abs,
		settle:   settle,
		onChange: onChange,
		logger:   logger,
		watcher:  w,
	}, nil
}

// Run delivers change notifications until ctx is cancelled.
func (c *ConfigWatcher) Run(ctx context.Context) {
	defer c.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != c.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			c.logger.Debug("config file event", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(c.settle)
			} else {
				timer.Reset(c.settle)
			}
			fire = timer.C
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("config watcher error", "error", err)
		case <-fire:
			fire = nil
			c.onChange()
		}
	}
}
