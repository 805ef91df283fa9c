package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a pending value is written.
const DefaultDelay = 100 * time.Millisecond

const saveTimeout = 5 * time.Second

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// Writer coalesces bursts of state changes into a single write.
//
// Each Submit replaces the pending value and restarts the quiet period.
// When the period elapses the value is encoded and saved only if the
// encoding differs from the last successful save. Failures are logged and
// dropped; the next change tries again.
type Writer struct {
	mu        sync.Mutex
	saveMu    sync.Mutex
	store     Store
	key       string
	delay     time.Duration
	logger    *slog.Logger
	scheduler Scheduler

	timer      *time.Timer
	gen        uint64
	pending    any
	hasPending bool
	last       []byte
	writes     int
}

// WriterOption customises a Writer.
type WriterOption func(*Writer)

// WithDelay sets the debounce period.
func WithDelay(d time.Duration) WriterOption { return func(w *Writer) { w.delay = d } }

// WithWriterLogger sets the logger for write failures.
func WithWriterLogger(l *slog.Logger) WriterOption { return func(w *Writer) { w.logger = l } }

// WithWriterScheduler replaces time.AfterFunc for the quiet-period timer.
func WithWriterScheduler(s Scheduler) WriterOption { return func(w *Writer) { w.scheduler = s } }

// NewWriter creates a debounced writer for key.
func NewWriter(store Store, key string, opts ...WriterOption) *Writer {
	w := &Writer{
		store:  store,
		key:    key,
		delay:  DefaultDelay,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Prime records data as already written, so an identical first Submit
// is skipped.
func (w *Writer) Prime(data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = append([]byte(nil), data...)
}

// SetDelay changes the debounce period for future submits.
func (w *Writer) SetDelay(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delay = d
}

// Submit queues v and restarts the quiet period. It never blocks on I/O.
func (w *Writer) Submit(v any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = v
	w.hasPending = true
	w.gen++
	gen := w.gen

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	fire := func() { w.fire(gen) }
	if w.scheduler != nil {
		w.scheduler.Schedule(w.delay, fire)
		return
	}
	w.timer = time.AfterFunc(w.delay, fire)
}

// Flush writes any pending value now.
func (w *Writer) Flush() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gen++
	v, ok := w.takeLocked()
	w.mu.Unlock()

	if ok {
		w.save(v)
	}
}

// Writes returns the number of successful saves.
func (w *Writer) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

func (w *Writer) fire(gen uint64) {
	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	v, ok := w.takeLocked()
	w.mu.Unlock()

	if ok {
		w.save(v)
	}
}

func (w *Writer) takeLocked() (any, bool) {
	if !w.hasPending {
		return nil, false
	}
	v := w.pending
	w.pending = nil
	w.hasPending = false
	return v, true
}

// save runs without w.mu held so Submit never waits on I/O. saveMu keeps
// saves in submission order.
func (w *Writer) save(v any) {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		w.logger.Error("failed to encode state", "key", w.key, "error", err)
		return
	}

	w.mu.Lock()
	unchanged := w.last != nil && bytes.Equal(data, w.last)
	w.mu.Unlock()
	if unchanged {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := w.store.Save(ctx, w.key, data); err != nil {
		w.logger.Warn("failed to save state", "key", w.key, "error", err)
		return
	}

	w.mu.Lock()
	w.last = data
	w.writes++
	w.mu.Unlock()
}
