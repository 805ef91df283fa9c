package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/dxdesk/internal/persist"
)

// Gradient is a selectable desktop background.
type Gradient struct {
	ID  string `json:"id"`
	CSS string `json:"gradient"`
}

// DefaultBackground is used when nothing valid is stored.
const DefaultBackground = "gradient-1"

var gradients = []Gradient{
	{ID: "gradient-1", CSS: "linear-gradient(155deg, #151515 0%, #2b2a2a 50%, #3d0b50 100%)"},
	{ID: "gradient-2", CSS: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"},
	{ID: "gradient-3", CSS: "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)"},
	{ID: "gradient-4", CSS: "linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)"},
	{ID: "gradient-5", CSS: "linear-gradient(135deg, #43e97b 0%, #38f9d7 100%)"},
	{ID: "gradient-6", CSS: "linear-gradient(135deg, #fa709a 0%, #fee140 100%)"},
}

// Gradients lists the available backgrounds in display order.
func Gradients() []Gradient {
	return append([]Gradient(nil), gradients...)
}

// LookupGradient finds a background by id.
func LookupGradient(id string) (Gradient, bool) {
	for _, g := range gradients {
		if g.ID == id {
			return g, true
		}
	}
	return Gradient{}, false
}

// ValidateBackground rejects unknown background ids.
func ValidateBackground(id string) error {
	if _, ok := LookupGradient(id); !ok {
		return fmt.Errorf("unknown background %q", id)
	}
	return nil
}

// Background is the persisted background selection.
type Background struct {
	mu     sync.Mutex
	id     string
	writer *persist.Writer
}

// OpenBackground loads the stored background, defaulting to gradient-1.
func OpenBackground(ctx context.Context, store persist.Store, logger *slog.Logger, opts ...persist.WriterOption) *Background {
	b := &Background{
		id:     DefaultBackground,
		writer: persist.NewWriter(store, persist.KeyBackground, append([]persist.WriterOption{persist.WithWriterLogger(logger)}, opts...)...),
	}
	var stored string
	if raw, ok := persist.LoadJSON(ctx, store, persist.KeyBackground, &stored, logger); ok {
		b.id = stored
		b.writer.Prime(raw)
	}
	return b
}

// ID returns the selected background id.
func (b *Background) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// Set selects a background.
func (b *Background) Set(id string) error {
	if err := ValidateBackground(id); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.id = id
	b.writer.Submit(id)
	return nil
}

// Gradient returns the selected gradient, or the first one when the
// stored id is unknown.
func (b *Background) Gradient() Gradient {
	if g, ok := LookupGradient(b.ID()); ok {
		return g
	}
	return gradients[0]
}

// Flush writes any pending change.
func (b *Background) Flush() {
	b.writer.Flush()
}
