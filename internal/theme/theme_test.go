package theme

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/dxdesk/internal/persist"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		mode        Mode
		prefersDark bool
		want        Mode
	}{
		{Auto, true, Dark},
		{Auto, false, Light},
		{Light, true, Light},
		{Dark, false, Dark},
	}
	for _, tt := range tests {
		if got := Resolve(tt.mode, tt.prefersDark); got != tt.want {
			t.Fatalf("Resolve(%s, %v) = %s, want %s", tt.mode, tt.prefersDark, got, tt.want)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	if got := PaletteFor(Dark)["--text-primary"]; got != "#ffffff" {
		t.Fatalf("unexpected dark text color %q", got)
	}
	light := PaletteFor(Light)
	if light["--glass-bg"] != "rgba(255, 255, 255, 0.8)" {
		t.Fatalf("unexpected light glass %q", light["--glass-bg"])
	}
	light["--glass-bg"] = "changed"
	if PaletteFor(Light)["--glass-bg"] == "changed" {
		t.Fatalf("palette copy aliases the table")
	}
	if ClassName(Dark) != "theme-dark" {
		t.Fatalf("unexpected class name")
	}
}

func TestTheme_SetAndReload(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()

	th := Open(ctx, store, discardLogger())
	if th.Mode() != Auto {
		t.Fatalf("expected auto by default, got %s", th.Mode())
	}
	th.SetSystemPreference(true)
	if th.Current() != Dark {
		t.Fatalf("expected auto to follow system dark preference")
	}

	if err := th.Set("sepia"); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if err := th.Set("light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	th.Flush()

	reopened := Open(ctx, store, discardLogger())
	if reopened.Mode() != Light {
		t.Fatalf("expected persisted light theme, got %s", reopened.Mode())
	}
}

func TestTheme_IgnoresBadStoredValue(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()
	_ = store.Save(ctx, persist.KeyTheme, []byte(`"neon"`))

	if got := Open(ctx, store, discardLogger()).Mode(); got != Auto {
		t.Fatalf("expected auto, got %s", got)
	}
}

func TestBackground(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()

	b := OpenBackground(ctx, store, discardLogger())
	if b.ID() != DefaultBackground {
		t.Fatalf("expected default background, got %s", b.ID())
	}
	if len(Gradients()) != 6 {
		t.Fatalf("expected 6 gradients, got %d", len(Gradients()))
	}
	if err := b.Set("gradient-9"); err == nil {
		t.Fatalf("expected unknown background error")
	}
	if err := b.Set("gradient-4"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if b.Gradient().CSS != "linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)" {
		t.Fatalf("unexpected gradient %q", b.Gradient().CSS)
	}
	b.Flush()

	if got := OpenBackground(ctx, store, discardLogger()).ID(); got != "gradient-4" {
		t.Fatalf("expected persisted background, got %s", got)
	}
}

func TestBackground_UnknownStoredFallsBackToFirstGradient(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()
	_ = store.Save(ctx, persist.KeyBackground, []byte(`"retired"`))

	b := OpenBackground(ctx, store, discardLogger())
	if b.Gradient().ID != "gradient-1" {
		t.Fatalf("expected first gradient, got %s", b.Gradient().ID)
	}
}
