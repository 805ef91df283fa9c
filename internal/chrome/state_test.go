package chrome

import (
	"testing"

	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/platform"
)

func TestState_FallbackViewport(t *testing.T) {
	s := NewState(layout.Size{Width: 1920, Height: 1080}, dock.DefaultLayout())
	c := s.Chrome()
	if c.ViewportWidth != 1920 || c.ViewportHeight != 1080 {
		t.Fatalf("expected fallback viewport, got %vx%v", c.ViewportWidth, c.ViewportHeight)
	}
	if c.TopBar != nil || c.Dock != nil {
		t.Fatalf("expected no chrome before a report")
	}
	if s.Measured() {
		t.Fatalf("expected unmeasured state")
	}
	if s.DockLayout().Container != nil {
		t.Fatalf("expected no dock container before a report")
	}
}

func TestState_Apply(t *testing.T) {
	s := NewState(layout.Size{Width: 1920, Height: 1080}, dock.DefaultLayout())
	dockRect := &layout.Rect{X: 600, Y: 1000, Width: 720, Height: 80}
	s.Apply(Report{
		ViewportWidth:  1440,
		ViewportHeight: 900,
		TopBar:         &layout.Rect{Width: 1440, Height: 28},
		Dock:           dockRect,
	})

	c := s.Chrome()
	if c.ViewportWidth != 1440 || c.TopBar.Height != 28 || c.Dock.Y != 1000 {
		t.Fatalf("unexpected chrome %+v", c)
	}
	l := s.DockLayout()
	if l.Container == nil || *l.Container != *dockRect || l.ItemWidth != 60 {
		t.Fatalf("expected dock rect used as container, got %+v", l)
	}

	// Returned rects are copies.
	c.TopBar.Height = 500
	if s.Chrome().TopBar.Height != 28 {
		t.Fatalf("chrome snapshot aliases state")
	}

	s.SetDockMetrics(48, 4, 10)
	if l := s.DockLayout(); l.ItemWidth != 48 || l.Container == nil {
		t.Fatalf("expected metrics updated with container kept, got %+v", l)
	}
}

func TestReportFromDisplay(t *testing.T) {
	d := platform.Display{
		Bounds:   platform.Rect{Width: 1920, Height: 1080},
		Reserved: platform.Insets{Top: 32, Bottom: 64},
	}
	r := ReportFromDisplay(d)
	if r.TopBar == nil || r.TopBar.Bottom() != 32 {
		t.Fatalf("expected 32px top bar, got %+v", r.TopBar)
	}
	if r.Dock == nil || r.Dock.Y != 1016 || r.Dock.Height != 64 {
		t.Fatalf("expected bottom dock band, got %+v", r.Dock)
	}

	bare := ReportFromDisplay(platform.Display{Bounds: platform.Rect{Width: 800, Height: 600}})
	if bare.TopBar != nil || bare.Dock != nil {
		t.Fatalf("expected no chrome without reserved space")
	}
}

func TestState_SeedYieldsToUIReports(t *testing.T) {
	s := NewState(layout.Size{Width: 1920, Height: 1080}, dock.DefaultLayout())

	if !s.Seed(Report{ViewportWidth: 2560, ViewportHeight: 1440}) {
		t.Fatalf("expected seed to apply before any UI report")
	}
	if s.Reported() {
		t.Fatalf("seed must not count as a UI report")
	}
	if got := s.Chrome().ViewportWidth; got != 2560 {
		t.Fatalf("expected seeded width 2560, got %v", got)
	}

	s.Apply(Report{ViewportWidth: 1280, ViewportHeight: 720})
	if s.Seed(Report{ViewportWidth: 3840, ViewportHeight: 2160}) {
		t.Fatalf("expected seed to be ignored after a UI report")
	}
	if got := s.Chrome().ViewportWidth; got != 1280 {
		t.Fatalf("expected UI width 1280, got %v", got)
	}
}
