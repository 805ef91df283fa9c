package dock

import (
	"testing"

	"github.com/1broseidon/dxdesk/internal/layout"
)

func testLayout() Layout {
	l := DefaultLayout()
	l.Container = &layout.Rect{X: 100, Y: 900, Width: 1000, Height: 80}
	return l
}

func TestResolve_CentersSlots(t *testing.T) {
	fallback := layout.Point{X: 600, Y: 700}
	minimized := []string{"a", "b", "c"}

	// total = 3*68-8 = 196, start = 100 + (1000-196)/2 = 502
	tests := []struct {
		id   string
		want layout.Point
	}{
		{id: "a", want: layout.Point{X: 502, Y: 920}},
		{id: "b", want: layout.Point{X: 570, Y: 920}},
		{id: "c", want: layout.Point{X: 638, Y: 920}},
		{id: "missing", want: fallback},
	}
	for _, tt := range tests {
		if got := Resolve(tt.id, minimized, testLayout(), fallback); got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.id, tt.want, got)
		}
	}
}

func TestResolve_SlotsShiftAsDockChanges(t *testing.T) {
	fallback := layout.Point{X: 600, Y: 700}
	before := Resolve("b", []string{"a", "b"}, testLayout(), fallback)
	after := Resolve("b", []string{"b"}, testLayout(), fallback)
	if before == after {
		t.Fatalf("expected slot to move once a sibling leaves the dock")
	}
	if after.X != 570 {
		t.Fatalf("expected single icon centred at 570, got %v", after.X)
	}
}

func TestResolve_FallbackWithoutContainer(t *testing.T) {
	fallback := layout.Point{X: 1, Y: 2}
	if got := Resolve("a", []string{"a"}, DefaultLayout(), fallback); got != fallback {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestAutoHide(t *testing.T) {
	dockRect := &layout.Rect{X: 500, Y: 1000, Width: 400, Height: 70}

	a := NewAutoHide(false, DefaultHotZone)
	if !a.Visible() {
		t.Fatalf("expected dock visible when auto-hide is off")
	}
	if !a.HandlePointer(0, 0, dockRect) {
		t.Fatalf("pointer should not hide the dock when auto-hide is off")
	}

	a.SetEnabled(true)
	if a.Visible() {
		t.Fatalf("expected enabling auto-hide to hide the dock")
	}
	if !a.HandlePointer(490, 985, dockRect) {
		t.Fatalf("expected hot zone to reveal the dock")
	}
	if !a.HandlePointer(600, 1020, dockRect) {
		t.Fatalf("expected dock to stay visible inside the dock")
	}
	if a.HandlePointer(600, 500, dockRect) {
		t.Fatalf("expected leaving the hot zone to hide the dock")
	}

	a.SetEnabled(false)
	if !a.Visible() {
		t.Fatalf("expected disabling auto-hide to show the dock")
	}
}
