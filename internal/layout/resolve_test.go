package layout

import "testing"

func desktopChrome() Chrome {
	return Chrome{
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		TopBar:         &Rect{X: 0, Y: 0, Width: 1920, Height: 40},
		Dock:           &Rect{X: 660, Y: 1000, Width: 600, Height: 70},
	}
}

func TestPlace_DefaultsOnDesktop(t *testing.T) {
	got := Place(desktopChrome(), nil, nil, 0, DefaultPolicy())
	want := Rect{X: 20, Y: 40, Width: 800, Height: 600}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMaxSize(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name   string
		chrome Chrome
		want   Size
	}{
		{
			name:   "no chrome",
			chrome: Chrome{ViewportWidth: 1280, ViewportHeight: 800},
			want:   Size{Width: 1280, Height: 760},
		},
		{
			name:   "top bar only",
			chrome: Chrome{ViewportWidth: 1280, ViewportHeight: 800, TopBar: &Rect{Height: 30}},
			want:   Size{Width: 1280, Height: 730},
		},
		{
			name:   "dock caps height",
			chrome: desktopChrome(),
			want:   Size{Width: 1920, Height: 960},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chrome.MaxSize(p); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestResolveSize_Tiers(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name   string
		width  float64
		height float64
		want   Size
	}{
		{name: "phone", width: 400, height: 700, want: Size{Width: 400, Height: 600}},
		{name: "phone short", width: 400, height: 500, want: Size{Width: 400, Height: 460}},
		{name: "tablet", width: 900, height: 1000, want: Size{Width: 700, Height: 500}},
		{name: "tablet narrow", width: 768, height: 1000, want: Size{Width: 700, Height: 500}},
		{name: "desktop", width: 1440, height: 900, want: Size{Width: 800, Height: 600}},
		{name: "desktop short", width: 1440, height: 500, want: Size{Width: 800, Height: 460}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Chrome{ViewportWidth: tt.width, ViewportHeight: tt.height}
			if got := ResolveSize(c, nil, p); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestResolveSize_ClampsRequested(t *testing.T) {
	p := DefaultPolicy()
	c := desktopChrome()

	got := ResolveSize(c, &Size{Width: 100, Height: 50}, p)
	if got.Width != 300 || got.Height != 200 {
		t.Fatalf("expected minimum 300x200, got %+v", got)
	}

	got = ResolveSize(c, &Size{Width: 5000, Height: 5000}, p)
	if got.Width != 1920 || got.Height != 960 {
		t.Fatalf("expected maximum 1920x960, got %+v", got)
	}
}

func TestClampSize_MaxWinsOnTinyViewport(t *testing.T) {
	c := Chrome{ViewportWidth: 250, ViewportHeight: 180}
	got := ClampSize(c, Size{Width: 400, Height: 400}, DefaultPolicy())
	if got.Width != 250 || got.Height != 140 {
		t.Fatalf("expected 250x140, got %+v", got)
	}
}

func TestResolvePosition_Cascade(t *testing.T) {
	p := DefaultPolicy()
	c := desktopChrome()
	size := Size{Width: 800, Height: 600}

	for i, want := range []Point{{X: 20, Y: 40}, {X: 50, Y: 70}, {X: 80, Y: 100}} {
		got := ResolvePosition(c, nil, size, i, p)
		if got != want {
			t.Fatalf("ordinal %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestResolvePosition_CascadeClampsAtDock(t *testing.T) {
	p := DefaultPolicy()
	c := desktopChrome()
	size := Size{Width: 800, Height: 600}

	// 40 + 20*30 = 640 exceeds maxY = 1000 - 600 = 400.
	got := ResolvePosition(c, nil, size, 20, p)
	if got.Y != 400 {
		t.Fatalf("expected y clamped to 400, got %v", got.Y)
	}
	if got.X != 620 {
		t.Fatalf("expected x=620, got %v", got.X)
	}
}

func TestResolvePosition_ExplicitClamped(t *testing.T) {
	p := DefaultPolicy()
	c := desktopChrome()
	size := Size{Width: 800, Height: 600}

	got := ResolvePosition(c, &Point{X: -50, Y: 0}, size, 3, p)
	if got != (Point{X: 0, Y: 40}) {
		t.Fatalf("expected (0,40), got %+v", got)
	}
	got = ResolvePosition(c, &Point{X: 5000, Y: 5000}, size, 3, p)
	if got != (Point{X: 1120, Y: 400}) {
		t.Fatalf("expected (1120,400), got %+v", got)
	}
}

func TestClampPosition_MinWinsWhenEnvelopeInverts(t *testing.T) {
	c := Chrome{ViewportWidth: 200, ViewportHeight: 150, TopBar: &Rect{Height: 30}}
	got := ClampPosition(c, Point{X: 80, Y: 80}, Size{Width: 300, Height: 200})
	if got != (Point{X: 0, Y: 30}) {
		t.Fatalf("expected (0,30), got %+v", got)
	}
}

func TestFit_Idempotent(t *testing.T) {
	p := DefaultPolicy()
	c := desktopChrome()
	r := Rect{X: 1800, Y: 900, Width: 2400, Height: 100}

	once := Fit(c, r, p)
	twice := Fit(c, once, p)
	if once != twice {
		t.Fatalf("expected fit to be idempotent: %+v vs %+v", once, twice)
	}
	if once.Width != 1920 || once.Height != 200 {
		t.Fatalf("unexpected fitted size %+v", once)
	}
}

func TestLerp(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 100.3, Y: 200.7, Width: 60, Height: 60}

	if got := Lerp(a, b, 0.5); got.X != 50.15 || got.Width != 80 {
		t.Fatalf("unexpected midpoint %+v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Fatalf("expected exact target at t=1, got %+v", got)
	}
	if got := Lerp(a, b, 1.5); got != b {
		t.Fatalf("expected exact target past t=1, got %+v", got)
	}
	if got := Lerp(a, b, -1); got != a {
		t.Fatalf("expected origin for t<0, got %+v", got)
	}
}
