package mcp

import (
	"context"
	"fmt"
	"sort"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dxdesk/internal/animation"
	"github.com/1broseidon/dxdesk/internal/config"
	"github.com/1broseidon/dxdesk/internal/desktop"
	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/persist"
	"github.com/1broseidon/dxdesk/internal/testutil"
	"github.com/1broseidon/dxdesk/internal/window"
)

// localDesk drives a desktop in-process.
type localDesk struct {
	d *desktop.Desktop
}

func (l localDesk) find(ref string) (window.Window, error) {
	if w, ok := l.d.Windows.Get(ref); ok {
		return w, nil
	}
	if w, ok := l.d.Windows.ByRoute(ref); ok {
		return w, nil
	}
	return window.Window{}, fmt.Errorf("window not found: %s", ref)
}

func (l localDesk) after(id string) (*window.Window, error) {
	w, ok := l.d.Windows.Get(id)
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (l localDesk) ListWindows() ([]window.Window, error) { return l.d.Windows.Windows(), nil }

func (l localDesk) OpenWindow(p ipc.OpenWindowPayload) (*window.Window, error) {
	id := l.d.Windows.Open(p.Route, p.Title, window.Options{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height})
	return l.after(id)
}

func (l localDesk) CloseWindow(ref string) error {
	w, err := l.find(ref)
	if err != nil {
		return err
	}
	l.d.Windows.Close(w.ID)
	return nil
}

func (l localDesk) MinimizeWindow(ref string, animate bool, target *layout.Point) (*window.Window, error) {
	w, err := l.find(ref)
	if err != nil {
		return nil, err
	}
	if animate {
		l.d.Windows.MinimizeWithAnimation(w.ID, target)
	} else {
		l.d.Windows.Minimize(w.ID)
	}
	return l.after(w.ID)
}

func (l localDesk) RestoreWindow(ref string) (*window.Window, error) {
	w, err := l.find(ref)
	if err != nil {
		return nil, err
	}
	l.d.Windows.Restore(w.ID)
	return l.after(w.ID)
}

func (l localDesk) FocusWindow(ref string) (*window.Window, error) {
	w, err := l.find(ref)
	if err != nil {
		return nil, err
	}
	l.d.Windows.BringToFront(w.ID)
	return l.after(w.ID)
}

func (l localDesk) SetTheme(mode string) (*ipc.ThemeData, error) {
	if err := l.d.SetTheme(mode); err != nil {
		return nil, err
	}
	return &ipc.ThemeData{Mode: l.d.Theme.Mode(), Resolved: l.d.Theme.Current()}, nil
}

func (l localDesk) SetVibe(key string) (*ipc.VibesData, error) {
	if err := l.d.SetVibe(key); err != nil {
		return nil, err
	}
	cur := l.d.Vibes.Current()
	return &ipc.VibesData{Current: cur.Key, Name: cur.Name, PlaylistURL: cur.PlaylistURL, Playlist: cur.Playlist}, nil
}

func newTestServer(t *testing.T) (*Server, *desktop.Desktop, *testutil.FakeClock) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Persistence.Backend = "memory"
	clock := testutil.NewFakeClock()
	n := 0
	d, err := desktop.Open(context.Background(), cfg, nil,
		desktop.WithStore(persist.NewMemoryStore()),
		desktop.WithAnimationOptions(animation.WithClock(clock), animation.WithScheduler(clock)),
		desktop.WithWriterOptions(persist.WithWriterScheduler(clock)),
		desktop.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("win-%d", n)
		}),
	)
	if err != nil {
		t.Fatalf("open desktop: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewServer(localDesk{d: d}, nil), d, clock
}

func boolPtr(b bool) *bool { return &b }

func TestOpenAndListWindows(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	if _, _, err := s.handleOpenWindow(ctx, nil, OpenWindowInput{Route: "  "}); err == nil {
		t.Fatalf("expected empty route to fail")
	}
	_, out, err := s.handleOpenWindow(ctx, nil, OpenWindowInput{Route: "/notes", Title: "Notes"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if out.Window == nil || out.Window.ID != "win-1" || out.Window.ZIndex != 1000 {
		t.Fatalf("unexpected window: %+v", out.Window)
	}
	s.handleOpenWindow(ctx, nil, OpenWindowInput{Route: "/files"})
	s.handleMinimizeWindow(ctx, nil, MinimizeWindowInput{Window: "/files", Animate: boolPtr(false)})

	_, list, err := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(list.Windows))
	}
	_, list, _ = s.handleListWindows(ctx, nil, ListWindowsInput{IncludeMinimized: boolPtr(false)})
	if len(list.Windows) != 1 || list.Windows[0].Route != "/notes" {
		t.Fatalf("expected only /notes, got %+v", list.Windows)
	}
}

func TestMinimizeAnimatesByDefault(t *testing.T) {
	s, _, clock := newTestServer(t)
	ctx := context.Background()
	s.handleOpenWindow(ctx, nil, OpenWindowInput{Route: "/notes"})

	_, out, err := s.handleMinimizeWindow(ctx, nil, MinimizeWindowInput{Window: "win-1"})
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if !out.Window.Minimized || !out.Window.Animating || out.Window.AnimatingTo != "minimizing" {
		t.Fatalf("expected animated minimize, got %+v", out.Window)
	}

	clock.Advance(animation.DefaultConfig().Duration * 2)
	_, out, err = s.handleRestoreWindow(ctx, nil, WindowRefInput{Window: "/notes"})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if out.Window.AnimatingTo != "restoring" {
		t.Fatalf("expected restore animation, got %+v", out.Window)
	}
	clock.Advance(animation.DefaultConfig().Duration * 2)
	_, list, _ := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if list.Windows[0].Minimized || list.Windows[0].Animating {
		t.Fatalf("expected restored window, got %+v", list.Windows[0])
	}
}

func TestWindowRefRequired(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()
	if _, _, err := s.handleCloseWindow(ctx, nil, WindowRefInput{}); err == nil {
		t.Fatalf("expected close without window to fail")
	}
	if _, _, err := s.handleFocusWindow(ctx, nil, WindowRefInput{Window: "/missing"}); err == nil {
		t.Fatalf("expected unknown window to fail")
	}
}

func TestCloseAndFocus(t *testing.T) {
	s, d, _ := newTestServer(t)
	ctx := context.Background()
	s.handleOpenWindow(ctx, nil, OpenWindowInput{Route: "/a"})
	s.handleOpenWindow(ctx, nil, OpenWindowInput{Route: "/b"})

	_, out, err := s.handleFocusWindow(ctx, nil, WindowRefInput{Window: "/a"})
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if out.Window.ZIndex != 1002 {
		t.Fatalf("expected focused zIndex 1002, got %d", out.Window.ZIndex)
	}

	_, closed, err := s.handleCloseWindow(ctx, nil, WindowRefInput{Window: "/b"})
	if err != nil || !closed.Closed {
		t.Fatalf("close: %v %+v", err, closed)
	}
	if d.Windows.Len() != 1 {
		t.Fatalf("expected 1 window left, got %d", d.Windows.Len())
	}
}

func TestThemeAndVibeTools(t *testing.T) {
	s, d, _ := newTestServer(t)
	ctx := context.Background()

	_, th, err := s.handleSetTheme(ctx, nil, SetThemeInput{Mode: " Dark "})
	if err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if th.Mode != "dark" || th.Resolved != "dark" {
		t.Fatalf("unexpected theme output: %+v", th)
	}
	if _, _, err := s.handleSetTheme(ctx, nil, SetThemeInput{Mode: "sepia"}); err == nil {
		t.Fatalf("expected unknown theme to fail")
	}

	_, v, err := s.handleSetVibe(ctx, nil, SetVibeInput{Vibe: "lofi"})
	if err != nil {
		t.Fatalf("set vibe: %v", err)
	}
	if v.Vibe != "lofi" || v.Videos == 0 || v.PlaylistURL == "" {
		t.Fatalf("unexpected vibe output: %+v", v)
	}
	if d.Vibes.CurrentKey() != "lofi" {
		t.Fatalf("desktop vibe not updated")
	}
}

func TestToolsAreRegistered(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	serverT, clientT := mcpsdk.NewInMemoryTransports()
	serverSession, err := s.mcpServer.Connect(ctx, serverT, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{
		"close_window", "focus_window", "list_windows", "minimize_window",
		"open_window", "restore_window", "set_theme", "set_vibe",
	}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}
