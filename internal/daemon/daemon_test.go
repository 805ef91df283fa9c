package daemon

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1broseidon/dxdesk/internal/chrome"
	"github.com/1broseidon/dxdesk/internal/desktop"
	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/persist"
	"github.com/1broseidon/dxdesk/internal/platform"
)

type noDisplay struct{}

func (noDisplay) Displays() ([]platform.Display, error) { return nil, platform.ErrUnsupported }
func (noDisplay) ActiveDisplay() (platform.Display, error) {
	return platform.Display{}, platform.ErrUnsupported
}
func (noDisplay) Close() {}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func startDaemon(t *testing.T, body string, opts ...Option) (*Daemon, *ipc.Client, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, body)
	socket := filepath.Join(dir, "d.sock")

	opts = append([]Option{
		WithSocketPath(socket),
		WithLogOutput(io.Discard),
		WithDesktopOptions(desktop.WithStore(persist.NewMemoryStore())),
	}, opts...)
	d, err := New(context.Background(), cfgPath, opts...)
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("run: %v", err)
		}
	})

	client := ipc.NewClientAt(socket)
	waitFor(t, "daemon socket", func() bool {
		_, err := client.GetStatus()
		return err == nil
	})
	return d, client, cfgPath
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "persistence:\n  backend: floppy\n")
	if _, err := New(context.Background(), path, WithDesktopOptions(desktop.WithStore(persist.NewMemoryStore()))); err == nil {
		t.Fatalf("expected invalid config to fail")
	}
}

func TestReloadViaIPC(t *testing.T) {
	d, client, cfgPath := startDaemon(t, "watch_config: false\npersistence:\n  backend: memory\n")

	small := 100.0
	w, err := client.OpenWindow(ipc.OpenWindowPayload{Route: "/notes", Width: &small, Height: &small})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if w.Width != 300 {
		t.Fatalf("expected min width 300, got %v", w.Width)
	}

	writeFile(t, cfgPath, "watch_config: false\npersistence:\n  backend: memory\nwindow:\n  min_width: 450\n")
	if err := client.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, _ := d.Desktop().Windows.Get(w.ID)
	if got.Width != 450 {
		t.Fatalf("expected width re-clamped to 450, got %v", got.Width)
	}

	writeFile(t, cfgPath, "window:\n  min_width: -1\n")
	if err := client.Reload(); err == nil {
		t.Fatalf("expected invalid config reload to fail")
	}
	if d.Desktop().Config().Window.MinWidth != 450 {
		t.Fatalf("failed reload replaced the running config")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	d, _, cfgPath := startDaemon(t, "persistence:\n  backend: memory\n")

	writeFile(t, cfgPath, "persistence:\n  backend: memory\nanimation:\n  duration_ms: 900\n")
	waitFor(t, "config reload", func() bool {
		return d.Desktop().Engine.Config().Duration == 900*time.Millisecond
	})
}

func TestRunSeedsChromeFromProbe(t *testing.T) {
	var calls atomic.Int32
	probe := func() (chrome.Report, error) {
		calls.Add(1)
		return chrome.Report{ViewportWidth: 2560, ViewportHeight: 1440}, nil
	}
	d, _, _ := startDaemon(t, "watch_config: false\npersistence:\n  backend: memory\ndisplay:\n  seed_from_x11: true\n",
		WithProbe(probe), WithReconcileInterval(10*time.Millisecond),
		WithDesktopOptions(desktop.WithDisplay(noDisplay{})))

	waitFor(t, "seeded chrome", func() bool {
		return d.Desktop().Chrome.Chrome().ViewportWidth == 2560
	})
}

type recordingSeeder struct {
	seeded []chrome.Report
	accept bool
}

func (r *recordingSeeder) SeedChrome(rep chrome.Report) bool {
	r.seeded = append(r.seeded, rep)
	return r.accept
}

func TestReconciler_SkipsUnchangedAndFailedProbes(t *testing.T) {
	report := chrome.Report{ViewportWidth: 1920, ViewportHeight: 1080}
	var fail bool
	probe := func() (chrome.Report, error) {
		if fail {
			return chrome.Report{}, errors.New("display gone")
		}
		return report, nil
	}
	target := &recordingSeeder{accept: true}
	r := NewReconciler(ReconcilerConfig{}, target, probe)

	r.ReconcileNow()
	r.ReconcileNow()
	if len(target.seeded) != 1 {
		t.Fatalf("expected one seed for an unchanged display, got %d", len(target.seeded))
	}

	fail = true
	r.ReconcileNow()
	if len(target.seeded) != 1 {
		t.Fatalf("failed probe must not seed")
	}

	fail = false
	report.ViewportWidth = 2560
	r.ReconcileNow()
	if len(target.seeded) != 2 || target.seeded[1].ViewportWidth != 2560 {
		t.Fatalf("expected changed display to seed again, got %+v", target.seeded)
	}
}

func TestReconciler_RecoversFromPanic(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{}, &recordingSeeder{}, func() (chrome.Report, error) {
		panic("boom")
	})
	r.ReconcileNow()
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "")

	var changes atomic.Int32
	w, err := NewConfigWatcher(path, 20*time.Millisecond, func() { changes.Add(1) }, nil)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	time.Sleep(150 * time.Millisecond)
	if changes.Load() != 0 {
		t.Fatalf("unrelated file triggered a reload")
	}

	writeFile(t, path, "log_level: debug\n")
	waitFor(t, "config change", func() bool { return changes.Load() >= 1 })
}
