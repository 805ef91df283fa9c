package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/dxdesk/internal/persist"
	"github.com/1broseidon/dxdesk/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_Defaults(t *testing.T) {
	s := Open(context.Background(), persist.NewMemoryStore(), discardLogger())
	if got := s.Get(); got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestOpen_MalformedFallsBackToDefaults(t *testing.T) {
	store := persist.NewMemoryStore()
	_ = store.Save(context.Background(), persist.KeySettings, []byte(`{"theme":`))

	s := Open(context.Background(), store, discardLogger())
	if got := s.Get(); got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestOpen_PartialRecordKeepsDefaults(t *testing.T) {
	store := persist.NewMemoryStore()
	_ = store.Save(context.Background(), persist.KeySettings, []byte(`{"theme":"light","soundEffects":true}`))

	got := Open(context.Background(), store, discardLogger()).Get()
	if got.Theme != "light" || !got.SoundEffects || !got.ShowClock || got.Background != "gradient-1" {
		t.Fatalf("unexpected settings %+v", got)
	}
}

func TestSet(t *testing.T) {
	s := Open(context.Background(), persist.NewMemoryStore(), discardLogger())

	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Settings) bool
	}{
		{key: "showClock", value: "false", check: func(s Settings) bool { return !s.ShowClock }},
		{key: "autoHideDock", value: "true", check: func(s Settings) bool { return s.AutoHideDock }},
		{key: "dockPosition", value: "left", check: func(s Settings) bool { return s.DockPosition == DockLeft }},
		{key: "dockPosition", value: "top", wantErr: true},
		{key: "soundEffects", value: "loud", wantErr: true},
		{key: "wallpaper", value: "x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := s.Set(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(got) || !tt.check(s.Get()) {
				t.Fatalf("setting not applied: %+v", got)
			}
		})
	}
}

func TestSetValidator(t *testing.T) {
	s := Open(context.Background(), persist.NewMemoryStore(), discardLogger())
	s.SetValidator("background", func(v string) error {
		if v != "gradient-2" {
			return errors.New("unknown background")
		}
		return nil
	})
	if _, err := s.Set("background", "plaid"); err == nil {
		t.Fatalf("expected validator to reject")
	}
	if _, err := s.Set("background", "gradient-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubscribeAndReset(t *testing.T) {
	s := Open(context.Background(), persist.NewMemoryStore(), discardLogger())
	var seen []Settings
	s.Subscribe(func(v Settings) { seen = append(seen, v) })

	s.Update(func(v *Settings) { v.Notifications = false })
	s.Update(func(v *Settings) { v.Notifications = false })
	if len(seen) != 1 {
		t.Fatalf("expected one notification for one change, got %d", len(seen))
	}

	if got := s.Reset(); got != Defaults() {
		t.Fatalf("expected reset to defaults")
	}
	if len(seen) != 2 || seen[1] != Defaults() {
		t.Fatalf("expected reset to notify subscribers")
	}
}

func TestPersistsDebounced(t *testing.T) {
	clock := testutil.NewFakeClock()
	store := persist.NewMemoryStore()
	s := Open(context.Background(), store, discardLogger(), persist.WithWriterScheduler(clock))

	_, _ = s.Set("showClock", "false")
	_, _ = s.Set("theme", "light")
	clock.Advance(time.Second)

	reopened := Open(context.Background(), store, discardLogger())
	got := reopened.Get()
	if got.ShowClock || got.Theme != "light" {
		t.Fatalf("expected persisted changes, got %+v", got)
	}
}

func TestConcurrentSetsPersistLatest(t *testing.T) {
	store := persist.NewMemoryStore()
	s := Open(context.Background(), store, discardLogger())

	var (
		hookMu   sync.Mutex
		lastSeen Settings
	)
	s.Subscribe(func(v Settings) {
		hookMu.Lock()
		lastSeen = v
		hookMu.Unlock()
	})

	values := []string{"bottom", "left", "right"}
	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 9 {
				s.Reset()
				return
			}
			if _, err := s.Set("dockPosition", values[i%len(values)]); err != nil {
				t.Errorf("set: %v", err)
			}
			_, _ = s.Set("showClock", strconv.FormatBool(i%2 == 0))
		}(i)
	}
	wg.Wait()
	s.Flush()

	want := s.Get()
	if got := Open(context.Background(), store, discardLogger()).Get(); got != want {
		t.Fatalf("persisted %+v, current %+v", got, want)
	}
	hookMu.Lock()
	defer hookMu.Unlock()
	if lastSeen != want {
		t.Fatalf("last hook saw %+v, current %+v", lastSeen, want)
	}
}
