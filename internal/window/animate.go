package window

import (
	"github.com/1broseidon/dxdesk/internal/animation"
	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/layout"
)

// MinimizeWithAnimation flies the window into the dock. A nil target uses
// the fallback dock point. The window is marked minimized immediately.
func (r *Registry) MinimizeWithAnimation(id string, target *layout.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return
	}
	if w.IsMinimized && !w.IsAnimating() {
		return
	}

	to := r.fallbackDock
	if target != nil {
		to = *target
	}

	// A run already in flight keeps the geometry captured when the window
	// first left the desktop.
	if !w.IsAnimating() || w.OriginalPosition == nil {
		orig := w.Rect()
		w.OriginalPosition = &orig
	}
	w.DockPosition = &to
	w.IsMinimized = true
	r.startLocked(w, animation.Minimizing, w.Rect(), r.engine.Config().IconRect(to))
}

// Restore brings a minimized window back. With a recorded original
// position it animates out of its current dock slot; otherwise it
// reappears in place. Windows that are not minimized, or are already
// restoring, are left alone.
func (r *Registry) Restore(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil || !w.IsMinimized {
		return
	}
	if w.Animation != nil && w.Animation.Direction == animation.Restoring {
		return
	}
	if w.OriginalPosition == nil {
		r.engine.Cancel(id)
		w.Animation = nil
		w.IsMinimized = false
		r.commitLocked()
		return
	}

	origin := w.Rect()
	if !w.IsAnimating() {
		origin = r.engine.Config().IconRect(r.dockSlotLocked(id))
	}
	// The viewport may have shrunk while the window sat in the dock.
	target := layout.Fit(r.chrome.Chrome(), *w.OriginalPosition, r.policy)
	w.OriginalPosition = &target
	r.startLocked(w, animation.Restoring, origin, target)
}

// DockSlot returns the live dock coordinate for a minimized window.
func (r *Registry) DockSlot(id string) layout.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dockSlotLocked(id)
}

func (r *Registry) dockSlotLocked(id string) layout.Point {
	var minimized []string
	for _, w := range r.windows {
		if w.IsMinimized {
			minimized = append(minimized, w.ID)
		}
	}
	var l dock.Layout
	if r.dockLayout != nil {
		l = r.dockLayout.DockLayout()
	}
	return dock.Resolve(id, minimized, l, r.fallbackDock)
}

func (r *Registry) startLocked(w *Window, dir animation.Direction, origin, target layout.Rect) {
	w.setRect(origin)
	run := r.engine.Start(w.ID, dir, origin, target, r.applyFrame)
	w.Animation = &AnimationState{
		Direction:  dir,
		Progress:   0,
		Generation: run.Generation,
	}
	r.commitLocked()
}

// applyFrame writes one animation frame. It runs on the scheduler's
// goroutine and rejects frames from superseded runs.
func (r *Registry) applyFrame(run animation.Run, f animation.Frame) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.engine.IsCurrent(run.WindowID, run.Generation) {
		return false
	}
	w := r.findLocked(run.WindowID)
	if w == nil {
		return false
	}

	w.setRect(f.Rect)
	if f.Done {
		w.Animation = nil
		if run.Direction == animation.Restoring {
			w.IsMinimized = false
		}
	} else {
		w.Animation = &AnimationState{
			Direction:  run.Direction,
			Progress:   f.Progress,
			Outlines:   f.Outlines,
			Generation: run.Generation,
		}
	}
	r.commitLocked()
	return true
}
