package window

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/dxdesk/internal/animation"
	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/layout"
)

// FirstZIndex is the z-index handed to the first window.
const FirstZIndex = 1000

// DefaultFallbackDock is where windows fly when no dock slot can be measured.
var DefaultFallbackDock = layout.Point{X: 600, Y: 700}

// Options are the optional explicit geometry for Open. A position is used
// only when both coordinates are set, a size only when both dimensions are.
type Options struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

func (o Options) position() *layout.Point {
	if o.X == nil || o.Y == nil {
		return nil
	}
	return &layout.Point{X: *o.X, Y: *o.Y}
}

func (o Options) size() *layout.Size {
	if o.Width == nil || o.Height == nil {
		return nil
	}
	return &layout.Size{Width: *o.Width, Height: *o.Height}
}

// CommitFunc receives a deep copy of the window sequence after every
// mutation. It runs with the registry locked and must not call back in.
type CommitFunc func([]Window)

// Registry owns the window sequence and z-order counter.
//
// Operations on unknown ids are silent no-ops. All state is guarded by a
// single mutex; animation ticks take the same lock, so every operation
// completes before the next tick is applied.
type Registry struct {
	mu         sync.Mutex
	windows    []*Window
	nextZ      int
	dockAnchor *layout.Point

	chrome       layout.ChromeProvider
	dockLayout   dock.LayoutProvider
	policy       layout.Policy
	engine       *animation.Engine
	fallbackDock layout.Point
	newID        func() string
	logger       *slog.Logger
	hooks        []CommitFunc
}

// RegistryOption customises a Registry.
type RegistryOption func(*Registry)

// WithPolicy sets the placement policy.
func WithPolicy(p layout.Policy) RegistryOption { return func(r *Registry) { r.policy = p } }

// WithDockLayout sets the dock slot provider used when restoring.
func WithDockLayout(p dock.LayoutProvider) RegistryOption {
	return func(r *Registry) { r.dockLayout = p }
}

// WithFallbackDock sets the target used when no dock slot is known.
func WithFallbackDock(p layout.Point) RegistryOption {
	return func(r *Registry) { r.fallbackDock = p }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) RegistryOption { return func(r *Registry) { r.newID = fn } }

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) RegistryOption { return func(r *Registry) { r.logger = l } }

// NewRegistry creates an empty registry.
func NewRegistry(chrome layout.ChromeProvider, engine *animation.Engine, opts ...RegistryOption) *Registry {
	r := &Registry{
		nextZ:        FirstZIndex,
		chrome:       chrome,
		policy:       layout.DefaultPolicy(),
		engine:       engine,
		fallbackDock: DefaultFallbackDock,
		newID:        uuid.NewString,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers a commit hook.
func (r *Registry) Subscribe(fn CommitFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// SetPolicy replaces the placement policy for subsequent operations.
func (r *Registry) SetPolicy(p layout.Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = p
}

// SetFallbackDock replaces the fallback dock target.
func (r *Registry) SetFallbackDock(p layout.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbackDock = p
}

// Open shows the window for route, creating it if needed, and returns its id.
func (r *Registry) Open(route, title string, opts Options) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w := r.byRouteLocked(route); w != nil {
		if w.IsAnimating() || w.IsMinimized {
			r.engine.Cancel(w.ID)
			w.Animation = nil
			if w.OriginalPosition != nil {
				w.setRect(*w.OriginalPosition)
			}
		}
		w.IsVisible = true
		w.IsMinimized = false
		w.ZIndex = r.allocZLocked()
		r.commitLocked()
		return w.ID
	}

	c := r.chrome.Chrome()
	rect := layout.Place(c, opts.position(), opts.size(), len(r.windows), r.policy)
	w := &Window{
		ID:        r.newID(),
		Title:     title,
		Route:     route,
		IsVisible: true,
		ZIndex:    r.allocZLocked(),
	}
	w.setRect(rect)
	r.windows = append(r.windows, w)
	r.logger.Debug("window opened", "id", w.ID, "route", route)
	r.commitLocked()
	return w.ID
}

// Close removes the window.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.windows {
		if w.ID != id {
			continue
		}
		r.engine.Cancel(id)
		r.windows = append(r.windows[:i], r.windows[i+1:]...)
		r.logger.Debug("window closed", "id", id, "route", w.Route)
		r.commitLocked()
		return
	}
}

// Minimize sends the window to the dock without animation. Geometry is
// left in place and no original position is recorded.
func (r *Registry) Minimize(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return
	}
	if w.IsAnimating() {
		r.engine.Cancel(id)
		w.Animation = nil
		if w.OriginalPosition != nil {
			w.setRect(*w.OriginalPosition)
		}
	}
	w.IsMinimized = true
	r.commitLocked()
}

// Maximize toggles the maximized flag.
func (r *Registry) Maximize(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return
	}
	w.IsMaximized = !w.IsMaximized
	r.commitLocked()
}

// BringToFront gives the window the next z-index.
func (r *Registry) BringToFront(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return
	}
	w.ZIndex = r.allocZLocked()
	r.commitLocked()
}

// UpdatePosition moves the window, clamped to the current envelope.
func (r *Registry) UpdatePosition(id string, x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return
	}
	size := layout.Size{Width: w.Width, Height: w.Height}
	pt := layout.ClampPosition(r.chrome.Chrome(), layout.Point{X: x, Y: y}, size)
	if pt.X == w.X && pt.Y == w.Y {
		return
	}
	w.X, w.Y = pt.X, pt.Y
	r.commitLocked()
}

// UpdateSize resizes the window. The caller is expected to have
// validated the size already.
func (r *Registry) UpdateSize(id string, width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return
	}
	if w.Width == width && w.Height == height {
		return
	}
	w.Width, w.Height = width, height
	r.commitLocked()
}

// SmoothResize is UpdateSize under the name the resize handles use.
func (r *Registry) SmoothResize(id string, width, height float64) {
	r.UpdateSize(id, width, height)
}

// EnsureInBounds re-clamps every idle, restored, non-maximized window to
// the current chrome. Call after the viewport changes.
func (r *Registry) EnsureInBounds() {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.chrome.Chrome()
	changed := false
	for _, w := range r.windows {
		if w.IsAnimating() || w.IsMaximized || w.IsMinimized {
			continue
		}
		fitted := layout.Fit(c, w.Rect(), r.policy)
		if fitted != w.Rect() {
			w.setRect(fitted)
			changed = true
		}
	}
	if changed {
		r.commitLocked()
	}
}

// SetDockAnchor records the last known dock container coordinate.
func (r *Registry) SetDockAnchor(p layout.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dockAnchor = &p
}

// DockAnchor returns the last recorded dock container coordinate.
func (r *Registry) DockAnchor() (layout.Point, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dockAnchor == nil {
		return layout.Point{}, false
	}
	return *r.dockAnchor, true
}

// Get returns a copy of the window with id.
func (r *Registry) Get(id string) (Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w := r.findLocked(id); w != nil {
		return w.Clone(), true
	}
	return Window{}, false
}

// ByRoute returns a copy of the window showing route.
func (r *Registry) ByRoute(route string) (Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w := r.byRouteLocked(route); w != nil {
		return w.Clone(), true
	}
	return Window{}, false
}

// Windows returns a copy of every window in creation order.
func (r *Registry) Windows() []Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Visible returns visible, non-minimized windows in creation order.
func (r *Registry) Visible() []Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Window
	for _, w := range r.windows {
		if w.IsVisible && !w.IsMinimized {
			out = append(out, w.Clone())
		}
	}
	return out
}

// Len returns the number of open windows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

// NextZIndex returns the value the next focus will receive.
func (r *Registry) NextZIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextZ
}

// Load replaces the registry contents with previously persisted windows.
// Animation state is dropped, later duplicates of an id or route are
// skipped, and clashing z-indexes are reallocated above the counter.
func (r *Registry) Load(ws []Window) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.windows {
		r.engine.Cancel(w.ID)
	}

	ids := make(map[string]bool, len(ws))
	routes := make(map[string]bool, len(ws))
	maxZ := FirstZIndex - 1
	loaded := make([]*Window, 0, len(ws))
	for _, w := range ws {
		if w.ID == "" || ids[w.ID] || routes[w.Route] {
			r.logger.Warn("dropping duplicate persisted window", "id", w.ID, "route", w.Route)
			continue
		}
		ids[w.ID] = true
		routes[w.Route] = true
		c := w.Clone()
		c.Animation = nil
		loaded = append(loaded, &c)
		if c.ZIndex > maxZ {
			maxZ = c.ZIndex
		}
	}

	r.windows = loaded
	r.nextZ = maxZ + 1
	seen := make(map[int]bool, len(loaded))
	for _, w := range loaded {
		if seen[w.ZIndex] {
			w.ZIndex = r.allocZLocked()
		}
		seen[w.ZIndex] = true
	}
	r.commitLocked()
}

func (r *Registry) allocZLocked() int {
	z := r.nextZ
	r.nextZ++
	return z
}

func (r *Registry) findLocked(id string) *Window {
	for _, w := range r.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (r *Registry) byRouteLocked(route string) *Window {
	for _, w := range r.windows {
		if w.Route == route {
			return w
		}
	}
	return nil
}

func (r *Registry) snapshotLocked() []Window {
	out := make([]Window, len(r.windows))
	for i, w := range r.windows {
		out[i] = w.Clone()
	}
	return out
}

func (r *Registry) commitLocked() {
	if len(r.hooks) == 0 {
		return
	}
	snap := r.snapshotLocked()
	for _, fn := range r.hooks {
		fn(snap)
	}
}
