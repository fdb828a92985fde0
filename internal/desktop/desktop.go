// Package desktop owns the open-window collection. Collection order is the
// z-order: the last window is topmost, and the focused window, when there is
// one, is always last.
package desktop

import (
	"slices"

	"github.com/google/uuid"

	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/types"
)

// WindowState is one open window
type WindowState struct {
	ID          string     `json:"id"`
	AppID       string     `json:"appId"`
	Rect        types.Rect `json:"rect"`
	Title       string     `json:"title"`
	BarColor    string     `json:"barColor,omitempty"`
	BarIcon     string     `json:"barIcon,omitempty"`
	MinSize     types.Size `json:"minSize"`
	IsMinimized bool       `json:"isMinimized"`
	IsFocused   bool       `json:"isFocused"`
	Closable    bool       `json:"closable"`
	FooterText  string     `json:"footerText,omitempty"`
}

// Desktop is the window manager state. It is not safe for concurrent use;
// see the session package for a serialized wrapper.
type Desktop struct {
	registry    *registry.Registry
	constraints geometry.Constraints
	windows     []*WindowState

	newID           func() string
	checkInvariants bool
}

// Option configures a Desktop
type Option func(*Desktop)

// WithInvariantChecks runs CheckInvariants after every transition and logs
// any violation at warn level.
func WithInvariantChecks() Option {
	return func(d *Desktop) { d.checkInvariants = true }
}

// WithConstraints replaces the default clamp constraints. The viewport is
// taken from c.Bounds.
func WithConstraints(c geometry.Constraints) Option {
	return func(d *Desktop) { d.constraints = c }
}

// WithIDGenerator overrides window id generation
func WithIDGenerator(fn func() string) Option {
	return func(d *Desktop) { d.newID = fn }
}

// New creates an empty desktop for the given viewport
func New(reg *registry.Registry, viewport types.Size, opts ...Option) *Desktop {
	d := &Desktop{
		registry:    reg,
		constraints: geometry.DefaultConstraints(viewport),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open creates a window for appID, appends it on top and focuses it.
// initial overrides the app's default rectangle. Returns false when the app
// is not registered.
func (d *Desktop) Open(appID string, initial *types.Rect) (string, bool) {
	spec, ok := d.registry.Lookup(appID)
	if !ok {
		logging.Warn().Str("app", appID).Msg("open: unknown app")
		return "", false
	}

	rect := spec.DefaultRect
	if initial != nil {
		rect = *initial
	}

	w := &WindowState{
		ID:         d.newID(),
		AppID:      spec.ID,
		Title:      spec.Title,
		BarColor:   spec.BarColor,
		BarIcon:    spec.BarIcon,
		MinSize:    spec.MinSize,
		Closable:   spec.Closable,
		FooterText: spec.FooterText,
	}
	w.Rect = d.constraintsFor(w).Clamp(rect)

	d.clearFocus()
	w.IsFocused = true
	d.windows = append(d.windows, w)

	logging.Info().Str("window", w.ID).Str("app", appID).Str("rect", w.Rect.String()).Msg("window opened")
	d.verify("open")
	return w.ID, true
}

// Focus raises the window to the top and gives it focus. Focusing a
// minimized window does nothing; use Restore.
func (d *Desktop) Focus(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		logging.Debug().Str("window", id).Msg("focus: stale window")
		return false
	}
	if d.windows[i].IsMinimized {
		logging.Debug().Str("window", id).Msg("focus: window is minimized")
		return false
	}
	if i == len(d.windows)-1 && d.windows[i].IsFocused {
		return true
	}

	d.focusAt(i)
	logging.Debug().Str("window", id).Msg("window focused")
	d.verify("focus")
	return true
}

// Minimize hides the window, keeping its geometry. If it had focus, focus
// moves to the topmost visible window.
func (d *Desktop) Minimize(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		logging.Debug().Str("window", id).Msg("minimize: stale window")
		return false
	}

	w := d.windows[i]
	if w.IsMinimized {
		return true
	}
	w.IsMinimized = true
	if w.IsFocused {
		w.IsFocused = false
		d.transferFocus()
	}

	logging.Info().Str("window", id).Msg("window minimized")
	d.verify("minimize")
	return true
}

// Restore un-minimizes the window and focuses it
func (d *Desktop) Restore(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		logging.Debug().Str("window", id).Msg("restore: stale window")
		return false
	}

	if d.windows[i].IsMinimized {
		d.windows[i].IsMinimized = false
		logging.Info().Str("window", id).Msg("window restored")
	}
	return d.Focus(id)
}

// Close removes the window. If it had focus, focus moves to the topmost
// visible window.
func (d *Desktop) Close(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		logging.Debug().Str("window", id).Msg("close: stale window")
		return false
	}

	w := d.windows[i]
	d.windows = slices.Delete(d.windows, i, i+1)
	if w.IsFocused {
		d.transferFocus()
	}

	logging.Info().Str("window", id).Str("app", w.AppID).Msg("window closed")
	d.verify("close")
	return true
}

// UpdateGeometry replaces the window's rectangle with the clamped rect.
// Z-order and focus are unchanged.
func (d *Desktop) UpdateGeometry(id string, rect types.Rect) bool {
	i := d.indexOf(id)
	if i < 0 {
		logging.Debug().Str("window", id).Msg("update geometry: stale window")
		return false
	}

	w := d.windows[i]
	w.Rect = d.constraintsFor(w).Clamp(rect)

	logging.Debug().Str("window", id).Str("rect", w.Rect.String()).Msg("geometry updated")
	d.verify("update geometry")
	return true
}

// Blur gives focus to the desktop itself. No window is focused afterwards.
func (d *Desktop) Blur() {
	d.clearFocus()
	logging.Debug().Msg("desktop focused")
	d.verify("blur")
}

// SetViewport changes the viewport and re-clamps every window so none is
// lost off-screen
func (d *Desktop) SetViewport(size types.Size) {
	d.constraints.Bounds = size
	moved := 0
	for _, w := range d.windows {
		r := d.constraintsFor(w).Clamp(w.Rect)
		if r != w.Rect {
			w.Rect = r
			moved++
		}
	}

	logging.Info().Str("viewport", size.String()).Int("reclamped", moved).Msg("viewport changed")
	d.verify("set viewport")
}

// Viewport returns the current viewport size
func (d *Desktop) Viewport() types.Size {
	return d.constraints.Bounds
}

// Constraints returns the clamp constraints that apply to the window,
// including its app's minimum size
func (d *Desktop) Constraints(id string) (geometry.Constraints, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return geometry.Constraints{}, false
	}
	return d.constraintsFor(d.windows[i]), true
}

// Registry returns the registry consulted by Open
func (d *Desktop) Registry() *registry.Registry {
	return d.registry
}

// SetRegistry swaps the registry. Open windows are unaffected.
func (d *Desktop) SetRegistry(reg *registry.Registry) {
	d.registry = reg
}

func (d *Desktop) constraintsFor(w *WindowState) geometry.Constraints {
	return d.constraints.WithMinSize(w.MinSize)
}

func (d *Desktop) indexOf(id string) int {
	for i, w := range d.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// focusAt moves the window at i to the end and makes it the only focused one
func (d *Desktop) focusAt(i int) {
	w := d.windows[i]
	d.windows = slices.Delete(d.windows, i, i+1)
	d.windows = append(d.windows, w)

	d.clearFocus()
	w.IsFocused = true
}

// transferFocus focuses the topmost non-minimized window, if any
func (d *Desktop) transferFocus() {
	for i := len(d.windows) - 1; i >= 0; i-- {
		if !d.windows[i].IsMinimized {
			d.focusAt(i)
			logging.Debug().Str("window", d.windows[len(d.windows)-1].ID).Msg("focus transferred")
			return
		}
	}
	d.clearFocus()
}

func (d *Desktop) clearFocus() {
	for _, w := range d.windows {
		w.IsFocused = false
	}
}

func (d *Desktop) verify(op string) {
	if !d.checkInvariants {
		return
	}
	if err := d.CheckInvariants(); err != nil {
		logging.Warn().Err(err).Str("op", op).Msg("desktop invariant violated")
	}
}
