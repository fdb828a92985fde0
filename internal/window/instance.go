// Package window turns pointer input on one window into desktop intents.
package window

import (
	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/types"
)

// Dispatcher receives the intents an Instance raises
type Dispatcher interface {
	Dispatch(in desktop.Intent) bool
	Constraints(id string) (geometry.Constraints, bool)
	Get(id string) (desktop.WindowState, bool)
}

// Gesture is the pointer interaction in progress
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureDrag
	GestureResize
)

// String returns the string representation of a Gesture
func (g Gesture) String() string {
	switch g {
	case GestureDrag:
		return "drag"
	case GestureResize:
		return "resize"
	default:
		return "none"
	}
}

// Instance is the input side of one open window. It holds only the
// in-progress gesture; everything else lives in the desktop.
type Instance struct {
	id         string
	dispatcher Dispatcher
	metrics    Metrics
	closable   bool
	live       bool

	gesture    Gesture
	edge       types.Edge
	startRect  types.Rect
	startPoint types.Point
	lastPoint  types.Point
	current    types.Rect
}

// Option configures an Instance
type Option func(*Instance)

// WithLiveUpdates dispatches a GeometryChange on every pointer move instead
// of only on release
func WithLiveUpdates(on bool) Option {
	return func(in *Instance) { in.live = on }
}

// New binds an Instance to window id
func New(id string, d Dispatcher, m Metrics, closable bool, opts ...Option) *Instance {
	in := &Instance{id: id, dispatcher: d, metrics: m, closable: closable}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// ID returns the window id
func (in *Instance) ID() string { return in.id }

// Gesture returns the gesture in progress
func (in *Instance) Gesture() Gesture { return in.gesture }

// Edge returns the edge being resized, EdgeNone unless resizing
func (in *Instance) Edge() types.Edge { return in.edge }

// Active reports whether a drag or resize is in progress
func (in *Instance) Active() bool { return in.gesture != GestureNone }

// PointerDown handles a press at p on a window currently at rect. Any press
// inside the window first raises Interact; the hit region then decides
// whether a control fires or a gesture starts.
func (in *Instance) PointerDown(p types.Point, rect types.Rect) Region {
	if !rect.Contains(p) {
		return RegionNone
	}
	if !in.dispatcher.Dispatch(desktop.Interact(in.id)) {
		return RegionNone
	}

	region := in.metrics.HitTest(rect, p, in.closable)
	switch region {
	case RegionClose:
		in.reset()
		in.dispatcher.Dispatch(desktop.Close(in.id))
	case RegionMinimize:
		in.reset()
		in.dispatcher.Dispatch(desktop.Minimize(in.id))
	case RegionBorder:
		in.begin(GestureResize, p, rect)
		in.edge = geometry.EdgeAt(rect, p, in.metrics.HandleThickness)
	case RegionTitleBar:
		in.begin(GestureDrag, p, rect)
	}

	logging.Debug().Str("window", in.id).Str("region", region.String()).Str("edge", in.edge.String()).Msg("pointer down")
	return region
}

// PointerMove updates the gesture and returns the candidate rectangle. The
// candidate is always computed from the gesture-start rectangle and the
// offset from the gesture-start point.
func (in *Instance) PointerMove(p types.Point) (types.Rect, bool) {
	if in.gesture == GestureNone {
		return types.Rect{}, false
	}
	in.lastPoint = p

	r, ok := in.candidate(p)
	if !ok {
		in.reset()
		return types.Rect{}, false
	}
	in.current = r

	if in.live {
		in.dispatcher.Dispatch(desktop.GeometryChange(in.id, r))
	}
	return r, true
}

// PointerUp commits the final rectangle and ends the gesture
func (in *Instance) PointerUp(p types.Point) (types.Rect, bool) {
	if in.gesture == GestureNone {
		return types.Rect{}, false
	}
	defer in.reset()

	r, ok := in.candidate(p)
	if !ok {
		return types.Rect{}, false
	}
	if !in.dispatcher.Dispatch(desktop.GeometryChange(in.id, r)) {
		return types.Rect{}, false
	}

	logging.Debug().Str("window", in.id).Str("gesture", in.gesture.String()).Str("rect", r.String()).Msg("gesture committed")
	return r, true
}

// PointerLeave ends the gesture as if released at the last seen point
func (in *Instance) PointerLeave() (types.Rect, bool) {
	return in.PointerUp(in.lastPoint)
}

// Cancel drops the gesture in progress without dispatching anything
func (in *Instance) Cancel() {
	if in.gesture != GestureNone {
		logging.Debug().Str("window", in.id).Str("gesture", in.gesture.String()).Msg("gesture cancelled")
	}
	in.reset()
}

// Current returns the last candidate rectangle of the gesture in progress
func (in *Instance) Current() (types.Rect, bool) {
	return in.current, in.gesture != GestureNone
}

// Props returns the content contract for the window's current state
func (in *Instance) Props(w desktop.WindowState) Props {
	return ContentProps(w, in.metrics)
}

// RequestClose is the content payload's close callback
func (in *Instance) RequestClose() bool {
	return in.dispatcher.Dispatch(desktop.Close(in.id))
}

// RequestMinimize is the content payload's minimize callback
func (in *Instance) RequestMinimize() bool {
	return in.dispatcher.Dispatch(desktop.Minimize(in.id))
}

// RequestInteract is the content payload's interact callback
func (in *Instance) RequestInteract() bool {
	return in.dispatcher.Dispatch(desktop.Interact(in.id))
}

// candidate fails once the window is gone or minimized; a minimized window
// keeps the rectangle it will be restored to.
func (in *Instance) candidate(p types.Point) (types.Rect, bool) {
	if w, ok := in.dispatcher.Get(in.id); !ok || w.IsMinimized {
		return types.Rect{}, false
	}
	c, ok := in.dispatcher.Constraints(in.id)
	if !ok {
		return types.Rect{}, false
	}

	dx := p.X - in.startPoint.X
	dy := p.Y - in.startPoint.Y

	switch in.gesture {
	case GestureDrag:
		return c.Drag(in.startRect, dx, dy), true
	case GestureResize:
		return c.Resize(in.startRect, dx, dy, in.edge), true
	default:
		return types.Rect{}, false
	}
}

func (in *Instance) begin(g Gesture, p types.Point, rect types.Rect) {
	in.gesture = g
	in.edge = types.EdgeNone
	in.startRect = rect
	in.startPoint = p
	in.lastPoint = p
	in.current = rect
}

func (in *Instance) reset() {
	in.gesture = GestureNone
	in.edge = types.EdgeNone
	in.startRect = types.Rect{}
	in.current = types.Rect{}
}
