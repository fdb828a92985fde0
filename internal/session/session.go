// Package session serializes access to one desktop. A single goroutine owns
// the desktop and the window instances; every request runs on it in arrival
// order.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/types"
	"github.com/yourusername/webdesk/internal/window"
)

// ErrClosed is returned for requests made after Close
var ErrClosed = errors.New("session closed")

// Phase is the kind of pointer event
type Phase uint8

const (
	PhaseDown Phase = iota + 1
	PhaseMove
	PhaseUp
	PhaseLeave
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// ParsePhase converts a string to Phase
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "down":
		return PhaseDown, nil
	case "move":
		return PhaseMove, nil
	case "up":
		return PhaseUp, nil
	case "leave":
		return PhaseLeave, nil
	default:
		return 0, fmt.Errorf("unknown pointer phase: %s", s)
	}
}

// PointerResult reports what a pointer event did
type PointerResult struct {
	OK      bool        `json:"ok"`
	Region  string      `json:"region,omitempty"`
	Gesture string      `json:"gesture,omitempty"`
	Rect    *types.Rect `json:"rect,omitempty"`
	Window  string      `json:"window,omitempty"`
}

// Session is the actor wrapping a desktop
type Session struct {
	requests chan func()
	quit     chan struct{}
	stopped  chan struct{}
	once     sync.Once

	// Owned by the loop goroutine
	desk      *desktop.Desktop
	instances map[string]*window.Instance
	active    string
	metrics   window.Metrics
	live      bool
}

// Option configures a Session
type Option func(*Session)

// WithMetrics sets the chrome metrics used for hit-testing
func WithMetrics(m window.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithLiveUpdates streams geometry to the desktop on every pointer move
func WithLiveUpdates(on bool) Option {
	return func(s *Session) { s.live = on }
}

// New starts a session owning desk. The caller must not touch desk
// directly afterwards.
func New(desk *desktop.Desktop, opts ...Option) *Session {
	s := &Session{
		requests:  make(chan func()),
		quit:      make(chan struct{}),
		stopped:   make(chan struct{}),
		desk:      desk,
		instances: make(map[string]*window.Instance),
		metrics:   window.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.stopped)
	for {
		select {
		case fn := <-s.requests:
			fn()
		case <-s.quit:
			return
		}
	}
}

// Close stops the session goroutine and waits for it to exit
func (s *Session) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.stopped
}

// Do runs fn on the session goroutine and waits for it to finish. ctx only
// bounds the wait for the loop to accept fn; once accepted, Do waits for fn
// so values it captured are never read while fn still writes them.
func (s *Session) Do(ctx context.Context, fn func(d *desktop.Desktop)) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn(s.desk)
		s.prune()
	}

	select {
	case s.requests <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return ErrClosed
	}

	select {
	case <-done:
		return nil
	case <-s.stopped:
		return ErrClosed
	}
}

// Reload swaps the registry used for new windows
func (s *Session) Reload(ctx context.Context, reg *registry.Registry) error {
	return s.Do(ctx, func(d *desktop.Desktop) {
		d.SetRegistry(reg)
		logging.Info().Int("apps", reg.Len()).Msg("registry reloaded")
	})
}

// Pointer routes one pointer event. Presses go to the window named by id.
// Move, up and leave go to the window owning the gesture in progress; id may
// be empty for those, and a non-matching id is ignored.
func (s *Session) Pointer(ctx context.Context, id string, phase Phase, p types.Point) (PointerResult, error) {
	var res PointerResult
	err := s.Do(ctx, func(d *desktop.Desktop) {
		res = s.pointer(d, id, phase, p)
	})
	return res, err
}

func (s *Session) pointer(d *desktop.Desktop, id string, phase Phase, p types.Point) PointerResult {
	if phase == PhaseDown {
		// A press while another gesture is open ends that gesture first
		if s.active != "" {
			if in, ok := s.instances[s.active]; ok {
				in.PointerLeave()
			}
			s.active = ""
		}

		w, ok := d.Get(id)
		if !ok || w.IsMinimized {
			return PointerResult{Window: id}
		}
		in := s.instance(w)
		region := in.PointerDown(p, w.Rect)
		if in.Active() {
			s.active = id
		}
		res := PointerResult{OK: region != window.RegionNone, Region: region.String(), Gesture: in.Gesture().String(), Window: id}
		if cur, ok := in.Current(); ok {
			res.Rect = &cur
		}
		return res
	}

	if s.active == "" || (id != "" && id != s.active) {
		return PointerResult{Window: id}
	}
	in := s.instances[s.active]
	res := PointerResult{Window: s.active, Gesture: in.Gesture().String()}

	var r types.Rect
	var ok bool
	switch phase {
	case PhaseMove:
		r, ok = in.PointerMove(p)
	case PhaseUp:
		r, ok = in.PointerUp(p)
	case PhaseLeave:
		r, ok = in.PointerLeave()
	default:
		return res
	}
	if !in.Active() {
		s.active = ""
	}

	res.OK = ok
	if ok {
		res.Rect = &r
	}
	return res
}

// instance returns the input handler for w, creating it on first use
func (s *Session) instance(w desktop.WindowState) *window.Instance {
	if in, ok := s.instances[w.ID]; ok {
		return in
	}
	in := window.New(w.ID, s.desk, s.metrics, w.Closable, window.WithLiveUpdates(s.live))
	s.instances[w.ID] = in
	return in
}

// Metrics returns the chrome metrics in use
func (s *Session) Metrics() window.Metrics {
	return s.metrics
}

// prune drops instances of closed windows and cancels a gesture whose
// window was minimized by the request that just ran
func (s *Session) prune() {
	for id, in := range s.instances {
		w, ok := s.desk.Get(id)
		switch {
		case !ok:
			delete(s.instances, id)
		case w.IsMinimized:
			in.Cancel()
		default:
			continue
		}
		if s.active == id {
			s.active = ""
		}
	}
}
