package script

import (
	"context"
	"fmt"
	"slices"

	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/focus"
	"github.com/yourusername/webdesk/internal/layout"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/models"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/session"
	"github.com/yourusername/webdesk/internal/types"
	"github.com/yourusername/webdesk/internal/window"
)

// StepResult is the outcome of one step
type StepResult struct {
	Index  int    `json:"index"`
	Op     string `json:"op"`
	OK     bool   `json:"ok"`
	Window string `json:"window,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Result is the outcome of a whole run
type Result struct {
	Steps   []StepResult      `json:"steps"`
	Aliases map[string]string `json:"aliases"`
	Final   *models.State     `json:"final"`
	Failed  int               `json:"failed"` // Failed expectations
}

// Options tune a run
type Options struct {
	Registry *registry.Registry
	Metrics  window.Metrics
	Viewport types.Size // Used when the script does not set one
}

// Run replays s against a fresh desktop. Steps that hit a missing window
// or an unknown app are recorded as not OK; a failed expectation is counted
// in Result.Failed. An error is returned only for a broken script or an
// invariant violation.
func Run(ctx context.Context, s *Script, opts Options) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	if opts.Metrics == (window.Metrics{}) {
		opts.Metrics = window.DefaultMetrics()
	}
	viewport := s.Viewport
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = opts.Viewport
	}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = config.DefaultViewport
	}

	d := desktop.New(reg, viewport, desktop.WithInvariantChecks())
	sess := session.New(d, session.WithMetrics(opts.Metrics), session.WithLiveUpdates(s.LiveResize))
	defer sess.Close()

	r := &runner{sess: sess, aliases: make(map[string]string), metrics: opts.Metrics}
	res := &Result{Aliases: r.aliases}

	for i, st := range s.Steps {
		sr, err := r.step(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
		sr.Index = i + 1
		sr.Op = st.Op
		if st.Op == OpExpect && !sr.OK {
			res.Failed++
		}
		res.Steps = append(res.Steps, sr)

		var invErr error
		if err := sess.Do(ctx, func(d *desktop.Desktop) { invErr = d.CheckInvariants() }); err != nil {
			return nil, err
		}
		if invErr != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Op, invErr)
		}

		logging.Debug().Int("step", i+1).Str("op", st.Op).Bool("ok", sr.OK).Msg("script step")
	}

	err := sess.Do(ctx, func(d *desktop.Desktop) { res.Final = models.FromDesktop(d, opts.Metrics) })
	if err != nil {
		return nil, err
	}
	return res, nil
}

type runner struct {
	sess    *session.Session
	aliases map[string]string
	metrics window.Metrics
}

// resolve maps an alias to a window id. Unknown names pass through so a
// script can address a window that was never opened.
func (r *runner) resolve(name string) string {
	if id, ok := r.aliases[name]; ok {
		return id
	}
	return name
}

// alias maps a window id back to its alias for reporting
func (r *runner) alias(id string) string {
	for name, wid := range r.aliases {
		if wid == id {
			return name
		}
	}
	return id
}

func (r *runner) step(ctx context.Context, st Step) (StepResult, error) {
	var sr StepResult
	var err error

	switch st.Op {
	case OpOpen:
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			var id string
			id, sr.OK = d.Open(st.App, st.Rect)
			if sr.OK {
				name := st.As
				if name == "" {
					name = id
				}
				r.aliases[name] = id
				sr.Window = name
			} else {
				sr.Detail = "unknown app " + st.App
			}
		})

	case OpFocus, OpMinimize, OpRestore, OpClose:
		kind := map[string]desktop.IntentKind{
			OpFocus:    desktop.IntentInteract,
			OpMinimize: desktop.IntentMinimize,
			OpRestore:  desktop.IntentRestore,
			OpClose:    desktop.IntentClose,
		}[st.Op]
		sr.Window = st.Window
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			sr.OK = d.Dispatch(desktop.Intent{Kind: kind, WindowID: r.resolve(st.Window)})
		})

	case OpMove, OpResize, OpUpdate:
		sr.Window = st.Window
		edge, _ := types.ParseEdge(st.Edge)
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			id := r.resolve(st.Window)
			w, ok := d.Get(id)
			if !ok {
				return
			}
			c, _ := d.Constraints(id)
			next := w.Rect
			switch st.Op {
			case OpMove:
				next = c.Drag(w.Rect, st.DX, st.DY)
			case OpResize:
				next = c.Resize(w.Rect, st.DX, st.DY, edge)
			case OpUpdate:
				next = *st.Rect
			}
			sr.OK = d.UpdateGeometry(id, next)
			w, _ = d.Get(id)
			sr.Detail = w.Rect.String()
		})

	case OpPointer:
		phase, perr := session.ParsePhase(st.Phase)
		if perr != nil {
			return sr, perr
		}
		id := ""
		if st.Window != "" {
			id = r.resolve(st.Window)
		}
		var pr session.PointerResult
		pr, err = r.sess.Pointer(ctx, id, phase, types.Point{X: st.X, Y: st.Y})
		sr.OK = pr.OK
		sr.Window = r.alias(pr.Window)
		sr.Detail = pr.Region
		if pr.Rect != nil {
			sr.Detail = pr.Rect.String()
		}

	case OpBlur:
		err = r.sess.Do(ctx, func(d *desktop.Desktop) { d.Blur() })
		sr.OK = true

	case OpViewport:
		size := types.Size{Width: st.Width, Height: st.Height}
		err = r.sess.Do(ctx, func(d *desktop.Desktop) { d.SetViewport(size) })
		sr.OK = true
		sr.Detail = size.String()

	case OpFocusDir:
		dir, _ := types.ParseDirection(st.Direction)
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			var id string
			id, sr.OK = focus.MoveFocus(d, dir, st.Wrap)
			sr.Window = r.alias(id)
		})

	case OpCycle:
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			var id string
			id, sr.OK = focus.CycleFocus(d, !st.Reverse)
			sr.Window = r.alias(id)
		})

	case OpArrange:
		mode, _ := layout.ParseMode(st.Mode)
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			n := layout.Arrange(d, mode, st.Gap)
			sr.OK = true
			sr.Detail = fmt.Sprintf("%d windows", n)
		})

	case OpExpect:
		err = r.sess.Do(ctx, func(d *desktop.Desktop) {
			sr.Detail = r.check(d, st.Expect)
			sr.OK = sr.Detail == ""
		})

	default:
		return sr, fmt.Errorf("unknown op %q", st.Op)
	}

	return sr, err
}

// check returns a description of the first unmet expectation, or ""
func (r *runner) check(d *desktop.Desktop, e *Expect) string {
	if e.Count != nil && d.Len() != *e.Count {
		return fmt.Sprintf("count = %d, want %d", d.Len(), *e.Count)
	}

	if e.Focused != nil {
		got := ""
		if w, ok := d.Focused(); ok {
			got = r.alias(w.ID)
		}
		if got != *e.Focused {
			return fmt.Sprintf("focused = %q, want %q", got, *e.Focused)
		}
	}

	if e.Order != nil {
		got := make([]string, 0, d.Len())
		for _, id := range d.IDs() {
			got = append(got, r.alias(id))
		}
		if !slices.Equal(got, e.Order) {
			return fmt.Sprintf("order = %v, want %v", got, e.Order)
		}
	}

	for _, name := range e.Minimized {
		w, ok := d.Get(r.resolve(name))
		if !ok || !w.IsMinimized {
			return fmt.Sprintf("%s is not minimized", name)
		}
	}

	if e.Rect != nil {
		w, ok := d.Get(r.resolve(e.Rect.Window))
		if !ok {
			return fmt.Sprintf("%s is not open", e.Rect.Window)
		}
		if w.Rect != e.Rect.Is {
			return fmt.Sprintf("%s rect = %s, want %s", e.Rect.Window, w.Rect, e.Rect.Is)
		}
	}

	return ""
}
