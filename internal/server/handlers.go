package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/models"
	"github.com/yourusername/webdesk/internal/session"
	"github.com/yourusername/webdesk/internal/types"
)

type handlerFunc func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error)

// paramError marks a request whose params could not be decoded or validated
type paramError struct{ err error }

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func invalidParams(format string, args ...interface{}) error {
	return &paramError{err: fmt.Errorf(format, args...)}
}

func (s *Server) routes() map[string]handlerFunc {
	return map[string]handlerFunc{
		"ping":            s.handlePing,
		"apps.list":       s.handleAppsList,
		"desktop.dump":    s.handleDump,
		"desktop.blur":    s.handleBlur,
		"viewport.set":    s.handleViewport,
		"window.open":     s.handleOpen,
		"window.focus":    s.lifecycle(desktop.IntentInteract),
		"window.minimize": s.lifecycle(desktop.IntentMinimize),
		"window.restore":  s.lifecycle(desktop.IntentRestore),
		"window.close":    s.lifecycle(desktop.IntentClose),
		"window.move":     s.handleMove,
		"window.resize":   s.handleResize,
		"window.update":   s.handleUpdate,
		"window.pointer":  s.handlePointer,

		"window.focusDirection": s.handleFocusDirection,
		"window.cycle":          s.handleCycle,
		"desktop.arrange":       s.handleArrange,
	}
}

// Methods returns the supported method names
func (s *Server) Methods() []string {
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	return names
}

// Handle runs one request and builds its response envelope
func (s *Server) Handle(ctx context.Context, req *models.Request) *models.MessageEnvelope {
	h, ok := s.methods[req.Method]
	if !ok {
		logging.Debug().Str("method", req.Method).Msg("unknown method")
		return models.NewErrorResponse(req.ID, models.CodeMethodNotFound, "unknown method: %s", req.Method)
	}

	result, err := h(ctx, req.Params)
	if err != nil {
		var pe *paramError
		if errors.As(err, &pe) {
			return models.NewErrorResponse(req.ID, models.CodeInvalidParams, "invalid params: %v", pe.err)
		}
		logging.Error().Err(err).Str("method", req.Method).Msg("request failed")
		return models.NewErrorResponse(req.ID, models.CodeInternalError, "%v", err)
	}

	logging.Debug().Str("method", req.Method).Str("id", req.ID).Msg("request handled")
	return models.NewResponse(req.ID, result)
}

func decodeParams(params map[string]interface{}, v interface{}) error {
	if params == nil {
		params = map[string]interface{}{}
	}
	if err := models.Decode(params, v); err != nil {
		return &paramError{err: err}
	}
	return nil
}

type windowParams struct {
	Window string `json:"window"`
}

func (p windowParams) validate() error {
	if p.Window == "" {
		return invalidParams("window is required")
	}
	return nil
}

func (s *Server) handlePing(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	var n int
	if err := s.session.Do(ctx, func(d *desktop.Desktop) { n = d.Len() }); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"pong":    true,
		"uptime":  time.Since(s.startTime).Seconds(),
		"windows": n,
		"version": Version,
	}, nil
}

func (s *Server) handleAppsList(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	var apps []*models.App
	if err := s.session.Do(ctx, func(d *desktop.Desktop) { apps = models.AppsFromRegistry(d.Registry()) }); err != nil {
		return nil, err
	}
	return map[string]interface{}{"apps": apps}, nil
}

func (s *Server) handleDump(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	var state *models.State
	if err := s.session.Do(ctx, func(d *desktop.Desktop) { state = models.FromDesktop(d, s.session.Metrics()) }); err != nil {
		return nil, err
	}
	return models.ToMap(state)
}

func (s *Server) handleBlur(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	if err := s.session.Do(ctx, func(d *desktop.Desktop) { d.Blur() }); err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": true}, nil
}

func (s *Server) handleViewport(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p types.Size
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, invalidParams("viewport must be positive, got %s", p)
	}

	if err := s.session.Do(ctx, func(d *desktop.Desktop) { d.SetViewport(p) }); err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": true, "viewport": p}, nil
}

func (s *Server) handleOpen(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		App  string      `json:"app"`
		Rect *types.Rect `json:"rect"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.App == "" {
		return nil, invalidParams("app is required")
	}

	var w desktop.WindowState
	var ok bool
	err := s.session.Do(ctx, func(d *desktop.Desktop) {
		var id string
		if id, ok = d.Open(p.App, p.Rect); ok {
			w, _ = d.Get(id)
		}
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]interface{}{"ok": false}, nil
	}
	return map[string]interface{}{"ok": true, "window": w.ID, "rect": w.Rect}, nil
}

// lifecycle handles the window methods that map one-to-one onto an intent
func (s *Server) lifecycle(kind desktop.IntentKind) handlerFunc {
	return func(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
		var p windowParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		if err := p.validate(); err != nil {
			return nil, err
		}

		var ok bool
		err := s.session.Do(ctx, func(d *desktop.Desktop) {
			ok = d.Dispatch(desktop.Intent{Kind: kind, WindowID: p.Window})
		})
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"ok": ok, "window": p.Window}, nil
	}
}

func (s *Server) handleMove(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		windowParams
		DX int `json:"dx"`
		DY int `json:"dy"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return s.reshape(ctx, p.Window, func(c geometry.Constraints, r types.Rect) types.Rect {
		return c.Drag(r, p.DX, p.DY)
	})
}

func (s *Server) handleResize(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		windowParams
		Edge string `json:"edge"`
		DX   int    `json:"dx"`
		DY   int    `json:"dy"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	edge, ok := types.ParseEdge(p.Edge)
	if !ok {
		return nil, invalidParams("unknown edge: %q", p.Edge)
	}

	return s.reshape(ctx, p.Window, func(c geometry.Constraints, r types.Rect) types.Rect {
		return c.Resize(r, p.DX, p.DY, edge)
	})
}

func (s *Server) handleUpdate(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		windowParams
		Rect *types.Rect `json:"rect"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Rect == nil {
		return nil, invalidParams("rect is required")
	}

	return s.reshape(ctx, p.Window, func(_ geometry.Constraints, _ types.Rect) types.Rect {
		return *p.Rect
	})
}

func (s *Server) handlePointer(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		Window string `json:"window"`
		Phase  string `json:"phase"`
		X      int    `json:"x"`
		Y      int    `json:"y"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	phase, err := session.ParsePhase(p.Phase)
	if err != nil {
		return nil, &paramError{err: err}
	}
	if phase == session.PhaseDown && p.Window == "" {
		return nil, invalidParams("window is required for a press")
	}

	res, err := s.session.Pointer(ctx, p.Window, phase, types.Point{X: p.X, Y: p.Y})
	if err != nil {
		return nil, err
	}
	return models.ToMap(res)
}
