package server

import (
	"context"

	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/focus"
	"github.com/yourusername/webdesk/internal/layout"
	"github.com/yourusername/webdesk/internal/types"
)

func (s *Server) handleFocusDirection(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		Direction string `json:"direction"`
		Wrap      bool   `json:"wrap"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	dir, ok := types.ParseDirection(p.Direction)
	if !ok {
		return nil, invalidParams("unknown direction: %q", p.Direction)
	}

	var id string
	err := s.session.Do(ctx, func(d *desktop.Desktop) { id, ok = focus.MoveFocus(d, dir, p.Wrap) })
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": ok, "window": id}, nil
}

func (s *Server) handleCycle(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		Reverse bool `json:"reverse"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	var id string
	var ok bool
	err := s.session.Do(ctx, func(d *desktop.Desktop) { id, ok = focus.CycleFocus(d, !p.Reverse) })
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": ok, "window": id}, nil
}

func (s *Server) handleArrange(ctx context.Context, params map[string]interface{}) (map[string]interface{}, error) {
	var p struct {
		Mode string `json:"mode"`
		Gap  int    `json:"gap"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Mode == "" {
		p.Mode = layout.ModeTile.String()
	}
	mode, err := layout.ParseMode(p.Mode)
	if err != nil {
		return nil, invalidParams("%v", err)
	}
	if p.Gap < 0 {
		return nil, invalidParams("gap cannot be negative")
	}

	var n int
	if err := s.session.Do(ctx, func(d *desktop.Desktop) { n = layout.Arrange(d, mode, p.Gap) }); err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": true, "arranged": n}, nil
}
