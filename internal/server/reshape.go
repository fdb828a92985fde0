package server

import (
	"context"

	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/types"
)

// reshape computes a new rectangle for a window from its current one and
// applies it as a single geometry change
func (s *Server) reshape(ctx context.Context, id string, fn func(c geometry.Constraints, r types.Rect) types.Rect) (map[string]interface{}, error) {
	var (
		ok   bool
		rect types.Rect
	)
	err := s.session.Do(ctx, func(d *desktop.Desktop) {
		w, found := d.Get(id)
		if !found {
			return
		}
		c, _ := d.Constraints(id)
		if ok = d.Dispatch(desktop.GeometryChange(id, fn(c, w.Rect))); ok {
			w, _ = d.Get(id)
			rect = w.Rect
		}
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]interface{}{"ok": false, "window": id}, nil
	}
	return map[string]interface{}{"ok": true, "window": id, "rect": rect}, nil
}
