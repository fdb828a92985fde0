// Package geometry holds the pure rectangle transforms behind window
// placement: clamping to the viewport, dragging and edge resizing.
package geometry

import "github.com/yourusername/webdesk/internal/types"

const (
	// DefaultMinWidth and DefaultMinHeight bound every window unless the
	// application asks for more.
	DefaultMinWidth  = 150
	DefaultMinHeight = 100

	// DefaultVisibleMargin is how many pixels of a window must stay on screen.
	DefaultVisibleMargin = 40
)

// Constraints bundles the bounds every rectangle is clamped against.
type Constraints struct {
	Bounds  types.Size // Viewport size
	MinSize types.Size // Per-window minimum size
	Margin  int        // Pixels that must remain visible
}

// DefaultConstraints returns constraints for a viewport with the default
// minimum size and visible margin.
func DefaultConstraints(viewport types.Size) Constraints {
	return Constraints{
		Bounds:  viewport,
		MinSize: types.Size{Width: DefaultMinWidth, Height: DefaultMinHeight},
		Margin:  DefaultVisibleMargin,
	}
}

// WithMinSize returns a copy of c using the larger of the two minimums on each axis.
func (c Constraints) WithMinSize(minSize types.Size) Constraints {
	c.MinSize = types.Size{
		Width:  max(c.MinSize.Width, minSize.Width),
		Height: max(c.MinSize.Height, minSize.Height),
	}
	return c
}

// Clamp applies ClampRectangle with c.
func (c Constraints) Clamp(r types.Rect) types.Rect {
	return ClampRectangle(r, c.Bounds, c.MinSize, c.Margin)
}

// Drag translates r by (dx, dy) and clamps the result.
func (c Constraints) Drag(r types.Rect, dx, dy int) types.Rect {
	return c.Clamp(ApplyDrag(r, dx, dy))
}

// Resize moves the given edge of r by the pointer offset (dx, dy) and clamps
// the result. The edge opposite a leading edge stays fixed even when the
// minimum or the viewport size caps the new size.
func (c Constraints) Resize(r types.Rect, dx, dy int, edge types.Edge) types.Rect {
	out := ApplyResize(r, dx, dy, edge, c.MinSize)

	if c.Bounds.Width > 0 {
		maxW := max(c.MinSize.Width, c.Bounds.Width)
		if out.Width > maxW {
			if edge.Has(types.EdgeLeft) {
				out.Left = r.Right() - maxW
			}
			out.Width = maxW
		}
	}
	if c.Bounds.Height > 0 {
		maxH := max(c.MinSize.Height, c.Bounds.Height)
		if out.Height > maxH {
			if edge.Has(types.EdgeTop) {
				out.Top = r.Bottom() - maxH
			}
			out.Height = maxH
		}
	}

	return c.Clamp(out)
}

// ClampRectangle bounds r's size to [min, max(min, bounds)] and moves it so
// that at least margin pixels stay inside bounds horizontally and the top
// row stays reachable (0 <= Top <= bounds.Height-margin). A bounds dimension
// of zero or less disables position clamping on that axis.
func ClampRectangle(r types.Rect, bounds, minSize types.Size, margin int) types.Rect {
	minW := max(minSize.Width, 1)
	minH := max(minSize.Height, 1)
	if margin < 1 {
		margin = 1
	}

	out := r

	out.Width = max(out.Width, minW)
	if bounds.Width > 0 {
		out.Width = clampInt(out.Width, minW, max(minW, bounds.Width))
		mx := minOf(margin, out.Width, bounds.Width)
		out.Left = clampInt(out.Left, mx-out.Width, bounds.Width-mx)
	}

	out.Height = max(out.Height, minH)
	if bounds.Height > 0 {
		out.Height = clampInt(out.Height, minH, max(minH, bounds.Height))
		my := minOf(margin, out.Height, bounds.Height)
		out.Top = clampInt(out.Top, 0, bounds.Height-my)
	}

	return out
}

// ApplyDrag translates r by (dx, dy). Callers clamp the result.
func ApplyDrag(r types.Rect, dx, dy int) types.Rect {
	return types.Rect{
		Top:    r.Top + dy,
		Left:   r.Left + dx,
		Width:  r.Width,
		Height: r.Height,
	}
}

// ApplyResize moves the given edge of r by the pointer offset (dx, dy).
// Trailing edges (right, bottom) only change the size. Leading edges (left,
// top) change position and size in lockstep so the opposite edge stays put,
// including when the minimum size stops the shrink.
func ApplyResize(r types.Rect, dx, dy int, edge types.Edge, minSize types.Size) types.Rect {
	minSize.Width = max(minSize.Width, 1)
	minSize.Height = max(minSize.Height, 1)
	out := r

	switch {
	case edge.Has(types.EdgeLeft):
		out.Width = r.Width - dx
		if out.Width < minSize.Width {
			out.Width = minSize.Width
		}
		out.Left = r.Right() - out.Width
	case edge.Has(types.EdgeRight):
		out.Width = max(r.Width+dx, minSize.Width)
	}

	switch {
	case edge.Has(types.EdgeTop):
		out.Height = r.Height - dy
		if out.Height < minSize.Height {
			out.Height = minSize.Height
		}
		out.Top = r.Bottom() - out.Height
	case edge.Has(types.EdgeBottom):
		out.Height = max(r.Height+dy, minSize.Height)
	}

	return out
}

// EdgeAt returns the resize edge whose border band of the given thickness
// contains p, or EdgeNone when p is outside r or in its interior.
func EdgeAt(r types.Rect, p types.Point, thickness int) types.Edge {
	if thickness <= 0 || !r.Contains(p) {
		return types.EdgeNone
	}

	edge := types.EdgeNone
	switch {
	case p.X < r.Left+thickness:
		edge |= types.EdgeLeft
	case p.X >= r.Right()-thickness:
		edge |= types.EdgeRight
	}
	switch {
	case p.Y < r.Top+thickness:
		edge |= types.EdgeTop
	case p.Y >= r.Bottom()-thickness:
		edge |= types.EdgeBottom
	}
	return edge
}

// IsVisible reports whether r keeps at least margin pixels inside bounds on both axes.
func IsVisible(r types.Rect, bounds types.Size, margin int) bool {
	in := r.Intersection(bounds.Bounds())
	need := max(margin, 1)
	return in.Width >= minOf(need, r.Width, bounds.Width) &&
		in.Height >= minOf(need, r.Height, bounds.Height)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minOf(v int, rest ...int) int {
	for _, r := range rest {
		if r < v {
			v = r
		}
	}
	return v
}
