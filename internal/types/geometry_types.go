package types

import "fmt"

// Rect is a window rectangle in viewport pixels
type Rect struct {
	Top    int `json:"top" yaml:"top"`       // Distance from viewport top
	Left   int `json:"left" yaml:"left"`     // Distance from viewport left
	Width  int `json:"width" yaml:"width"`   // Width in pixels
	Height int `json:"height" yaml:"height"` // Height in pixels
}

// Point is a pointer position in viewport pixels
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair (viewport bounds, minimum window size)
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Right returns the exclusive right edge
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() int { return r.Top + r.Height }

// Size returns the rectangle's dimensions
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner
func (r Rect) Origin() Point { return Point{X: r.Left, Y: r.Top} }

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.Left + r.Width/2,
		Y: r.Top + r.Height/2,
	}
}

// Contains checks if a point is inside the rect. The right and bottom edges
// are exclusive so adjacent rectangles never both claim a pixel.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() &&
		p.Y >= r.Top && p.Y < r.Bottom()
}

// Intersection returns the overlapping area of two rects, or the zero Rect
func (r Rect) Intersection(other Rect) Rect {
	left := max(r.Left, other.Left)
	right := min(r.Right(), other.Right())
	top := max(r.Top, other.Top)
	bottom := min(r.Bottom(), other.Bottom())

	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Top: top, Left: left, Width: right - left, Height: bottom - top}
}

// Intersects reports whether the two rects share at least one pixel
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersection(other).Empty()
}

// Empty reports whether the rect covers no pixels
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String formats the rect as "WxH @ (left, top)"
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d @ (%d, %d)", r.Width, r.Height, r.Left, r.Top)
}

// Bounds returns the rect covering a viewport of this size at the origin
func (s Size) Bounds() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// String formats the size as "WxH"
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Edge identifies the border (or corner) a resize gesture drags.
// Corners are the union of two adjacent edges.
type Edge uint8

const (
	EdgeNone   Edge = 0
	EdgeTop    Edge = 1 << 0
	EdgeBottom Edge = 1 << 1
	EdgeLeft   Edge = 1 << 2
	EdgeRight  Edge = 1 << 3

	EdgeTopLeft     = EdgeTop | EdgeLeft
	EdgeTopRight    = EdgeTop | EdgeRight
	EdgeBottomLeft  = EdgeBottom | EdgeLeft
	EdgeBottomRight = EdgeBottom | EdgeRight
)

// Has reports whether e includes the given side
func (e Edge) Has(side Edge) bool {
	return e&side != 0
}

// Leading reports whether the edge moves the window origin (top or left)
func (e Edge) Leading() bool {
	return e.Has(EdgeTop) || e.Has(EdgeLeft)
}

// String returns the string representation of an Edge
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTopLeft:
		return "top-left"
	case EdgeTopRight:
		return "top-right"
	case EdgeBottomLeft:
		return "bottom-left"
	case EdgeBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ParseEdge converts a string to Edge
func ParseEdge(s string) (Edge, bool) {
	switch s {
	case "top":
		return EdgeTop, true
	case "bottom":
		return EdgeBottom, true
	case "left":
		return EdgeLeft, true
	case "right":
		return EdgeRight, true
	case "top-left":
		return EdgeTopLeft, true
	case "top-right":
		return EdgeTopRight, true
	case "bottom-left":
		return EdgeBottomLeft, true
	case "bottom-right", "corner":
		return EdgeBottomRight, true
	default:
		return EdgeNone, false
	}
}

// Direction is a screen direction for focus navigation
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	default:
		return DirLeft, false
	}
}
