package output

import (
	"github.com/yourusername/webdesk/internal/types"
)

// Border is the number of canvas cells reserved around the viewport frame
const Border = 1

// ScalingContext maps viewport pixels onto terminal cells
type ScalingContext struct {
	Viewport types.Size

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	ScaleX float64
	ScaleY float64
}

// NewScalingContext fits viewport into a termWidth x termHeight canvas,
// leaving room for the viewport frame. Terminal cells are roughly twice as
// tall as they are wide, which falls out of fitting each axis separately.
func NewScalingContext(viewport types.Size, termWidth, termHeight int) *ScalingContext {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = types.Size{Width: 1280, Height: 800}
	}

	availWidth := termWidth - 2*Border
	availHeight := termHeight - 2*Border
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	return &ScalingContext{
		Viewport:   viewport,
		TermWidth:  availWidth + 2*Border,
		TermHeight: availHeight + 2*Border,
		ScaleX:     float64(availWidth) / float64(viewport.Width),
		ScaleY:     float64(availHeight) / float64(viewport.Height),
	}
}

// PixelToTerminal converts a viewport point to a canvas cell
func (sc *ScalingContext) PixelToTerminal(x, y int) (int, int) {
	return int(float64(x)*sc.ScaleX) + Border, int(float64(y)*sc.ScaleY) + Border
}

// ScaleSize converts pixel dimensions to cell dimensions, never smaller
// than a drawable 3x2 frame
func (sc *ScalingContext) ScaleSize(w, h int) (int, int) {
	termW := int(float64(w) * sc.ScaleX)
	termH := int(float64(h) * sc.ScaleY)
	if termW < 3 {
		termW = 3
	}
	if termH < 2 {
		termH = 2
	}
	return termW, termH
}

// RectToTerminal converts a window rect to a cell rect clipped to the
// inside of the viewport frame. ok is false when nothing of it is visible.
func (sc *ScalingContext) RectToTerminal(r types.Rect) (x, y, w, h int, ok bool) {
	x, y = sc.PixelToTerminal(r.Left, r.Top)
	w, h = sc.ScaleSize(r.Width, r.Height)

	lo, hiX, hiY := Border, sc.TermWidth-Border, sc.TermHeight-Border
	if x < lo {
		w -= lo - x
		x = lo
	}
	if y < lo {
		h -= lo - y
		y = lo
	}
	if x+w > hiX {
		w = hiX - x
	}
	if y+h > hiY {
		h = hiY - y
	}
	return x, y, w, h, w >= 3 && h >= 2
}
