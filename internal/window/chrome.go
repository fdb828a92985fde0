package window

import (
	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/types"
)

// Metrics sizes the window chrome in pixels
type Metrics struct {
	TitleBarHeight  int `json:"titleBarHeight"`
	HandleThickness int `json:"handleThickness"`
	ControlWidth    int `json:"controlWidth"`
}

// DefaultMetrics returns the stock chrome sizes
func DefaultMetrics() Metrics {
	return Metrics{TitleBarHeight: 24, HandleThickness: 6, ControlWidth: 20}
}

// Region is the part of a window a pointer press landed on
type Region uint8

const (
	RegionNone Region = iota
	RegionClose
	RegionMinimize
	RegionBorder
	RegionTitleBar
	RegionContent
)

// String returns the string representation of a Region
func (r Region) String() string {
	switch r {
	case RegionClose:
		return "close"
	case RegionMinimize:
		return "minimize"
	case RegionBorder:
		return "border"
	case RegionTitleBar:
		return "titlebar"
	case RegionContent:
		return "content"
	default:
		return "none"
	}
}

// TitleBar returns the title bar strip of rect
func (m Metrics) TitleBar(rect types.Rect) types.Rect {
	return types.Rect{
		Top:    rect.Top,
		Left:   rect.Left,
		Width:  rect.Width,
		Height: min(m.TitleBarHeight, rect.Height),
	}
}

// Controls returns the close and minimize buttons at the right end of the
// title bar. The close rect is empty when the window is not closable, and
// minimize then takes its place.
func (m Metrics) Controls(rect types.Rect, closable bool) (closeBtn, minimizeBtn types.Rect) {
	bar := m.TitleBar(rect)
	w := min(m.ControlWidth, bar.Width)
	right := bar.Right()

	if closable {
		closeBtn = types.Rect{Top: bar.Top, Left: right - w, Width: w, Height: bar.Height}
		right -= w
	}
	minimizeBtn = types.Rect{Top: bar.Top, Left: right - w, Width: w, Height: bar.Height}
	return closeBtn, minimizeBtn
}

// Content returns the area below the title bar
func (m Metrics) Content(rect types.Rect) types.Rect {
	bar := m.TitleBar(rect)
	return types.Rect{
		Top:    bar.Bottom(),
		Left:   rect.Left,
		Width:  rect.Width,
		Height: rect.Height - bar.Height,
	}
}

// HitTest classifies a press at p. Priority: close, minimize, resize
// border, title bar, content.
func (m Metrics) HitTest(rect types.Rect, p types.Point, closable bool) Region {
	if !rect.Contains(p) {
		return RegionNone
	}

	closeBtn, minimizeBtn := m.Controls(rect, closable)
	switch {
	case closable && closeBtn.Contains(p):
		return RegionClose
	case minimizeBtn.Contains(p):
		return RegionMinimize
	case geometry.EdgeAt(rect, p, m.HandleThickness) != types.EdgeNone:
		return RegionBorder
	case m.TitleBar(rect).Contains(p):
		return RegionTitleBar
	default:
		return RegionContent
	}
}

// Props is what the content payload sees of its window
type Props struct {
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	Visible bool `json:"visible"`
}

// ContentProps returns the content size for w. Minimized windows get zero
// size.
func ContentProps(w desktop.WindowState, m Metrics) Props {
	if w.IsMinimized {
		return Props{}
	}
	c := m.Content(w.Rect)
	return Props{Width: max(c.Width, 0), Height: max(c.Height, 0), Visible: true}
}
