package layout

import (
	"fmt"
	"math"

	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/types"
)

// Mode is an arrangement style
type Mode int

const (
	ModeTile Mode = iota
	ModeCascade
)

// DefaultCascadeStep is the offset between cascaded windows
const DefaultCascadeStep = 30

// String returns the string representation of a Mode
func (m Mode) String() string {
	switch m {
	case ModeTile:
		return "tile"
	case ModeCascade:
		return "cascade"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tile":
		return ModeTile, nil
	case "cascade":
		return ModeCascade, nil
	default:
		return ModeTile, fmt.Errorf("unknown arrangement: %s (want tile or cascade)", s)
	}
}

// Tile splits area into n cells, as square as possible. Rows are filled
// top to bottom; a short last row stretches its cells to the full width.
func Tile(area types.Rect, n, gap int) []types.Rect {
	if n <= 0 {
		return nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	rowSizes := CalculateTracks(Fr(rows), area.Height, gap)
	rowPos := CalculateTrackPositions(rowSizes, gap)

	cells := make([]types.Rect, 0, n)
	for r := 0; r < rows; r++ {
		inRow := cols
		if left := n - r*cols; left < cols {
			inRow = left
		}
		colSizes := CalculateTracks(Fr(inRow), area.Width, gap)
		colPos := CalculateTrackPositions(colSizes, gap)

		for c := 0; c < inRow; c++ {
			cells = append(cells, types.Rect{
				Left:   area.Left + colPos[c],
				Top:    area.Top + rowPos[r],
				Width:  colSizes[c],
				Height: rowSizes[r],
			})
		}
	}
	return cells
}

// Cascade staggers windows of the given sizes down and to the right by
// step. The stagger restarts at the origin when the next window would run
// past the bottom or right of area.
func Cascade(area types.Rect, sizes []types.Size, step int) []types.Rect {
	if step <= 0 {
		step = DefaultCascadeStep
	}

	out := make([]types.Rect, len(sizes))
	k := 0
	for i, s := range sizes {
		r := types.Rect{Left: area.Left + k*step, Top: area.Top + k*step, Width: s.Width, Height: s.Height}
		if k > 0 && (r.Right() > area.Right() || r.Bottom() > area.Bottom()) {
			k = 0
			r.Left, r.Top = area.Left, area.Top
		}
		out[i] = r
		k++
	}
	return out
}

// Arrange lays out every visible window in z-order, bottom first. gap is the
// space between tiles, or the cascade step. Focus and stacking are
// unchanged; each rectangle goes through UpdateGeometry, so minimum sizes
// and the visible margin still apply. Returns the number of windows arranged.
func Arrange(d *desktop.Desktop, mode Mode, gap int) int {
	visible := d.Visible()
	if len(visible) == 0 {
		return 0
	}
	area := d.Viewport().Bounds()

	var rects []types.Rect
	switch mode {
	case ModeCascade:
		sizes := make([]types.Size, len(visible))
		for i, w := range visible {
			sizes[i] = w.Rect.Size()
		}
		rects = Cascade(area, sizes, gap)
	default:
		rects = Tile(area, len(visible), gap)
	}

	for i, w := range visible {
		d.UpdateGeometry(w.ID, rects[i])
	}

	logging.Info().Str("mode", mode.String()).Int("windows", len(visible)).Msg("arranged windows")
	return len(visible)
}
