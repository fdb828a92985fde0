// Package focus moves keyboard-style focus between open windows, either
// spatially or by cycling through the stack.
package focus

import (
	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/types"
)

// Targets returns the rectangles of every non-minimized window
func Targets(d *desktop.Desktop) map[string]types.Rect {
	out := make(map[string]types.Rect)
	for _, w := range d.Visible() {
		out[w.ID] = w.Rect
	}
	return out
}

// origin is the focused window, or the topmost visible one when the
// desktop itself has focus
func origin(d *desktop.Desktop) (string, bool) {
	if w, ok := d.Focused(); ok {
		return w.ID, true
	}
	visible := d.Visible()
	if len(visible) == 0 {
		return "", false
	}
	return visible[len(visible)-1].ID, true
}

// MoveFocus focuses the nearest visible window in direction and returns its
// id. Returns false when there is nowhere to go.
func MoveFocus(d *desktop.Desktop, direction types.Direction, wrapAround bool) (string, bool) {
	from, ok := origin(d)
	if !ok {
		return "", false
	}

	target, ok := FindTarget(from, direction, Targets(d), wrapAround)
	if !ok {
		logging.Debug().Str("from", from).Str("direction", direction.String()).Msg("no window in direction")
		return "", false
	}
	return target, d.Focus(target)
}

// CycleFocus rotates through the visible windows. Forward raises the
// bottom-most visible window, so repeated calls visit every window. Backward
// raises the window just below the top, switching between the two most
// recent.
func CycleFocus(d *desktop.Desktop, forward bool) (string, bool) {
	visible := d.Visible()
	if len(visible) == 0 {
		return "", false
	}

	var target string
	switch {
	case len(visible) == 1:
		target = visible[0].ID
	case forward:
		target = visible[0].ID
	default:
		target = visible[len(visible)-2].ID
	}
	return target, d.Focus(target)
}
