package desktop

import (
	"errors"
	"fmt"

	"github.com/yourusername/webdesk/internal/geometry"
)

// CheckInvariants verifies the collection. It returns every violation found
// joined into one error, or nil.
func (d *Desktop) CheckInvariants() error {
	var errs []error

	seen := make(map[string]bool, len(d.windows))
	focused := 0
	for i, w := range d.windows {
		if w.ID == "" {
			errs = append(errs, fmt.Errorf("window %d has no id", i))
		}
		if seen[w.ID] {
			errs = append(errs, fmt.Errorf("duplicate window id %s", w.ID))
		}
		seen[w.ID] = true

		if w.IsFocused {
			focused++
			if i != len(d.windows)-1 {
				errs = append(errs, fmt.Errorf("focused window %s is at %d, not topmost", w.ID, i))
			}
			if w.IsMinimized {
				errs = append(errs, fmt.Errorf("focused window %s is minimized", w.ID))
			}
		}

		c := d.constraintsFor(w)
		if w.Rect.Width < c.MinSize.Width || w.Rect.Height < c.MinSize.Height {
			errs = append(errs, fmt.Errorf("window %s is %dx%d, below minimum %s",
				w.ID, w.Rect.Width, w.Rect.Height, c.MinSize))
		}
		if c.Bounds.Width > 0 && c.Bounds.Height > 0 && !geometry.IsVisible(w.Rect, c.Bounds, c.Margin) {
			errs = append(errs, fmt.Errorf("window %s at %s is not visible in %s", w.ID, w.Rect, c.Bounds))
		}
	}

	if focused > 1 {
		errs = append(errs, fmt.Errorf("%d windows focused", focused))
	}

	return errors.Join(errs...)
}
