package desktop

// Windows returns copies of all windows in z-order, bottom first
func (d *Desktop) Windows() []WindowState {
	out := make([]WindowState, len(d.windows))
	for i, w := range d.windows {
		out[i] = *w
	}
	return out
}

// IDs returns window ids in z-order
func (d *Desktop) IDs() []string {
	ids := make([]string, len(d.windows))
	for i, w := range d.windows {
		ids[i] = w.ID
	}
	return ids
}

// Len returns the number of open windows, minimized ones included
func (d *Desktop) Len() int {
	return len(d.windows)
}

// Get returns a copy of the window with the given id
func (d *Desktop) Get(id string) (WindowState, bool) {
	if i := d.indexOf(id); i >= 0 {
		return *d.windows[i], true
	}
	return WindowState{}, false
}

// Focused returns the focused window, if any
func (d *Desktop) Focused() (WindowState, bool) {
	for _, w := range d.windows {
		if w.IsFocused {
			return *w, true
		}
	}
	return WindowState{}, false
}

// Topmost returns the last window in z-order, minimized or not
func (d *Desktop) Topmost() (WindowState, bool) {
	if len(d.windows) == 0 {
		return WindowState{}, false
	}
	return *d.windows[len(d.windows)-1], true
}

// Visible returns the non-minimized windows in z-order
func (d *Desktop) Visible() []WindowState {
	var out []WindowState
	for _, w := range d.windows {
		if !w.IsMinimized {
			out = append(out, *w)
		}
	}
	return out
}

// ByApp returns the windows opened for appID in z-order
func (d *Desktop) ByApp(appID string) []WindowState {
	var out []WindowState
	for _, w := range d.windows {
		if w.AppID == appID {
			out = append(out, *w)
		}
	}
	return out
}

// Summary returns a summary of the current state for display/debugging
func (d *Desktop) Summary() map[string]interface{} {
	minimized := 0
	apps := make(map[string]int)
	for _, w := range d.windows {
		if w.IsMinimized {
			minimized++
		}
		apps[w.AppID]++
	}

	focused := ""
	if w, ok := d.Focused(); ok {
		focused = w.ID
	}

	return map[string]interface{}{
		"viewport":    d.constraints.Bounds.String(),
		"windowCount": len(d.windows),
		"minimized":   minimized,
		"focused":     focused,
		"apps":        apps,
	}
}
