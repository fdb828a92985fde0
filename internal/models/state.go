package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yourusername/webdesk/internal/desktop"
	"github.com/yourusername/webdesk/internal/registry"
	"github.com/yourusername/webdesk/internal/types"
	"github.com/yourusername/webdesk/internal/window"
)

// State is the JSON view of a desktop returned by desktop.dump
type State struct {
	Viewport types.Size     `json:"viewport"`
	Windows  []*Window      `json:"windows"` // z-order, bottom first
	Focused  string         `json:"focused,omitempty"`
	Metrics  window.Metrics `json:"metrics"`
}

// Window is the JSON view of one open window
type Window struct {
	ID          string       `json:"id"`
	AppID       string       `json:"appId"`
	Title       string       `json:"title"`
	Rect        types.Rect   `json:"rect"`
	Z           int          `json:"z"` // Position in the collection, 0 = bottom
	BarColor    string       `json:"barColor,omitempty"`
	BarIcon     string       `json:"barIcon,omitempty"`
	MinSize     types.Size   `json:"minSize"`
	IsMinimized bool         `json:"isMinimized"`
	IsFocused   bool         `json:"isFocused"`
	Closable    bool         `json:"closable"`
	FooterText  string       `json:"footerText,omitempty"`
	Props       window.Props `json:"props"`
}

// App is the JSON view of a registry entry
type App struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	DefaultRect types.Rect `json:"defaultRect"`
	MinSize     types.Size `json:"minSize"`
	Closable    bool       `json:"closable"`
	BarColor    string     `json:"barColor,omitempty"`
	Content     string     `json:"content,omitempty"`
}

// FromDesktop builds the view of d
func FromDesktop(d *desktop.Desktop, m window.Metrics) *State {
	s := &State{Viewport: d.Viewport(), Metrics: m, Windows: []*Window{}}
	for i, w := range d.Windows() {
		s.Windows = append(s.Windows, FromWindow(w, i, m))
		if w.IsFocused {
			s.Focused = w.ID
		}
	}
	return s
}

// FromWindow builds the view of one window at z position z
func FromWindow(w desktop.WindowState, z int, m window.Metrics) *Window {
	return &Window{
		ID:          w.ID,
		AppID:       w.AppID,
		Title:       w.Title,
		Rect:        w.Rect,
		Z:           z,
		BarColor:    w.BarColor,
		BarIcon:     w.BarIcon,
		MinSize:     w.MinSize,
		IsMinimized: w.IsMinimized,
		IsFocused:   w.IsFocused,
		Closable:    w.Closable,
		FooterText:  w.FooterText,
		Props:       window.ContentProps(w, m),
	}
}

// AppsFromRegistry lists the registry in registration order
func AppsFromRegistry(reg *registry.Registry) []*App {
	specs := reg.List()
	apps := make([]*App, 0, len(specs))
	for _, spec := range specs {
		apps = append(apps, &App{
			ID:          spec.ID,
			Title:       spec.Title,
			DefaultRect: spec.DefaultRect,
			MinSize:     spec.MinSize,
			Closable:    spec.Closable,
			BarColor:    spec.BarColor,
			Content:     spec.Content.Kind(),
		})
	}
	return apps
}

// ToMap converts a view into a response result
func ToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return out, nil
}

// Decode converts a response result into v
func Decode(result map[string]interface{}, v interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return nil
}

// ParseState parses the dump result into a State struct
func ParseState(result map[string]interface{}) (*State, error) {
	var state State
	if err := Decode(result, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// FormatFrame returns a formatted string representation of the window frame
func (w *Window) FormatFrame() string {
	return w.Rect.String()
}

// ShortID returns the first 8 characters of the id
func (w *Window) ShortID() string {
	if len(w.ID) > 8 {
		return w.ID[:8]
	}
	return w.ID
}

// FindWindowByID finds a window by its ID
func (s *State) FindWindowByID(id string) *Window {
	for _, w := range s.Windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// ResolveID expands a unique id prefix to the full window id
func (s *State) ResolveID(prefix string) (string, error) {
	if w := s.FindWindowByID(prefix); w != nil {
		return w.ID, nil
	}

	var matches []string
	for _, w := range s.Windows {
		if strings.HasPrefix(w.ID, prefix) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no window matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("window id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// Visible returns the non-minimized windows in z-order
func (s *State) Visible() []*Window {
	var out []*Window
	for _, w := range s.Windows {
		if !w.IsMinimized {
			out = append(out, w)
		}
	}
	return out
}

// GetFocusedWindow returns the focused window or nil
func (s *State) GetFocusedWindow() *Window {
	if s.Focused == "" {
		return nil
	}
	return s.FindWindowByID(s.Focused)
}
