// Package script replays a YAML scenario against a fresh desktop.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/webdesk/internal/layout"
	"github.com/yourusername/webdesk/internal/types"
)

// Step operations
const (
	OpOpen     = "open"
	OpFocus    = "focus"
	OpMinimize = "minimize"
	OpRestore  = "restore"
	OpClose    = "close"
	OpMove     = "move"
	OpResize   = "resize"
	OpUpdate   = "update"
	OpPointer  = "pointer"
	OpBlur     = "blur"
	OpViewport = "viewport"
	OpExpect   = "expect"
	OpFocusDir = "focus-dir"
	OpCycle    = "cycle"
	OpArrange  = "arrange"
)

// Script is a scenario file
type Script struct {
	Name       string     `yaml:"name,omitempty"`
	Viewport   types.Size `yaml:"viewport"`
	LiveResize bool       `yaml:"liveResize,omitempty"`
	Steps      []Step     `yaml:"steps"`
}

// Step is one event. Windows are referred to by the alias given with "as"
// when they were opened.
type Step struct {
	Op     string      `yaml:"op"`
	App    string      `yaml:"app,omitempty"`
	As     string      `yaml:"as,omitempty"`
	Window string      `yaml:"window,omitempty"`
	DX     int         `yaml:"dx,omitempty"`
	DY     int         `yaml:"dy,omitempty"`
	Edge   string      `yaml:"edge,omitempty"`
	Rect   *types.Rect `yaml:"rect,omitempty"`
	Width  int         `yaml:"width,omitempty"`
	Height int         `yaml:"height,omitempty"`
	X      int         `yaml:"x,omitempty"`
	Y      int         `yaml:"y,omitempty"`
	Phase  string      `yaml:"phase,omitempty"`
	Expect *Expect     `yaml:"expect,omitempty"`

	Direction string `yaml:"direction,omitempty"`
	Wrap      bool   `yaml:"wrap,omitempty"`
	Reverse   bool   `yaml:"reverse,omitempty"`
	Mode      string `yaml:"mode,omitempty"`
	Gap       int    `yaml:"gap,omitempty"`
}

// Expect asserts desktop state at a point in the script
type Expect struct {
	Focused   *string  `yaml:"focused,omitempty"` // Alias, or "" for none
	Order     []string `yaml:"order,omitempty"`   // Aliases bottom to top
	Count     *int     `yaml:"count,omitempty"`
	Minimized []string `yaml:"minimized,omitempty"`
	Rect      *struct {
		Window string     `yaml:"window"`
		Is     types.Rect `yaml:"is"`
	} `yaml:"rect,omitempty"`
}

// Load reads and parses a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// Validate checks every step has what its op needs
func (s *Script) Validate() error {
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("viewport cannot be negative")
	}

	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpOpen:
		if st.App == "" {
			return fmt.Errorf("app is required")
		}
	case OpFocus, OpMinimize, OpRestore, OpClose, OpMove:
		if st.Window == "" {
			return fmt.Errorf("window is required")
		}
	case OpResize:
		if st.Window == "" {
			return fmt.Errorf("window is required")
		}
		if _, ok := types.ParseEdge(st.Edge); !ok {
			return fmt.Errorf("unknown edge: %q", st.Edge)
		}
	case OpUpdate:
		if st.Window == "" || st.Rect == nil {
			return fmt.Errorf("window and rect are required")
		}
	case OpPointer:
		switch st.Phase {
		case "down":
			if st.Window == "" {
				return fmt.Errorf("window is required for a press")
			}
		case "move", "up", "leave":
		default:
			return fmt.Errorf("unknown phase: %q", st.Phase)
		}
	case OpViewport:
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("width and height must be positive")
		}
	case OpExpect:
		if st.Expect == nil {
			return fmt.Errorf("expect block is required")
		}
	case OpFocusDir:
		if _, ok := types.ParseDirection(st.Direction); !ok {
			return fmt.Errorf("unknown direction: %q", st.Direction)
		}
	case OpArrange:
		if _, err := layout.ParseMode(st.Mode); err != nil {
			return err
		}
	case OpBlur, OpCycle:
	default:
		return fmt.Errorf("unknown op")
	}
	return nil
}
