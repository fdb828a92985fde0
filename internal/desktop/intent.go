package desktop

import (
	"fmt"

	"github.com/yourusername/webdesk/internal/types"
)

// IntentKind is the closed set of requests a window can make of the desktop
type IntentKind uint8

const (
	IntentInteract IntentKind = iota + 1
	IntentMinimize
	IntentRestore
	IntentClose
	IntentGeometryChange
)

var intentNames = map[IntentKind]string{
	IntentInteract:       "interact",
	IntentMinimize:       "minimize",
	IntentRestore:        "restore",
	IntentClose:          "close",
	IntentGeometryChange: "geometry",
}

// String returns the string representation of an IntentKind
func (k IntentKind) String() string {
	if s, ok := intentNames[k]; ok {
		return s
	}
	return fmt.Sprintf("intent(%d)", uint8(k))
}

// ParseIntentKind converts a string to IntentKind
func ParseIntentKind(s string) (IntentKind, error) {
	for k, name := range intentNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown intent: %s", s)
}

// Intent is one request from a window. Rect is only read for
// IntentGeometryChange and is always a complete rectangle.
type Intent struct {
	Kind     IntentKind
	WindowID string
	Rect     types.Rect
}

// Interact returns the focus intent raised by any press inside a window
func Interact(id string) Intent { return Intent{Kind: IntentInteract, WindowID: id} }

// Minimize returns a minimize intent
func Minimize(id string) Intent { return Intent{Kind: IntentMinimize, WindowID: id} }

// Restore returns a restore intent
func Restore(id string) Intent { return Intent{Kind: IntentRestore, WindowID: id} }

// Close returns a close intent
func Close(id string) Intent { return Intent{Kind: IntentClose, WindowID: id} }

// GeometryChange returns an intent replacing the window's rectangle
func GeometryChange(id string, r types.Rect) Intent {
	return Intent{Kind: IntentGeometryChange, WindowID: id, Rect: r}
}

// String formats the intent for logs
func (i Intent) String() string {
	if i.Kind == IntentGeometryChange {
		return fmt.Sprintf("%s %s %s", i.Kind, i.WindowID, i.Rect)
	}
	return fmt.Sprintf("%s %s", i.Kind, i.WindowID)
}

// Dispatch applies an intent. It reports whether the target window existed
// and the transition was applied.
func (d *Desktop) Dispatch(in Intent) bool {
	switch in.Kind {
	case IntentInteract:
		return d.Focus(in.WindowID)
	case IntentMinimize:
		return d.Minimize(in.WindowID)
	case IntentRestore:
		return d.Restore(in.WindowID)
	case IntentClose:
		return d.Close(in.WindowID)
	case IntentGeometryChange:
		return d.UpdateGeometry(in.WindowID, in.Rect)
	default:
		return false
	}
}
