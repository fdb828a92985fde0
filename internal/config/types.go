package config

import "github.com/yourusername/webdesk/internal/types"

// Config is the root configuration structure
type Config struct {
	Settings Settings    `yaml:"settings" json:"settings"`
	Apps     []AppConfig `yaml:"apps" json:"apps"`
}

// Settings contains desktop-wide settings
type Settings struct {
	Viewport        types.Size `yaml:"viewport" json:"viewport"`                               // Initial viewport size
	MinSize         string     `yaml:"minSize,omitempty" json:"minSize,omitempty"`             // Global minimum window size, e.g. "150x100"
	VisibleMargin   int        `yaml:"visibleMargin,omitempty" json:"visibleMargin,omitempty"` // Pixels of a window kept on screen
	HandleThickness int        `yaml:"handleThickness,omitempty" json:"handleThickness,omitempty"`
	TitleBarHeight  int        `yaml:"titleBarHeight,omitempty" json:"titleBarHeight,omitempty"`
	ControlWidth    int        `yaml:"controlWidth,omitempty" json:"controlWidth,omitempty"` // Width of each title bar button
	LiveResize      bool       `yaml:"liveResize" json:"liveResize"`                         // Stream geometry while dragging
	CheckInvariants bool       `yaml:"checkInvariants" json:"checkInvariants"`
}

// AppConfig is the configuration representation of a launchable application
type AppConfig struct {
	ID          string        `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	BarColor    string        `yaml:"barColor,omitempty" json:"barColor,omitempty"` // "#rrggbb"
	BarIcon     string        `yaml:"barIcon,omitempty" json:"barIcon,omitempty"`
	DefaultRect types.Rect    `yaml:"defaultRect" json:"defaultRect"`
	MinSize     string        `yaml:"minSize,omitempty" json:"minSize,omitempty"`
	Closable    *bool         `yaml:"closable,omitempty" json:"closable,omitempty"` // nil means closable
	FooterText  string        `yaml:"footerText,omitempty" json:"footerText,omitempty"`
	Content     ContentConfig `yaml:"content,omitempty" json:"content,omitempty"`
}

// ContentConfig describes the opaque payload rendered inside the window
type ContentConfig struct {
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"` // "text", "code" or empty
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Content kinds
const (
	ContentNone = ""
	ContentText = "text"
	ContentCode = "code"
)

// IsClosable reports whether the app's windows show a close control
func (a *AppConfig) IsClosable() bool {
	return a.Closable == nil || *a.Closable
}
