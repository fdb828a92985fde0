package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/webdesk/internal/geometry"
	"github.com/yourusername/webdesk/internal/types"
)

const (
	DefaultConfigDir  = ".config/webdesk"
	DefaultConfigFile = "config.yaml"

	DefaultHandleThickness = 6
	DefaultTitleBarHeight  = 24
	DefaultControlWidth    = 20
)

// DefaultViewport is used when the settings leave the viewport unset
var DefaultViewport = types.Size{Width: 1280, Height: 800}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/webdesk/config.yaml (or config.json) and
// falls back to the built-in catalogue when neither exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		found, err := findDefaultConfig()
		if err != nil {
			return nil, err
		}
		if found == "" {
			return DefaultConfig(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// findDefaultConfig returns the first existing default config path, or "".
func findDefaultConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	// Try YAML first, then JSON
	yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
	jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath, nil
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return "", nil
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Marshal encodes cfg as YAML for writing a config file
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// GetApp returns an app by ID
func (c *Config) GetApp(id string) (*AppConfig, error) {
	for i := range c.Apps {
		if c.Apps[i].ID == id {
			return &c.Apps[i], nil
		}
	}
	return nil, fmt.Errorf("app not found: %s", id)
}

// GetAppIDs returns all configured app IDs in declaration order
func (c *Config) GetAppIDs() []string {
	ids := make([]string, len(c.Apps))
	for i, a := range c.Apps {
		ids[i] = a.ID
	}
	return ids
}

// GetViewport returns the configured viewport or the default
func (c *Config) GetViewport() types.Size {
	if c.Settings.Viewport.Width > 0 && c.Settings.Viewport.Height > 0 {
		return c.Settings.Viewport
	}
	return DefaultViewport
}

// GetMinSize returns the global minimum window size.
// Returns 150x100 if not configured.
func (c *Config) GetMinSize() types.Size {
	if c.Settings.MinSize != "" {
		if s, err := ParseSize(c.Settings.MinSize); err == nil {
			return s
		}
	}
	return types.Size{Width: geometry.DefaultMinWidth, Height: geometry.DefaultMinHeight}
}

// GetVisibleMargin returns the on-screen margin, 40 if not configured
func (c *Config) GetVisibleMargin() int {
	if c.Settings.VisibleMargin > 0 {
		return c.Settings.VisibleMargin
	}
	return geometry.DefaultVisibleMargin
}

// GetHandleThickness returns the resize border thickness, 6 if not configured
func (c *Config) GetHandleThickness() int {
	if c.Settings.HandleThickness > 0 {
		return c.Settings.HandleThickness
	}
	return DefaultHandleThickness
}

// GetTitleBarHeight returns the title bar height, 24 if not configured
func (c *Config) GetTitleBarHeight() int {
	if c.Settings.TitleBarHeight > 0 {
		return c.Settings.TitleBarHeight
	}
	return DefaultTitleBarHeight
}

// GetControlWidth returns the width of one title bar button, 20 if not configured
func (c *Config) GetControlWidth() int {
	if c.Settings.ControlWidth > 0 {
		return c.Settings.ControlWidth
	}
	return DefaultControlWidth
}

// Constraints returns the geometry constraints for the configured viewport
func (c *Config) Constraints() geometry.Constraints {
	return geometry.Constraints{
		Bounds:  c.GetViewport(),
		MinSize: c.GetMinSize(),
		Margin:  c.GetVisibleMargin(),
	}
}

// GetMinSize returns the app's minimum window size, or the zero Size when unset
func (a *AppConfig) GetMinSize() types.Size {
	if a.MinSize == "" {
		return types.Size{}
	}
	s, err := ParseSize(a.MinSize)
	if err != nil {
		return types.Size{}
	}
	return s
}
