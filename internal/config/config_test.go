package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/webdesk/internal/types"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Size
		hasError bool
	}{
		{"150x100", types.Size{Width: 150, Height: 100}, false},
		{"150X100", types.Size{Width: 150, Height: 100}, false},
		{"150 x 100", types.Size{Width: 150, Height: 100}, false},
		{"150×100", types.Size{Width: 150, Height: 100}, false},
		{"  640x480  ", types.Size{Width: 640, Height: 480}, false},
		{"0x100", types.Size{}, true},
		{"150x", types.Size{}, true},
		{"-1x100", types.Size{}, true},
		{"wide", types.Size{}, true},
		{"", types.Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseSize(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseSize(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	s := types.Size{Width: 350, Height: 150}
	if got := FormatSize(s); got != "350x150" {
		t.Errorf("FormatSize = %q, want 350x150", got)
	}
	back, err := ParseSize(FormatSize(s))
	if err != nil || back != s {
		t.Errorf("ParseSize(FormatSize(%v)) = %v, %v", s, back, err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		hasError bool
	}{
		{"#000000", "#000000", false},
		{"#1D2E2F", "#1d2e2f", false},
		{"#abc", "#aabbcc", false},
		{"000000", "", true},
		{"#12345", "", true},
		{"#gggggg", "", true},
		{"black", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseColor(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigFromBytesYAML(t *testing.T) {
	yamlConfig := `
settings:
  viewport:
    width: 1024
    height: 768
  minSize: 200x120
  visibleMargin: 32
  liveResize: true

apps:
  - id: notes
    title: Notes
    barColor: "#222"
    defaultRect:
      top: 10
      left: 20
      width: 400
      height: 300
    minSize: 250x150
    content:
      kind: text
      text: hello
  - id: banner
    title: Banner
    closable: false
    defaultRect:
      top: 0
      left: 0
      width: 300
      height: 100
`

	cfg, err := LoadConfigFromBytes([]byte(yamlConfig), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes failed: %v", err)
	}

	if got := cfg.GetViewport(); got != (types.Size{Width: 1024, Height: 768}) {
		t.Errorf("GetViewport = %v, want 1024x768", got)
	}
	if got := cfg.GetMinSize(); got != (types.Size{Width: 200, Height: 120}) {
		t.Errorf("GetMinSize = %v, want 200x120", got)
	}
	if cfg.GetVisibleMargin() != 32 {
		t.Errorf("GetVisibleMargin = %d, want 32", cfg.GetVisibleMargin())
	}
	if !cfg.Settings.LiveResize {
		t.Error("expected liveResize to be true")
	}

	if len(cfg.Apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(cfg.Apps))
	}

	notes, err := cfg.GetApp("notes")
	if err != nil {
		t.Fatalf("GetApp(notes): %v", err)
	}
	if notes.DefaultRect != (types.Rect{Top: 10, Left: 20, Width: 400, Height: 300}) {
		t.Errorf("notes.DefaultRect = %v", notes.DefaultRect)
	}
	if notes.GetMinSize() != (types.Size{Width: 250, Height: 150}) {
		t.Errorf("notes.GetMinSize = %v", notes.GetMinSize())
	}
	if !notes.IsClosable() {
		t.Error("notes should be closable by default")
	}
	if notes.Content.Kind != ContentText || notes.Content.Text != "hello" {
		t.Errorf("notes.Content = %+v", notes.Content)
	}

	banner, _ := cfg.GetApp("banner")
	if banner.IsClosable() {
		t.Error("banner should not be closable")
	}
	if banner.GetMinSize() != (types.Size{}) {
		t.Errorf("banner.GetMinSize = %v, want zero", banner.GetMinSize())
	}

	ids := cfg.GetAppIDs()
	if strings.Join(ids, ",") != "notes,banner" {
		t.Errorf("GetAppIDs = %v, want declaration order", ids)
	}
}

func TestLoadConfigFromBytesJSON(t *testing.T) {
	jsonConfig := `{
		"settings": {"viewport": {"width": 800, "height": 600}},
		"apps": [
			{"id": "a", "title": "A", "defaultRect": {"top": 1, "left": 2, "width": 200, "height": 150}}
		]
	}`

	cfg, err := LoadConfigFromBytes([]byte(jsonConfig), "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes failed: %v", err)
	}
	if cfg.GetViewport() != (types.Size{Width: 800, Height: 600}) {
		t.Errorf("GetViewport = %v", cfg.GetViewport())
	}
	if _, err := cfg.GetApp("missing"); err == nil {
		t.Error("GetApp(missing) expected error")
	}
}

func TestLoadConfigFromBytesUnsupportedFormat(t *testing.T) {
	if _, err := LoadConfigFromBytes([]byte("x = 1"), "toml"); err == nil {
		t.Error("expected error for toml format")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetViewport() != DefaultViewport {
		t.Errorf("GetViewport = %v, want %v", cfg.GetViewport(), DefaultViewport)
	}
	if cfg.GetMinSize() != (types.Size{Width: 150, Height: 100}) {
		t.Errorf("GetMinSize = %v, want 150x100", cfg.GetMinSize())
	}
	if cfg.GetVisibleMargin() != 40 {
		t.Errorf("GetVisibleMargin = %d, want 40", cfg.GetVisibleMargin())
	}
	if cfg.GetHandleThickness() != DefaultHandleThickness {
		t.Errorf("GetHandleThickness = %d", cfg.GetHandleThickness())
	}
	if cfg.GetTitleBarHeight() != DefaultTitleBarHeight {
		t.Errorf("GetTitleBarHeight = %d", cfg.GetTitleBarHeight())
	}
	if cfg.GetControlWidth() != DefaultControlWidth {
		t.Errorf("GetControlWidth = %d", cfg.GetControlWidth())
	}

	c := cfg.Constraints()
	if c.Bounds != DefaultViewport || c.Margin != 40 {
		t.Errorf("Constraints = %+v", c)
	}
}

func TestValidate(t *testing.T) {
	rect := types.Rect{Width: 200, Height: 150}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing id",
			cfg:     Config{Apps: []AppConfig{{Title: "x", DefaultRect: rect}}},
			wantErr: "missing ID",
		},
		{
			name: "duplicate id",
			cfg: Config{Apps: []AppConfig{
				{ID: "a", Title: "A", DefaultRect: rect},
				{ID: "a", Title: "A again", DefaultRect: rect},
			}},
			wantErr: "duplicate app ID",
		},
		{
			name:    "missing title",
			cfg:     Config{Apps: []AppConfig{{ID: "a", DefaultRect: rect}}},
			wantErr: "missing title",
		},
		{
			name:    "bad color",
			cfg:     Config{Apps: []AppConfig{{ID: "a", Title: "A", BarColor: "red", DefaultRect: rect}}},
			wantErr: "barColor",
		},
		{
			name:    "empty rect",
			cfg:     Config{Apps: []AppConfig{{ID: "a", Title: "A"}}},
			wantErr: "positive size",
		},
		{
			name:    "rect below min size",
			cfg:     Config{Apps: []AppConfig{{ID: "a", Title: "A", DefaultRect: rect, MinSize: "300x300"}}},
			wantErr: "smaller than minSize",
		},
		{
			name:    "bad content kind",
			cfg:     Config{Apps: []AppConfig{{ID: "a", Title: "A", DefaultRect: rect, Content: ContentConfig{Kind: "video"}}}},
			wantErr: "invalid content kind",
		},
		{
			name:    "negative margin",
			cfg:     Config{Settings: Settings{VisibleMargin: -1}},
			wantErr: "visible margin",
		},
		{
			name:    "bad global min size",
			cfg:     Config{Settings: Settings{MinSize: "tiny"}},
			wantErr: "minSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig does not validate: %v", err)
	}

	for _, id := range []string{"about", "game", "codeview", "notice"} {
		if _, err := cfg.GetApp(id); err != nil {
			t.Errorf("DefaultConfig missing app %q", id)
		}
	}

	game, _ := cfg.GetApp("game")
	if game.DefaultRect != (types.Rect{Top: 20, Left: 300, Width: 600, Height: 860}) {
		t.Errorf("game.DefaultRect = %v", game.DefaultRect)
	}
	notice, _ := cfg.GetApp("notice")
	if notice.IsClosable() {
		t.Error("notice should not be closable")
	}
	if notice.BarColor != "#000000" {
		t.Errorf("notice.BarColor = %q", notice.BarColor)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desk.yml")
	data := "apps:\n  - id: one\n    title: One\n    defaultRect: {top: 0, left: 0, width: 200, height: 200}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Apps) != 1 || cfg.Apps[0].ID != "one" {
		t.Errorf("unexpected apps: %+v", cfg.Apps)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) expected error")
	}
}

func TestLoadConfigFallsBackToBuiltin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Apps) != len(DefaultConfig().Apps) {
		t.Errorf("expected built-in catalogue, got %d apps", len(cfg.Apps))
	}
}

func TestMarshalWritesLoadableConfig(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	cfg, err := LoadConfigFromBytes(data, "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes: %v\n%s", err, data)
	}
	if got, want := cfg.GetAppIDs(), DefaultConfig().GetAppIDs(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("app ids = %v, want %v", got, want)
	}
	if cfg.GetViewport() != DefaultViewport {
		t.Errorf("viewport = %v, want %v", cfg.GetViewport(), DefaultViewport)
	}
}
