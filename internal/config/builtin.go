package config

import "github.com/yourusername/webdesk/internal/types"

// sampleSource is shown verbatim by the code viewer. It is display data only.
const sampleSource = `use std::collections::{HashMap, VecDeque};

struct Account {
    pub owner: String,
    pub lamports: u64,
}

struct Ledger {
    accounts: HashMap<String, Account>,
    pending: VecDeque<String>,
}
`

const aboutText = `Welcome

This is a simulated desktop. Drag a window by its title bar, resize it
from any border and use the title bar buttons to minimize or close it.`

// DefaultConfig returns the built-in configuration.
//
// It is used when no config file exists. Users can replace the catalogue
// by writing their own apps list in ~/.config/webdesk/config.yaml.
func DefaultConfig() *Config {
	notClosable := false

	return &Config{
		Settings: Settings{
			Viewport:   DefaultViewport,
			MinSize:    "150x100",
			LiveResize: true,
		},
		Apps: []AppConfig{
			{
				ID:          "about",
				Title:       "Welcome",
				BarColor:    "#1d2e2f",
				BarIcon:     "windowExplorerIcon",
				DefaultRect: types.Rect{Top: 50, Left: 80, Width: 600, Height: 500},
				FooterText:  "About",
				Content:     ContentConfig{Kind: ContentText, Text: aboutText},
			},
			{
				ID:          "game",
				Title:       "TOLY´S PC",
				BarIcon:     "windowGameIcon",
				DefaultRect: types.Rect{Top: 20, Left: 300, Width: 600, Height: 860},
				MinSize:     "300x400",
				FooterText:  "© Copyright 2024 TOLY´S PC",
				Content:     ContentConfig{Kind: ContentText, Text: "[word game]"},
			},
			{
				ID:          "codeview",
				Title:       "Source Viewer",
				BarIcon:     "windowGameIcon",
				DefaultRect: types.Rect{Top: 60, Left: 120, Width: 700, Height: 550},
				Content:     ContentConfig{Kind: ContentCode, Text: sampleSource},
			},
			{
				ID:          "notice",
				Title:       "Success!",
				BarColor:    "#000000",
				BarIcon:     "windowGameIcon",
				DefaultRect: types.Rect{Top: 10, Left: 10, Width: 350, Height: 150},
				Closable:    &notClosable,
				Content:     ContentConfig{Kind: ContentText, Text: "Running..."},
			},
		},
	}
}
