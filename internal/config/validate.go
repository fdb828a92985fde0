package config

import "fmt"

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	appIDs := make(map[string]bool)
	for i := range c.Apps {
		app := &c.Apps[i]
		if app.ID == "" {
			return fmt.Errorf("app %d: missing ID", i)
		}
		if appIDs[app.ID] {
			return fmt.Errorf("duplicate app ID: %s", app.ID)
		}
		appIDs[app.ID] = true

		if err := validateApp(app); err != nil {
			return fmt.Errorf("app %s: %w", app.ID, err)
		}
	}

	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}

func validateApp(app *AppConfig) error {
	if app.Title == "" {
		return fmt.Errorf("missing title")
	}

	if app.BarColor != "" {
		if _, err := ParseColor(app.BarColor); err != nil {
			return fmt.Errorf("barColor: %w", err)
		}
	}

	r := app.DefaultRect
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("defaultRect must have a positive size, got %dx%d", r.Width, r.Height)
	}

	if app.MinSize != "" {
		minSize, err := ParseSize(app.MinSize)
		if err != nil {
			return fmt.Errorf("minSize: %w", err)
		}
		if r.Width < minSize.Width || r.Height < minSize.Height {
			return fmt.Errorf("defaultRect %dx%d is smaller than minSize %s", r.Width, r.Height, app.MinSize)
		}
	}

	switch app.Content.Kind {
	case ContentNone, ContentText, ContentCode:
	default:
		return fmt.Errorf("invalid content kind: %s", app.Content.Kind)
	}

	return nil
}

func validateSettings(s *Settings) error {
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("viewport cannot be negative")
	}
	if s.MinSize != "" {
		if _, err := ParseSize(s.MinSize); err != nil {
			return fmt.Errorf("minSize: %w", err)
		}
	}
	if s.VisibleMargin < 0 {
		return fmt.Errorf("visible margin cannot be negative")
	}
	if s.HandleThickness < 0 {
		return fmt.Errorf("handle thickness cannot be negative")
	}
	if s.TitleBarHeight < 0 {
		return fmt.Errorf("title bar height cannot be negative")
	}
	if s.ControlWidth < 0 {
		return fmt.Errorf("control width cannot be negative")
	}
	return nil
}
