package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/logging"
	"github.com/yourusername/webdesk/internal/registry"
)

// DefaultDebounce is how long the config file must be quiet before reload
const DefaultDebounce = 250 * time.Millisecond

// ConfigWatcher reloads the registry when the config file changes
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onReload func(ctx context.Context, reg *registry.Registry) error
}

// NewConfigWatcher watches path and calls onReload with the rebuilt
// registry after every settled change. Invalid configs are logged and
// skipped.
func NewConfigWatcher(path string, onReload func(ctx context.Context, reg *registry.Registry) error) *ConfigWatcher {
	return &ConfigWatcher{path: path, debounce: DefaultDebounce, onReload: onReload}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that save by rename are seen.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logging.Info().Str("path", w.path).Msg("watching config")

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Err(err).Msg("config watcher error")

		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *ConfigWatcher) reload(ctx context.Context) {
	cfg, err := config.LoadConfig(w.path)
	if err != nil {
		logging.Warn().Err(err).Str("path", w.path).Msg("config reload skipped")
		return
	}
	reg, err := registry.FromConfig(cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("config reload skipped")
		return
	}
	if err := w.onReload(ctx, reg); err != nil {
		logging.Warn().Err(err).Msg("config reload failed")
		return
	}
	logging.Info().Int("apps", reg.Len()).Msg("config reloaded")
}
