// Package registry maps application ids to the spec a new window is built from.
package registry

import (
	"fmt"
	"sort"

	"github.com/yourusername/webdesk/internal/config"
	"github.com/yourusername/webdesk/internal/types"
)

// AppSpec is everything the desktop needs to open a window for an app.
// It is validated once when the registry is built.
type AppSpec struct {
	ID          string
	Title       string
	BarColor    string
	BarIcon     string
	MinSize     types.Size
	Closable    bool
	DefaultRect types.Rect
	FooterText  string
	Content     Content
}

// Registry is an immutable catalogue of AppSpecs
type Registry struct {
	apps  map[string]*AppSpec
	order []string
}

// New builds a registry from specs. Duplicate or empty ids are rejected.
func New(specs ...AppSpec) (*Registry, error) {
	r := &Registry{apps: make(map[string]*AppSpec, len(specs))}
	for i := range specs {
		spec := specs[i]
		if spec.ID == "" {
			return nil, fmt.Errorf("app %d: missing ID", i)
		}
		if _, dup := r.apps[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate app ID: %s", spec.ID)
		}
		if spec.Content == nil {
			spec.Content = Empty{}
		}
		r.apps[spec.ID] = &spec
		r.order = append(r.order, spec.ID)
	}
	return r, nil
}

// FromConfig converts the configured apps into a registry
func FromConfig(cfg *config.Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	specs := make([]AppSpec, 0, len(cfg.Apps))
	for i := range cfg.Apps {
		app := &cfg.Apps[i]

		color := ""
		if app.BarColor != "" {
			color, _ = config.ParseColor(app.BarColor)
		}

		specs = append(specs, AppSpec{
			ID:          app.ID,
			Title:       app.Title,
			BarColor:    color,
			BarIcon:     app.BarIcon,
			MinSize:     app.GetMinSize(),
			Closable:    app.IsClosable(),
			DefaultRect: app.DefaultRect,
			FooterText:  app.FooterText,
			Content:     contentFromConfig(app.Content),
		})
	}
	return New(specs...)
}

// Default returns the registry for the built-in catalogue
func Default() *Registry {
	r, err := FromConfig(config.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("built-in catalogue is invalid: %v", err))
	}
	return r
}

// Lookup returns the spec for id
func (r *Registry) Lookup(id string) (*AppSpec, bool) {
	spec, ok := r.apps[id]
	return spec, ok
}

// IDs returns app ids in registration order
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SortedIDs returns app ids alphabetically
func (r *Registry) SortedIDs() []string {
	out := r.IDs()
	sort.Strings(out)
	return out
}

// List returns copies of all specs in registration order
func (r *Registry) List() []AppSpec {
	out := make([]AppSpec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.apps[id])
	}
	return out
}

// Len returns the number of registered apps
func (r *Registry) Len() int {
	return len(r.order)
}

func contentFromConfig(c config.ContentConfig) Content {
	switch c.Kind {
	case config.ContentText:
		return Text(c.Text)
	case config.ContentCode:
		return Code(c.Text)
	default:
		return Empty{}
	}
}
