// Package output provides the interface and base types for output plugins.
package output

import (
	"io/fs"
	"maps"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
)

// Plugin represents an output plugin that renders a derived palette into
// theme file contents. Plugins never write files themselves.
type Plugin interface {
	// Name returns the plugin's name (e.g., "plasma", "aurorae").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate renders output file(s) from the given theme data.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(data *colour.ThemeData) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// LoggingPlugin is implemented by plugins that log template resolution.
type LoggingPlugin interface {
	SetLogger(logger hclog.Logger)
}

// TemplateProvider is implemented by plugins that render from embedded templates
// which users may dump and override.
type TemplateProvider interface {
	Templates() fs.FS
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	return slices.Sorted(maps.Keys(r.plugins))
}

// All returns a copy of all registered plugins.
func (r *Registry) All() map[string]Plugin {
	return maps.Clone(r.plugins)
}
