// Package manager provides output plugin management with configuration support.
package manager

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jmylchreest/cullax/internal/plugin/output"
	"github.com/jmylchreest/cullax/internal/plugin/output/aurorae"
	"github.com/jmylchreest/cullax/internal/plugin/output/jsonfile"
	"github.com/jmylchreest/cullax/internal/plugin/output/plasma"
)

const pluginType = "output"

// Environment variables read by Builder.WithEnvConfig.
const (
	EnvEnabledOutputs  = "CULLAX_ENABLED_OUTPUTS"
	EnvDisabledOutputs = "CULLAX_DISABLED_OUTPUTS"
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable.
	// Entries may be bare ("plasma") or qualified ("output:plasma").
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config         Config
	outputRegistry *output.Registry
	useEnv         bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		outputRegistry: output.NewRegistry(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads CULLAX_DISABLED_OUTPUTS and CULLAX_ENABLED_OUTPUTS.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithCustomRegistry allows providing a custom plugin registry (useful for testing).
func (b *Builder) WithCustomRegistry(outputReg *output.Registry) *Builder {
	b.outputRegistry = outputReg
	return b
}

// Build constructs the Manager with the configured settings.
// Environment values replace the corresponding lists from WithConfig.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(EnvDisabledOutputs); disabled != "" {
			config.DisabledPlugins = ParsePluginList(disabled)
		}
		if enabled := os.Getenv(EnvEnabledOutputs); enabled != "" {
			config.EnabledPlugins = ParsePluginList(enabled)
		}
	}

	m := &Manager{
		config:         config,
		outputRegistry: b.outputRegistry,
	}
	m.registerBuiltinPlugins()

	return m
}

// Manager manages plugin enable/disable state and owns the plugin registry.
type Manager struct {
	config         Config
	outputRegistry *output.Registry
}

// registerBuiltinPlugins registers all built-in plugins.
// Plugins already present in a custom registry are left in place.
func (m *Manager) registerBuiltinPlugins() {
	for _, p := range []output.Plugin{plasma.New(), aurorae.New(), jsonfile.New()} {
		if _, exists := m.outputRegistry.Get(p.Name()); !exists {
			m.outputRegistry.Register(p)
		}
	}
}

// OutputRegistry returns the output plugin registry.
func (m *Manager) OutputRegistry() *output.Registry {
	return m.outputRegistry
}

// GetOutputPlugin retrieves an output plugin by name.
func (m *Manager) GetOutputPlugin(name string) (output.Plugin, bool) {
	return m.outputRegistry.Get(name)
}

// IsOutputEnabled checks if an output plugin is enabled.
// All plugins are disabled by default and must be explicitly enabled.
func (m *Manager) IsOutputEnabled(plugin output.Plugin) bool {
	return m.isEnabled(plugin.Name())
}

// isEnabled determines if a plugin is enabled based on configuration.
func (m *Manager) isEnabled(name string) bool {
	fullName := pluginType + ":" + name
	matches := func(entry string) bool { return entry == fullName || entry == name }

	// "all" in the disabled list takes precedence over everything.
	if slices.Contains(m.config.DisabledPlugins, "all") {
		return false
	}
	if slices.ContainsFunc(m.config.DisabledPlugins, matches) {
		return false
	}
	if slices.Contains(m.config.EnabledPlugins, "all") {
		return true
	}
	return slices.ContainsFunc(m.config.EnabledPlugins, matches)
}

// FilterOutputPlugins returns only enabled output plugins.
func (m *Manager) FilterOutputPlugins() map[string]output.Plugin {
	enabled := make(map[string]output.Plugin)
	for name, plugin := range m.outputRegistry.All() {
		if m.IsOutputEnabled(plugin) {
			enabled[name] = plugin
		}
	}
	return enabled
}

// ListOutputPlugins returns sorted names of enabled output plugins.
func (m *Manager) ListOutputPlugins() []string {
	names := []string{}
	for _, name := range m.outputRegistry.List() {
		if plugin, _ := m.outputRegistry.Get(name); m.IsOutputEnabled(plugin) {
			names = append(names, name)
		}
	}
	return names
}

// AllOutputPlugins returns all registered output plugins (including disabled).
func (m *Manager) AllOutputPlugins() map[string]output.Plugin {
	return m.outputRegistry.All()
}

// UpdateConfig updates the manager's configuration without recreating plugin instances.
// This preserves flag bindings and other plugin state.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// ValidateNames returns an error naming every entry in names that is not a registered plugin.
// "all" is always accepted.
func (m *Manager) ValidateNames(names []string) error {
	var unknown []string
	for _, name := range names {
		bare := strings.TrimPrefix(name, pluginType+":")
		if bare == "all" {
			continue
		}
		if _, ok := m.outputRegistry.Get(bare); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown output plugin(s): %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(m.outputRegistry.List(), ", "))
	}
	return nil
}

// ParsePluginList parses a comma-separated list of plugin names.
// Handles formats like "plasma", "output:plasma", "plasma,aurorae".
func ParsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// SetDisabled adds a plugin to the disabled list.
func (m *Manager) SetDisabled(name string) {
	fullName := pluginType + ":" + name

	m.config.EnabledPlugins = slices.DeleteFunc(m.config.EnabledPlugins, func(e string) bool {
		return e == fullName || e == name
	})
	if !slices.Contains(m.config.DisabledPlugins, fullName) {
		m.config.DisabledPlugins = append(m.config.DisabledPlugins, fullName)
	}
}

// SetEnabled adds a plugin to the enabled list (whitelist mode).
func (m *Manager) SetEnabled(name string) {
	fullName := pluginType + ":" + name

	m.config.DisabledPlugins = slices.DeleteFunc(m.config.DisabledPlugins, func(e string) bool {
		return e == fullName || e == name
	})
	if !slices.Contains(m.config.EnabledPlugins, fullName) {
		m.config.EnabledPlugins = append(m.config.EnabledPlugins, fullName)
	}
}
