// Package plasma provides an output plugin for KDE Plasma desktop theme colours.
package plasma

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/cullax/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

// outputs maps each generated file to the template it renders.
var outputs = map[string]string{
	"colors":     "colors.tmpl",
	"kdeglobals": "kdeglobals.tmpl",
}

// Plugin implements the output.Plugin interface for KDE Plasma.
type Plugin struct {
	outputDir string
	themeName string
	logger    hclog.Logger
}

// New creates a new Plasma output plugin with default settings.
func New() *Plugin {
	return &Plugin{
		themeName: "CullaX",
		logger:    hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "plasma"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a Plasma desktop theme colors file and kdeglobals overrides"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "plasma.output-dir", "", "Output directory (default: ~/.local/share/plasma/desktoptheme/<theme>)")
	cmd.Flags().StringVar(&p.themeName, "plasma.theme-name", p.themeName, "Plasma desktop theme directory name")
}

// SetLogger sets the logger used while rendering templates.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.logger = common.PluginLogger(logger, p.Name())
}

// Templates returns the embedded template filesystem.
func (p *Plugin) Templates() fs.FS {
	return templates
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.themeName == "" {
		return errors.New("plasma.theme-name cannot be empty")
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", "plasma", "desktoptheme", p.themeName)
	}
	return filepath.Join(home, ".local", "share", "plasma", "desktoptheme", p.themeName)
}

// Generate renders the colors file and kdeglobals overrides.
// Returns map of filename -> content.
func (p *Plugin) Generate(data *colour.ThemeData) (map[string][]byte, error) {
	if data == nil {
		return nil, errors.New("theme data cannot be nil")
	}

	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	files := make(map[string][]byte, len(outputs))
	for filename, tmplName := range outputs {
		content, err := render(loader, tmplName, data)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", filename, err)
		}
		files[filename] = content
	}

	return files, nil
}

func render(loader *tmplloader.Loader, tmplName string, data *colour.ThemeData) ([]byte, error) {
	tmplContent, _, err := loader.Load(tmplName)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(tmplName).Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
