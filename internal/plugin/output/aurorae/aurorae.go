// Package aurorae provides an output plugin for KWin Aurorae window decorations.
package aurorae

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/cullax/internal/plugin/output/template"
)

// Placeholder is replaced with the focus decoration colour in the decoration template.
const Placeholder = "TEMPLAT"

const (
	templateFile = "decoration-template.svg"
	outputFile   = "decoration.svg"
)

//go:embed *.svg
var templates embed.FS

// Plugin implements the output.Plugin interface for Aurorae decorations.
type Plugin struct {
	outputDir    string
	templatePath string
	themeName    string
	logger       hclog.Logger
}

// New creates a new Aurorae output plugin with default settings.
func New() *Plugin {
	return &Plugin{
		themeName: "CullaX",
		logger:    hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "aurorae"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate an Aurorae window decoration SVG tinted with the focus colour"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "aurorae.output-dir", "", "Output directory (default: ~/.local/share/aurorae/themes/<theme>)")
	cmd.Flags().StringVar(&p.templatePath, "aurorae.template", "", "Decoration SVG template containing "+Placeholder+" placeholders (default: built-in)")
	cmd.Flags().StringVar(&p.themeName, "aurorae.theme-name", p.themeName, "Aurorae theme directory name")
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
		return errors.New("aurorae.theme-name cannot be empty")
	}
	if p.templatePath != "" {
		info, err := os.Stat(p.templatePath)
		if err != nil {
			return fmt.Errorf("unable to find aurorae template: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("aurorae template %s is a directory", p.templatePath)
		}
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
		return filepath.Join(".local", "share", "aurorae", "themes", p.themeName)
	}
	return filepath.Join(home, ".local", "share", "aurorae", "themes", p.themeName)
}

// Generate substitutes the focus decoration colour into the decoration template.
// Returns map of filename -> content.
func (p *Plugin) Generate(data *colour.ThemeData) (map[string][]byte, error) {
	if data == nil {
		return nil, errors.New("theme data cannot be nil")
	}

	tmpl, err := p.loadTemplate()
	if err != nil {
		return nil, err
	}

	placeholder := []byte(Placeholder)
	if n := bytes.Count(tmpl, placeholder); n == 0 {
		p.logger.Warn("decoration template has no placeholders", "placeholder", Placeholder)
	} else {
		p.logger.Debug("substituting focus colour", "placeholders", n, "colour", data.FocusHex())
	}

	return map[string][]byte{
		outputFile: bytes.ReplaceAll(tmpl, placeholder, []byte(data.FocusHex())),
	}, nil
}

func (p *Plugin) loadTemplate() ([]byte, error) {
	if p.templatePath != "" {
		content, err := os.ReadFile(p.templatePath) // #nosec G304 - user supplied template
		if err != nil {
			return nil, fmt.Errorf("unable to read aurorae template: %w", err)
		}
		return content, nil
	}

	content, _, err := tmplloader.New(p.Name(), templates).WithLogger(p.logger).Load(templateFile)
	if err != nil {
		return nil, fmt.Errorf("unable to find aurorae template: %w", err)
	}
	return content, nil
}
