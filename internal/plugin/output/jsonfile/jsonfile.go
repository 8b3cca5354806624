// Package jsonfile provides an output plugin that writes the derived palette as JSON.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
)

// Filename is the name of the generated file.
const Filename = "palette.json"

// Document is the layout of palette.json.
type Document struct {
	Theme     string          `json:"theme,omitempty"`
	Wallpaper string          `json:"wallpaper,omitempty"`
	FocusHex  string          `json:"focus_hex"`
	Palette   json.RawMessage `json:"palette"`
}

// Plugin implements the output.Plugin interface for JSON palette export.
type Plugin struct {
	outputDir string
}

// New creates a new JSON output plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "jsonfile"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write the derived palette as JSON (role -> triplet and hex)"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "jsonfile.output-dir", "", "Output directory (default: ~/.config/cullax)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "cullax")
	}
	return filepath.Join(home, ".config", "cullax")
}

// Generate renders palette.json.
func (p *Plugin) Generate(data *colour.ThemeData) (map[string][]byte, error) {
	if data == nil {
		return nil, errors.New("theme data cannot be nil")
	}

	palette, err := data.Palette().ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode palette: %w", err)
	}

	content, err := json.MarshalIndent(Document{
		Theme:     data.ThemeName,
		Wallpaper: data.WallpaperPath,
		FocusHex:  data.FocusHex(),
		Palette:   palette,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", Filename, err)
	}

	return map[string][]byte{Filename: append(content, '\n')}, nil
}
