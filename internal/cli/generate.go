package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/config"
	"github.com/jmylchreest/cullax/internal/engine"
	imgpkg "github.com/jmylchreest/cullax/internal/image"
	"github.com/jmylchreest/cullax/internal/plugin/output"
)

// generateOptions holds the generate command flags.
type generateOptions struct {
	outputs   []string
	outputDir string
	themeName string
	dryRun    bool
	preview   bool
}

// newGenerateCmd represents the generate command.
func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <image|directory>",
		Short: "Generate theme files from a wallpaper",
		Long: `Extract a base colour from an image, derive the palette and render it
through the output plugins. A directory selects a random image inside it.

Output plugins:
  plasma   - Plasma desktop theme colors file and kdeglobals overrides
  aurorae  - Aurorae window decoration SVG tinted with the focus colour
  jsonfile - The palette as JSON

Examples:
  # Generate every output
  cullax generate wallpaper.jpg

  # Only Plasma colours, previewing the palette without writing
  cullax generate -o plasma --preview --dry-run wallpaper.jpg

  # Random wallpaper from a slideshow directory, outputs under one directory
  cullax generate --output-dir ./theme ~/Pictures/Wallpapers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts, args[0])
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringSliceVarP(&opts.outputs, "outputs", "o", []string{"all"}, "Output plugins (comma-separated or 'all')")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Write each plugin's files to <dir>/<plugin> unless the plugin's own output-dir is set")
	cmd.Flags().StringVar(&opts.themeName, "theme-name", "CullaX", "Theme name recorded in generated files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Preview without writing files")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Show colour palette preview")

	for _, p := range sortedPlugins(a) {
		p.RegisterFlags(cmd)
	}

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions, target string) error {
	if err := selectOutputs(cmd, a, opts.outputs); err != nil {
		return err
	}

	cfg, err := config.NewBuilder().WithEnvConfig().WithFlags(cmd.Flags()).Build()
	if err != nil {
		return err
	}

	if err := imgpkg.ValidateImagePath(target); err != nil {
		return err
	}
	path, err := imgpkg.ResolveImagePath(target)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg, engine.WithLogger(a.logger))
	if err != nil {
		return err
	}

	res, err := eng.Run(cmd.Context(), path)
	if err != nil {
		return err
	}
	a.logger.Info("derived palette", "path", res.Path, "base", res.Base.Triplet(), "branch", res.Palette.Branch())

	out := cmd.OutOrStdout()
	if opts.preview {
		fmt.Fprintln(out, paletteTable(res.Palette, !colour.DisableColourOutput))
	}

	themeData := colour.NewThemeData(res.Palette, res.Path, opts.themeName)

	var failed []string
	succeeded := 0
	for _, name := range a.plugins.ListOutputPlugins() {
		p, _ := a.plugins.GetOutputPlugin(name)
		if err := runOutputPlugin(cmd, a, opts, p, themeData); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s failed: %v\n", name, err)
			failed = append(failed, name)
			continue
		}
		succeeded++
	}

	if len(failed) > 0 {
		return fmt.Errorf("output plugin(s) failed: %s", strings.Join(failed, ", "))
	}
	if !opts.dryRun && !isQuiet(cmd) {
		fmt.Fprintf(out, "\nDone! Generated %d output plugin(s)\n", succeeded)
	}
	return nil
}

// selectOutputs enables the plugins named by --outputs. Without the flag the
// environment selection stands, falling back to every plugin.
func selectOutputs(cmd *cobra.Command, a *app, outputs []string) error {
	cfg := a.plugins.GetConfig()
	switch {
	case cmd.Flags().Changed("outputs"):
		if err := validateOutputNames(a, outputs); err != nil {
			return err
		}
		cfg.EnabledPlugins = outputs
	case len(cfg.EnabledPlugins) == 0:
		cfg.EnabledPlugins = []string{"all"}
	}
	a.plugins.UpdateConfig(cfg)

	if len(a.plugins.ListOutputPlugins()) == 0 {
		return &colour.ConfigurationError{Field: "outputs", Value: outputs, Reason: "no output plugins enabled"}
	}
	return nil
}

// validateOutputNames reports unknown plugin names as a configuration error.
func validateOutputNames(a *app, names []string) error {
	if err := a.plugins.ValidateNames(names); err != nil {
		return &colour.ConfigurationError{Field: "outputs", Value: strings.Join(names, ","), Reason: err.Error()}
	}
	return nil
}

// runOutputPlugin validates, renders and writes one plugin's files.
func runOutputPlugin(cmd *cobra.Command, a *app, opts *generateOptions, p output.Plugin, data *colour.ThemeData) error {
	if lp, ok := p.(output.LoggingPlugin); ok {
		lp.SetLogger(a.logger)
	}

	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files, err := p.Generate(data)
	if err != nil {
		return err
	}

	dir := pluginOutputDir(cmd, opts, p)
	out := cmd.OutOrStdout()
	for _, filename := range sortedKeys(files) {
		content := files[filename]
		fullPath := filepath.Join(dir, filename)

		if opts.dryRun {
			fmt.Fprintf(out, "Would write: %s (%d bytes)\n", fullPath, len(content))
			continue
		}
		if err := writeFile(cmd, fullPath, content); err != nil {
			return err
		}
		if !isQuiet(cmd) {
			fmt.Fprintf(out, "%s (%d bytes)\n", fullPath, len(content))
		}
	}
	return nil
}

// pluginOutputDir prefers the plugin's own output-dir flag, then --output-dir/<plugin>,
// then the plugin default.
func pluginOutputDir(cmd *cobra.Command, opts *generateOptions, p output.Plugin) string {
	if opts.outputDir != "" && !cmd.Flags().Changed(p.Name()+".output-dir") {
		return filepath.Join(opts.outputDir, p.Name())
	}
	return p.DefaultOutputDir()
}

// writeFile writes content to a file, creating directories as needed. An
// existing file is moved aside to <path>.backup first.
func writeFile(cmd *cobra.Command, path string, content []byte) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backupPath := path + ".backup"
		if err := os.Rename(path, backupPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not create backup: %v\n", err)
		}
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func sortedPlugins(a *app) []output.Plugin {
	names := a.plugins.OutputRegistry().List()
	plugins := make([]output.Plugin, 0, len(names))
	for _, name := range names {
		p, _ := a.plugins.GetOutputPlugin(name)
		plugins = append(plugins, p)
	}
	return plugins
}

func sortedKeys(files map[string][]byte) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
