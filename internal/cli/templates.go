package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/plugin/output"
	tmplloader "github.com/jmylchreest/cullax/internal/plugin/output/template"
)

// newTemplatesCmd represents the templates command.
func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `Manage output plugin templates including listing and dumping embedded templates.

Templates can be customised by extracting them to ~/.config/cullax/templates/{plugin-name}/
and modifying them. Custom templates are used instead of embedded ones.

Examples:
  cullax templates list
  cullax templates dump -o plasma
  cullax templates dump -o plasma,aurorae --force`,
	}

	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesDumpCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available plugin templates",
		Long: `List all available templates from output plugins.

Templates with an active custom override are marked with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plugins, err := selectTemplatePlugins(a, names)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			hasCustom := false
			for _, p := range plugins {
				loader := templateLoader(a, p, "")
				if loader == nil {
					fmt.Fprintf(out, "Plugin: %s (no templates)\n\n", p.Name())
					continue
				}

				templates, err := loader.ListEmbeddedTemplates()
				if err != nil {
					return fmt.Errorf("failed to list templates for %s: %w", p.Name(), err)
				}

				fmt.Fprintf(out, "Plugin: %s\n", p.Name())
				fmt.Fprintf(out, "  Custom template directory: %s\n", loader.CustomDir())
				fmt.Fprintln(out, "  Templates:")
				for _, tmpl := range templates {
					marker := ""
					if loader.GetInfo(tmpl).CustomExists {
						marker = "*"
						hasCustom = true
					}
					fmt.Fprintf(out, "    - %s%s\n", tmpl, marker)
				}
				fmt.Fprintln(out)
			}

			if hasCustom {
				fmt.Fprintln(out, "Templates with active overrides are shown with an asterisk (*).")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&names, "output-plugins", "o", nil, "Comma-separated list of output plugins (default: all)")
	return cmd
}

func newTemplatesDumpCmd(a *app) *cobra.Command {
	var (
		names    []string
		force    bool
		location string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump embedded templates to files",
		Long: `Extract embedded plugin templates to ~/.config/cullax/templates/{plugin-name}/
so they can be customised. Existing custom templates are kept unless --force is given.

Examples:
  cullax templates dump
  cullax templates dump -o plasma --force
  cullax templates dump -l ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plugins, err := selectTemplatePlugins(a, names)
			if err != nil {
				return err
			}

			base, err := expandHome(location)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, p := range plugins {
				loader := templateLoader(a, p, base)
				if loader == nil {
					a.logger.Debug("plugin has no templates", "plugin", p.Name())
					continue
				}

				fmt.Fprintf(out, "Dumping templates for %s...\n", p.Name())
				dumped, err := loader.DumpAllTemplates(force)
				for _, path := range dumped {
					fmt.Fprintf(out, "  %s\n", path)
				}
				total += len(dumped)

				if err != nil {
					if force || !errors.Is(err, tmplloader.ErrTemplateExists) {
						return fmt.Errorf("failed to dump templates for %s: %w", p.Name(), err)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "  skipped existing templates: %v\n", err)
				}
			}

			if total == 0 {
				fmt.Fprintln(out, "No templates were dumped. Use --force to overwrite existing templates.")
				return nil
			}
			fmt.Fprintf(out, "\nDumped %d template(s)\n", total)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&names, "output-plugins", "o", nil, "Comma-separated list of output plugins (default: all)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing custom templates")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Custom location to dump templates (default: ~/.config/cullax/templates)")
	return cmd
}

// selectTemplatePlugins returns the named plugins in order, or every registered plugin.
func selectTemplatePlugins(a *app, names []string) ([]output.Plugin, error) {
	if err := validateOutputNames(a, names); err != nil {
		return nil, err
	}
	if len(names) == 0 || slices.Contains(names, "all") {
		names = a.plugins.OutputRegistry().List()
	}

	plugins := make([]output.Plugin, 0, len(names))
	for _, name := range names {
		if p, ok := a.plugins.GetOutputPlugin(strings.TrimPrefix(name, "output:")); ok {
			plugins = append(plugins, p)
		}
	}
	return plugins, nil
}

// templateLoader returns a loader for the plugin's templates, or nil when the
// plugin does not provide any.
func templateLoader(a *app, p output.Plugin, customBase string) *tmplloader.Loader {
	tp, ok := p.(output.TemplateProvider)
	if !ok || tp.Templates() == nil {
		return nil
	}

	loader := tmplloader.New(p.Name(), tp.Templates()).WithLogger(a.logger)
	if customBase != "" {
		loader = loader.WithCustomBase(customBase)
	}
	return loader
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
