package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/config"
	"github.com/jmylchreest/cullax/internal/engine"
)

// newDeriveCmd represents the derive command.
func newDeriveCmd(a *app) *cobra.Command {
	var (
		reference string
		format    string
		output    string
		preview   bool
	)

	cmd := &cobra.Command{
		Use:   "derive <colour>",
		Short: "Derive a palette from a base colour",
		Long: `Derive the full role palette from a base colour without reading an image.

Colours are accepted as "r,g,b" triplets, hex (#rrggbb) or colour names.

Examples:
  cullax derive 40,64,128
  cullax derive '#284080' --format json
  cullax derive navy --reference 200,200,210`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			base, err := colour.ParseColour(args[0])
			if err != nil {
				return err
			}

			var ref *colour.RGB
			if reference != "" {
				r, err := colour.ParseColour(reference)
				if err != nil {
					return err
				}
				ref = &r
			}

			cfg, err := config.NewBuilder().WithEnvConfig().WithFlags(cmd.Flags()).Build()
			if err != nil {
				return err
			}
			eng, err := engine.New(cfg, engine.WithLogger(a.logger))
			if err != nil {
				return err
			}

			palette := eng.DeriveColour(base, ref)
			a.logger.Debug("derived palette", "base", base.Triplet(), "branch", palette.Branch())

			out, err := formatPalette(palette, format, wantPreview(preview))
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "Colour whose lightness selects the rule branch (default: the base)")
	cmd.Flags().String(config.FlagRules, "", "JSON rule table overlaid on the built-in rules")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, triplet, hex, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show colour previews in terminal")

	return cmd
}
