package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/config"
	"github.com/jmylchreest/cullax/internal/engine"
	imgpkg "github.com/jmylchreest/cullax/internal/image"
)

// newExtractCmd represents the extract command.
func newExtractCmd(a *app) *cobra.Command {
	var (
		format  string
		output  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "extract <image|directory>",
		Short: "Extract candidate colours from an image",
		Long: `Extract representative candidate colours from an image and show which one
is selected as the base colour for palette derivation.

A directory selects a random image inside it.

Examples:
  # Extract 5 candidates with the default dominant-cluster strategy
  cullax extract wallpaper.jpg

  # Use median cut with 8 candidates, as JSON
  cullax extract -s quantize -c 8 -f json wallpaper.png

  # Reproducible clustering seeded from the image content
  cullax extract --seed-mode content wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			cfg, err := config.NewBuilder().WithEnvConfig().WithFlags(cmd.Flags()).Build()
			if err != nil {
				return err
			}

			if err := imgpkg.ValidateImagePath(args[0]); err != nil {
				return err
			}
			path, err := imgpkg.ResolveImagePath(args[0])
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
			a.logger.Info("extracted candidates", "path", res.Path, "count", len(res.Candidates), "base", res.Base.Triplet())

			out, err := formatCandidates(res.Path, res.Seed, res.Base, res.Candidates, format, wantPreview(preview))
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return writeOutput(cmd, output, out)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, triplet, hex, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show colour previews in terminal")

	return cmd
}
