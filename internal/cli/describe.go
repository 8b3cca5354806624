package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
)

// newDescribeCmd represents the describe command.
func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <colour>...",
		Short: "Describe colours by name and colour model",
		Long: `Print each colour in RGB, hex, HLS and HSV together with its hue name
and the closest terminal colour.

Examples:
  cullax describe 40,64,128
  cullax describe '#ff8800' teal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for i, arg := range args {
				c, err := colour.ParseColour(arg)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}

				hls := colour.RGBToHLS(c)
				hsv := colour.RGBToHSV(c)
				fmt.Fprintln(out, colour.FormatColourWithLabel(c, arg, 8))
				fmt.Fprintf(out, "RGB:     %s\n", c.Triplet())
				fmt.Fprintf(out, "Hex:     %s\n", c.Hex())
				fmt.Fprintf(out, "HLS:     %.3f, %.3f, %.3f\n", hls.H, hls.L, hls.S)
				fmt.Fprintf(out, "HSV:     %.3f, %.3f, %.3f\n", hsv.H, hsv.S, hsv.V)
				fmt.Fprintf(out, "Name:    %s\n", colour.ColourString(c, colour.Describe(c)))
				fmt.Fprintf(out, "Nearest: %s\n", colour.ClosestNamedColour(c).Name)
			}
			return nil
		},
	}
}
