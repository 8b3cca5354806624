// Package cli provides the command-line interface for cullax.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/plugin/manager"
	"github.com/jmylchreest/cullax/internal/version"
)

// EnvLogLevel overrides the log level chosen by --verbose and --quiet.
const EnvLogLevel = "CULLAX_LOG_LEVEL"

// Exit codes returned by Execute.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
)

// app holds state shared by every command of one root command tree.
type app struct {
	logger  hclog.Logger
	plugins *manager.Manager
}

// NewRootCmd builds the complete command tree. Each call returns independent
// commands, flags and plugin instances.
func NewRootCmd() *cobra.Command {
	a := &app{
		logger:  hclog.NewNullLogger(),
		plugins: manager.NewBuilder().WithEnvConfig().Build(),
	}

	rootCmd := &cobra.Command{
		Use:   "cullax",
		Short: "Derive a desktop colour scheme from a wallpaper",
		Long: `cullax extracts a base colour from an image and derives a complete desktop
colour scheme from it: panel background, foreground, midlight, highlight,
focus and window decorations, and clock hands.

The scheme is rendered into Plasma colour files, an Aurorae window decoration
and JSON through output plugins.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			a.logger = logger

			noColour, _ := cmd.Flags().GetBool("no-colour")
			colour.DisableColourOutput = noColour || !supportsColour(cmd.OutOrStdout())
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().Bool("no-colour", false, "disable colour output (also NO_COLOR)")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newExtractCmd(a),
		newDeriveCmd(a),
		newGenerateCmd(a),
		newDescribeCmd(),
		newTemplatesCmd(a),
	)

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
// This is called by main.main().
func Execute() int {
	return exitCode(NewRootCmd().Execute())
}

// exitCode maps an error to an exit code. Configuration errors are caller
// errors and exit with ExitConfiguration.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, colour.ErrConfiguration):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}

// newLogger creates the command logger from --verbose, --quiet and CULLAX_LOG_LEVEL.
func newLogger(cmd *cobra.Command) (hclog.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Off
	case verbose:
		level = hclog.Debug
	}

	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		level = hclog.LevelFromString(env)
		if level == hclog.NoLevel {
			return nil, &colour.ConfigurationError{Field: EnvLogLevel, Value: env, Reason: "unknown log level"}
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "cullax",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	}), nil
}

// isQuiet reports whether --quiet was given.
func isQuiet(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return quiet
}

// supportsColour reports whether w is a terminal that accepts colour escapes.
func supportsColour(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && colour.SupportsANSIColours(f)
}

// newVersionCmd represents the version command.
func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				data, err := version.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
