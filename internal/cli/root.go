// Package cli implements the strcalc command line.
package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/JonMunkholm/strcalc/internal/logging"
	"github.com/spf13/cobra"
)

// version and commit are set at build time via -ldflags.
var version = ""
var commit = ""

// errReported marks failures already shown to the user.
var errReported = errors.New("reported")

// NewRootCmd builds the strcalc command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "strcalc",
		Short:         "Sum delimited numbers from the command line or a web form",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveBoolFlagFromEnv(cmd, "verbose", envVerbose); err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")

	v := version
	if v == "" {
		v = "dev"
	}
	if commit != "" {
		v += " (" + commit + ")"
	}
	root.Version = v
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(newAddCmd())
	root.AddCommand(newServeCmd())
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
