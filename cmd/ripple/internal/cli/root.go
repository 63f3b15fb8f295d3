// Package cli implements the ripple CLI commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ripple/ripple/cmd/ripple/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the ripple CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ripple",
		Short: "ripple - component trees, but Go",
		Long: `Ripple renders component trees onto pluggable hosts. The CLI runs
the built-in showcase demos against the in-memory host and can write
text or PNG snapshots of their committed trees.

Use "ripple <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSnapshotCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// projectDefaults resolves ripple.yaml when run inside a project, or
// falls back to built-in defaults outside one.
func projectDefaults() *config.Resolved {
	if root, err := config.FindProjectRoot(); err == nil {
		resolved, err := config.Resolve(root)
		if err == nil {
			return resolved
		}
		slog.Debug("ignoring project config", "error", err)
	}
	return &config.Resolved{
		DefaultDemo: "counter",
		Seconds:     3,
		Format:      "text",
	}
}
