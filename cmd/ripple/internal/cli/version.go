package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ripple/ripple/cmd/ripple/internal/config"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ripple %s (built %s)\n", Version, BuildTime)

			root, err := config.FindProjectRoot()
			if err != nil {
				return nil
			}
			resolved, err := config.Resolve(root)
			if err != nil {
				return nil
			}
			fmt.Fprintf(out, "project %s (%s)\n", resolved.AppName, resolved.ModulePath)
			return nil
		},
	}
}
