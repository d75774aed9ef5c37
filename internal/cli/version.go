package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the "version" cobra command, an alias for
// the root --version flag that reads better in scripts.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("phantom %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
