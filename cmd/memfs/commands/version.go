package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("memfs %s (commit: %s)\n", version, commit)
	},
}
