package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the seeded namespace as an indented tree and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, _, err := setup()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return fs.PrintSubtree(args[0], os.Stdout)
		}
		return fs.PrintTree(os.Stdout)
	},
}
