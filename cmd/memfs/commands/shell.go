package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/treelab/memfs/internal/cli/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, cfg, err := setup()
		if err != nil {
			return err
		}
		return shell.New(fs, cfg, os.Stdin, os.Stdout).Run()
	},
}
