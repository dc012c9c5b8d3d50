package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of logconf`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logconf %s\n", version.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
