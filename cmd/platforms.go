package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the supported hosting platforms",
	Run: func(_ *cobra.Command, _ []string) {
		for _, name := range newRegistry().Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
