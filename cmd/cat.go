package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <project> <path>",
	Short: "Print a file from the project's default branch",
	Args:  cobra.ExactArgs(2),
	RunE:  runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	content, err := newService().ReadContent(cmd.Context(), platform, args[0], args[1])
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(content)
	return err
}
