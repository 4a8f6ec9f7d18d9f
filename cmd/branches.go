package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var branchesCmd = &cobra.Command{
	Use:   "branches <project>",
	Short: "List all branches of a project",
	Long: `List every branch of a project with the commit it points at,
following the platform's pagination to the end.

The project identifier is "owner/repo" ("organization/project" or
"organization/project/repository" on Azure DevOps).`,
	Args: cobra.ExactArgs(1),
	RunE: runBranches,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}

func runBranches(cmd *cobra.Command, args []string) error {
	branches, err := newService().Branches(cmd.Context(), platform, args[0])
	if err != nil {
		return err
	}

	for _, branch := range branches {
		fmt.Printf("%-40s %s\n", branch.Name, branch.CommitID)
	}
	return nil
}
