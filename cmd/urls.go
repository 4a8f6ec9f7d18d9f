package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contentPath string

var urlsCmd = &cobra.Command{
	Use:   "urls <project>",
	Short: "Show the canonical URLs of a project",
	Long: `Show the REST endpoint, web, and clone URLs the platform derives
for a project, plus the content URL for --path when given.`,
	Args: cobra.ExactArgs(1),
	RunE: runURLs,
}

func init() {
	urlsCmd.Flags().StringVar(&contentPath, "path", "",
		"Also show the content URL for this file path")
	rootCmd.AddCommand(urlsCmd)
}

func runURLs(_ *cobra.Command, args []string) error {
	prov, err := newService().Provider(platform, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("endpoint:   %s\n", prov.EndpointURL())
	fmt.Printf("repository: %s\n", prov.RepositoryURL())
	fmt.Printf("clone:      %s\n", prov.CloneURL())
	if contentPath != "" {
		fmt.Printf("content:    %s\n", prov.ContentURL(contentPath))
	}
	return nil
}
