package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	platform    string
	serverURL   string
	endpointURL string
	token       string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "gitmeta",
	Short: "Repository metadata client for Git hosting platforms",
	Long: `A client for retrieving repository metadata (branches, tags, file content,
canonical URLs) from Git hosting platforms through one uniform interface.

Supports GitHub, GitLab, Azure DevOps, Bitbucket and Gitea. Each platform's
REST conventions — URL templates, pagination cursors, auth headers, content
encodings — stay behind the provider abstraction.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the providers file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&platform, "platform", "p", "github",
		"Hosting platform: github, gitlab, azuredevops, bitbucket, gitea")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"Web server URL (overrides the platform default)")
	rootCmd.PersistentFlags().StringVar(&endpointURL, "endpoint", "",
		"REST API endpoint URL (overrides the platform default)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "",
		"Auth token for the platform (overrides the providers file)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}
