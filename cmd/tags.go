package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var sortBySemver bool

var tagsCmd = &cobra.Command{
	Use:   "tags <project>",
	Short: "List all tags of a project",
	Long: `List every tag of a project with the commit it points at,
following the platform's pagination to the end.

Tags are printed in the platform's listing order; --semver re-sorts the
output by semantic version, newest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().BoolVar(&sortBySemver, "semver", false,
		"Sort output by semantic version, newest first")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	tags, err := newService().Tags(cmd.Context(), platform, args[0])
	if err != nil {
		return err
	}

	if sortBySemver {
		sort.SliceStable(tags, func(i, j int) bool {
			v1 := normalizeVersion(tags[i].Name)
			v2 := normalizeVersion(tags[j].Name)
			if semver.IsValid(v1) && semver.IsValid(v2) {
				return semver.Compare(v1, v2) > 0
			}
			return tags[i].Name > tags[j].Name
		})
	}

	for _, tag := range tags {
		fmt.Printf("%-40s %s\n", tag.Name, tag.CommitID)
	}
	return nil
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
