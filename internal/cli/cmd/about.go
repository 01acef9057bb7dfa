package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockgrid/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:     "about",
	Aliases: []string{"version"},
	Short:   "Show version and build information",
	Long:    `Display version, build info, repository URL, and contributors.`,
	RunE:    runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	fmt.Println(styles.NewAboutRenderer(a.Theme).Render(a.BuildInfo))
	return nil
}
