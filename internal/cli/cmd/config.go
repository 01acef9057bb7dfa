package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/cli/styles"
	"github.com/bnema/dockgrid/internal/infrastructure/config"
)

var (
	configSchemaJSON       bool
	configSchemaJSONSchema bool
	configSchemaSection    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where the configuration lives and which keys it accepts.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file and layout database locations",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List every configuration key with its type and default",
	Long: `List every configuration key with its type, default and accepted values.

Examples:
  dockgrid config schema                    # styled reference
  dockgrid config schema --section logging  # one section
  dockgrid config schema --json             # key list as JSON
  dockgrid config schema --jsonschema       # JSON Schema for editors`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)

	configSchemaCmd.Flags().BoolVar(&configSchemaJSON, "json", false, "print keys as JSON")
	configSchemaCmd.Flags().BoolVar(&configSchemaJSONSchema, "jsonschema", false, "print the JSON Schema of config.toml")
	configSchemaCmd.Flags().StringVar(&configSchemaSection, "section", "", "only show one section")
	configSchemaCmd.MarkFlagsMutuallyExclusive("json", "jsonschema")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	configFile, err := config.GetConfigFile()
	if err != nil {
		return err
	}
	t := a.Theme
	fmt.Printf("%s %s\n", t.Highlight.Render(styles.IconConfig), configFile)
	fmt.Printf("%s %s\n", t.Highlight.Render(styles.IconDatabase), a.DatabasePath())
	if a.Config.Logging.EnableFileLog {
		fmt.Printf("%s %s\n", t.Highlight.Render(styles.IconFile), a.Config.Logging.LogDir)
	}
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if configSchemaJSONSchema {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	out, err := a.ConfigSchemaUC.Execute(a.Ctx(), usecase.GetConfigSchemaInput{Section: configSchemaSection})
	if err != nil {
		return fmt.Errorf("get config schema: %w", err)
	}

	renderer := styles.NewConfigSchemaRenderer(a.Theme)
	if configSchemaJSON {
		data, err := renderer.RenderJSON(out.Keys)
		if err != nil {
			return err
		}
		fmt.Println(data)
		return nil
	}
	fmt.Println(renderer.Render(out.Keys))
	return nil
}
