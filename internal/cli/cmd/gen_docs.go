package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/cli/styles"
	"github.com/bnema/dockgrid/internal/infrastructure/config"
	"github.com/bnema/dockgrid/internal/infrastructure/layoutfile"
	xdgadapter "github.com/bnema/dockgrid/internal/infrastructure/xdg"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	layoutSchemaFile    = "layout.schema.json"
	configSchemaFile    = "config.schema.json"
	configReferenceFile = "dockgrid-config.md"
)

// docFormat generates the command pages of one output format.
type docFormat struct {
	ext      string
	generate func(root *cobra.Command, dir string) error
}

var docFormats = map[string]docFormat{
	"man":      {ext: ".1", generate: genManPages},
	"markdown": {ext: ".md", generate: genMarkdownPages},
}

var (
	genDocsOutputDir string
	genDocsFormat    string
	genDocsReference bool
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate command pages and layout/config reference files",
	Long: `Generate one page per command (man or markdown) plus the reference
files editors and tooling need:

  layout.schema.json   JSON Schema of a serialized layout
  config.schema.json   JSON Schema of config.toml
  dockgrid-config.md   every config key with its type and default

Reference files are written with markdown output by default. Man pages go
to ~/.local/share/man/man1/ unless --output is set, so the reference files
are only added there with --reference.

Examples:
  dockgrid gen-docs                            # man pages for 'man dockgrid'
  dockgrid gen-docs --format markdown          # ./docs with reference files
  dockgrid gen-docs -f markdown --reference=false
  dockgrid gen-docs --output ./man --reference # man pages and reference files`,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "output format: man, markdown")
	genDocsCmd.Flags().BoolVar(&genDocsReference, "reference", false, "also write the layout schema, config schema and config reference")
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	format, ok := docFormats[genDocsFormat]
	if !ok {
		return fmt.Errorf("unsupported format %q (use: man, markdown)", genDocsFormat)
	}

	dir, err := docsOutputDir(genDocsOutputDir, genDocsFormat, xdgadapter.New().ManDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rootCmd.DisableAutoGenTag = true
	if err := format.generate(rootCmd, dir); err != nil {
		return fmt.Errorf("generate %s pages: %w", genDocsFormat, err)
	}
	written, err := filesWithExt(dir, format.ext)
	if err != nil {
		return err
	}

	withReference := genDocsFormat == "markdown"
	if cmd.Flags().Changed("reference") {
		withReference = genDocsReference
	}
	if withReference {
		files, err := writeReferenceFiles(cmd.Context(), dir)
		if err != nil {
			return err
		}
		written = slices.DeleteFunc(written, func(name string) bool { return name == configReferenceFile })
		written = append(written, files...)
	}

	fmt.Printf("Wrote %s to %s\n", styles.Plural(len(written), "file"), dir)
	for _, name := range written {
		fmt.Printf("  - %s\n", name)
	}
	if genDocsFormat == "man" && genDocsOutputDir == "" {
		fmt.Println("Run 'mandb' if 'man dockgrid' doesn't work immediately.")
	}
	return nil
}

// docsOutputDir resolves the target directory: the flag, else the user man
// directory for man pages, else ./docs.
func docsOutputDir(flag, format string, manDir func() (string, error)) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if format != "man" {
		return "./docs", nil
	}
	dir, err := manDir()
	if err != nil {
		return "", fmt.Errorf("resolve man directory: %w", err)
	}
	return dir, nil
}

func genManPages(root *cobra.Command, dir string) error {
	now := time.Now()
	header := &doc.GenManHeader{
		Title:   "DOCKGRID",
		Section: "1",
		Source:  "dockgrid " + buildInfo.Version,
		Manual:  "dockgrid Manual",
		Date:    &now,
	}
	return doc.GenManTree(root, header, dir)
}

func genMarkdownPages(root *cobra.Command, dir string) error {
	return doc.GenMarkdownTree(root, dir)
}

// writeReferenceFiles writes both JSON schemas and the markdown config
// reference into dir and returns their names.
func writeReferenceFiles(ctx context.Context, dir string) ([]string, error) {
	layoutSchema, err := layoutfile.Schema()
	if err != nil {
		return nil, fmt.Errorf("layout schema: %w", err)
	}
	configSchema, err := config.Schema()
	if err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	keys, err := usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider()).
		Execute(ctx, usecase.GetConfigSchemaInput{})
	if err != nil {
		return nil, fmt.Errorf("config keys: %w", err)
	}
	reference := styles.NewConfigSchemaRenderer(styles.NewTheme()).RenderMarkdown(keys.Keys)

	files := []struct {
		name string
		data []byte
	}{
		{layoutSchemaFile, layoutSchema},
		{configSchemaFile, configSchema},
		{configReferenceFile, []byte(reference)},
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, filePerm); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		names = append(names, f.name)
	}
	return names, nil
}

func filesWithExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
