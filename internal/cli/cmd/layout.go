package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/cli"
	"github.com/bnema/dockgrid/internal/cli/model"
	"github.com/bnema/dockgrid/internal/cli/styles"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/infrastructure/config"
	"github.com/bnema/dockgrid/internal/infrastructure/headless"
	"github.com/bnema/dockgrid/internal/infrastructure/layoutfile"
	"github.com/bnema/dockgrid/internal/ui/coordinator"
)

var (
	validateJobs int
	listLimit    int
	listJSON     bool
	exportOutput string
	deleteYes    bool
	showGeometry bool
	showSize     string
	saveFromClip bool
	exportToClip bool
)

var layoutCmd = &cobra.Command{
	Use:     "layout",
	Aliases: []string{"layouts"},
	Short:   "Work with serialized layouts",
	Long: `Validate, inspect, store and export serialized docking layouts.

A layout is referred to either by a file path or by the name it was saved
under in the layout database.`,
}

var layoutValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check layout files",
	Long: `Parse and validate layout files. Files are checked concurrently; the
command fails if any of them is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLayoutValidate,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show <name|file>",
	Short: "Render a layout as a tree",
	Long: `Render the grid tree, floating and popout groups of a layout.

The argument is read as a file when it exists on disk, otherwise as the
name of a stored layout.

With --geometry the layout is also restored the way an application would
restore it, using the [layout] and [components] config sections, and the
box of every group is printed. --size overrides the host size.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutShow,
}

var layoutSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of layout files",
	Args:  cobra.NoArgs,
	RunE:  runLayoutSchema,
}

var layoutSaveCmd = &cobra.Command{
	Use:   "save <name> [file]",
	Short: "Store a layout file under a name",
	Long: `Validate a layout file and store it, replacing any layout with the same name.
With --clipboard the layout JSON is read from the clipboard instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLayoutSave,
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutList,
}

var layoutExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a stored layout to a file",
	Long: `Write a stored layout to a JSON file. Without --output the file goes to
the layout export directory as <name>.json. With --clipboard the JSON is
copied to the clipboard instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutExport,
}

var layoutDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutDelete,
}

var layoutBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored layouts interactively",
	Args:  cobra.NoArgs,
	RunE:  runLayoutBrowse,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(
		layoutValidateCmd,
		layoutShowCmd,
		layoutSchemaCmd,
		layoutSaveCmd,
		layoutListCmd,
		layoutExportCmd,
		layoutDeleteCmd,
		layoutBrowseCmd,
	)

	layoutShowCmd.Flags().BoolVarP(&showGeometry, "geometry", "g", false, "restore the layout and print group boxes")
	layoutShowCmd.Flags().StringVar(&showSize, "size", "", "host size as WIDTHxHEIGHT (default: config, then the saved size)")
	layoutValidateCmd.Flags().IntVarP(&validateJobs, "jobs", "j", 0, "files checked at once (0 picks a default)")
	layoutListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show at most n layouts (0 for all)")
	layoutListCmd.Flags().BoolVar(&listJSON, "json", false, "print as JSON")
	layoutExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
	layoutExportCmd.Flags().BoolVarP(&exportToClip, "clipboard", "c", false, "copy the layout JSON to the clipboard")
	layoutExportCmd.MarkFlagsMutuallyExclusive("output", "clipboard")
	layoutSaveCmd.Flags().BoolVarP(&saveFromClip, "clipboard", "c", false, "read the layout JSON from the clipboard")
	layoutDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
}

func runLayoutValidate(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	results, err := layoutfile.ValidateFiles(a.Ctx(), args, validateJobs)
	if err != nil {
		return err
	}
	fmt.Println(styles.NewLayoutsRenderer(a.Theme).RenderValidation(results))

	invalid := 0
	for _, res := range results {
		if !res.OK() {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d invalid layout file(s)", invalid)
	}
	return nil
}

func runLayoutShow(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	layout, title, err := resolveLayout(a.Ctx(), a, args[0])
	if err != nil {
		return err
	}
	t := a.Theme
	fmt.Printf("%s %s  %s\n\n",
		t.Highlight.Render(styles.IconLayout),
		t.Title.Render(title),
		t.Subtle.Render(styles.Plural(layout.GroupCount(), "group")+", "+styles.Plural(layout.PanelCount(), "panel")),
	)
	renderer := styles.NewLayoutsRenderer(t)
	fmt.Print(renderer.RenderTree(layout, "  "))
	if !showGeometry {
		return nil
	}

	width, height, err := hostSize(showSize, a.Config, layout)
	if err != nil {
		return err
	}
	groups, err := measureLayout(a.Ctx(), a.Config, layout, width, height)
	if err != nil {
		return fmt.Errorf("restore layout: %w", err)
	}
	fmt.Println()
	fmt.Print(renderer.RenderGeometry(groups, width, height))
	return nil
}

// hostSize picks the size to lay a layout out at: the flag, then the
// config, then the size the layout was saved with.
func hostSize(flag string, cfg *config.Config, layout *entity.SerializedLayout) (int, int, error) {
	if flag != "" {
		return parseSize(flag)
	}
	if cfg.Layout.Width > 0 && cfg.Layout.Height > 0 {
		return cfg.Layout.Width, cfg.Layout.Height, nil
	}
	return layout.Grid.Width, layout.Grid.Height, nil
}

// parseSize reads WIDTHxHEIGHT.
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width < 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height < 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return width, height, nil
}

// measureLayout restores layout into a controller with no display and
// returns where each group lands at width x height.
func measureLayout(
	ctx context.Context,
	cfg *config.Config,
	layout *entity.SerializedLayout,
	width, height int,
) ([]coordinator.GroupGeometry, error) {
	opts := coordinator.DockingOptionsFromConfig(cfg)
	opts.Width, opts.Height = width, height
	c := coordinator.NewDockingController(ctx, coordinator.DockingControllerConfig{
		Components: headless.NewComponents(),
		Options:    opts,
	})
	defer c.Clear(ctx)

	if err := c.FromJSON(ctx, layout); err != nil {
		return nil, err
	}
	c.Layout(width, height)
	if err := c.CheckInvariants(); err != nil {
		return nil, err
	}
	return c.Geometry(), nil
}

// resolveLayout reads arg as a file if it exists, else as a stored name.
func resolveLayout(ctx context.Context, a *cli.App, arg string) (*entity.SerializedLayout, string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		layout, err := layoutfile.Read(arg)
		return layout, arg, err
	}
	out, err := a.LoadLayoutUC.Execute(ctx, usecase.LoadLayoutInput{Name: arg})
	if err != nil {
		return nil, "", err
	}
	return out.Layout, out.Record.Name, nil
}

func runLayoutSchema(_ *cobra.Command, _ []string) error {
	data, err := layoutfile.Schema()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runLayoutSave(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	layout, err := readSaveInput(a.Ctx(), a, args)
	if err != nil {
		return err
	}
	out, err := a.SaveLayoutUC.Execute(a.Ctx(), usecase.SaveLayoutInput{Name: args[0], Layout: layout})
	if err != nil {
		return err
	}
	fmt.Println(styles.NewLayoutsRenderer(a.Theme).RenderSaved(out.Record))
	return nil
}

// readSaveInput reads the layout to store from the file argument or the
// clipboard.
func readSaveInput(ctx context.Context, a *cli.App, args []string) (*entity.SerializedLayout, error) {
	switch {
	case saveFromClip && len(args) > 1:
		return nil, errors.New("give either a file or --clipboard, not both")
	case saveFromClip:
		text, err := a.Clipboard.ReadText(ctx)
		if err != nil {
			return nil, err
		}
		layout, err := entity.ParseLayout([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("clipboard: %w", err)
		}
		return layout, nil
	case len(args) < 2:
		return nil, errors.New("missing layout file (or use --clipboard)")
	default:
		return layoutfile.Read(args[1])
	}
}

func runLayoutList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	out, err := a.ListLayoutsUC.Execute(a.Ctx(), listLimit)
	if err != nil {
		return err
	}
	if listJSON {
		data, err := json.MarshalIndent(out.Layouts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal layouts: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(styles.NewLayoutsRenderer(a.Theme).RenderList(out.Layouts))
	return nil
}

func runLayoutExport(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewLayoutsRenderer(a.Theme)
	if exportToClip {
		if err := copyLayout(a.Ctx(), a, args[0]); err != nil {
			return err
		}
		fmt.Println(renderer.RenderCopied(args[0]))
		return nil
	}

	path, err := exportLayout(a.Ctx(), a, args[0], exportOutput)
	if err != nil {
		return err
	}
	fmt.Println(renderer.RenderExported(args[0], path))
	return nil
}

// copyLayout puts the stored layout name on the clipboard as indented JSON.
func copyLayout(ctx context.Context, a *cli.App, name string) error {
	out, err := a.LoadLayoutUC.Execute(ctx, usecase.LoadLayoutInput{Name: name})
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(out.Layout, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	return a.Clipboard.WriteText(ctx, string(data)+"\n")
}

// exportLayout writes the stored layout name to path, or to the export
// directory when path is empty, and returns the path written.
func exportLayout(ctx context.Context, a *cli.App, name, path string) (string, error) {
	out, err := a.LoadLayoutUC.Execute(ctx, usecase.LoadLayoutInput{Name: name})
	if err != nil {
		return "", err
	}
	if path == "" {
		dir, err := a.Paths.LayoutExportDir()
		if err != nil {
			return "", fmt.Errorf("resolve export dir: %w", err)
		}
		path = filepath.Join(dir, exportFileName(out.Record.Name))
	}
	if err := layoutfile.Write(path, out.Layout); err != nil {
		return "", err
	}
	return path, nil
}

// exportFileName maps a layout name to a safe file name.
func exportFileName(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	safe = strings.Trim(safe, ".")
	if safe == "" {
		safe = "layout"
	}
	return safe + ".json"
}

func runLayoutDelete(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	name := args[0]

	if !deleteYes {
		ok, err := askConfirm(a.Theme, fmt.Sprintf("Delete layout %s?", name), "")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(a.Theme.Subtle.Render("Canceled."))
			return nil
		}
	}

	if err := a.DeleteLayoutUC.Execute(a.Ctx(), name); err != nil {
		return err
	}
	fmt.Println(styles.NewLayoutsRenderer(a.Theme).RenderDeleted(name))
	return nil
}

func runLayoutBrowse(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	m := model.NewLayoutsModel(a.Ctx(), a.Theme, model.LayoutsModelConfig{
		ListUC:   a.ListLayoutsUC,
		LoadUC:   a.LoadLayoutUC,
		DeleteUC: a.DeleteLayoutUC,
		Export: func(ctx context.Context, name string) (string, error) {
			return exportLayout(ctx, a, name, "")
		},
		Copy: func(ctx context.Context, name string) error {
			return copyLayout(ctx, a, name)
		},
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run layout browser: %w", err)
	}
	return nil
}

// confirmPrompt runs a ConfirmModel as a standalone program.
type confirmPrompt struct {
	confirm styles.ConfirmModel
}

func (p confirmPrompt) Init() tea.Cmd { return nil }

func (p confirmPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := p.confirm.Update(msg)
	p.confirm = confirm
	if confirm.Done() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p confirmPrompt) View() string {
	if p.confirm.Done() {
		return ""
	}
	return p.confirm.View()
}

func askConfirm(theme *styles.Theme, message, detail string) (bool, error) {
	final, err := tea.NewProgram(confirmPrompt{confirm: styles.NewConfirm(theme, message, detail)}).Run()
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	p, ok := final.(confirmPrompt)
	if !ok {
		return false, errors.New("confirm: unexpected model")
	}
	return p.confirm.Result(), nil
}
