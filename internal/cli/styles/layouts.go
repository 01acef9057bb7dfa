package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/infrastructure/layoutfile"
	"github.com/bnema/dockgrid/internal/ui/coordinator"
)

const maxTitleLen = 40

// LayoutsRenderer renders non-interactive output for the layout commands.
type LayoutsRenderer struct {
	theme *Theme
}

// NewLayoutsRenderer creates a LayoutsRenderer.
func NewLayoutsRenderer(theme *Theme) *LayoutsRenderer {
	return &LayoutsRenderer{theme: theme}
}

// RenderEmptyList is shown when nothing is stored.
func (r *LayoutsRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved layouts found.")
}

// RenderList renders stored layouts, one per line.
func (r *LayoutsRenderer) RenderList(items []entity.LayoutSummary) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", r.theme.Highlight.Render(IconLayout), r.theme.Title.Render("Layouts"))
	for _, s := range items {
		b.WriteString(r.RenderSummary(s, false))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render("Tip: use `dockgrid layout browse` for the interactive browser."))
	return b.String()
}

// RenderSummary renders one stored layout as a single row.
func (r *LayoutsRenderer) RenderSummary(s entity.LayoutSummary, selected bool) string {
	t := r.theme
	cursor := "  "
	name := t.Normal.Render(s.Name)
	if selected {
		cursor = t.Highlight.Render(IconCursor + " ")
		name = t.Highlight.Render(s.Name)
	}

	counts := t.Subtle.Render(fmt.Sprintf("%s %d  %s %d",
		IconGroup, s.GroupCount,
		IconPanel, s.PanelCount,
	))
	saved := t.Subtle.Render(fmt.Sprintf("%s %s", IconClock, RelativeTime(s.SavedAt)))

	row := fmt.Sprintf("%s%s  %s  %s", cursor, name, counts, saved)
	if s.Version > entity.LayoutStateVersion {
		row += "  " + t.WarningStyle.Render(fmt.Sprintf("%s v%d", IconWarning, s.Version))
	}
	return row
}

// RenderSaved confirms a stored layout.
func (r *LayoutsRenderer) RenderSaved(record *entity.LayoutRecord) string {
	return fmt.Sprintf("%s Layout %s saved (%s, %s).",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(record.Name),
		Plural(record.GroupCount, "group"),
		Plural(record.PanelCount, "panel"),
	)
}

// RenderDeleted confirms a deletion.
func (r *LayoutsRenderer) RenderDeleted(name string) string {
	return fmt.Sprintf("%s Layout %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(name),
	)
}

// RenderExported confirms a written file.
func (r *LayoutsRenderer) RenderExported(name, path string) string {
	return fmt.Sprintf("%s Layout %s written to %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(name),
		r.theme.Subtle.Render(path),
	)
}

// RenderCopied confirms a layout was copied to the clipboard.
func (r *LayoutsRenderer) RenderCopied(name string) string {
	return fmt.Sprintf("%s Layout %s copied to the clipboard",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(name),
	)
}

// RenderValidation renders one line per checked file and a closing tally.
func (r *LayoutsRenderer) RenderValidation(results []layoutfile.Result) string {
	t := r.theme
	var b strings.Builder
	failed := 0
	for _, res := range results {
		if res.OK() {
			fmt.Fprintf(&b, "%s %s  %s\n",
				t.SuccessStyle.Render(IconCheck),
				t.Normal.Render(res.Path),
				t.Subtle.Render(Plural(res.Groups, "group")+", "+Plural(res.Panels, "panel")),
			)
			continue
		}
		failed++
		fmt.Fprintf(&b, "%s %s\n    %s\n",
			t.ErrorStyle.Render(IconX),
			t.Normal.Render(res.Path),
			t.ErrorStyle.Render(res.Err.Error()),
		)
	}

	b.WriteString("\n")
	if failed == 0 {
		b.WriteString(t.SuccessStyle.Render(fmt.Sprintf("%d valid", len(results))))
	} else {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%d of %d invalid", failed, len(results))))
	}
	return b.String()
}

// RenderError renders an error line.
func (r *LayoutsRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

// RenderGeometry lists the box every group occupies once laid out at
// width x height.
func (r *LayoutsRenderer) RenderGeometry(groups []coordinator.GroupGeometry, width, height int) string {
	t := r.theme
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", t.Subtitle.Render("geometry"), t.Subtle.Render(fmt.Sprintf("%dx%d", width, height)))
	for _, g := range groups {
		icon := IconGroup
		switch g.Location {
		case entity.LocationFloating:
			icon = IconFloating
		case entity.LocationPopout:
			icon = IconPopout
		}
		box := fmt.Sprintf("%4d,%-4d %4dx%-4d", g.Box.Left, g.Box.Top, g.Box.Width, g.Box.Height)
		line := fmt.Sprintf("  %s %-10s %s  %s",
			t.Subtle.Render(icon),
			t.Normal.Render("group "+string(g.Group)),
			t.Subtle.Render(box),
			t.Subtle.Render(Plural(g.Panels, "panel")),
		)
		if !g.Visible {
			line += " " + t.Subtle.Render(IconHidden)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTree draws the grid tree of a layout followed by its floating and
// popout groups. Every line starts with indent.
func (r *LayoutsRenderer) RenderTree(layout *entity.SerializedLayout, indent string) string {
	if layout == nil {
		return indent + r.theme.Subtle.Render("No layout data available") + "\n"
	}

	t := r.theme
	tree := lipgloss.NewStyle().Foreground(t.Border)
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s %s\n", indent,
		t.Subtitle.Render("grid"),
		t.Subtle.Render(fmt.Sprintf("%dx%d", layout.Grid.Width, layout.Grid.Height)),
	)
	r.renderNode(&b, layout, layout.Grid.Root, layout.Grid.Orientation, indent, true, tree)

	for _, f := range layout.FloatingGroups {
		fmt.Fprintf(&b, "%s%s %s  %s\n", indent,
			t.Subtle.Render(IconFloating),
			r.groupLabel(layout, f.Data),
			t.Subtle.Render(fmt.Sprintf("at %d,%d %dx%d", f.Position.Left, f.Position.Top, f.Position.Width, f.Position.Height)),
		)
		r.renderViews(&b, layout, f.Data, indent+"    ", tree)
	}
	for _, p := range layout.PopoutGroups {
		fmt.Fprintf(&b, "%s%s %s\n", indent, t.Subtle.Render(IconPopout), r.groupLabel(layout, p.Data))
		r.renderViews(&b, layout, p.Data, indent+"    ", tree)
	}
	return b.String()
}

func (r *LayoutsRenderer) renderNode(
	b *strings.Builder,
	layout *entity.SerializedLayout,
	n entity.GridNodeState,
	orientation entity.Orientation,
	prefix string,
	isLast bool,
	tree lipgloss.Style,
) {
	t := r.theme
	branch := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		branch = "└── "
		childPrefix = prefix + "    "
	}

	hidden := ""
	if !n.IsVisible() {
		hidden = " " + t.Subtle.Render(IconHidden)
	}

	if n.Type == entity.NodeLeaf && n.Group != nil {
		fmt.Fprintf(b, "%s%s%s %s%s\n", prefix, tree.Render(branch),
			r.groupLabel(layout, *n.Group),
			t.Subtle.Render(fmt.Sprintf("size %d", n.Size)),
			hidden,
		)
		r.renderViews(b, layout, *n.Group, childPrefix, tree)
		return
	}

	fmt.Fprintf(b, "%s%s%s %s%s\n", prefix, tree.Render(branch),
		t.Subtle.Render(strings.ToLower(orientation.String())),
		t.Subtle.Render(fmt.Sprintf("size %d", n.Size)),
		hidden,
	)
	for i, child := range n.Children {
		r.renderNode(b, layout, child, orientation.Orthogonal(), childPrefix, i == len(n.Children)-1, tree)
	}
}

func (r *LayoutsRenderer) groupLabel(layout *entity.SerializedLayout, g entity.GroupState) string {
	t := r.theme
	label := t.Normal.Render(fmt.Sprintf("%s group %s", IconGroup, g.ID))
	if g.ID == layout.ActiveGroup {
		label = t.Highlight.Render(fmt.Sprintf("%s group %s", IconGroup, g.ID))
	}
	if g.Locked != entity.LockNone {
		label += " " + t.WarningStyle.Render(IconLock)
	}
	return label + " "
}

func (r *LayoutsRenderer) renderViews(b *strings.Builder, layout *entity.SerializedLayout, g entity.GroupState, prefix string, tree lipgloss.Style) {
	t := r.theme
	for i, id := range g.Views {
		branch := "├── "
		if i == len(g.Views)-1 {
			branch = "└── "
		}
		panel := layout.Panels[id]
		title := panel.Title
		if title == "" {
			title = string(id)
		}
		if len(title) > maxTitleLen {
			title = title[:maxTitleLen-3] + "..."
		}

		style := t.Subtle
		if id == g.ActiveView {
			style = t.Normal
		}
		fmt.Fprintf(b, "%s%s%s %s %s\n", prefix, tree.Render(branch),
			t.Subtle.Render(IconPanel),
			style.Render(title),
			t.Subtle.Render("("+panel.ContentComponent+")"),
		)
	}
}
