// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/cli/styles"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
)

const defaultMaxListedLayouts = 100

// LayoutsModel is the interactive browser of stored layouts.
type LayoutsModel struct {
	help     help.Model
	keys     layoutsKeyMap
	confirm  *styles.ConfirmModel
	renderer *styles.LayoutsRenderer

	layouts     []entity.LayoutSummary
	selectedIdx int
	expandedIdx int // -1 means none expanded
	// details caches loaded layouts by name for the expanded row.
	details       map[string]*entity.SerializedLayout
	width         int
	height        int
	err           error
	statusMessage string

	maxListed int

	ctx      context.Context
	listUC   *usecase.ListLayoutsUseCase
	loadUC   *usecase.LoadLayoutUseCase
	deleteUC *usecase.DeleteLayoutUseCase
	export   func(ctx context.Context, name string) (string, error)
	copy     func(ctx context.Context, name string) error
	theme    *styles.Theme
}

type layoutsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Expand  key.Binding
	Export  key.Binding
	Copy    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k layoutsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Export, k.Delete, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k layoutsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.Export, k.Copy, k.Delete, k.Refresh},
		{k.Help, k.Quit},
	}
}

func defaultLayoutsKeyMap() layoutsKeyMap {
	return layoutsKeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Expand:  key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "expand/collapse")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Copy:    key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy JSON")),
		Delete:  key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "delete")),
		Refresh: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// LayoutsModelConfig holds the dependencies of the layouts browser.
type LayoutsModelConfig struct {
	ListUC   *usecase.ListLayoutsUseCase
	LoadUC   *usecase.LoadLayoutUseCase
	DeleteUC *usecase.DeleteLayoutUseCase
	// Export writes the named layout to a file and returns its path.
	// Nil disables the export key.
	Export func(ctx context.Context, name string) (string, error)
	// Copy puts the named layout on the clipboard. Nil disables the copy key.
	Copy      func(ctx context.Context, name string) error
	MaxListed int
}

// NewLayoutsModel creates a new layouts browser model.
func NewLayoutsModel(ctx context.Context, theme *styles.Theme, cfg LayoutsModelConfig) LayoutsModel {
	maxListed := cfg.MaxListed
	if maxListed <= 0 {
		maxListed = defaultMaxListedLayouts
	}

	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc

	return LayoutsModel{
		help:        h,
		keys:        defaultLayoutsKeyMap(),
		renderer:    styles.NewLayoutsRenderer(theme),
		expandedIdx: -1,
		details:     make(map[string]*entity.SerializedLayout),
		width:       80,
		height:      24,
		maxListed:   maxListed,
		ctx:         ctx,
		listUC:      cfg.ListUC,
		loadUC:      cfg.LoadUC,
		deleteUC:    cfg.DeleteUC,
		export:      cfg.Export,
		copy:        cfg.Copy,
		theme:       theme,
	}
}

// Init implements tea.Model.
func (m LayoutsModel) Init() tea.Cmd {
	return m.loadLayouts
}

type layoutsLoadedMsg struct {
	layouts []entity.LayoutSummary
	err     error
}

type layoutDetailMsg struct {
	name   string
	layout *entity.SerializedLayout
	err    error
}

type layoutDeletedMsg struct {
	name string
	err  error
}

type layoutExportedMsg struct {
	name string
	path string
	err  error
}

type layoutCopiedMsg struct {
	name string
	err  error
}

func (m LayoutsModel) loadLayouts() tea.Msg {
	if m.listUC == nil {
		return layoutsLoadedMsg{err: fmt.Errorf("layout store not available")}
	}
	out, err := m.listUC.Execute(m.ctx, m.maxListed)
	if err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("failed to load layouts")
		return layoutsLoadedMsg{err: err}
	}
	return layoutsLoadedMsg{layouts: out.Layouts}
}

// Update implements tea.Model.
func (m LayoutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case layoutsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.layouts = msg.layouts
			m.details = make(map[string]*entity.SerializedLayout)
			m.expandedIdx = -1
			if m.selectedIdx >= len(m.layouts) {
				m.selectedIdx = max(len(m.layouts)-1, 0)
			}
		}
		return m, nil

	case layoutDetailMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			m.expandedIdx = -1
			return m, nil
		}
		m.details[msg.name] = msg.layout
		return m, nil

	case layoutDeletedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Layout %s deleted", msg.name)
		return m, m.loadLayouts

	case layoutExportedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMessage = fmt.Sprintf("Layout %s written to %s", msg.name, msg.path)
		}
		return m, nil

	case layoutCopiedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMessage = fmt.Sprintf("Layout %s copied to the clipboard", msg.name)
		}
		return m, nil
	}

	return m, nil
}

func (m LayoutsModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !m.confirm.Done() {
		return m, cmd
	}
	if m.confirm.Result() {
		if s, ok := m.selected(); ok {
			cmd = m.deleteLayout(s.Name)
		}
	}
	m.confirm = nil
	return m, cmd
}

func (m LayoutsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.layouts)-1 {
			m.selectedIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.expandedIdx == m.selectedIdx {
			m.expandedIdx = -1
			return m, nil
		}
		m.expandedIdx = m.selectedIdx
		if _, cached := m.details[s.Name]; cached {
			return m, nil
		}
		return m, m.loadDetail(s.Name)

	case key.Matches(msg, m.keys.Export):
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.export == nil {
			m.statusMessage = "Export not available"
			return m, nil
		}
		return m, m.exportLayout(s.Name)

	case key.Matches(msg, m.keys.Copy):
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.copy == nil {
			m.statusMessage = "Clipboard not available"
			return m, nil
		}
		return m, m.copyLayout(s.Name)

	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.selected(); ok {
			confirm := styles.NewConfirm(m.theme,
				fmt.Sprintf("Delete layout %s?", s.Name),
				styles.Plural(s.GroupCount, "group")+", "+styles.Plural(s.PanelCount, "panel"),
			)
			m.confirm = &confirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.statusMessage = ""
		return m, m.loadLayouts

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m LayoutsModel) selected() (entity.LayoutSummary, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.layouts) {
		return entity.LayoutSummary{}, false
	}
	return m.layouts[m.selectedIdx], true
}

func (m LayoutsModel) loadDetail(name string) tea.Cmd {
	return func() tea.Msg {
		if m.loadUC == nil {
			return layoutDetailMsg{name: name, err: fmt.Errorf("load use case not available")}
		}
		out, err := m.loadUC.Execute(m.ctx, usecase.LoadLayoutInput{Name: name})
		if err != nil {
			return layoutDetailMsg{name: name, err: err}
		}
		return layoutDetailMsg{name: name, layout: out.Layout}
	}
}

func (m LayoutsModel) deleteLayout(name string) tea.Cmd {
	return func() tea.Msg {
		if m.deleteUC == nil {
			return layoutDeletedMsg{name: name, err: fmt.Errorf("delete use case not available")}
		}
		return layoutDeletedMsg{name: name, err: m.deleteUC.Execute(m.ctx, name)}
	}
}

func (m LayoutsModel) exportLayout(name string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.export(m.ctx, name)
		return layoutExportedMsg{name: name, path: path, err: err}
	}
}

func (m LayoutsModel) copyLayout(name string) tea.Cmd {
	return func() tea.Msg {
		return layoutCopiedMsg{name: name, err: m.copy(m.ctx, name)}
	}
}

// View implements tea.Model.
func (m LayoutsModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Error: %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	}
	if m.statusMessage != "" {
		b.WriteString(t.Subtle.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	if len(m.layouts) == 0 {
		b.WriteString("  " + m.renderer.RenderEmptyList() + "\n")
	} else {
		b.WriteString(m.renderLayoutsList(m.listHeight()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m LayoutsModel) renderHeader() string {
	t := m.theme
	icon := lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconLayout)
	title := t.Title.MarginLeft(1).Render("Layouts")

	var groups, panels int
	for _, s := range m.layouts {
		groups += s.GroupCount
		panels += s.PanelCount
	}
	stats := t.Subtle.Render(fmt.Sprintf("  %d stored  %s %d  %s %d",
		len(m.layouts),
		styles.IconGroup, groups,
		styles.IconPanel, panels,
	))
	return icon + title + stats
}

// listHeight is the number of lines left for rows once the header, status
// and help are drawn.
func (m LayoutsModel) listHeight() int {
	const chrome = 6
	return max(m.height-chrome, 1)
}

// renderLayoutsList renders rows, scrolling so the selected row stays
// within maxLines even when an expanded row above it is tall.
func (m LayoutsModel) renderLayoutsList(maxLines int) string {
	type block struct {
		lines []string
	}
	blocks := make([]block, len(m.layouts))
	for i, s := range m.layouts {
		lines := []string{m.renderer.RenderSummary(s, i == m.selectedIdx)}
		if i == m.expandedIdx {
			detail := m.renderer.RenderTree(m.details[s.Name], "      ")
			if m.details[s.Name] == nil {
				detail = "      " + m.theme.Subtle.Render("loading...") + "\n"
			}
			lines = append(lines, strings.Split(strings.TrimRight(detail, "\n"), "\n")...)
		}
		blocks[i] = block{lines: lines}
	}

	// Walk back from the selected row until the budget is used up.
	start := m.selectedIdx
	used := len(blocks[m.selectedIdx].lines)
	for start > 0 && used+len(blocks[start-1].lines) <= maxLines {
		start--
		used += len(blocks[start].lines)
	}

	var out []string
	for i := start; i < len(blocks); i++ {
		if len(out) >= maxLines && i > m.selectedIdx {
			break
		}
		out = append(out, blocks[i].lines...)
	}
	return strings.Join(out, "\n") + "\n"
}

var _ tea.Model = (*LayoutsModel)(nil)
