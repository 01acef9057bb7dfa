package coordinator

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
)

// PanelPosition places a new panel relative to an existing panel or group,
// or relative to the whole grid when neither is set.
type PanelPosition struct {
	ReferencePanel entity.PanelID
	ReferenceGroup entity.GroupID
	// Direction is center (into the reference group) or an edge (a new
	// group beside it). Empty means center.
	Direction entity.Position
	// Index is the tab slot for center placement; nil appends.
	Index *int
}

// FloatingOptions opens a panel in a new floating group.
type FloatingOptions struct {
	// Box defaults to DockingOptions.FloatingBox.
	Box *entity.Box
}

// AddPanelOptions describes a panel to create.
type AddPanelOptions struct {
	ID           entity.PanelID
	Component    string
	TabComponent string
	Title        string
	Params       map[string]any
	Constraints  entity.Constraints

	Position *PanelPosition
	Floating *FloatingOptions
	// Inactive opens the panel without activating it.
	Inactive bool
}

// AddPanel creates a panel and its renderers and places it. Renderers are
// created before anything is mutated, so a failing call has no effect.
func (c *DockingController) AddPanel(ctx context.Context, opts AddPanelOptions) (*entity.Panel, error) {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	if opts.ID == "" {
		return nil, fmt.Errorf("%w: panel id is required", entity.ErrMissingReference)
	}
	if c.panels[opts.ID] != nil {
		return nil, fmt.Errorf("%w: panel %s", entity.ErrDuplicateID, opts.ID)
	}
	if opts.Position != nil && opts.Floating != nil {
		return nil, fmt.Errorf("%w: position and floating", entity.ErrConflictingOptions)
	}

	target, direction, index, err := c.resolvePanelTarget(opts.Position)
	if err != nil {
		return nil, err
	}

	panel, err := c.createPanel(entity.PanelState{
		ID:               opts.ID,
		ContentComponent: opts.Component,
		TabComponent:     opts.TabComponent,
		Title:            opts.Title,
		Params:           opts.Params,
		Constraints:      opts.Constraints,
	})
	if err != nil {
		return nil, err
	}

	var group *groupView
	switch {
	case opts.Floating != nil:
		box := c.opts.FloatingBox
		if opts.Floating.Box != nil {
			box = *opts.Floating.Box
		}
		group = c.newGroupView(c.generateGroupID(), entity.GroupOptions{})
		c.addFloating(group, box)
	case target != nil && direction.IsEdge() && target.group.Location() == entity.LocationGrid:
		group = c.newGroupView(c.generateGroupID(), entity.GroupOptions{})
		err = c.addBeside(group, target, direction)
	case target != nil:
		group = target
	case direction.IsEdge():
		group = c.newGroupView(c.generateGroupID(), entity.GroupOptions{})
		err = c.addAtRootEdge(group, direction)
	case c.active != nil:
		group = c.active
	default:
		group = c.newGroupView(c.generateGroupID(), entity.GroupOptions{})
		err = c.appendToRoot(group)
	}
	if err != nil {
		panel.Dispose()
		group.group.Dispose()
		return nil, err
	}
	if c.groups[group.group.ID] == nil {
		c.registerGroup(group)
	}

	c.panels[panel.ID] = panel
	if err := group.group.OpenPanel(panel, entity.OpenPanelOptions{
		Index:              index,
		SkipSetActive:      opts.Inactive,
		SkipSetGroupActive: opts.Inactive,
	}); err != nil {
		delete(c.panels, panel.ID)
		panel.Dispose()
		c.dropIfEmpty(group)
		return nil, err
	}

	log.Info().
		Str("panel_id", string(panel.ID)).
		Str("group_id", string(group.group.ID)).
		Str("component", panel.ContentComponent).
		Msg("panel added")
	return panel, nil
}

// resolvePanelTarget validates a position without mutating anything. It
// returns the reference group (nil when none), the direction and the index.
func (c *DockingController) resolvePanelTarget(pos *PanelPosition) (*groupView, entity.Position, *int, error) {
	if pos == nil {
		return nil, "", nil, nil
	}
	if pos.ReferencePanel != "" && pos.ReferenceGroup != "" {
		return nil, "", nil, fmt.Errorf("%w: reference panel and reference group", entity.ErrConflictingOptions)
	}
	direction := pos.Direction
	if direction != "" && direction != entity.PositionCenter && !direction.IsEdge() {
		return nil, "", nil, fmt.Errorf("%w: unknown direction %q", entity.ErrInvalidLocation, direction)
	}

	var target *groupView
	switch {
	case pos.ReferencePanel != "":
		_, view, err := c.panelView(pos.ReferencePanel)
		if err != nil {
			return nil, "", nil, err
		}
		target = view
	case pos.ReferenceGroup != "":
		view, err := c.view(pos.ReferenceGroup)
		if err != nil {
			return nil, "", nil, err
		}
		target = view
	}

	if target == nil && !direction.IsEdge() {
		return nil, "", nil, fmt.Errorf("%w: a position needs a reference or an edge direction", entity.ErrInvalidLocation)
	}
	if pos.Index != nil {
		if target == nil || direction.IsEdge() {
			return nil, "", nil, fmt.Errorf("%w: index only applies to center placement", entity.ErrConflictingOptions)
		}
		if *pos.Index < 0 || *pos.Index > target.group.Size() {
			return nil, "", nil, fmt.Errorf("%w: index %d out of range [0,%d]", entity.ErrInvalidLocation, *pos.Index, target.group.Size())
		}
	}
	return target, direction, pos.Index, nil
}

// RemovePanel disposes a panel. Its group goes too when it is left empty
// and RemoveEmptyGroup is set.
func (c *DockingController) RemovePanel(ctx context.Context, id entity.PanelID) error {
	c.begin()
	defer c.end()

	panel := c.panels[id]
	if panel == nil {
		return fmt.Errorf("%w: panel %s", entity.ErrMissingReference, id)
	}
	if err := c.removePanel(panel); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().Str("panel_id", string(id)).Msg("panel removed")
	return nil
}

func (c *DockingController) removePanel(panel *entity.Panel) error {
	view := c.groups[panel.Group()]
	if view == nil {
		return fmt.Errorf("%w: panel %s has no group", entity.ErrMissingReference, panel.ID)
	}
	if _, err := view.group.RemovePanel(panel.ID); err != nil {
		return err
	}
	c.dropIfEmpty(view)
	return nil
}

// releasePanel runs when a group lets go of a panel outside a move: the
// panel is forgotten and its renderers released before anyone hears of it.
func (c *DockingController) releasePanel(panel *entity.Panel) {
	delete(c.panels, panel.ID)
	panel.Dispose()
	if !c.loading {
		c.onDidRemovePanel.Fire(panel)
	}
}

// dropIfEmpty removes a group left without panels when configured to.
func (c *DockingController) dropIfEmpty(view *groupView) {
	if !view.group.IsEmpty() || !c.opts.RemoveEmptyGroup || c.groups[view.group.ID] != view {
		return
	}
	if err := c.removeGroupView(view); err != nil {
		logging.FromContext(c.ctx).Error().Err(err).Str("group_id", string(view.group.ID)).Msg("failed to remove empty group")
	}
}

// SetActivePanel activates a panel and its group.
func (c *DockingController) SetActivePanel(ctx context.Context, id entity.PanelID) error {
	c.begin()
	defer c.end()

	panel, view, err := c.panelView(id)
	if err != nil {
		return err
	}
	if err := view.group.SetActivePanel(panel.ID); err != nil {
		return err
	}
	c.setActiveView(view)

	logging.FromContext(ctx).Debug().
		Str("panel_id", string(id)).
		Str("group_id", string(view.group.ID)).
		Msg("panel activated")
	return nil
}

// NavigateOptions tunes MoveToNext and MoveToPrevious.
type NavigateOptions struct {
	// Group defaults to the active group.
	Group entity.GroupID
	// IncludePanel steps through the tabs of the group before leaving it.
	IncludePanel bool
}

// MoveToNext activates the next panel of the group when IncludePanel is set
// and one follows, else the next grid group, wrapping around.
func (c *DockingController) MoveToNext(ctx context.Context, opts NavigateOptions) error {
	return c.navigate(ctx, opts, 1)
}

// MoveToPrevious is MoveToNext backwards.
func (c *DockingController) MoveToPrevious(ctx context.Context, opts NavigateOptions) error {
	return c.navigate(ctx, opts, -1)
}

func (c *DockingController) navigate(ctx context.Context, opts NavigateOptions, step int) error {
	c.begin()
	defer c.end()

	view := c.active
	if opts.Group != "" {
		v, err := c.view(opts.Group)
		if err != nil {
			return err
		}
		view = v
	}
	if view == nil {
		return nil
	}

	g := view.group
	if opts.IncludePanel && g.ActivePanel() != nil {
		index := g.IndexOf(g.ActivePanel().ID)
		if (step > 0 && index < g.Size()-1) || (step < 0 && index > 0) {
			if step > 0 {
				g.MoveToNext(true)
			} else {
				g.MoveToPrevious(true)
			}
			c.setActiveView(view)
			return nil
		}
	}

	grid := c.gridViews()
	pos := -1
	for i, v := range grid {
		if v == view {
			pos = i
			break
		}
	}
	if pos < 0 || len(grid) == 0 {
		return nil
	}
	next := grid[(pos+step+len(grid))%len(grid)]
	if opts.IncludePanel && next != view && next.group.Size() > 0 {
		// Entering a group backwards lands on its last tab, forwards on its first.
		target := next.group.Panels()[0]
		if step < 0 {
			target = next.group.Panels()[next.group.Size()-1]
		}
		if err := next.group.SetActivePanel(target.ID); err != nil {
			return err
		}
	}
	c.setActiveView(next)

	logging.FromContext(ctx).Debug().
		Str("from", string(g.ID)).
		Str("to", string(next.group.ID)).
		Msg("navigated to group")
	return nil
}

// createPanel builds a detached panel with its renderers.
func (c *DockingController) createPanel(state entity.PanelState) (*entity.Panel, error) {
	content, component, err := c.createContent(state)
	if err != nil {
		return nil, err
	}

	panel := entity.NewPanel(state.ID, component)
	panel.TabComponent = state.TabComponent
	panel.Title = state.Title
	panel.Constraints = state.Constraints
	if len(state.Params) > 0 {
		panel.Params = maps.Clone(state.Params)
	}
	panel.Content = content

	if state.TabComponent != "" {
		tab, err := c.components.CreateTab(state.TabComponent, panel.ToState())
		if err != nil {
			panel.Dispose()
			return nil, fmt.Errorf("tab of panel %s: %w", state.ID, err)
		}
		panel.Tab = tab
	}
	return panel, nil
}

// createContent resolves the content component, falling back to the
// default component for unregistered names.
func (c *DockingController) createContent(state entity.PanelState) (entity.Disposable, string, error) {
	if c.components == nil {
		return nil, "", fmt.Errorf("%w: no component factory for %q", entity.ErrUnknownComponent, state.ContentComponent)
	}
	name := state.ContentComponent
	if name == "" {
		return nil, "", fmt.Errorf("%w: panel %s has no content component", entity.ErrUnknownComponent, state.ID)
	}
	if c.opts.IsRegistered != nil && !c.opts.IsRegistered(name) {
		if c.opts.DefaultComponent == "" {
			return nil, "", fmt.Errorf("%w: %q", entity.ErrUnknownComponent, name)
		}
		name = c.opts.DefaultComponent
	}

	state.ContentComponent = name
	content, err := c.components.CreateContent(name, state)
	if errors.Is(err, entity.ErrUnknownComponent) && c.opts.DefaultComponent != "" && name != c.opts.DefaultComponent {
		name = c.opts.DefaultComponent
		state.ContentComponent = name
		content, err = c.components.CreateContent(name, state)
	}
	if err != nil {
		return nil, "", fmt.Errorf("content of panel %s: %w", state.ID, err)
	}
	return content, name, nil
}
