package coordinator

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
	"github.com/bnema/dockgrid/internal/ui/layout"
)

// AddGroupOptions places a new empty grid group.
type AddGroupOptions struct {
	// ID is optional; a sequential id is generated when empty.
	ID entity.GroupID
	// ReferenceGroup or ReferencePanel anchor Direction. Without either,
	// Direction is taken relative to the whole grid.
	ReferenceGroup entity.GroupID
	ReferencePanel entity.PanelID
	// Direction must be an edge; empty appends the group to the root.
	Direction entity.Position

	Locked        entity.LockMode
	HideHeader    bool
	Constraints   entity.Constraints
	SkipSetActive bool
}

// AddGroup creates an empty group in the grid.
func (c *DockingController) AddGroup(ctx context.Context, opts AddGroupOptions) (*entity.Group, error) {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	if opts.ID != "" && c.groups[opts.ID] != nil {
		return nil, fmt.Errorf("%w: group %s", entity.ErrDuplicateID, opts.ID)
	}
	if opts.ReferenceGroup != "" && opts.ReferencePanel != "" {
		return nil, fmt.Errorf("%w: reference group and reference panel", entity.ErrConflictingOptions)
	}
	if opts.Direction == entity.PositionCenter {
		return nil, fmt.Errorf("%w: a group cannot be added inside another group", entity.ErrInvalidLocation)
	}

	var anchor *groupView
	switch {
	case opts.ReferenceGroup != "":
		view, err := c.view(opts.ReferenceGroup)
		if err != nil {
			return nil, err
		}
		anchor = view
	case opts.ReferencePanel != "":
		_, view, err := c.panelView(opts.ReferencePanel)
		if err != nil {
			return nil, err
		}
		anchor = view
	}
	if anchor != nil && anchor.group.Location() != entity.LocationGrid {
		return nil, fmt.Errorf("%w: group %s is not in the grid", entity.ErrInvalidLocation, anchor.group.ID)
	}

	id := opts.ID
	if id == "" {
		id = c.generateGroupID()
	}
	view := c.newGroupView(id, entity.GroupOptions{
		Constraints: opts.Constraints,
		Locked:      opts.Locked,
		HideHeader:  opts.HideHeader,
	})

	var err error
	switch {
	case anchor != nil && opts.Direction != "":
		err = c.addBeside(view, anchor, opts.Direction)
	case opts.Direction != "":
		err = c.addAtRootEdge(view, opts.Direction)
	default:
		err = c.appendToRoot(view)
	}
	if err != nil {
		view.group.Dispose()
		return nil, err
	}
	c.registerGroup(view)

	log.Info().
		Str("group_id", string(id)).
		Str("direction", string(opts.Direction)).
		Msg("group added")

	if !opts.SkipSetActive {
		c.setActiveView(view)
	}
	return view.group, nil
}

// RemoveGroup disposes every panel of a group, then the group.
func (c *DockingController) RemoveGroup(ctx context.Context, id entity.GroupID) error {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	view, err := c.view(id)
	if err != nil {
		return err
	}
	if err := c.removeGroupView(view); err != nil {
		return err
	}

	log.Info().Str("group_id", string(id)).Msg("group removed")
	return nil
}

// SetActiveGroup makes a group the active one.
func (c *DockingController) SetActiveGroup(ctx context.Context, id entity.GroupID) error {
	c.begin()
	defer c.end()

	view, err := c.view(id)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("group_id", string(id)).Msg("activating group")
	c.setActiveView(view)
	return nil
}

// SetGroupVisible hides or shows a grid group. A hidden group keeps its
// size and gets it back when shown.
func (c *DockingController) SetGroupVisible(ctx context.Context, id entity.GroupID, visible bool) error {
	c.begin()
	defer c.end()

	loc, err := c.tree.Locate(string(id))
	if err != nil {
		return err
	}
	if err := c.tree.SetViewVisible(loc, visible); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("group_id", string(id)).
		Bool("visible", visible).
		Msg("group visibility changed")
	c.markChanged()
	return nil
}

// IsGroupVisible reports whether a grid group is shown.
func (c *DockingController) IsGroupVisible(id entity.GroupID) bool {
	loc, err := c.tree.Locate(string(id))
	if err != nil {
		return false
	}
	return c.tree.IsViewVisible(loc)
}

// ResizeGroup grows a grid group along its parent's axis by delta and
// returns the delta applied.
func (c *DockingController) ResizeGroup(ctx context.Context, id entity.GroupID, delta int) (int, error) {
	c.begin()
	defer c.end()

	loc, err := c.tree.Locate(string(id))
	if err != nil {
		return 0, err
	}
	applied, err := c.tree.ResizeView(loc, delta)
	if err != nil {
		return 0, err
	}
	if applied != 0 {
		logging.FromContext(ctx).Debug().
			Str("group_id", string(id)).
			Int("delta", applied).
			Msg("group resized")
		c.markChanged()
	}
	return applied, nil
}

// Clear removes every group and panel.
func (c *DockingController) Clear(ctx context.Context) {
	c.begin()
	defer c.end()

	c.clear()
	logging.FromContext(ctx).Info().Msg("docking layout cleared")
}

func (c *DockingController) clear() {
	hadActive := c.active != nil
	c.active = nil
	for _, view := range c.orderedViews() {
		// The only failure is a missing grid leaf, impossible for a live view.
		_ = c.removeGroupView(view)
	}
	c.tree.Clear()
	c.floating = nil
	c.popouts = nil
	c.nextGroupID = 0
	if hadActive {
		c.onDidActiveGroupChange.Fire(nil)
	}
	c.markChanged()
}

func (c *DockingController) newGroupView(id entity.GroupID, opts entity.GroupOptions) *groupView {
	opts.Constraints = c.opts.GroupConstraints.Overlay(opts.Constraints)
	if c.watermarks != nil {
		watermarks := c.watermarks
		opts.Watermark = func() entity.Disposable { return watermarks.CreateWatermark(id) }
	}
	return &groupView{group: entity.NewGroup(id, opts)}
}

// registerGroup indexes a group that already sits in a location set and
// wires its events.
func (c *DockingController) registerGroup(view *groupView) {
	g := view.group
	c.groups[g.ID] = view
	view.subs.Add(
		g.OnDidAddPanel(func(p *entity.Panel) {
			c.markChanged()
			if c.moving == 0 && !c.loading {
				c.onDidAddPanel.Fire(p)
			}
		}),
		g.OnDidRemovePanel(func(p *entity.Panel) {
			c.markChanged()
			if c.moving == 0 {
				c.releasePanel(p)
			}
		}),
		g.OnDidActivePanelChange(func(*entity.Panel) {
			c.markChanged()
		}),
		g.OnRequestActivate(func(*entity.Group) {
			c.setActiveView(view)
		}),
		g.OnRequestClosePanel(func(p *entity.Panel) {
			c.begin()
			defer c.end()
			if err := c.removePanel(p); err != nil {
				logging.FromContext(c.ctx).Error().Err(err).Str("panel_id", string(p.ID)).Msg("failed to close panel")
			}
		}),
		g.OnRequestRemove(func(*entity.Group) {
			c.begin()
			defer c.end()
			if err := c.removeGroupView(view); err != nil {
				logging.FromContext(c.ctx).Error().Err(err).Str("group_id", string(g.ID)).Msg("failed to remove group")
			}
		}),
	)
	c.markChanged()
	if !c.loading {
		c.onDidAddGroup.Fire(g)
	}
}

// removeGroupView disposes the panels of a group, takes it out of its
// location set and disposes it. The active group falls back to the first
// remaining group.
func (c *DockingController) removeGroupView(view *groupView) error {
	g := view.group
	for _, p := range g.Panels() {
		if _, err := g.RemovePanel(p.ID); err != nil {
			return err
		}
	}
	if err := c.detachGroup(view); err != nil {
		return err
	}
	c.closeWindow(view)
	delete(c.groups, g.ID)
	view.subs.Dispose()
	g.Dispose()
	c.markChanged()
	c.onDidRemoveGroup.Fire(g)

	if c.active == view {
		var next *groupView
		if views := c.orderedViews(); len(views) > 0 {
			next = views[0]
		}
		c.setActiveView(next)
	}
	return nil
}

// detachGroup takes a group out of the grid or the floating or popout set
// without disposing it. A popout window stays open.
func (c *DockingController) detachGroup(view *groupView) error {
	switch view.group.Location() {
	case entity.LocationFloating:
		c.floating = slices.DeleteFunc(c.floating, func(v *groupView) bool { return v == view })
	case entity.LocationPopout:
		c.popouts = slices.DeleteFunc(c.popouts, func(v *groupView) bool { return v == view })
	default:
		loc, err := c.tree.Locate(string(view.group.ID))
		if err != nil {
			return err
		}
		if _, err := c.tree.RemoveView(loc); err != nil {
			return err
		}
	}
	c.markChanged()
	return nil
}

func (c *DockingController) closeWindow(view *groupView) {
	if view.windowSub != nil {
		view.windowSub.Dispose()
		view.windowSub = nil
	}
	if view.window == nil {
		return
	}
	if box := view.window.Geometry(); box != nil {
		view.windowBox = box
	}
	if err := view.window.Close(); err != nil {
		logging.FromContext(c.ctx).Warn().Err(err).Str("group_id", string(view.group.ID)).Msg("failed to close popout window")
	}
	view.window = nil
}

// setLocation records a location change and announces it.
func (c *DockingController) setLocation(view *groupView, loc entity.GroupLocation) {
	from := view.group.Location()
	view.group.SetLocation(loc)
	if from != loc && !c.loading {
		c.onDidGroupLocationChange.Fire(GroupLocationEvent{Group: view.group, From: from, To: loc})
	}
}

func (c *DockingController) setActiveView(view *groupView) {
	if c.active == view {
		return
	}
	c.active = view
	c.markChanged()
	if c.loading {
		return
	}
	var g *entity.Group
	if view != nil {
		g = view.group
	}
	c.onDidActiveGroupChange.Fire(g)
}

// addBeside inserts view next to a grid anchor on the direction edge,
// wrapping the anchor in a new branch when the axes disagree.
func (c *DockingController) addBeside(view, anchor *groupView, direction entity.Position) error {
	loc, err := c.tree.Locate(string(anchor.group.ID))
	if err != nil {
		return err
	}
	target, err := c.tree.RelativeLocation(loc, direction)
	if err != nil {
		return err
	}
	sizing := layout.SizeSplit(loc[len(loc)-1])
	if len(target) > len(loc) {
		sizing = layout.SizeSplit(0)
	}
	return c.addToGrid(view, target, sizing)
}

// addAtRootEdge inserts view on an edge of the whole grid, flipping the
// root orientation first when the edge runs across it.
func (c *DockingController) addAtRootEdge(view *groupView, direction entity.Position) error {
	if !direction.IsEdge() {
		return fmt.Errorf("%w: %q is not an edge", entity.ErrInvalidLocation, direction)
	}
	if direction.Orientation() != c.tree.Orientation() {
		c.tree.InsertOrthogonalAtRoot()
	}
	index := 0
	if direction.IsTrailing() {
		index = c.rootLength()
	}
	return c.addToGrid(view, layout.Location{index}, layout.SizeDistribute)
}

func (c *DockingController) appendToRoot(view *groupView) error {
	return c.addToGrid(view, layout.Location{c.rootLength()}, layout.SizeDistribute)
}

func (c *DockingController) rootLength() int {
	sizes, _ := c.tree.Sizes(layout.Location{})
	return len(sizes)
}

func (c *DockingController) addToGrid(view *groupView, loc layout.Location, sizing layout.Sizing) error {
	if err := c.tree.AddView(view, sizing, loc); err != nil {
		return err
	}
	c.placeGroup(view, entity.LocationGrid)
	return nil
}
