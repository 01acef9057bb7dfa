package coordinator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
	"github.com/bnema/dockgrid/internal/ui/layout"
)

// ToJSON captures the whole layout.
func (c *DockingController) ToJSON() *entity.SerializedLayout {
	out := &entity.SerializedLayout{
		Grid: c.tree.Serialize(func(leaf layout.Leaf) entity.GroupState {
			return leaf.(*groupView).group.ToState()
		}),
		Panels: make(map[entity.PanelID]entity.PanelState, len(c.panels)),
	}
	for id, p := range c.panels {
		out.Panels[id] = p.ToState()
	}
	if c.active != nil {
		out.ActiveGroup = c.active.group.ID
	}
	for _, v := range c.floating {
		out.FloatingGroups = append(out.FloatingGroups, entity.FloatingGroupState{
			Data:     v.group.ToState(),
			Position: v.box,
		})
	}
	for _, v := range c.popouts {
		var box *entity.Box
		if b := v.popoutBox(); b != nil {
			copied := *b
			box = &copied
		}
		out.PopoutGroups = append(out.PopoutGroups, entity.PopoutGroupState{
			Data:     v.group.ToState(),
			Position: box,
		})
	}
	return out
}

// MarshalJSON encodes ToJSON.
func (c *DockingController) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToJSON())
}

// LoadJSON parses data and applies it with FromJSON.
func (c *DockingController) LoadJSON(ctx context.Context, data []byte) error {
	saved, err := entity.ParseLayout(data)
	if err != nil {
		return err
	}
	return c.FromJSON(ctx, saved)
}

// FromJSON replaces the current layout. A layout that fails validation is
// rejected before anything changes. A failure while building groups and
// panels disposes everything built so far and leaves the controller empty.
func (c *DockingController) FromJSON(ctx context.Context, saved *entity.SerializedLayout) error {
	log := logging.FromContext(ctx)

	if saved == nil {
		return fmt.Errorf("%w: nil layout", entity.ErrInvalidLayout)
	}
	if err := saved.Validate(); err != nil {
		return err
	}

	log.Debug().
		Int("group_count", saved.GroupCount()).
		Int("panel_count", saved.PanelCount()).
		Msg("loading layout")

	c.begin()
	width, height := c.tree.Width(), c.tree.Height()
	c.clear()
	err := c.load(ctx, saved)
	if err != nil {
		c.rollback()
	} else {
		if saved.Grid.Width == 0 && saved.Grid.Height == 0 {
			c.tree.Layout(width, height)
		}
		c.activateLoaded(saved.ActiveGroup)
	}
	c.markChanged()
	c.end()

	if err != nil {
		log.Error().Err(err).Msg("layout load failed, controller cleared")
		return err
	}
	c.onDidLayoutFromJSON.Fire(struct{}{})

	log.Info().
		Int("group_count", len(c.groups)).
		Int("panel_count", len(c.panels)).
		Msg("layout loaded")
	return nil
}

func (c *DockingController) load(ctx context.Context, saved *entity.SerializedLayout) error {
	c.loading = true
	defer func() { c.loading = false }()

	reserved := make(map[entity.GroupID]struct{})
	for _, g := range saved.AllGroups() {
		if g.ID != "" {
			reserved[g.ID] = struct{}{}
		}
	}
	build := func(state entity.GroupState) (*groupView, error) {
		return c.buildGroup(state, saved.Panels, reserved)
	}

	if err := c.tree.Deserialize(saved.Grid, func(state entity.GroupState) (layout.Leaf, error) {
		view, err := build(state)
		if err != nil {
			return nil, err
		}
		return view, nil
	}); err != nil {
		return err
	}

	for _, f := range saved.FloatingGroups {
		view, err := build(f.Data)
		if err != nil {
			return err
		}
		c.addFloating(view, f.Position)
	}

	for _, p := range saved.PopoutGroups {
		view, err := build(p.Data)
		if err != nil {
			return err
		}
		if c.windows == nil {
			box := c.opts.FloatingBox
			if p.Position != nil {
				box = *p.Position
			}
			logging.FromContext(ctx).Warn().
				Str("group_id", string(view.group.ID)).
				Msg("no window host, popout group restored as floating")
			c.addFloating(view, box)
			continue
		}
		title := ""
		if active := view.group.ActivePanel(); active != nil {
			title = active.Title
		}
		window, err := c.windows.Open(ctx, port.PopoutRequest{Group: view.group.ID, Title: title, Box: p.Position})
		if err != nil {
			return fmt.Errorf("open popout window for group %s: %w", view.group.ID, err)
		}
		c.addPopout(view, window, p.Position)
	}
	return nil
}

// buildGroup creates a registered group with its panels. Groups without an
// id get a generated one that avoids every id the layout names.
func (c *DockingController) buildGroup(state entity.GroupState, panels map[entity.PanelID]entity.PanelState, reserved map[entity.GroupID]struct{}) (*groupView, error) {
	id := state.ID
	if id == "" {
		for {
			id = c.generateGroupID()
			if _, taken := reserved[id]; !taken {
				break
			}
		}
	}
	if c.groups[id] != nil {
		return nil, fmt.Errorf("%w: group %s", entity.ErrDuplicateID, id)
	}

	view := c.newGroupView(id, entity.GroupOptions{Locked: state.Locked, HideHeader: state.HideHeader})
	c.registerGroup(view)

	for _, pid := range state.Views {
		if c.panels[pid] != nil {
			return nil, fmt.Errorf("%w: panel %s", entity.ErrDuplicateID, pid)
		}
		panel, err := c.createPanel(panels[pid])
		if err != nil {
			return nil, err
		}
		c.panels[pid] = panel
		if err := view.group.OpenPanel(panel, entity.OpenPanelOptions{SkipSetActive: true, SkipSetGroupActive: true}); err != nil {
			return nil, err
		}
	}
	if state.ActiveView != "" {
		if err := view.group.SetActivePanel(state.ActiveView); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (c *DockingController) activateLoaded(id entity.GroupID) {
	var next *groupView
	if id != "" {
		next = c.groups[id]
	}
	if next == nil {
		if views := c.orderedViews(); len(views) > 0 {
			next = views[0]
		}
	}
	c.setActiveView(next)
}

// rollback disposes everything a failed load built, without events.
func (c *DockingController) rollback() {
	for _, view := range c.groups {
		c.closeWindow(view)
		view.subs.Dispose()
		view.group.Dispose()
	}
	for _, p := range c.panels {
		p.Dispose()
	}
	c.groups = make(map[entity.GroupID]*groupView)
	c.panels = make(map[entity.PanelID]*entity.Panel)
	c.floating = nil
	c.popouts = nil
	c.active = nil
	c.nextGroupID = 0
	c.tree.Clear()
}
