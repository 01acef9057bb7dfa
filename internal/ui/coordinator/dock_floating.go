package coordinator

import (
	"context"
	"fmt"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
	"github.com/bnema/dockgrid/internal/ui/layout"
)

// DetachRequest names what to take out of its current location: a single
// panel, which gets a new group, or a whole group.
type DetachRequest struct {
	Group entity.GroupID
	Panel entity.PanelID
	// Box is the floating box or requested window geometry.
	Box *entity.Box
}

// AddFloatingGroup moves a panel or a group into a floating overlay.
func (c *DockingController) AddFloatingGroup(ctx context.Context, req DetachRequest) (*entity.Group, error) {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	panel, source, err := c.resolveDetach(req)
	if err != nil {
		return nil, err
	}
	box := c.opts.FloatingBox
	if req.Box != nil {
		box = *req.Box
	}

	view := source
	if panel != nil {
		view = c.newGroupView(c.generateGroupID(), entity.GroupOptions{})
		c.addFloating(view, box)
		c.registerGroup(view)
		if err := c.transferPanel(panel, source, view, nil); err != nil {
			return nil, err
		}
		c.dropIfEmpty(source)
	} else if source.group.Location() == entity.LocationFloating {
		source.box = box
		c.markChanged()
	} else {
		if err := c.detachGroup(source); err != nil {
			return nil, err
		}
		c.closeWindow(source)
		c.addFloating(source, box)
	}
	c.setActiveView(view)

	log.Info().
		Str("group_id", string(view.group.ID)).
		Int("left", box.Left).
		Int("top", box.Top).
		Msg("group floating")
	return view.group, nil
}

// SetFloatingBox moves or resizes a floating group.
func (c *DockingController) SetFloatingBox(ctx context.Context, id entity.GroupID, box entity.Box) error {
	c.begin()
	defer c.end()

	view, err := c.view(id)
	if err != nil {
		return err
	}
	if view.group.Location() != entity.LocationFloating {
		return fmt.Errorf("%w: group %s is not floating", entity.ErrInvalidLocation, id)
	}
	if box.Width < 0 || box.Height < 0 {
		return fmt.Errorf("%w: negative floating box %dx%d", entity.ErrInvalidLocation, box.Width, box.Height)
	}
	view.box = box
	c.markChanged()

	logging.FromContext(ctx).Debug().Str("group_id", string(id)).Msg("floating box changed")
	return nil
}

// AddPopoutGroup moves a panel or a group into a new window. Nothing
// changes until the host reports the window ready.
func (c *DockingController) AddPopoutGroup(ctx context.Context, req DetachRequest) (*entity.Group, error) {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	if c.windows == nil {
		return nil, fmt.Errorf("%w: no window host for popout groups", entity.ErrInvalidLocation)
	}
	panel, source, err := c.resolveDetach(req)
	if err != nil {
		return nil, err
	}

	id := source.group.ID
	title := ""
	if panel != nil {
		id = c.generateGroupID()
		title = panel.Title
	} else if active := source.group.ActivePanel(); active != nil {
		title = active.Title
	}

	window, err := c.windows.Open(ctx, port.PopoutRequest{Group: id, Title: title, Box: req.Box})
	if err != nil {
		return nil, fmt.Errorf("open popout window for group %s: %w", id, err)
	}

	view := source
	if panel != nil {
		view = c.newGroupView(id, entity.GroupOptions{})
		c.addPopout(view, window, req.Box)
		c.registerGroup(view)
		if err := c.transferPanel(panel, source, view, nil); err != nil {
			return nil, err
		}
		c.dropIfEmpty(source)
	} else {
		if err := c.detachGroup(source); err != nil {
			if cerr := window.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to close unused popout window")
			}
			return nil, err
		}
		c.closeWindow(source)
		c.addPopout(source, window, req.Box)
	}
	c.setActiveView(view)

	log.Info().Str("group_id", string(view.group.ID)).Msg("group popped out")
	return view.group, nil
}

// RedockGroup moves a floating or popout group back to the front of the grid.
func (c *DockingController) RedockGroup(ctx context.Context, id entity.GroupID) error {
	c.begin()
	defer c.end()

	view, err := c.view(id)
	if err != nil {
		return err
	}
	if view.group.Location() == entity.LocationGrid {
		return nil
	}
	if err := c.redock(view); err != nil {
		return err
	}
	c.setActiveView(view)

	logging.FromContext(ctx).Info().Str("group_id", string(id)).Msg("group redocked")
	return nil
}

func (c *DockingController) redock(view *groupView) error {
	if err := c.detachGroup(view); err != nil {
		return err
	}
	c.closeWindow(view)
	return c.addToGrid(view, layout.Location{0}, layout.SizeDistribute)
}

func (c *DockingController) resolveDetach(req DetachRequest) (*entity.Panel, *groupView, error) {
	if req.Panel != "" {
		panel, view, err := c.panelView(req.Panel)
		if err != nil {
			return nil, nil, err
		}
		if req.Group != "" && req.Group != view.group.ID {
			return nil, nil, fmt.Errorf("%w: panel %s is not in group %s", entity.ErrMissingReference, req.Panel, req.Group)
		}
		return panel, view, nil
	}
	view, err := c.view(req.Group)
	if err != nil {
		return nil, nil, err
	}
	return nil, view, nil
}

// placeGroup records the location of a group; only known groups announce it.
func (c *DockingController) placeGroup(view *groupView, loc entity.GroupLocation) {
	if c.groups[view.group.ID] == view {
		c.setLocation(view, loc)
	} else {
		view.group.SetLocation(loc)
	}
	c.markChanged()
}

func (c *DockingController) addFloating(view *groupView, box entity.Box) {
	view.box = box
	c.floating = append(c.floating, view)
	c.placeGroup(view, entity.LocationFloating)
}

func (c *DockingController) addPopout(view *groupView, window port.Window, box *entity.Box) {
	view.window = window
	view.windowBox = box
	view.windowSub = window.OnDidClose(func() { c.onWindowClosed(view) })
	c.popouts = append(c.popouts, view)
	c.placeGroup(view, entity.LocationPopout)
}

// onWindowClosed handles a popout window closed by the user: the group
// returns to the grid, or goes away when it has no panels.
func (c *DockingController) onWindowClosed(view *groupView) {
	c.begin()
	defer c.end()

	if view.windowSub != nil {
		view.windowSub.Dispose()
		view.windowSub = nil
	}
	if view.window != nil {
		if box := view.window.Geometry(); box != nil {
			view.windowBox = box
		}
		view.window = nil
	}
	if c.groups[view.group.ID] != view {
		return
	}

	log := logging.FromContext(c.ctx)
	if view.group.IsEmpty() {
		if err := c.removeGroupView(view); err != nil {
			log.Error().Err(err).Str("group_id", string(view.group.ID)).Msg("failed to remove closed popout group")
		}
		return
	}
	if err := c.redock(view); err != nil {
		log.Error().Err(err).Str("group_id", string(view.group.ID)).Msg("failed to redock closed popout group")
		return
	}
	log.Info().Str("group_id", string(view.group.ID)).Msg("popout window closed, group redocked")
}
