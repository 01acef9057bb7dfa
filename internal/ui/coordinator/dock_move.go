package coordinator

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
	"github.com/bnema/dockgrid/internal/ui/layout"
)

// MoveRequest relocates a panel, or a whole group when SourcePanel is empty.
type MoveRequest struct {
	// SourceGroup may be left empty when SourcePanel is set.
	SourceGroup entity.GroupID
	SourcePanel entity.PanelID

	TargetGroup entity.GroupID
	// Position is center (into the target's tabs) or an edge (beside the
	// target). Edges of floating and popout targets count as center.
	Position entity.Position
	// Index is the tab slot for center moves; nil appends.
	Index *int
}

// MoveGroupOrPanel is the general relocation entry point behind drops and
// programmatic moves.
func (c *DockingController) MoveGroupOrPanel(ctx context.Context, req MoveRequest) error {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	var panel *entity.Panel
	var source *groupView
	if req.SourcePanel != "" {
		p, view, err := c.panelView(req.SourcePanel)
		if err != nil {
			return err
		}
		if req.SourceGroup != "" && req.SourceGroup != view.group.ID {
			return fmt.Errorf("%w: panel %s is not in group %s", entity.ErrMissingReference, p.ID, req.SourceGroup)
		}
		panel, source = p, view
	} else {
		view, err := c.view(req.SourceGroup)
		if err != nil {
			return err
		}
		source = view
	}
	target, err := c.view(req.TargetGroup)
	if err != nil {
		return err
	}

	position := req.Position
	if position == "" {
		position = entity.PositionCenter
	}
	if position != entity.PositionCenter && !position.IsEdge() {
		return fmt.Errorf("%w: unknown position %q", entity.ErrInvalidLocation, position)
	}
	if position.IsEdge() && target.group.Location() != entity.LocationGrid {
		position = entity.PositionCenter
	}
	if req.Index != nil && position.IsEdge() {
		return fmt.Errorf("%w: index only applies to center moves", entity.ErrConflictingOptions)
	}

	log.Debug().
		Str("source_group", string(source.group.ID)).
		Str("source_panel", string(req.SourcePanel)).
		Str("target_group", string(target.group.ID)).
		Str("position", string(position)).
		Msg("moving")

	if panel != nil {
		err = c.movePanel(panel, source, target, position, req.Index)
	} else {
		err = c.moveGroup(source, target, position, req.Index)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("source_group", string(source.group.ID)).
		Str("target_group", string(target.group.ID)).
		Str("position", string(position)).
		Msg("moved")
	return nil
}

func (c *DockingController) movePanel(panel *entity.Panel, source, target *groupView, position entity.Position, index *int) error {
	if position == entity.PositionCenter {
		if source == target {
			if index != nil {
				if *index < 0 || *index >= target.group.Size() {
					return fmt.Errorf("%w: index %d out of range [0,%d)", entity.ErrInvalidLocation, *index, target.group.Size())
				}
				if err := target.group.OpenPanel(panel, entity.OpenPanelOptions{Index: index, SkipSetGroupActive: true}); err != nil {
					return err
				}
			} else if err := target.group.SetActivePanel(panel.ID); err != nil {
				return err
			}
			c.setActiveView(target)
			return nil
		}
		if index != nil && (*index < 0 || *index > target.group.Size()) {
			return fmt.Errorf("%w: index %d out of range [0,%d]", entity.ErrInvalidLocation, *index, target.group.Size())
		}
		if err := c.transferPanel(panel, source, target, index); err != nil {
			return err
		}
		c.setActiveView(target)
		c.dropIfEmpty(source)
		return nil
	}

	if source.group.Size() == 1 {
		// The group goes with its only panel; no new group is needed.
		return c.moveGroupToEdge(source, target, position)
	}

	view := c.newGroupView(c.generateGroupID(), entity.GroupOptions{})
	if err := c.addBeside(view, target, position); err != nil {
		view.group.Dispose()
		return err
	}
	c.registerGroup(view)
	if err := c.transferPanel(panel, source, view, nil); err != nil {
		return err
	}
	c.setActiveView(view)
	return nil
}

func (c *DockingController) moveGroup(source, target *groupView, position entity.Position, index *int) error {
	if source == target {
		return nil
	}
	if position.IsEdge() {
		return c.moveGroupToEdge(source, target, position)
	}

	if index != nil && (*index < 0 || *index > target.group.Size()) {
		return fmt.Errorf("%w: index %d out of range [0,%d]", entity.ErrInvalidLocation, *index, target.group.Size())
	}
	active := source.group.ActivePanel()
	for i, p := range source.group.Panels() {
		var at *int
		if index != nil {
			slot := *index + i
			at = &slot
		}
		if err := c.transferPanel(p, source, target, at); err != nil {
			return err
		}
	}
	if active != nil {
		if err := target.group.SetActivePanel(active.ID); err != nil {
			return err
		}
	}
	c.setActiveView(target)
	return c.removeGroupView(source)
}

// moveGroupToEdge puts a whole group beside a grid target. Siblings along
// the edge's axis only swap places, keeping every size.
func (c *DockingController) moveGroupToEdge(source, target *groupView, position entity.Position) error {
	if source == target {
		return nil
	}

	if source.group.Location() == entity.LocationGrid {
		moved, err := c.swapSiblings(source, target, position)
		if err != nil || moved {
			if moved {
				c.setActiveView(source)
			}
			return err
		}
	}

	if err := c.detachGroup(source); err != nil {
		return err
	}
	c.closeWindow(source)
	if err := c.addBeside(source, target, position); err != nil {
		if rerr := c.appendToRoot(source); rerr != nil {
			logging.FromContext(c.ctx).Error().Err(rerr).Str("group_id", string(source.group.ID)).Msg("failed to restore group")
		}
		return err
	}
	c.setActiveView(source)
	return nil
}

// swapSiblings handles a move between two children of the same branch
// along its axis. It reports false when the move needs a real re-insert.
func (c *DockingController) swapSiblings(source, target *groupView, position entity.Position) (bool, error) {
	from, err := c.tree.Locate(string(source.group.ID))
	if err != nil {
		return false, err
	}
	to, err := c.tree.Locate(string(target.group.ID))
	if err != nil {
		return false, err
	}
	if len(from) != len(to) || !slices.Equal(from[:len(from)-1], to[:len(to)-1]) {
		return false, nil
	}
	if layout.LocationOrientation(c.tree.Orientation(), to) != position.Orientation() {
		return false, nil
	}

	parent := from[:len(from)-1]
	fromIndex, toIndex := from[len(from)-1], to[len(to)-1]
	if position.IsTrailing() {
		toIndex++
	}
	if fromIndex < toIndex {
		toIndex--
	}
	if fromIndex != toIndex {
		if err := c.tree.MoveView(parent, fromIndex, toIndex); err != nil {
			return false, err
		}
		c.markChanged()
	}
	return true, nil
}

// transferPanel reparents a panel between two live groups. The groups'
// add and remove events do not surface as panel additions or removals.
func (c *DockingController) transferPanel(panel *entity.Panel, from, to *groupView, index *int) error {
	c.moving++
	defer func() { c.moving-- }()

	if _, err := from.group.RemovePanel(panel.ID); err != nil {
		return err
	}
	if err := to.group.OpenPanel(panel, entity.OpenPanelOptions{Index: index, SkipSetGroupActive: true}); err != nil {
		if rerr := from.group.OpenPanel(panel, entity.OpenPanelOptions{SkipSetGroupActive: true}); rerr != nil {
			logging.FromContext(c.ctx).Error().Err(rerr).Str("panel_id", string(panel.ID)).Msg("failed to restore panel")
		}
		return err
	}
	c.onDidMovePanel.Fire(PanelMoveEvent{Panel: panel, From: from.group.ID, To: to.group.ID})
	return nil
}
