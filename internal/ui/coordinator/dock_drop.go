package coordinator

import (
	"context"
	"fmt"

	"github.com/bnema/dockgrid/internal/application/usecase"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
)

// DragSession is the drag started by StartDrag. Only the controller that
// created a session applies drops for it.
type DragSession struct {
	owner  *DockingController
	Source usecase.DragSource
}

// WillDropEvent is fired before a resolved drop is applied.
type WillDropEvent struct {
	Source usecase.DragSource
	Target usecase.DropTarget
	Action usecase.DropAction

	prevented bool
}

// PreventDefault vetoes the drop.
func (e *WillDropEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener vetoed the drop.
func (e *WillDropEvent) DefaultPrevented() bool { return e.prevented }

// DropEvent reports an applied drop.
type DropEvent struct {
	Source usecase.DragSource
	Target usecase.DropTarget
	Action usecase.DropAction
}

// DropRequest names the group under the pointer and the zone within it.
type DropRequest struct {
	Group    entity.GroupID
	Position entity.Position
	// Index is the tab slot for center drops; nil appends.
	Index *int
}

// StartDrag begins dragging a panel, or a whole group when panel is empty.
func (c *DockingController) StartDrag(group entity.GroupID, panel entity.PanelID) (*DragSession, error) {
	src := usecase.DragSource{Group: group, Panel: panel}
	if panel != "" {
		_, view, err := c.panelView(panel)
		if err != nil {
			return nil, err
		}
		if group != "" && group != view.group.ID {
			return nil, fmt.Errorf("%w: panel %s is not in group %s", entity.ErrMissingReference, panel, group)
		}
		src.Group = view.group.ID
	}
	view, err := c.view(src.Group)
	if err != nil {
		return nil, err
	}
	src.PanelCount = view.group.Size()

	c.drag = &DragSession{owner: c, Source: src}
	return c.drag, nil
}

// CancelDrag forgets the current drag.
func (c *DockingController) CancelDrag() {
	c.drag = nil
}

// HandleDrop resolves a drop for session and applies it unless a WillDrop
// listener vetoes it. Sessions from another controller, or a source that
// has gone away, resolve to a noop.
func (c *DockingController) HandleDrop(ctx context.Context, session *DragSession, req DropRequest) (usecase.DropAction, error) {
	log := logging.FromContext(ctx)

	c.begin()
	defer c.end()

	if session == nil || session.owner != c {
		return usecase.DropAction{Kind: usecase.DropNoop, Reason: "foreign drag"}, nil
	}
	if c.drag == session {
		c.drag = nil
	}

	target, err := c.view(req.Group)
	if err != nil {
		return usecase.DropAction{}, err
	}

	src := session.Source
	if src.Panel != "" {
		_, view, err := c.panelView(src.Panel)
		if err != nil {
			return usecase.DropAction{Kind: usecase.DropNoop, Reason: "source panel is gone"}, nil
		}
		src.Group = view.group.ID
	}
	source := c.groups[src.Group]
	if source == nil {
		return usecase.DropAction{Kind: usecase.DropNoop, Reason: "source group is gone"}, nil
	}
	src.PanelCount = source.group.Size()

	dropTarget := usecase.DropTarget{
		Group:    target.group.ID,
		Location: target.group.Location(),
		Locked:   target.group.Locked,
		Position: req.Position,
		Index:    req.Index,
	}
	action := usecase.ResolveDrop(src, dropTarget)
	if action.Kind == usecase.DropNoop {
		log.Debug().
			Str("target_group", string(target.group.ID)).
			Str("reason", action.Reason).
			Msg("drop ignored")
		return action, nil
	}

	will := &WillDropEvent{Source: src, Target: dropTarget, Action: action}
	c.onWillDrop.Fire(will)
	if will.DefaultPrevented() {
		log.Debug().Str("target_group", string(target.group.ID)).Msg("drop vetoed")
		return usecase.DropAction{Kind: usecase.DropNoop, Reason: "vetoed"}, nil
	}

	if err := c.MoveGroupOrPanel(ctx, MoveRequest{
		SourceGroup: src.Group,
		SourcePanel: src.Panel,
		TargetGroup: target.group.ID,
		Position:    action.Position,
		Index:       action.Index,
	}); err != nil {
		return usecase.DropAction{}, fmt.Errorf("apply %s drop: %w", action.Kind, err)
	}
	c.onDidDrop.Fire(DropEvent{Source: src, Target: dropTarget, Action: action})
	return action, nil
}

// DropAt hit-tests a pointer release and forwards it to HandleDrop.
// Floating groups are tested first, the most recent on top, then the grid.
// A release over nothing is a noop.
func (c *DockingController) DropAt(ctx context.Context, session *DragSession, x, y int) (usecase.DropAction, error) {
	for i := len(c.floating) - 1; i >= 0; i-- {
		view := c.floating[i]
		if pos, ok := usecase.PositionFromPoint(view.box, x, y, c.opts.DropThresholdPercent); ok {
			return c.HandleDrop(ctx, session, DropRequest{Group: view.group.ID, Position: pos})
		}
	}

	leaf, ok := c.tree.LeafAt(x, y)
	if !ok {
		return usecase.DropAction{Kind: usecase.DropNoop, Reason: "no drop target"}, nil
	}
	box, err := c.tree.LeafBox(leaf.LeafID())
	if err != nil {
		return usecase.DropAction{}, err
	}
	pos, ok := usecase.PositionFromPoint(box, x, y, c.opts.DropThresholdPercent)
	if !ok {
		return usecase.DropAction{Kind: usecase.DropNoop, Reason: "no drop target"}, nil
	}
	return c.HandleDrop(ctx, session, DropRequest{Group: entity.GroupID(leaf.LeafID()), Position: pos})
}
