package usecase

import (
	"github.com/bnema/dockgrid/internal/domain/entity"
)

// DropKind is the structural effect of a drop.
type DropKind int

const (
	// DropNoop leaves everything as it is.
	DropNoop DropKind = iota
	// DropReparent moves one panel into the target group's tab list.
	DropReparent
	// DropSplit moves one panel into a new group beside the target.
	DropSplit
	// DropMoveGroup moves every panel of the source group: merged into the
	// target at center, or as a group beside it at an edge.
	DropMoveGroup
)

func (k DropKind) String() string {
	switch k {
	case DropReparent:
		return "reparent"
	case DropSplit:
		return "split"
	case DropMoveGroup:
		return "move-group"
	default:
		return "noop"
	}
}

// DragSource is what is being dragged. An empty Panel means the whole
// group (its header) is dragged.
type DragSource struct {
	Group      entity.GroupID
	Panel      entity.PanelID
	PanelCount int
}

// IsGroupDrag reports whether the whole group is dragged.
func (s DragSource) IsGroupDrag() bool {
	return s.Panel == ""
}

// DropTarget is where the pointer was released.
type DropTarget struct {
	Group    entity.GroupID
	Location entity.GroupLocation
	Locked   entity.LockMode
	Position entity.Position
	// Index is the tab slot for center drops; nil appends.
	Index *int
}

// DropAction is the outcome of ResolveDrop.
type DropAction struct {
	Kind     DropKind
	Position entity.Position
	Index    *int
	Reason   string
}

// IsSelfDrop reports whether dropping src on target would put the dragged
// content back where it already is: the same group, when either the whole
// group is dragged or the dragged panel is its only panel. Every drop
// target predicate goes through this one rule.
func IsSelfDrop(src DragSource, target DropTarget) bool {
	if src.Group == "" || src.Group != target.Group {
		return false
	}
	return src.IsGroupDrag() || src.PanelCount <= 1
}

// ResolveDrop maps a drag source and a drop target to a structural action.
// It never mutates anything.
func ResolveDrop(src DragSource, target DropTarget) DropAction {
	if target.Locked == entity.LockNoDropTarget {
		return noop("target does not accept drops")
	}

	position := target.Position
	if position == "" {
		position = entity.PositionCenter
	}
	// Floating and popout groups have no neighbours to split against.
	if position.IsEdge() && target.Location != "" && target.Location != entity.LocationGrid {
		position = entity.PositionCenter
	}

	if position == entity.PositionCenter && target.Locked == entity.LockLocked {
		return noop("target is locked")
	}
	if IsSelfDrop(src, target) {
		return noop("self drop")
	}

	switch {
	case src.IsGroupDrag():
		return DropAction{Kind: DropMoveGroup, Position: position, Index: target.Index}
	case position == entity.PositionCenter:
		return DropAction{Kind: DropReparent, Position: position, Index: target.Index}
	default:
		return DropAction{Kind: DropSplit, Position: position}
	}
}

func noop(reason string) DropAction {
	return DropAction{Kind: DropNoop, Reason: reason}
}

// PositionFromPoint maps a pointer inside box to a drop position: within
// thresholdPct percent of an edge picks that edge, anywhere else is center.
// When two edges qualify the nearest wins, horizontal edges first on ties.
// Points outside the box report false.
func PositionFromPoint(box entity.Box, x, y, thresholdPct int) (entity.Position, bool) {
	if box.Width <= 0 || box.Height <= 0 || !box.Contains(x, y) {
		return "", false
	}
	threshold := float64(min(max(thresholdPct, 0), 50)) / 100

	fx := (float64(x-box.Left) + 0.5) / float64(box.Width)
	fy := (float64(y-box.Top) + 0.5) / float64(box.Height)

	best := entity.PositionCenter
	bestDist := threshold
	for _, c := range []struct {
		pos  entity.Position
		dist float64
	}{
		{entity.PositionLeft, fx},
		{entity.PositionRight, 1 - fx},
		{entity.PositionTop, fy},
		{entity.PositionBottom, 1 - fy},
	} {
		if c.dist < bestDist {
			best, bestDist = c.pos, c.dist
		}
	}
	return best, true
}
