package layout

import (
	"fmt"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

// Serialize captures the tree depth-first. state turns each leaf payload
// into its group state. The root size is its extent across the root axis.
func (t *Tree) Serialize(state func(Leaf) entity.GroupState) entity.GridState {
	root := t.nodes[t.root]
	return entity.GridState{
		Root:        t.serializeNode(root, root.split.OrthogonalSize(), true, state),
		Width:       t.width,
		Height:      t.height,
		Orientation: root.split.Orientation(),
	}
}

func (t *Tree) serializeNode(n *node, size int, visible bool, state func(Leaf) entity.GroupState) entity.GridNodeState {
	out := entity.GridNodeState{Size: size}
	if !visible {
		hidden := false
		out.Visible = &hidden
	}
	if n.isLeaf() {
		group := state(n.leaf)
		out.Type = entity.NodeLeaf
		out.Group = &group
		return out
	}
	out.Type = entity.NodeBranch
	out.Children = make([]entity.GridNodeState, n.split.Length())
	for i := range n.split.Length() {
		out.Children[i] = t.serializeNode(t.child(n, i), n.split.ViewSize(i), n.split.IsViewVisible(i), state)
	}
	return out
}

// Deserialize replaces the tree with state. build creates the payload for
// each leaf; its first error aborts the load and leaves the tree empty.
// Non-root branches with a single child are collapsed on the way in.
func (t *Tree) Deserialize(state entity.GridState, build func(entity.GroupState) (Leaf, error)) error {
	if state.Root.Type != entity.NodeBranch {
		return fmt.Errorf("%w: grid root must be a branch", entity.ErrInvalidLayout)
	}

	t.width, t.height = max(state.Width, 0), max(state.Height, 0)
	t.reset(state.Orientation)

	if err := t.buildChildren(t.nodes[t.root], state.Root.Children, build); err != nil {
		t.reset(state.Orientation)
		return err
	}
	t.layoutRoot()

	t.logger.Debug().
		Int("leaves", len(t.leaves)).
		Str("orientation", state.Orientation.String()).
		Msg("grid deserialized")
	return nil
}

func (t *Tree) buildChildren(b *node, states []entity.GridNodeState, build func(entity.GroupState) (Leaf, error)) error {
	var flat []entity.GridNodeState
	for _, s := range states {
		flat = append(flat, flatten(s)...)
	}

	views := make([]View, 0, len(flat))
	sizes := make([]int, 0, len(flat))
	visible := make([]bool, 0, len(flat))
	for _, s := range flat {
		var n *node
		switch s.Type {
		case entity.NodeLeaf:
			if s.Group == nil {
				return fmt.Errorf("%w: leaf without group", entity.ErrInvalidLayout)
			}
			leaf, err := build(*s.Group)
			if err != nil {
				return err
			}
			if t.Has(leaf.LeafID()) {
				return fmt.Errorf("%w: leaf %s appears twice", entity.ErrDuplicateID, leaf.LeafID())
			}
			n = t.newLeaf(leaf)
			t.leaves[leaf.LeafID()] = n.id
		case entity.NodeBranch:
			n = t.newBranch(b.split.Orientation().Orthogonal(), 0, 0)
			if err := t.buildChildren(n, s.Children, build); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown node type %q", entity.ErrInvalidLayout, s.Type)
		}
		n.parent = b.id
		views = append(views, n)
		sizes = append(sizes, s.Size)
		visible = append(visible, s.IsVisible())
	}
	b.split.setItems(views, sizes, visible)
	return nil
}

// flatten replaces a single-child branch by its child, or by its
// grandchildren when that child is a branch too, so every branch below the
// root ends up with at least two children.
func flatten(s entity.GridNodeState) []entity.GridNodeState {
	if s.Type != entity.NodeBranch || len(s.Children) != 1 {
		return []entity.GridNodeState{s}
	}
	only := s.Children[0]
	var out []entity.GridNodeState
	if only.Type == entity.NodeBranch {
		for _, gc := range only.Children {
			out = append(out, flatten(gc)...)
		}
	} else {
		only.Size = s.Size
		out = []entity.GridNodeState{only}
	}
	if !s.IsVisible() {
		for i := range out {
			hidden := false
			out[i].Visible = &hidden
		}
	}
	return out
}
