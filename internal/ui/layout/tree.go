package layout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
	"github.com/rs/zerolog"
)

// ErrInvariantViolation is returned by CheckInvariants.
var ErrInvariantViolation = errors.New("grid invariant violated")

// NodeID identifies a node in the tree arena.
type NodeID int

// Location addresses a node by child indexes from the root.
type Location []int

func (l Location) String() string {
	parts := make([]string, len(l))
	for i, idx := range l {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Leaf is the payload of a grid leaf.
type Leaf interface {
	LeafID() string
	Constraints() entity.Constraints
}

// node is either a branch (split != nil) or a leaf. Parents are arena ids;
// 0 means none.
type node struct {
	tree   *Tree
	id     NodeID
	parent NodeID

	split *SplitView

	leaf          Leaf
	width, height int
}

func (n *node) isLeaf() bool { return n.split == nil }

func (n *node) MinimumSize(axis entity.Orientation) int {
	if n.isLeaf() {
		c := n.leaf.Constraints()
		if axis == entity.OrientationHorizontal {
			return c.MinimumWidth
		}
		return c.MinimumHeight
	}
	if axis == n.split.Orientation() {
		return n.split.MinimumSize()
	}
	return n.split.MinimumOrthogonalSize()
}

func (n *node) MaximumSize(axis entity.Orientation) int {
	if n.isLeaf() {
		c := n.leaf.Constraints()
		limit := c.MaximumHeight
		if axis == entity.OrientationHorizontal {
			limit = c.MaximumWidth
		}
		if limit <= 0 {
			return Unbounded
		}
		return limit
	}
	if axis == n.split.Orientation() {
		return n.split.MaximumSize()
	}
	return n.split.MaximumOrthogonalSize()
}

func (n *node) Layout(size, orthogonalSize int) {
	if !n.isLeaf() {
		n.split.Layout(orthogonalSize, size)
		return
	}
	parent := n.tree.nodes[n.parent]
	if parent == nil {
		return
	}
	if parent.split.Orientation() == entity.OrientationHorizontal {
		n.width, n.height = size, orthogonalSize
	} else {
		n.width, n.height = orthogonalSize, size
	}
}

// Tree is the recursive grid: branches alternate orientation with depth
// and hold their children in a SplitView; leaves hold a Leaf payload. The
// root is always a branch and is never collapsed.
type Tree struct {
	nodes  map[NodeID]*node
	leaves map[string]NodeID
	root   NodeID
	nextID NodeID

	width, height int
	logger        zerolog.Logger
}

// NewTree creates an empty tree whose root lays children out along
// orientation.
func NewTree(ctx context.Context, orientation entity.Orientation) *Tree {
	log := logging.FromContext(ctx)
	t := &Tree{
		logger: log.With().Str("component", "grid-tree").Logger(),
	}
	t.reset(orientation)
	return t
}

func (t *Tree) reset(orientation entity.Orientation) {
	t.nodes = make(map[NodeID]*node)
	t.leaves = make(map[string]NodeID)
	along, across := extents(orientation, t.width, t.height)
	t.root = t.newBranch(orientation, along, across).id
}

// Clear drops every node and leaves an empty root with the same
// orientation.
func (t *Tree) Clear() {
	t.reset(t.Orientation())
}

// Orientation returns the root orientation.
func (t *Tree) Orientation() entity.Orientation {
	return t.nodes[t.root].split.Orientation()
}

// Width returns the laid out width.
func (t *Tree) Width() int { return t.width }

// Height returns the laid out height.
func (t *Tree) Height() int { return t.height }

// Layout resizes the whole tree.
func (t *Tree) Layout(width, height int) {
	t.width, t.height = max(width, 0), max(height, 0)
	t.layoutRoot()
}

func (t *Tree) layoutRoot() {
	root := t.nodes[t.root]
	along, across := extents(root.split.Orientation(), t.width, t.height)
	root.split.Layout(along, across)
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int { return len(t.leaves) }

// IsEmpty reports whether the tree holds no leaves.
func (t *Tree) IsEmpty() bool { return len(t.leaves) == 0 }

// Has reports whether a leaf with the id is in the tree.
func (t *Tree) Has(leafID string) bool {
	_, ok := t.leaves[leafID]
	return ok
}

// Leaves returns every leaf depth-first, left to right.
func (t *Tree) Leaves() []Leaf {
	var out []Leaf
	var walk func(*node)
	walk = func(n *node) {
		if n.isLeaf() {
			out = append(out, n.leaf)
			return
		}
		for i := range n.split.Length() {
			walk(t.child(n, i))
		}
	}
	walk(t.nodes[t.root])
	return out
}

// GetView returns the leaf at loc.
func (t *Tree) GetView(loc Location) (Leaf, error) {
	n, err := t.nodeAt(loc)
	if err != nil {
		return nil, err
	}
	if !n.isLeaf() {
		return nil, fmt.Errorf("%w: %s is a branch", entity.ErrInvalidLocation, loc)
	}
	return n.leaf, nil
}

// Locate returns the current location of a leaf.
func (t *Tree) Locate(leafID string) (Location, error) {
	id, ok := t.leaves[leafID]
	if !ok {
		return nil, fmt.Errorf("%w: leaf %s is not in the grid", entity.ErrMissingReference, leafID)
	}
	var loc Location
	n := t.nodes[id]
	for n.id != t.root {
		parent := t.nodes[n.parent]
		loc = append(loc, parent.split.IndexOf(n))
		n = parent
	}
	slices.Reverse(loc)
	return loc, nil
}

// RelativeLocation returns where a view dropped on the direction edge of
// the node at loc goes. See RelativeLocation.
func (t *Tree) RelativeLocation(loc Location, direction entity.Position) (Location, error) {
	return RelativeLocation(t.Orientation(), loc, direction)
}

// LocationOrientation returns the orientation of the branch that holds the
// node at loc.
func LocationOrientation(rootOrientation entity.Orientation, loc Location) entity.Orientation {
	if len(loc)%2 == 0 {
		return rootOrientation.Orthogonal()
	}
	return rootOrientation
}

// RelativeLocation computes the insert location for a view placed on the
// direction edge of the node at loc. When the parent branch runs along the
// direction's axis the result is a sibling index; otherwise it addresses a
// slot one level below loc, which makes AddView wrap the node in a new
// branch of the other orientation.
func RelativeLocation(rootOrientation entity.Orientation, loc Location, direction entity.Position) (Location, error) {
	if len(loc) == 0 {
		return nil, fmt.Errorf("%w: empty location", entity.ErrInvalidLocation)
	}
	if !direction.IsEdge() {
		return nil, fmt.Errorf("%w: %q is not an edge", entity.ErrInvalidLocation, direction)
	}
	out := slices.Clone(loc)
	if LocationOrientation(rootOrientation, loc) == direction.Orientation() {
		if direction.IsTrailing() {
			out[len(out)-1]++
		}
		return out, nil
	}
	index := 0
	if direction.IsTrailing() {
		index = 1
	}
	return append(out, index), nil
}

// AddView inserts leaf at loc. When the parent of loc is a leaf, that leaf
// is first wrapped in a new branch of the other orientation and loc's last
// index (0 or 1) is taken inside it.
func (t *Tree) AddView(leaf Leaf, sizing Sizing, loc Location) error {
	if leaf == nil {
		return fmt.Errorf("leaf is required")
	}
	if len(loc) == 0 {
		return fmt.Errorf("%w: empty location", entity.ErrInvalidLocation)
	}
	if t.Has(leaf.LeafID()) {
		return fmt.Errorf("%w: leaf %s is already in the grid", entity.ErrDuplicateID, leaf.LeafID())
	}

	rest, index := loc[:len(loc)-1], loc[len(loc)-1]
	parent, err := t.nodeAt(rest)
	if err != nil {
		return err
	}

	if parent.isLeaf() {
		if index < 0 || index > 1 {
			return fmt.Errorf("%w: %s", entity.ErrInvalidLocation, loc)
		}
		if sizing.kind == sizingSplit {
			sizing = SizeSplit(0)
		}
		parent = t.wrapLeaf(parent)
	} else if index < 0 || index > parent.split.Length() {
		return fmt.Errorf("%w: %s", entity.ErrInvalidLocation, loc)
	}

	n := t.newLeaf(leaf)
	n.parent = parent.id
	if err := parent.split.AddView(n, sizing, index); err != nil {
		delete(t.nodes, n.id)
		return err
	}
	t.leaves[leaf.LeafID()] = n.id

	t.logger.Debug().
		Str("leaf", leaf.LeafID()).
		Str("location", loc.String()).
		Msg("leaf added")
	return nil
}

// wrapLeaf replaces a leaf with a branch of the orthogonal orientation that
// holds it as its only child.
func (t *Tree) wrapLeaf(leaf *node) *node {
	grand := t.nodes[leaf.parent]
	idx := grand.split.IndexOf(leaf)
	size := grand.split.ViewSize(idx)
	visible := grand.split.IsViewVisible(idx)

	branch := t.newBranch(grand.split.Orientation().Orthogonal(), grand.split.OrthogonalSize(), size)
	branch.parent = grand.id
	grand.split.replace(idx, []View{branch}, []int{size}, []bool{visible})

	leaf.parent = branch.id
	// A single child always fills its branch.
	_ = branch.split.AddView(leaf, SizeExact(branch.split.Size()), 0)
	return branch
}

// RemoveView removes the leaf at loc and collapses what it leaves behind:
// emptied non-root branches go away, a non-root branch left with one child
// is replaced by that child, and a root left with a single branch child is
// replaced by it.
func (t *Tree) RemoveView(loc Location) (Leaf, error) {
	if len(loc) == 0 {
		return nil, fmt.Errorf("%w: empty location", entity.ErrInvalidLocation)
	}
	n, err := t.nodeAt(loc)
	if err != nil {
		return nil, err
	}
	if !n.isLeaf() {
		return nil, fmt.Errorf("%w: %s is a branch", entity.ErrInvalidLocation, loc)
	}

	parent := t.nodes[n.parent]
	if _, err := parent.split.RemoveView(loc[len(loc)-1], SizeProportional); err != nil {
		return nil, err
	}
	delete(t.nodes, n.id)
	delete(t.leaves, n.leaf.LeafID())
	t.collapse(parent)

	t.logger.Debug().
		Str("leaf", n.leaf.LeafID()).
		Str("location", loc.String()).
		Msg("leaf removed")
	return n.leaf, nil
}

func (t *Tree) collapse(b *node) {
	for b.id != t.root && b.split.Length() == 0 {
		grand := t.nodes[b.parent]
		_, _ = grand.split.RemoveView(grand.split.IndexOf(b), SizeProportional)
		delete(t.nodes, b.id)
		b = grand
	}
	if b.split.Length() != 1 {
		return
	}
	only := t.child(b, 0)

	if b.id == t.root {
		if only.isLeaf() {
			return
		}
		only.parent = 0
		delete(t.nodes, b.id)
		t.root = only.id
		t.layoutRoot()
		return
	}

	grand := t.nodes[b.parent]
	idx := grand.split.IndexOf(b)
	visible := grand.split.IsViewVisible(idx)
	delete(t.nodes, b.id)

	if only.isLeaf() {
		only.parent = grand.id
		grand.split.replace(idx, []View{only}, []int{grand.split.ViewSize(idx)}, []bool{visible})
		return
	}

	// only runs along grand's axis: its children move up one level.
	count := only.split.Length()
	views := make([]View, count)
	sizes := make([]int, count)
	shown := make([]bool, count)
	for i := range count {
		c := t.child(only, i)
		c.parent = grand.id
		views[i] = c
		sizes[i] = only.split.ViewSize(i)
		shown[i] = visible && only.split.IsViewVisible(i)
	}
	delete(t.nodes, only.id)
	grand.split.replace(idx, views, sizes, shown)
}

// InsertOrthogonalAtRoot flips the root orientation. An empty root just
// changes axis; a root with one leaf is rebuilt around it; a root whose
// only child is a branch hands the root role to that branch; otherwise the
// old root becomes the only child of a new root.
func (t *Tree) InsertOrthogonalAtRoot() {
	old := t.nodes[t.root]
	orientation := old.split.Orientation().Orthogonal()
	along, across := extents(orientation, t.width, t.height)

	switch old.split.Length() {
	case 0:
		old.split = NewSplitView(orientation, along, across)
	case 1:
		only := t.child(old, 0)
		delete(t.nodes, old.id)
		if only.isLeaf() {
			root := t.newBranch(orientation, along, across)
			t.root = root.id
			only.parent = root.id
			_ = root.split.AddView(only, SizeDistribute, 0)
		} else {
			only.parent = 0
			t.root = only.id
		}
	default:
		root := t.newBranch(orientation, along, across)
		t.root = root.id
		old.parent = root.id
		_ = root.split.AddView(old, SizeDistribute, 0)
	}
	t.layoutRoot()

	t.logger.Debug().
		Str("orientation", orientation.String()).
		Msg("root orthogonalized")
}

// MoveView reorders two children of the branch at parent.
func (t *Tree) MoveView(parent Location, from, to int) error {
	b, err := t.nodeAt(parent)
	if err != nil {
		return err
	}
	if b.isLeaf() {
		return fmt.Errorf("%w: %s is a leaf", entity.ErrInvalidLocation, parent)
	}
	return b.split.MoveView(from, to)
}

// ResizeView changes the size of the node at loc along its parent's axis
// and returns the delta applied.
func (t *Tree) ResizeView(loc Location, delta int) (int, error) {
	parent, index, err := t.parentOf(loc)
	if err != nil {
		return 0, err
	}
	return parent.split.ResizeView(index, delta)
}

// SetViewVisible hides or shows the node at loc.
func (t *Tree) SetViewVisible(loc Location, visible bool) error {
	parent, index, err := t.parentOf(loc)
	if err != nil {
		return err
	}
	return parent.split.SetViewVisible(index, visible)
}

// IsViewVisible reports whether the node at loc is shown.
func (t *Tree) IsViewVisible(loc Location) bool {
	parent, index, err := t.parentOf(loc)
	if err != nil {
		return false
	}
	return parent.split.IsViewVisible(index)
}

// ViewSize returns the size of the node at loc along its parent's axis.
func (t *Tree) ViewSize(loc Location) (int, error) {
	parent, index, err := t.parentOf(loc)
	if err != nil {
		return 0, err
	}
	return parent.split.ViewSize(index), nil
}

// Sizes returns the child sizes of the branch at loc.
func (t *Tree) Sizes(loc Location) ([]int, error) {
	b, err := t.nodeAt(loc)
	if err != nil {
		return nil, err
	}
	if b.isLeaf() {
		return nil, fmt.Errorf("%w: %s is a leaf", entity.ErrInvalidLocation, loc)
	}
	return b.split.Sizes(), nil
}

// LeafBox returns the rectangle the leaf occupies, relative to the grid.
func (t *Tree) LeafBox(leafID string) (entity.Box, error) {
	loc, err := t.Locate(leafID)
	if err != nil {
		return entity.Box{}, err
	}
	box := entity.Box{Width: t.width, Height: t.height}
	n := t.nodes[t.root]
	for _, idx := range loc {
		sizes := n.split.Sizes()
		offset := 0
		for _, s := range sizes[:idx] {
			offset += s
		}
		if n.split.Orientation() == entity.OrientationHorizontal {
			box.Left += offset
			box.Width = sizes[idx]
		} else {
			box.Top += offset
			box.Height = sizes[idx]
		}
		n = t.child(n, idx)
	}
	return box, nil
}

// LeafAt returns the leaf under the point, if any.
func (t *Tree) LeafAt(x, y int) (Leaf, bool) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return nil, false
	}
	n := t.nodes[t.root]
	for !n.isLeaf() {
		pos := x
		if n.split.Orientation() == entity.OrientationVertical {
			pos = y
		}
		next := -1
		start := 0
		for i, size := range n.split.Sizes() {
			if size > 0 && pos >= start && pos < start+size {
				next = i
				break
			}
			start += size
		}
		if next < 0 {
			return nil, false
		}
		if n.split.Orientation() == entity.OrientationHorizontal {
			x -= start
		} else {
			y -= start
		}
		n = t.child(n, next)
	}
	return n.leaf, true
}

// CheckInvariants verifies parent links, orientation alternation, the
// size sums and that no non-root branch has fewer than two children.
func (t *Tree) CheckInvariants() error {
	root, ok := t.nodes[t.root]
	if !ok || root.isLeaf() {
		return fmt.Errorf("%w: root is not a branch", ErrInvariantViolation)
	}
	along, across := extents(root.split.Orientation(), t.width, t.height)
	if root.split.Size() != along || root.split.OrthogonalSize() != across {
		return fmt.Errorf("%w: root is %dx%d, grid is %dx%d", ErrInvariantViolation,
			root.split.Size(), root.split.OrthogonalSize(), along, across)
	}

	seenNodes, seenLeaves := 0, 0
	var visit func(n *node, loc Location) error
	visit = func(n *node, loc Location) error {
		seenNodes++
		if t.nodes[n.id] != n {
			return fmt.Errorf("%w: node %d at %s is not in the arena", ErrInvariantViolation, n.id, loc)
		}
		if n.isLeaf() {
			seenLeaves++
			if t.leaves[n.leaf.LeafID()] != n.id {
				return fmt.Errorf("%w: leaf %s at %s is not indexed", ErrInvariantViolation, n.leaf.LeafID(), loc)
			}
			return nil
		}
		if n.id != t.root && n.split.Length() < 2 {
			return fmt.Errorf("%w: branch at %s has %d children", ErrInvariantViolation, loc, n.split.Length())
		}
		sum, visible := 0, 0
		for i := range n.split.Length() {
			c := t.child(n, i)
			childLoc := append(slices.Clone(loc), i)
			if c.parent != n.id {
				return fmt.Errorf("%w: node at %s points to parent %d, not %d", ErrInvariantViolation, childLoc, c.parent, n.id)
			}
			if !c.isLeaf() && c.split.Orientation() != n.split.Orientation().Orthogonal() {
				return fmt.Errorf("%w: branch at %s does not alternate orientation", ErrInvariantViolation, childLoc)
			}
			if n.split.IsViewVisible(i) {
				visible++
				sum += n.split.Sizes()[i]
			}
			if err := visit(c, childLoc); err != nil {
				return err
			}
		}
		if visible > 0 && sum != n.split.Size() {
			return fmt.Errorf("%w: children at %s sum to %d, branch is %d", ErrInvariantViolation, loc, sum, n.split.Size())
		}
		return nil
	}
	if err := visit(root, Location{}); err != nil {
		return err
	}
	if seenNodes != len(t.nodes) || seenLeaves != len(t.leaves) {
		return fmt.Errorf("%w: %d of %d nodes and %d of %d leaves reachable", ErrInvariantViolation,
			seenNodes, len(t.nodes), seenLeaves, len(t.leaves))
	}
	return nil
}

func (t *Tree) newBranch(orientation entity.Orientation, size, orthogonalSize int) *node {
	t.nextID++
	n := &node{tree: t, id: t.nextID, split: NewSplitView(orientation, size, orthogonalSize)}
	t.nodes[n.id] = n
	return n
}

func (t *Tree) newLeaf(leaf Leaf) *node {
	t.nextID++
	n := &node{tree: t, id: t.nextID, leaf: leaf}
	t.nodes[n.id] = n
	return n
}

func (t *Tree) child(b *node, index int) *node {
	return b.split.View(index).(*node)
}

func (t *Tree) nodeAt(loc Location) (*node, error) {
	n := t.nodes[t.root]
	for depth, idx := range loc {
		if n.isLeaf() || idx < 0 || idx >= n.split.Length() {
			return nil, fmt.Errorf("%w: %s does not exist (depth %d)", entity.ErrInvalidLocation, loc, depth)
		}
		n = t.child(n, idx)
	}
	return n, nil
}

func (t *Tree) parentOf(loc Location) (*node, int, error) {
	if len(loc) == 0 {
		return nil, 0, fmt.Errorf("%w: the root has no parent", entity.ErrInvalidLocation)
	}
	if _, err := t.nodeAt(loc); err != nil {
		return nil, 0, err
	}
	parent, _ := t.nodeAt(loc[:len(loc)-1])
	return parent, loc[len(loc)-1], nil
}

// extents maps width and height onto a split's axis.
func extents(orientation entity.Orientation, width, height int) (along, across int) {
	if orientation == entity.OrientationHorizontal {
		return width, height
	}
	return height, width
}
