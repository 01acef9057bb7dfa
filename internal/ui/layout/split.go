package layout

import (
	"fmt"
	"slices"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

// View is anything a SplitView can size. Axis selects width
// (OrientationHorizontal) or height (OrientationVertical).
type View interface {
	MinimumSize(axis entity.Orientation) int
	MaximumSize(axis entity.Orientation) int
	// Layout receives the extent along the split axis and across it.
	Layout(size, orthogonalSize int)
}

type sizingKind int

const (
	sizingProportional sizingKind = iota
	sizingExact
	sizingDistribute
	sizingSplit
	sizingInvisible
)

// Sizing selects how a view's initial size is chosen when it enters a split.
type Sizing struct {
	kind  sizingKind
	value int
}

var (
	// SizeProportional keeps the current proportions of the other views.
	SizeProportional = Sizing{kind: sizingProportional}
	// SizeDistribute shares the extent equally between all visible views.
	SizeDistribute = Sizing{kind: sizingDistribute}
)

// SizeExact gives the view exactly n, taking the space from the others.
func SizeExact(n int) Sizing {
	return Sizing{kind: sizingExact, value: n}
}

// SizeSplit takes half the space of the view currently at index.
func SizeSplit(index int) Sizing {
	return Sizing{kind: sizingSplit, value: index}
}

// SizeInvisible adds the view hidden; cached is restored when it is shown.
func SizeInvisible(cached int) Sizing {
	return Sizing{kind: sizingInvisible, value: cached}
}

type splitItem struct {
	view       View
	size       int
	visible    bool
	cachedSize int
}

// SplitView is an ordered list of views sized along one axis. The sizes of
// the visible views always sum to Size() once at least one is visible.
type SplitView struct {
	orientation    entity.Orientation
	size           int
	orthogonalSize int
	items          []*splitItem

	onDidChange entity.Emitter[struct{}]
}

// NewSplitView creates an empty split along orientation.
func NewSplitView(orientation entity.Orientation, size, orthogonalSize int) *SplitView {
	return &SplitView{
		orientation:    orientation,
		size:           max(size, 0),
		orthogonalSize: max(orthogonalSize, 0),
	}
}

// OnDidChange fires whenever sizes or membership change.
func (s *SplitView) OnDidChange(fn func(struct{})) entity.Disposable {
	return s.onDidChange.Subscribe(fn)
}

// Orientation returns the split axis.
func (s *SplitView) Orientation() entity.Orientation { return s.orientation }

// Size returns the extent along the split axis.
func (s *SplitView) Size() int { return s.size }

// OrthogonalSize returns the extent across the split axis.
func (s *SplitView) OrthogonalSize() int { return s.orthogonalSize }

// Length returns the number of views, hidden ones included.
func (s *SplitView) Length() int { return len(s.items) }

// View returns the view at index or nil.
func (s *SplitView) View(index int) View {
	if index < 0 || index >= len(s.items) {
		return nil
	}
	return s.items[index].view
}

// IndexOf returns the index of view or -1.
func (s *SplitView) IndexOf(view View) int {
	return slices.IndexFunc(s.items, func(it *splitItem) bool { return it.view == view })
}

// Sizes returns the current sizes; hidden views report 0.
func (s *SplitView) Sizes() []int {
	out := make([]int, len(s.items))
	for i, it := range s.items {
		out[i] = it.size
	}
	return out
}

// ViewSize returns the size of the view at index, or its cached size when
// hidden.
func (s *SplitView) ViewSize(index int) int {
	if index < 0 || index >= len(s.items) {
		return 0
	}
	it := s.items[index]
	if !it.visible {
		return it.cachedSize
	}
	return it.size
}

// IsViewVisible reports whether the view at index is shown.
func (s *SplitView) IsViewVisible(index int) bool {
	return index >= 0 && index < len(s.items) && s.items[index].visible
}

// MinimumSize is the smallest extent along the split axis.
func (s *SplitView) MinimumSize() int {
	total := 0
	for _, it := range s.items {
		if it.visible {
			total += it.view.MinimumSize(s.orientation)
		}
	}
	return total
}

// MaximumSize is the largest extent along the split axis.
func (s *SplitView) MaximumSize() int {
	total := 0
	visible := 0
	for _, it := range s.items {
		if !it.visible {
			continue
		}
		visible++
		total += it.view.MaximumSize(s.orientation)
		if total >= Unbounded {
			return Unbounded
		}
	}
	if visible == 0 {
		return Unbounded
	}
	return total
}

// MinimumOrthogonalSize is the largest minimum across the split axis.
func (s *SplitView) MinimumOrthogonalSize() int {
	out := 0
	for _, it := range s.items {
		if it.visible {
			out = max(out, it.view.MinimumSize(s.orientation.Orthogonal()))
		}
	}
	return out
}

// MaximumOrthogonalSize is the smallest maximum across the split axis.
func (s *SplitView) MaximumOrthogonalSize() int {
	out := Unbounded
	for _, it := range s.items {
		if it.visible {
			out = min(out, it.view.MaximumSize(s.orientation.Orthogonal()))
		}
	}
	return out
}

// AddView inserts view at index (0..Length()).
func (s *SplitView) AddView(view View, sizing Sizing, index int) error {
	if view == nil {
		return fmt.Errorf("view is required")
	}
	if index < 0 || index > len(s.items) {
		return fmt.Errorf("%w: index %d out of range [0,%d]", entity.ErrInvalidLocation, index, len(s.items))
	}

	item := &splitItem{view: view, visible: true}
	pinned := -1

	switch sizing.kind {
	case sizingExact:
		item.size = max(sizing.value, 0)
		pinned = index
	case sizingSplit:
		if sizing.value < 0 || sizing.value >= len(s.items) {
			return fmt.Errorf("%w: split index %d out of range [0,%d)", entity.ErrInvalidLocation, sizing.value, len(s.items))
		}
		target := s.items[sizing.value]
		if target.visible {
			item.size = target.size / 2
			target.size -= item.size
		} else {
			item.size = target.cachedSize / 2
		}
	case sizingInvisible:
		item.visible = false
		item.cachedSize = max(sizing.value, 0)
	case sizingDistribute:
		for _, it := range s.items {
			if it.visible {
				it.size = 1
			}
		}
		item.size = 1
	default:
		if visible := s.visibleCount(); visible > 0 {
			item.size = s.size / (visible + 1)
		}
	}

	s.items = slices.Insert(s.items, index, item)
	s.relayout(pinned)
	return nil
}

// RemoveView removes the view at index. SizeDistribute re-shares the extent
// equally; anything else keeps the proportions of the remaining views.
func (s *SplitView) RemoveView(index int, sizing Sizing) (View, error) {
	if index < 0 || index >= len(s.items) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", entity.ErrInvalidLocation, index, len(s.items))
	}
	item := s.items[index]
	s.items = slices.Delete(s.items, index, index+1)
	if sizing.kind == sizingDistribute {
		for _, it := range s.items {
			if it.visible {
				it.size = 1
			}
		}
	}
	s.relayout(-1)
	return item.view, nil
}

// MoveView reorders a view; sizes travel with their views.
func (s *SplitView) MoveView(from, to int) error {
	if from < 0 || from >= len(s.items) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", entity.ErrInvalidLocation, from, len(s.items))
	}
	if to < 0 || to >= len(s.items) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", entity.ErrInvalidLocation, to, len(s.items))
	}
	if from == to {
		return nil
	}
	item := s.items[from]
	s.items = slices.Delete(s.items, from, from+1)
	s.items = slices.Insert(s.items, to, item)
	s.onDidChange.Fire(struct{}{})
	return nil
}

// Layout resizes the split, keeping the proportions of the visible views.
func (s *SplitView) Layout(size, orthogonalSize int) {
	s.size = max(size, 0)
	s.orthogonalSize = max(orthogonalSize, 0)
	s.relayout(-1)
}

// ResizeView grows the view at index by delta (negative shrinks), trading
// space with its next visible sibling, or the previous one for the last
// view. Both siblings stay within bounds; the rest of delta is dropped.
// It returns the delta actually applied.
func (s *SplitView) ResizeView(index, delta int) (int, error) {
	if index < 0 || index >= len(s.items) {
		return 0, fmt.Errorf("%w: index %d out of range [0,%d)", entity.ErrInvalidLocation, index, len(s.items))
	}
	item := s.items[index]
	if !item.visible || delta == 0 {
		return 0, nil
	}
	neighbour := s.neighbour(index)
	if neighbour == nil {
		return 0, nil
	}

	itemMin, itemMax := s.bounds(item)
	nMin, nMax := s.bounds(neighbour)

	applied := delta
	if delta > 0 {
		applied = min(applied, itemMax-item.size, neighbour.size-nMin)
		applied = max(applied, 0)
	} else {
		applied = max(applied, itemMin-item.size, neighbour.size-nMax)
		applied = min(applied, 0)
	}
	if applied == 0 {
		return 0, nil
	}

	item.size += applied
	neighbour.size -= applied
	item.view.Layout(item.size, s.orthogonalSize)
	neighbour.view.Layout(neighbour.size, s.orthogonalSize)
	s.onDidChange.Fire(struct{}{})
	return applied, nil
}

// SetViewVisible hides or shows the view at index. A hidden view keeps its
// last size and gets it back when shown.
func (s *SplitView) SetViewVisible(index int, visible bool) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", entity.ErrInvalidLocation, index, len(s.items))
	}
	item := s.items[index]
	if item.visible == visible {
		return nil
	}
	item.visible = visible
	if visible {
		item.size = item.cachedSize
		s.relayout(index)
		return nil
	}
	item.cachedSize = item.size
	item.size = 0
	s.relayout(-1)
	return nil
}

// replace swaps the view at index for views with the given sizes. When the
// new visible sizes do not add up to the old item's size the split is
// redistributed.
func (s *SplitView) replace(index int, views []View, sizes []int, visible []bool) {
	removed := s.items[index]
	items := newItems(views, sizes, visible)
	s.items = slices.Replace(s.items, index, index+1, items...)

	added := 0
	for _, it := range items {
		added += it.size
	}
	if removed.visible && added != removed.size {
		s.relayout(-1)
		return
	}
	for _, it := range items {
		it.view.Layout(it.size, s.orthogonalSize)
	}
	s.onDidChange.Fire(struct{}{})
}

// setItems installs views without sizing them; the next Layout does.
func (s *SplitView) setItems(views []View, sizes []int, visible []bool) {
	s.items = newItems(views, sizes, visible)
}

func newItems(views []View, sizes []int, visible []bool) []*splitItem {
	items := make([]*splitItem, len(views))
	for i, v := range views {
		items[i] = &splitItem{view: v, visible: visible[i]}
		if visible[i] {
			items[i].size = max(sizes[i], 0)
		} else {
			items[i].cachedSize = max(sizes[i], 0)
		}
	}
	return items
}

func (s *SplitView) visibleCount() int {
	n := 0
	for _, it := range s.items {
		if it.visible {
			n++
		}
	}
	return n
}

func (s *SplitView) neighbour(index int) *splitItem {
	for i := index + 1; i < len(s.items); i++ {
		if s.items[i].visible {
			return s.items[i]
		}
	}
	for i := index - 1; i >= 0; i-- {
		if s.items[i].visible {
			return s.items[i]
		}
	}
	return nil
}

func (s *SplitView) bounds(it *splitItem) (lo, hi int) {
	lo = max(it.view.MinimumSize(s.orientation), 0)
	hi = it.view.MaximumSize(s.orientation)
	if hi <= 0 {
		hi = Unbounded
	}
	return lo, max(hi, lo)
}

// relayout redistributes the extent over the visible views, optionally
// holding pinned at its current size, then lays every view out.
func (s *SplitView) relayout(pinned int) {
	var (
		indexes     []int
		constraints []Constraint
	)
	for i, it := range s.items {
		if !it.visible {
			it.size = 0
			continue
		}
		lo, hi := s.bounds(it)
		c := Constraint{Min: lo, Max: hi, Size: it.size}
		if i == pinned {
			fixed := clamp(it.size, lo, min(hi, s.size))
			c = Constraint{Min: fixed, Max: fixed, Size: fixed}
		}
		indexes = append(indexes, i)
		constraints = append(constraints, c)
	}

	var sizes []int
	if pos := slices.Index(indexes, pinned); pos >= 0 && len(indexes) > 1 {
		// The pinned view's weight must not skew the others.
		sizes = distributeAround(s.size, constraints, pos)
	} else {
		sizes = Distribute(s.size, constraints)
	}
	for k, size := range sizes {
		s.items[indexes[k]].size = size
	}

	for _, it := range s.items {
		it.view.Layout(it.size, s.orthogonalSize)
	}
	s.onDidChange.Fire(struct{}{})
}

// distributeAround gives the constraint at pos its fixed size and lets the
// others share the rest. When the others cannot fit, the fixed one yields.
func distributeAround(total int, constraints []Constraint, pos int) []int {
	others := slices.Delete(slices.Clone(constraints), pos, pos+1)
	minOthers := 0
	for _, c := range others {
		minOthers += max(c.Min, 0)
	}
	fixed := constraints[pos].Size
	if total-fixed < minOthers {
		fixed = max(total-minOthers, 0)
	}
	return slices.Insert(Distribute(total-fixed, others), pos, fixed)
}
