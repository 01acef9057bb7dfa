package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/ui/layout"
)

// fakeView records the last layout it received.
type fakeView struct {
	name           string
	min, max       int
	size, orthSize int
	layouts        int
}

func (v *fakeView) MinimumSize(axis entity.Orientation) int { return v.min }

func (v *fakeView) MaximumSize(axis entity.Orientation) int {
	if v.max == 0 {
		return layout.Unbounded
	}
	return v.max
}

func (v *fakeView) Layout(size, orthogonalSize int) {
	v.size, v.orthSize = size, orthogonalSize
	v.layouts++
}

func newSplitWith(t *testing.T, size int, views ...*fakeView) *layout.SplitView {
	t.Helper()
	sv := layout.NewSplitView(entity.OrientationHorizontal, size, 50)
	for i, v := range views {
		require.NoError(t, sv.AddView(v, layout.SizeDistribute, i))
	}
	return sv
}

func TestSplitView_AddViewDistribute(t *testing.T) {
	// Arrange
	a, b, c := &fakeView{name: "a"}, &fakeView{name: "b"}, &fakeView{name: "c"}

	// Act
	sv := newSplitWith(t, 300, a, b, c)

	// Assert
	assert.Equal(t, []int{100, 100, 100}, sv.Sizes())
	assert.Equal(t, 100, b.size)
	assert.Equal(t, 50, b.orthSize)
}

func TestSplitView_AddViewSplit(t *testing.T) {
	a, b := &fakeView{name: "a"}, &fakeView{name: "b"}
	sv := newSplitWith(t, 400, a, b)

	c := &fakeView{name: "c"}
	require.NoError(t, sv.AddView(c, layout.SizeSplit(1), 2))

	assert.Equal(t, []int{200, 100, 100}, sv.Sizes())
	assert.Equal(t, 400, sum(sv.Sizes()))
}

func TestSplitView_AddViewExactTakesFromOthers(t *testing.T) {
	a, b := &fakeView{name: "a"}, &fakeView{name: "b"}
	sv := newSplitWith(t, 400, a, b)

	c := &fakeView{name: "c"}
	require.NoError(t, sv.AddView(c, layout.SizeExact(100), 0))

	assert.Equal(t, []int{100, 150, 150}, sv.Sizes())
}

func TestSplitView_AddViewInvalidIndex(t *testing.T) {
	sv := newSplitWith(t, 100, &fakeView{})

	err := sv.AddView(&fakeView{}, layout.SizeDistribute, 5)
	require.ErrorIs(t, err, entity.ErrInvalidLocation)

	err = sv.AddView(&fakeView{}, layout.SizeSplit(3), 0)
	require.ErrorIs(t, err, entity.ErrInvalidLocation)
	assert.Equal(t, 1, sv.Length())
}

func TestSplitView_RemoveViewKeepsProportions(t *testing.T) {
	a, b, c := &fakeView{name: "a"}, &fakeView{name: "b"}, &fakeView{name: "c"}
	sv := newSplitWith(t, 400, a, b)
	require.NoError(t, sv.AddView(c, layout.SizeSplit(1), 2))
	require.Equal(t, []int{200, 100, 100}, sv.Sizes())

	removed, err := sv.RemoveView(0, layout.SizeProportional)
	require.NoError(t, err)

	assert.Same(t, a, removed)
	assert.Equal(t, []int{200, 200}, sv.Sizes())
	assert.Equal(t, -1, sv.IndexOf(a))

	_, err = sv.RemoveView(4, layout.SizeProportional)
	assert.ErrorIs(t, err, entity.ErrInvalidLocation)
}

func TestSplitView_MoveView(t *testing.T) {
	a, b, c := &fakeView{name: "a"}, &fakeView{name: "b"}, &fakeView{name: "c"}
	sv := newSplitWith(t, 300, a, b)
	require.NoError(t, sv.AddView(c, layout.SizeSplit(1), 2))

	require.NoError(t, sv.MoveView(2, 0))

	assert.Same(t, c, sv.View(0))
	assert.Same(t, a, sv.View(1))
	assert.Equal(t, []int{75, 150, 75}, sv.Sizes())
}

func TestSplitView_Layout(t *testing.T) {
	a, b := &fakeView{name: "a"}, &fakeView{name: "b", min: 150}
	sv := newSplitWith(t, 400, a, b)

	sv.Layout(200, 80)

	assert.Equal(t, []int{50, 150}, sv.Sizes())
	assert.Equal(t, 80, a.orthSize)
	assert.Equal(t, 200, sv.Size())
}

func TestSplitView_ResizeView(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		delta       int
		wantApplied int
		wantSizes   []int
	}{
		{name: "grow takes from next", index: 0, delta: 50, wantApplied: 50, wantSizes: []int{150, 50, 100}},
		{name: "grow stops at neighbour minimum", index: 0, delta: 90, wantApplied: 80, wantSizes: []int{180, 20, 100}},
		{name: "shrink gives to next", index: 1, delta: -30, wantApplied: -30, wantSizes: []int{100, 70, 130}},
		{name: "last view trades with previous", index: 2, delta: -60, wantApplied: -60, wantSizes: []int{100, 160, 40}},
		{name: "shrink stops at neighbour maximum", index: 1, delta: -95, wantApplied: -50, wantSizes: []int{100, 50, 150}},
		{name: "grow stops at own maximum", index: 2, delta: 70, wantApplied: 50, wantSizes: []int{100, 50, 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := newSplitWith(t, 300,
				&fakeView{name: "a"},
				&fakeView{name: "b", min: 20},
				&fakeView{name: "c", max: 150},
			)
			require.Equal(t, []int{100, 100, 100}, sv.Sizes())

			applied, err := sv.ResizeView(tt.index, tt.delta)

			require.NoError(t, err)
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.wantSizes, sv.Sizes())
		})
	}
}

func TestSplitView_SetViewVisible(t *testing.T) {
	a, b, c := &fakeView{name: "a"}, &fakeView{name: "b"}, &fakeView{name: "c"}
	sv := newSplitWith(t, 300, a, b, c)

	require.NoError(t, sv.SetViewVisible(1, false))
	assert.False(t, sv.IsViewVisible(1))
	assert.Equal(t, []int{150, 0, 150}, sv.Sizes())
	assert.Equal(t, 100, sv.ViewSize(1))

	require.NoError(t, sv.SetViewVisible(1, true))
	assert.Equal(t, []int{100, 100, 100}, sv.Sizes())
}

func TestSplitView_ConstraintAggregation(t *testing.T) {
	sv := newSplitWith(t, 300,
		&fakeView{min: 10, max: 100},
		&fakeView{min: 30},
	)

	assert.Equal(t, 40, sv.MinimumSize())
	assert.Equal(t, layout.Unbounded, sv.MaximumSize())
	assert.Equal(t, 30, sv.MinimumOrthogonalSize())
	assert.Equal(t, 100, sv.MaximumOrthogonalSize())
}

func TestSplitView_OnDidChange(t *testing.T) {
	sv := newSplitWith(t, 300, &fakeView{}, &fakeView{})
	changes := 0
	sub := sv.OnDidChange(func(struct{}) { changes++ })

	_, err := sv.ResizeView(0, 10)
	require.NoError(t, err)
	require.NoError(t, sv.MoveView(0, 1))
	sv.Layout(200, 50)
	sub.Dispose()
	sv.Layout(100, 50)

	assert.Equal(t, 3, changes)
}
