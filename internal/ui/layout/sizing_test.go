package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockgrid/internal/ui/layout"
)

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		items    []layout.Constraint
		expected []int
	}{
		{
			name:     "empty",
			total:    100,
			items:    nil,
			expected: nil,
		},
		{
			name:     "no prior sizes splits equally",
			total:    90,
			items:    []layout.Constraint{{}, {}, {}},
			expected: []int{30, 30, 30},
		},
		{
			name:     "scales proportionally",
			total:    200,
			items:    []layout.Constraint{{Size: 25}, {Size: 75}},
			expected: []int{50, 150},
		},
		{
			name:     "unchanged total is a no-op",
			total:    100,
			items:    []layout.Constraint{{Size: 13}, {Size: 54}, {Size: 33}},
			expected: []int{13, 54, 33},
		},
		{
			name:     "minimum is respected and the rest shared",
			total:    100,
			items:    []layout.Constraint{{Min: 60, Size: 10}, {Size: 10}, {Size: 10}},
			expected: []int{60, 20, 20},
		},
		{
			name:     "maximum is respected and the rest shared",
			total:    300,
			items:    []layout.Constraint{{Max: 50, Size: 100}, {Size: 100}, {Size: 100}},
			expected: []int{50, 125, 125},
		},
		{
			name:     "all bounded gives residual to the last child with room",
			total:    100,
			items:    []layout.Constraint{{Max: 30, Size: 1}, {Max: 30, Size: 1}, {Min: 10, Max: 45, Size: 1}},
			expected: []int{30, 30, 40},
		},
		{
			name:     "infeasible minimums lose to the exact sum",
			total:    100,
			items:    []layout.Constraint{{Min: 60, Size: 50}, {Min: 60, Size: 50}},
			expected: []int{60, 40},
		},
		{
			name:     "negative total is treated as zero",
			total:    -10,
			items:    []layout.Constraint{{Size: 5}, {Size: 5}},
			expected: []int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layout.Distribute(tt.total, tt.items)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDistribute_ExactSumAndIdempotent(t *testing.T) {
	items := []layout.Constraint{
		{Min: 20, Max: 400, Size: 173},
		{Min: 0, Size: 91},
		{Min: 35, Max: 60, Size: 12},
		{Size: 250},
		{Min: 5, Size: 7},
	}

	for _, total := range []int{0, 1, 7, 99, 100, 333, 1000, 1919} {
		first := layout.Distribute(total, items)
		assert.Equal(t, total, sum(first), "total %d", total)

		again := make([]layout.Constraint, len(items))
		for i, it := range items {
			again[i] = it
			again[i].Size = first[i]
		}
		assert.Equal(t, first, layout.Distribute(total, again), "total %d", total)
	}
}

func TestDistribute_EqualSplitIsBalanced(t *testing.T) {
	got := layout.Distribute(100, []layout.Constraint{{}, {}, {}})

	assert.Equal(t, 100, sum(got))
	for _, size := range got {
		assert.InDelta(t, 33, size, 1)
	}
}
