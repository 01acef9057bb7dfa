package layout

import "math"

// Unbounded is the maximum size of a view without an upper bound.
const Unbounded = math.MaxInt32

// Constraint describes one child for Distribute. Size is the prior size and
// acts as the child's weight. A non-positive Max means unbounded.
type Constraint struct {
	Min  int
	Max  int
	Size int
}

// Distribute splits total among items. Prior sizes are scaled by
// total/sum(prior); children that leave [Min, Max] are clamped and the
// remainder is shared proportionally among the others until nothing
// violates. Whatever cannot be placed within bounds lands on the last child
// that can take it, and failing that on the very last child, so the result
// always sums to total. With no prior sizes the split is equal.
//
// The result is deterministic, and feeding it back with the same total
// returns it unchanged.
func Distribute(total int, items []Constraint) []int {
	n := len(items)
	if n == 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	mins := make([]int, n)
	maxs := make([]int, n)
	weights := make([]int, n)
	priorSum := 0
	for i, it := range items {
		mins[i] = max(it.Min, 0)
		maxs[i] = it.Max
		if maxs[i] <= 0 {
			maxs[i] = Unbounded
		}
		maxs[i] = max(maxs[i], mins[i])
		weights[i] = max(it.Size, 0)
		priorSum += weights[i]
	}
	if priorSum == 0 {
		for i := range weights {
			weights[i] = 1
		}
	}

	sizes := proportional(total, weights)
	fixed := make([]bool, n)

	for range n {
		remaining := total
		var free []int
		for i := range n {
			if fixed[i] {
				remaining -= sizes[i]
			} else {
				free = append(free, i)
			}
		}
		if len(free) == 0 {
			break
		}

		freeWeights := make([]int, len(free))
		weightSum := 0
		for k, i := range free {
			freeWeights[k] = weights[i]
			weightSum += weights[i]
		}
		if weightSum == 0 {
			for k := range freeWeights {
				freeWeights[k] = 1
			}
		}
		for k, share := range proportional(max(remaining, 0), freeWeights) {
			sizes[free[k]] = share
		}

		violated := false
		for _, i := range free {
			switch {
			case sizes[i] < mins[i]:
				sizes[i] = mins[i]
			case sizes[i] > maxs[i]:
				sizes[i] = maxs[i]
			default:
				continue
			}
			fixed[i] = true
			violated = true
		}
		if !violated {
			break
		}
	}

	absorbResidual(total, sizes, mins, maxs)
	return sizes
}

// proportional splits total by weight using cumulative rounding, so the
// parts always sum to total and equal weights get equal parts within one.
func proportional(total int, weights []int) []int {
	out := make([]int, len(weights))
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return out
	}
	var acc, prev int64
	for i, w := range weights {
		acc += int64(w)
		cum := (acc*int64(total)*2 + int64(sum)) / (int64(sum) * 2)
		out[i] = int(cum - prev)
		prev = cum
	}
	return out
}

func absorbResidual(total int, sizes, mins, maxs []int) {
	residual := total
	for _, s := range sizes {
		residual -= s
	}
	for i := len(sizes) - 1; i >= 0 && residual != 0; i-- {
		if residual > 0 {
			take := min(residual, maxs[i]-sizes[i])
			if take > 0 {
				sizes[i] += take
				residual -= take
			}
		} else {
			give := min(-residual, sizes[i]-mins[i])
			if give > 0 {
				sizes[i] -= give
				residual += give
			}
		}
	}
	if residual == 0 {
		return
	}
	// Infeasible: bounds lose, the sum does not.
	last := len(sizes) - 1
	sizes[last] += residual
	for i := last; i > 0 && sizes[i] < 0; i-- {
		sizes[i-1] += sizes[i]
		sizes[i] = 0
	}
	if sizes[0] < 0 {
		sizes[0] = 0
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
