package benchtools

import (
	"cmp"
	"slices"
)

type Rng interface {
	Float64() float64
}

// RandPop generates n randomly positioned individuals in the boxed bounds
// defined by low and up.  The number of dimensions is equal to len(low).
// Returned individuals are unevaluated.
func RandPop(n int, low, up []float64, rng Rng) []Individual {
	if len(low) != len(up) {
		panic("low and up vectors are not same length")
	}

	ndims := len(low)

	inds := make([]Individual, n)
	for i := 0; i < n; i++ {
		pos := make([]float64, ndims)
		for j := range pos {
			pos[j] = low[j] + rng.Float64()*(up[j]-low[j])
		}
		inds[i] = Individual{pos: pos}
	}
	return inds
}

// SortFront sorts front in place, ascending by the first objective.  This
// is the ordering the diversity metric expects.
func SortFront(front []Individual) {
	slices.SortStableFunc(front, func(a, b Individual) int {
		return cmp.Compare(a.Fitness[0], b.Fitness[0])
	})
}

// Evaluate evaluates every individual with ev serially and returns the
// evaluated copies.
func Evaluate(ev Evaluator, inds ...Individual) ([]Individual, error) {
	results, _, err := SerialEvaler{}.Eval(ev, inds...)
	return results, err
}
