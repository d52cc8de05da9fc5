// Package metric scores a front of evaluated individuals against a known
// optimal front, following the convergence and diversity measures of Deb's
// NSGA-II article.  Smaller values are better for every metric.
//
// Metrics panic on inputs too small to score; there is no partial result.
package metric

import (
	"math"

	"github.com/rwcarlsen/benchtools"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Diversity measures how evenly front is spread and how well it reaches
// the extreme points first and last of the optimal front.  front must hold
// at least two individuals sorted ascending by their first objective (see
// benchtools.SortFront).  Only the first two objectives are used.  A front
// whose points all coincide with both extremes has no defined diversity and
// panics.
func Diversity(front []benchtools.Individual, first, last []float64) float64 {
	n := len(front)
	if n < 2 {
		panic("metric: diversity needs at least two individuals")
	}

	df := dist2(front[0].Fitness, first)
	dl := dist2(front[n-1].Fitness, last)

	d := make([]float64, n-1)
	for i := range d {
		d[i] = dist2(front[i].Fitness, front[i+1].Fitness)
	}
	dm := stat.Mean(d, nil)

	di := 0.0
	for _, v := range d {
		di += math.Abs(v - dm)
	}
	denom := df + dl + float64(len(d))*dm
	if denom == 0 {
		panic("metric: diversity of a front collapsed onto its extreme points")
	}
	return (df + dl + di) / denom
}

// dist2 is the Euclidean distance over the first two components.
func dist2(a, b []float64) float64 {
	if len(a) < 2 || len(b) < 2 {
		panic("metric: diversity needs two objectives")
	}
	return floats.Distance(a[:2], b[:2], 2)
}

// Convergence is the mean distance from each member of front to its nearest
// point of optimal.  Each distance uses as many objectives as that optimal
// point has.  It is zero iff every member coincides with an optimal point.
func Convergence(front []benchtools.Individual, optimal []benchtools.Fitness) float64 {
	if len(front) == 0 || len(optimal) == 0 {
		panic("metric: convergence needs non-empty fronts")
	}

	distances := make([]float64, len(front))
	for i, ind := range front {
		distances[i] = nearest(ind.Fitness, optimal)
	}
	return stat.Mean(distances, nil)
}

// IGD is the inverted generational distance: the mean distance from each
// point of optimal to its nearest member of front.  Unlike Convergence it
// also penalizes parts of the optimal front that front does not cover.
func IGD(front []benchtools.Individual, optimal []benchtools.Fitness) float64 {
	if len(front) == 0 || len(optimal) == 0 {
		panic("metric: igd needs non-empty fronts")
	}

	fits := make([]benchtools.Fitness, len(front))
	for i, ind := range front {
		fits[i] = ind.Fitness
	}

	distances := make([]float64, len(optimal))
	for i, opt := range optimal {
		distances[i] = nearest(opt, truncate(fits, len(opt)))
	}
	return stat.Mean(distances, nil)
}

func truncate(fits []benchtools.Fitness, ndim int) []benchtools.Fitness {
	out := make([]benchtools.Fitness, len(fits))
	for i, f := range fits {
		out[i] = f[:ndim]
	}
	return out
}

// nearest returns the smallest Euclidean distance between p and any of
// points, using the first len(q) components of p for each point q.
func nearest(p []float64, points []benchtools.Fitness) float64 {
	best := math.Inf(1)
	for _, q := range points {
		if len(q) > len(p) {
			panic("metric: optimal point has more objectives than the front")
		}
		if d := floats.Distance(p[:len(q)], q, 2); d < best {
			best = d
		}
	}
	return best
}
