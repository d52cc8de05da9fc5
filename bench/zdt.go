package bench

import (
	"fmt"

	"github.com/rwcarlsen/benchtools"
)

// ZDT1 has a convex Pareto front f2 = 1 - sqrt(f1), reached when every
// variable but the first is zero.
type ZDT1 struct {
	NDim int
}

func (p ZDT1) Name() string { return fmt.Sprintf("ZDT1_%vD", p.NDim) }

func (p ZDT1) Eval(x []float64) benchtools.Fitness {
	g := zdtG(x)
	return benchtools.Fitness{x[0], g * (1 - sqrt(x[0]/g))}
}

func (p ZDT1) Bounds() (low, up []float64) { return box(p.NDim, 0, 1) }

func (p ZDT1) Front(n int) []benchtools.Fitness {
	return zdtFront(n, func(f1 float64) float64 { return 1 - sqrt(f1) })
}

func (p ZDT1) Extremes() (first, last []float64) { return []float64{0, 1}, []float64{1, 0} }

// ZDT2 has a non-convex Pareto front f2 = 1 - f1^2.
type ZDT2 struct {
	NDim int
}

func (p ZDT2) Name() string { return fmt.Sprintf("ZDT2_%vD", p.NDim) }

func (p ZDT2) Eval(x []float64) benchtools.Fitness {
	g := zdtG(x)
	return benchtools.Fitness{x[0], g * (1 - (x[0]/g)*(x[0]/g))}
}

func (p ZDT2) Bounds() (low, up []float64) { return box(p.NDim, 0, 1) }

func (p ZDT2) Front(n int) []benchtools.Fitness {
	return zdtFront(n, func(f1 float64) float64 { return 1 - f1*f1 })
}

func (p ZDT2) Extremes() (first, last []float64) { return []float64{0, 1}, []float64{1, 0} }

func zdtG(x []float64) float64 {
	if len(x) < 2 {
		return 1
	}
	g := 1.0
	for _, v := range x[1:] {
		g += 9 * v / float64(len(x)-1)
	}
	return g
}

func zdtFront(n int, f2 func(float64) float64) []benchtools.Fitness {
	if n < 2 {
		panic("bench: front needs at least two points")
	}
	points := make([]benchtools.Fitness, n)
	for i := range points {
		f1 := float64(i) / float64(n-1)
		points[i] = benchtools.Fitness{f1, f2(f1)}
	}
	return points
}

// FrontIndividuals returns n evaluated individuals lying on the optimal
// front of a ZDT problem, sorted ascending by the first objective.
func FrontIndividuals(p MultiFunc, n int) []benchtools.Individual {
	if n < 2 {
		panic("bench: front needs at least two points")
	}
	low, _ := p.Bounds()
	inds := make([]benchtools.Individual, n)
	for i := range inds {
		pos := make([]float64, len(low))
		pos[0] = float64(i) / float64(n-1)
		inds[i] = benchtools.NewIndividual(pos, p.Eval(pos)...)
	}
	return inds
}
