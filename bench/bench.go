// Package bench provides benchmark problems for exercising the transforms
// and front metrics: single-objective functions from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization and the
// bi-objective ZDT problems with their analytic Pareto fronts.
package bench

import (
	"fmt"
	"math"

	"github.com/rwcarlsen/benchtools"
)

var (
	cos  = math.Cos
	exp  = math.Exp
	sqrt = math.Sqrt
)

var AllFuncs = []Func{
	Sphere{NDim: 2},
	Sphere{NDim: 30},
	Ackley{NDim: 2},
	Ackley{NDim: 10},
	Rastrigin{NDim: 2},
	Rastrigin{NDim: 10},
	Styblinski{NDim: 1},
	Styblinski{NDim: 10},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

// Func is a single-objective benchmark function.
type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	// Optima returns the global minima with their objective value as the
	// single fitness component.
	Optima() []benchtools.Individual
	Name() string
}

// MultiFunc is a multi-objective benchmark problem with a known Pareto
// front.
type MultiFunc interface {
	Eval(v []float64) benchtools.Fitness
	Bounds() (low, up []float64)
	// Front samples n points of the optimal front, sorted ascending by the
	// first objective.
	Front(n int) []benchtools.Fitness
	// Extremes returns the end points of the optimal front.
	Extremes() (first, last []float64)
	Name() string
}

// Evaluator adapts fn into an evaluator returning a one-objective fitness.
func Evaluator(fn Func) benchtools.Evaluator {
	return benchtools.Func(func(v []float64) benchtools.Fitness {
		return benchtools.Fitness{fn.Eval(v)}
	})
}

// MultiEvaluator adapts fn into an evaluator.
func MultiEvaluator(fn MultiFunc) benchtools.Evaluator {
	return benchtools.Func(fn.Eval)
}

func box(n int, low, up float64) (lb, ub []float64) {
	lb = make([]float64, n)
	ub = make([]float64, n)
	for i := range lb {
		lb[i] = low
		ub[i] = up
	}
	return lb, ub
}

func fill(n int, v float64) []float64 {
	pos := make([]float64, n)
	for i := range pos {
		pos[i] = v
	}
	return pos
}

type Sphere struct {
	NDim int
}

func (fn Sphere) Name() string { return fmt.Sprintf("Sphere_%vD", fn.NDim) }

func (fn Sphere) Eval(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += v * v
	}
	return tot
}

func (fn Sphere) Bounds() (low, up []float64) { return box(fn.NDim, -5.12, 5.12) }

func (fn Sphere) Optima() []benchtools.Individual {
	return []benchtools.Individual{benchtools.NewIndividual(fill(fn.NDim, 0), 0)}
}

type Ackley struct {
	NDim int
}

func (fn Ackley) Name() string { return fmt.Sprintf("Ackley_%vD", fn.NDim) }

func (fn Ackley) Eval(x []float64) float64 {
	n := float64(len(x))
	sumsq, sumcos := 0.0, 0.0
	for _, v := range x {
		sumsq += v * v
		sumcos += cos(2 * math.Pi * v)
	}
	return -20*exp(-0.2*sqrt(sumsq/n)) - exp(sumcos/n) + 20 + math.E
}

func (fn Ackley) Bounds() (low, up []float64) { return box(fn.NDim, -5, 5) }

func (fn Ackley) Optima() []benchtools.Individual {
	return []benchtools.Individual{benchtools.NewIndividual(fill(fn.NDim, 0), 0)}
}

type Rastrigin struct {
	NDim int
}

func (fn Rastrigin) Name() string { return fmt.Sprintf("Rastrigin_%vD", fn.NDim) }

func (fn Rastrigin) Eval(x []float64) float64 {
	tot := 10 * float64(len(x))
	for _, v := range x {
		tot += v*v - 10*cos(2*math.Pi*v)
	}
	return tot
}

func (fn Rastrigin) Bounds() (low, up []float64) { return box(fn.NDim, -5.12, 5.12) }

func (fn Rastrigin) Optima() []benchtools.Individual {
	return []benchtools.Individual{benchtools.NewIndividual(fill(fn.NDim, 0), 0)}
}

type Styblinski struct {
	NDim int
}

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Eval(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) { return box(fn.NDim, -5, 5) }

func (fn Styblinski) Optima() []benchtools.Individual {
	return []benchtools.Individual{
		benchtools.NewIndividual(fill(fn.NDim, -2.903534), -39.16616570377142*float64(fn.NDim)),
	}
}

type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Eval(x []float64) float64 {
	tot := 0.0
	for i := 0; i < len(x)-1; i++ {
		tot += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(x[i]-1, 2)
	}
	return tot
}

func (fn Rosenbrock) Bounds() (low, up []float64) { return box(fn.NDim, -1000, 1000) }

func (fn Rosenbrock) Optima() []benchtools.Individual {
	return []benchtools.Individual{benchtools.NewIndividual(fill(fn.NDim, 1), 0)}
}

// InsideBounds reports whether p lies within the bounds of fn.
func InsideBounds(p []float64, fn interface{ Bounds() (low, up []float64) }) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}
