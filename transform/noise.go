package transform

import (
	"fmt"
	"math/rand/v2"

	"github.com/rwcarlsen/benchtools"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseFunc returns one noise sample each time it is called.
type NoiseFunc func() float64

type noiseKind int

const (
	noNoise noiseKind = iota
	singleNoise
	perObjectiveNoise
)

func (k noiseKind) String() string {
	switch k {
	case singleNoise:
		return "single"
	case perObjectiveNoise:
		return "per-objective"
	}
	return "none"
}

// NoiseSpec selects the noise added to each objective.  The zero value
// adds no noise.
type NoiseSpec struct {
	kind   noiseKind
	single NoiseFunc
	per    []NoiseFunc
}

// NoNoise leaves every objective untouched.
func NoNoise() NoiseSpec { return NoiseSpec{} }

// Single adds a sample of fn to every objective.  Each objective gets its
// own call.  A nil fn means no noise.
func Single(fn NoiseFunc) NoiseSpec {
	if fn == nil {
		return NoNoise()
	}
	return NoiseSpec{kind: singleNoise, single: fn}
}

// PerObjective adds a sample of fns[i] to objective i.  There must be one
// entry per objective; nil entries leave their objective untouched.
func PerObjective(fns ...NoiseFunc) NoiseSpec {
	return NoiseSpec{kind: perObjectiveNoise, per: append([]NoiseFunc{}, fns...)}
}

func (s NoiseSpec) funcFor(i int) NoiseFunc {
	switch s.kind {
	case singleNoise:
		return s.single
	case perObjectiveNoise:
		return s.per[i]
	}
	return nil
}

// Noise adds random noise to the objective values returned by an
// evaluator.  The noise functions are called on every evaluation with no
// caching.
type Noise struct {
	eval benchtools.Evaluator
	spec NoiseSpec
	opts options
}

var _ Transform[NoiseSpec] = (*Noise)(nil)

func NewNoise(spec NoiseSpec, eval benchtools.Evaluator, opts ...Option) *Noise {
	n := &Noise{eval: eval, opts: buildOptions("noise", opts)}
	n.Set(spec)
	return n
}

// Set replaces the noise for later evaluations.  NoNoise() removes it.
func (n *Noise) Set(spec NoiseSpec) error {
	n.spec = spec
	n.opts.log.V(1).Info("noise set", "kind", spec.kind, "nfuncs", len(spec.per))
	return nil
}

func (n *Noise) Evaluate(x []float64, args ...any) (benchtools.Fitness, error) {
	fit, err := n.eval.Evaluate(x, args...)
	if err != nil {
		return fit, err
	}
	if n.spec.kind == perObjectiveNoise && len(n.spec.per) != len(fit) {
		return nil, fmt.Errorf("noise: %v noise functions for %v objectives: %w", len(n.spec.per), len(fit), ErrDimension)
	}

	noisy := make(benchtools.Fitness, len(fit))
	for i, r := range fit {
		noisy[i] = r
		if fn := n.spec.funcFor(i); fn != nil {
			noisy[i] += fn()
		}
	}
	return noisy, nil
}

// Gaussian returns normally distributed noise drawn using src.  A nil src
// uses the global random source.
func Gaussian(mu, sigma float64, src rand.Source) NoiseFunc {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}.Rand
}

// Uniform returns noise uniformly distributed over [lo, hi) drawn using
// src.  A nil src uses the global random source.
func Uniform(lo, hi float64, src rand.Source) NoiseFunc {
	return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand
}

// Constant returns a deterministic noise function, mostly useful for tests.
func Constant(c float64) NoiseFunc {
	return func() float64 { return c }
}
