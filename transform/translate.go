package transform

import (
	"github.com/rwcarlsen/benchtools"
	"github.com/rwcarlsen/benchtools/internal/logging"
)

// Translate shifts the search space of an evaluator by a vector.  Calling
// Evaluate(x) evaluates the wrapped evaluator at x - v, so the wrapped
// function's optimum appears at its original position plus v.
type Translate struct {
	eval benchtools.Evaluator
	vec  []float64
	opts options
}

var _ Transform[[]float64] = (*Translate)(nil)

// NewTranslate wraps eval with a translation by v, which must have the
// same length as the individuals to be evaluated.
func NewTranslate(eval benchtools.Evaluator, v []float64, opts ...Option) *Translate {
	t := &Translate{eval: eval, opts: buildOptions("translate", opts)}
	t.Set(v)
	return t
}

// Set replaces the translation vector for later evaluations.  A zero
// vector cancels the translation.
func (t *Translate) Set(v []float64) error {
	t.vec = append([]float64{}, v...)
	t.opts.log.V(1).Info("translation set", "vector", logging.Floats(t.vec))
	return nil
}

// Vector returns a copy of the current translation.
func (t *Translate) Vector() []float64 { return append([]float64{}, t.vec...) }

func (t *Translate) Evaluate(x []float64, args ...any) (benchtools.Fitness, error) {
	if len(x) != len(t.vec) {
		return nil, dimErr("translate", len(x), len(t.vec))
	}
	shifted := make([]float64, len(x))
	for i := range x {
		// subtract since the translation applies to the individual and not
		// the function
		shifted[i] = x[i] - t.vec[i]
	}
	return t.eval.Evaluate(shifted, args...)
}
