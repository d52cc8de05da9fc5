package transform

import (
	"fmt"

	"github.com/rwcarlsen/benchtools"
	"github.com/rwcarlsen/benchtools/internal/logging"
)

// Scale stretches the search space of an evaluator by per-dimension
// factors.  Evaluate(x) evaluates the wrapped evaluator at x_i / factor_i.
type Scale struct {
	eval benchtools.Evaluator
	// inverse factors, applied to the individual
	inv  []float64
	opts options
}

var _ Transform[[]float64] = (*Scale)(nil)

// NewScale wraps eval with a scaling by factor, which must have the same
// length as the individuals to be evaluated and contain no zeros.
func NewScale(eval benchtools.Evaluator, factor []float64, opts ...Option) (*Scale, error) {
	s := &Scale{eval: eval, opts: buildOptions("scale", opts)}
	if err := s.Set(factor); err != nil {
		return nil, err
	}
	return s, nil
}

// Set replaces the scale factors for later evaluations.  All ones cancels
// the scaling.  On error the previous factors remain in effect.
func (s *Scale) Set(factor []float64) error {
	inv := make([]float64, len(factor))
	for i, f := range factor {
		if f == 0 {
			return fmt.Errorf("scale: factor %v: %w", i, ErrZeroFactor)
		}
		inv[i] = 1 / f
	}
	s.inv = inv
	s.opts.log.V(1).Info("scale set", "factor", logging.Floats(factor))
	return nil
}

// Factor returns the current scale factors.
func (s *Scale) Factor() []float64 {
	factor := make([]float64, len(s.inv))
	for i, f := range s.inv {
		factor[i] = 1 / f
	}
	return factor
}

func (s *Scale) Evaluate(x []float64, args ...any) (benchtools.Fitness, error) {
	if len(x) != len(s.inv) {
		return nil, dimErr("scale", len(x), len(s.inv))
	}
	scaled := make([]float64, len(x))
	for i := range x {
		scaled[i] = x[i] * s.inv[i]
	}
	return s.eval.Evaluate(scaled, args...)
}
