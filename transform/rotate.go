package transform

import (
	"fmt"

	"github.com/rwcarlsen/benchtools"
	"github.com/rwcarlsen/benchtools/linalg"
	"gonum.org/v1/gonum/mat"
)

// Rotate rotates the search space of an evaluator by an orthogonal matrix
// Q.  Evaluate(x) evaluates the wrapped evaluator at Q^-1 * x.
//
// A random orthogonal matrix can be made with linalg.RandomOrthogonal.
type Rotate struct {
	eval    benchtools.Evaluator
	backend linalg.Backend
	// inverse rotation, applied to the individual
	inv  mat.Matrix
	n    int
	opts options
}

var _ Transform[mat.Matrix] = (*Rotate)(nil)

// NewRotate wraps eval with a rotation by q using backend for the matrix
// inversion and products.  q must be an N by N orthogonal matrix, N being
// the length of the individuals to be evaluated; orthogonality is not
// checked.
func NewRotate(backend linalg.Backend, q mat.Matrix, eval benchtools.Evaluator, opts ...Option) (*Rotate, error) {
	if backend == nil {
		return nil, fmt.Errorf("rotate: %w", ErrNoBackend)
	}
	r := &Rotate{eval: eval, backend: backend, opts: buildOptions("rotate", opts)}
	if err := r.Set(q); err != nil {
		return nil, err
	}
	return r, nil
}

// Set replaces the rotation matrix for later evaluations, recomputing its
// inverse.  The identity matrix cancels the rotation.  On error the
// previous rotation remains in effect.
func (r *Rotate) Set(q mat.Matrix) error {
	rows, cols := q.Dims()
	if rows != cols || rows == 0 {
		return fmt.Errorf("rotate: matrix is %vx%v, want square: %w", rows, cols, ErrDimension)
	}
	inv, err := r.backend.Inverse(q)
	if err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	r.inv, r.n = inv, rows
	r.opts.log.V(1).Info("rotation set", "n", rows)
	return nil
}

func (r *Rotate) Evaluate(x []float64, args ...any) (benchtools.Fitness, error) {
	if len(x) != r.n {
		return nil, dimErr("rotate", len(x), r.n)
	}
	return r.eval.Evaluate(r.backend.MulVec(r.inv, x), args...)
}
