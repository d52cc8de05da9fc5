// Package transform provides evaluator decorators that translate, rotate,
// scale or add noise to a benchmark function.  Each decorator is itself a
// benchtools.Evaluator, so they stack, and each exposes a Set method that
// replaces its parameter for all later evaluations.
//
// The translation, rotation and scaling are applied to the search space:
// the decorated evaluator receives the individual mapped through the
// inverse transform, so the optimum moves by the transform while the
// wrapped function stays unaware of it.
//
// Decorators are not safe for concurrent use when Set may race with
// Evaluate; callers must synchronize.
package transform

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/rwcarlsen/benchtools"
	"github.com/rwcarlsen/benchtools/internal/logging"
)

var (
	ErrNoBackend  = errors.New("no linear algebra backend")
	ErrDimension  = errors.New("dimension mismatch")
	ErrZeroFactor = errors.New("zero scale factor")
)

// Transform is an evaluator whose transform parameter of type P can be
// replaced after construction.
type Transform[P any] interface {
	benchtools.Evaluator
	Set(p P) error
}

type options struct {
	log logr.Logger
}

type Option func(*options)

// Logger sets the logger used to report parameter changes.
func Logger(l logr.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(name string, opts []Option) options {
	o := options{log: logging.Log()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.WithName(name)
	return o
}

func dimErr(what string, got, want int) error {
	return fmt.Errorf("%v: individual has %v dimensions, want %v: %w", what, got, want, ErrDimension)
}
