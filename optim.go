// Package benchtools provides the evaluation plumbing shared by the
// benchmarking tools: individuals, evaluators and evaluator wrappers.
package benchtools

import (
	"crypto/sha1"
	"encoding/binary"
	"math"

	"github.com/go-logr/logr"
	"github.com/rwcarlsen/benchtools/internal/logging"
)

// Fitness holds the objective values of an evaluated individual, one per
// objective.
type Fitness []float64

// Individual is a candidate solution: a decision vector plus its fitness.
type Individual struct {
	pos     []float64
	Fitness Fitness
}

// NewIndividual returns an individual holding a copy of pos.
func NewIndividual(pos []float64, fitness ...float64) Individual {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	var fit Fitness
	if len(fitness) > 0 {
		fit = append(Fitness{}, fitness...)
	}
	return Individual{pos: cpos, Fitness: fit}
}

func (ind Individual) At(i int) float64 { return ind.pos[i] }

func (ind Individual) Len() int { return len(ind.pos) }

// Pos returns a copy of the decision vector.
func (ind Individual) Pos() []float64 {
	pos := make([]float64, len(ind.pos))
	copy(pos, ind.pos)
	return pos
}

func hashPos(pos []float64) [sha1.Size]byte {
	data := make([]byte, len(pos)*8)
	for i, x := range pos {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(x))
	}
	return sha1.Sum(data)
}

type Evaluator interface {
	// Evaluate computes the objective values of the decision vector x.  Any
	// extra args are passed through decorators untouched.  Implementations
	// must not modify x.
	Evaluate(x []float64, args ...any) (Fitness, error)
}

// EvalFunc adapts an ordinary function to the Evaluator interface.
type EvalFunc func(x []float64, args ...any) (Fitness, error)

func (fn EvalFunc) Evaluate(x []float64, args ...any) (Fitness, error) { return fn(x, args...) }

// Func adapts a function that cannot fail and takes no extra arguments.
type Func func([]float64) Fitness

func (fn Func) Evaluate(x []float64, args ...any) (Fitness, error) { return fn(x), nil }

type Evaler interface {
	// Eval evaluates each individual using ev and returns copies carrying
	// their fitness along with the number of evaluations n.  Unevaluated
	// individuals are not returned in the results slice.
	Eval(ev Evaluator, inds ...Individual) (results []Individual, n int, err error)
}

type SerialEvaler struct {
	ContinueOnErr bool
}

func (se SerialEvaler) Eval(ev Evaluator, inds ...Individual) (results []Individual, n int, err error) {
	results = make([]Individual, 0, len(inds))
	for _, ind := range inds {
		fit, err := ev.Evaluate(ind.Pos())
		ind.Fitness = fit
		results = append(results, ind)
		if err != nil && !se.ContinueOnErr {
			return results, len(results), err
		}
	}
	return results, len(results), nil
}

// CacheEvaler memoizes fitness values by decision vector so repeated
// individuals are only evaluated once.  It is not safe for concurrent use
// and must not wrap noisy evaluators if repeat samples are wanted.
type CacheEvaler struct {
	ev    Evaler
	cache map[[sha1.Size]byte]Fitness
}

func NewCacheEvaler(ev Evaler) *CacheEvaler {
	if ev == nil {
		ev = SerialEvaler{}
	}
	return &CacheEvaler{
		ev:    ev,
		cache: map[[sha1.Size]byte]Fitness{},
	}
}

func (ce *CacheEvaler) Eval(ev Evaluator, inds ...Individual) (results []Individual, n int, err error) {
	results = make([]Individual, len(inds))
	fromnew := make([]int, 0, len(inds))
	newinds := make([]Individual, 0, len(inds))
	for i, ind := range inds {
		if fit, ok := ce.cache[hashPos(ind.pos)]; ok {
			ind.Fitness = append(Fitness{}, fit...)
		} else {
			fromnew = append(fromnew, i)
			newinds = append(newinds, ind)
		}
		results[i] = ind
	}

	newresults, n, err := ce.ev.Eval(ev, newinds...)
	for i, ind := range newresults {
		results[fromnew[i]] = ind
		if err != nil && i == len(newresults)-1 || ind.Fitness == nil {
			continue // don't remember failed evaluations
		}
		ce.cache[hashPos(ind.pos)] = append(Fitness{}, ind.Fitness...)
	}

	// shrink if an error left trailing individuals unevaluated
	if len(newresults) < len(fromnew) {
		results = results[:fromnew[len(newresults)]]
	}
	return results, n, err
}

// LogEvaluator logs every evaluation made through it.
type LogEvaluator struct {
	Evaluator
	Log   logr.Logger
	Count int
}

// NewLogEvaluator wraps ev with the root logger.
func NewLogEvaluator(ev Evaluator) *LogEvaluator {
	return &LogEvaluator{Evaluator: ev, Log: logging.Log().WithName("eval")}
}

func (le *LogEvaluator) Evaluate(x []float64, args ...any) (Fitness, error) {
	fit, err := le.Evaluator.Evaluate(x, args...)

	le.Count++
	if err != nil {
		le.Log.Error(err, "evaluation failed", "count", le.Count, "x", logging.Floats(x))
	} else {
		le.Log.V(1).Info("evaluated", "count", le.Count, "x", logging.Floats(x), "fitness", logging.Floats(fit))
	}
	return fit, err
}
