package transform

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/go-logr/logr/testr"
	"github.com/rwcarlsen/benchtools"
	"github.com/rwcarlsen/benchtools/linalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-10

// recorder returns the sum and the first element of x as two objectives
// and remembers the last vector and args it was called with.
type recorder struct {
	x     []float64
	args  []any
	count int
}

func (r *recorder) Evaluate(x []float64, args ...any) (benchtools.Fitness, error) {
	r.x = append([]float64{}, x...)
	r.args = args
	r.count++
	return direct(x), nil
}

func direct(x []float64) benchtools.Fitness {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return benchtools.Fitness{sum, x[0]}
}

var testVecs = [][]float64{
	{0, 0, 0},
	{1, 2, 3},
	{-4.5, 0.25, 100},
}

func TestTranslate(t *testing.T) {
	rec := &recorder{}
	v := []float64{0.25, -1, 3}
	tr := NewTranslate(rec, v, Logger(testr.New(t)))

	for _, x := range testVecs {
		xcopy := append([]float64{}, x...)
		got, err := tr.Evaluate(x, "extra", 7)
		require.NoError(t, err)

		want := make([]float64, len(x))
		for i := range x {
			want[i] = x[i] - v[i]
		}
		assert.InDeltaSlice(t, want, rec.x, tol)
		assert.InDeltaSlice(t, direct(want), got, tol)
		assert.Equal(t, []any{"extra", 7}, rec.args)
		assert.Equal(t, xcopy, x, "individual must not be modified")
	}
}

func TestTranslateZeroIsIdentity(t *testing.T) {
	tr := NewTranslate(&recorder{}, []float64{5, 5, 5})
	require.NoError(t, tr.Set([]float64{0, 0, 0}))
	for _, x := range testVecs {
		got, err := tr.Evaluate(x)
		require.NoError(t, err)
		assert.Equal(t, direct(x), got)
	}
	assert.Equal(t, []float64{0, 0, 0}, tr.Vector())
}

func TestTranslateDimension(t *testing.T) {
	rec := &recorder{}
	tr := NewTranslate(rec, []float64{1, 2})
	_, err := tr.Evaluate([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimension)
	assert.Zero(t, rec.count, "wrapped evaluator must not run")
}

func TestTranslateSetCopies(t *testing.T) {
	v := []float64{1, 1}
	tr := NewTranslate(&recorder{}, v)
	v[0] = 100
	got, err := tr.Evaluate([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, benchtools.Fitness{0, 0}, got)
}

func TestScale(t *testing.T) {
	rec := &recorder{}
	k := []float64{2, 0.5, -4}
	sc, err := NewScale(rec, k)
	require.NoError(t, err)
	assert.InDeltaSlice(t, k, sc.Factor(), tol)

	for _, x := range testVecs {
		got, err := sc.Evaluate(x)
		require.NoError(t, err)

		want := make([]float64, len(x))
		for i := range x {
			want[i] = x[i] / k[i]
		}
		assert.InDeltaSlice(t, want, rec.x, tol)
		assert.InDeltaSlice(t, direct(want), got, tol)
	}

	require.NoError(t, sc.Set([]float64{1, 1, 1}))
	for _, x := range testVecs {
		got, err := sc.Evaluate(x)
		require.NoError(t, err)
		assert.Equal(t, direct(x), got)
	}
}

func TestScaleZeroFactor(t *testing.T) {
	_, err := NewScale(&recorder{}, []float64{1, 0})
	assert.ErrorIs(t, err, ErrZeroFactor)

	sc, err := NewScale(&recorder{}, []float64{2, 2})
	require.NoError(t, err)
	assert.ErrorIs(t, sc.Set([]float64{0, 1}), ErrZeroFactor)
	assert.Equal(t, []float64{2, 2}, sc.Factor(), "failed Set must keep previous factors")
}

func TestScaleDimension(t *testing.T) {
	sc, err := NewScale(&recorder{}, []float64{2, 2})
	require.NoError(t, err)
	_, err = sc.Evaluate([]float64{1})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestRotate(t *testing.T) {
	n := 3
	q := linalg.RandomOrthogonal(n, rand.NewPCG(1, 2))
	rec := &recorder{}
	rot, err := NewRotate(linalg.Default, q, rec)
	require.NoError(t, err)

	for _, x := range testVecs {
		got, err := rot.Evaluate(x, "arg")
		require.NoError(t, err)

		// Q is orthogonal so its inverse is its transpose.
		want := mat.NewVecDense(n, nil)
		want.MulVec(q.T(), mat.NewVecDense(n, append([]float64{}, x...)))
		assert.InDeltaSlice(t, want.RawVector().Data, rec.x, tol)
		assert.InDeltaSlice(t, direct(want.RawVector().Data), got, tol)
		assert.Equal(t, []any{"arg"}, rec.args)
	}

	// rotating the rotated point back lands on the original vector
	x := []float64{1, 2, 3}
	qx := linalg.Gonum{}.MulVec(q, x)
	_, err = rot.Evaluate(qx)
	require.NoError(t, err)
	assert.InDeltaSlice(t, x, rec.x, tol)
}

func TestRotateResetToIdentity(t *testing.T) {
	rot, err := NewRotate(linalg.Default, linalg.RandomOrthogonal(3, rand.NewPCG(3, 4)), &recorder{})
	require.NoError(t, err)
	require.NoError(t, rot.Set(linalg.Eye(3)))
	for _, x := range testVecs {
		got, err := rot.Evaluate(x)
		require.NoError(t, err)
		assert.InDeltaSlice(t, direct(x), got, tol)
	}
}

func TestRotateErrors(t *testing.T) {
	_, err := NewRotate(nil, linalg.Eye(2), &recorder{})
	assert.ErrorIs(t, err, ErrNoBackend)

	_, err = NewRotate(linalg.Default, mat.NewDense(2, 3, nil), &recorder{})
	assert.ErrorIs(t, err, ErrDimension)

	_, err = NewRotate(linalg.Default, mat.NewDense(2, 2, []float64{1, 1, 1, 1}), &recorder{})
	assert.Error(t, err)

	rot, err := NewRotate(linalg.Default, linalg.Eye(2), &recorder{})
	require.NoError(t, err)
	_, err = rot.Evaluate([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimension)

	// failed Set keeps the previous rotation
	assert.Error(t, rot.Set(mat.NewDense(3, 2, nil)))
	got, err := rot.Evaluate([]float64{1, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 1}, got, tol)
}

func TestNoiseConstant(t *testing.T) {
	x := []float64{1, 2, 3}
	nz := NewNoise(PerObjective(Constant(0.5), Constant(-2)), &recorder{})
	got, err := nz.Evaluate(x)
	require.NoError(t, err)
	assert.Equal(t, benchtools.Fitness{6.5, -1}, got)

	require.NoError(t, nz.Set(Single(Constant(1))))
	got, err = nz.Evaluate(x)
	require.NoError(t, err)
	assert.Equal(t, benchtools.Fitness{7, 2}, got)

	require.NoError(t, nz.Set(PerObjective(nil, Constant(3))))
	got, err = nz.Evaluate(x)
	require.NoError(t, err)
	assert.Equal(t, benchtools.Fitness{6, 4}, got)
}

func TestNoiseNone(t *testing.T) {
	for _, spec := range []NoiseSpec{NoNoise(), Single(nil), {}} {
		nz := NewNoise(spec, &recorder{})
		for _, x := range testVecs {
			got, err := nz.Evaluate(x)
			require.NoError(t, err)
			assert.Equal(t, direct(x), got)
		}
	}
}

func TestNoiseCallsEveryTime(t *testing.T) {
	calls := 0
	fn := func() float64 {
		calls++
		return 0
	}
	nz := NewNoise(Single(fn), &recorder{})
	for i := 0; i < 3; i++ {
		_, err := nz.Evaluate([]float64{1})
		require.NoError(t, err)
	}
	assert.Equal(t, 6, calls, "one call per objective per evaluation")
}

func TestNoiseDimension(t *testing.T) {
	nz := NewNoise(PerObjective(Constant(1)), &recorder{})
	_, err := nz.Evaluate([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestNoiseGaussianSeeded(t *testing.T) {
	a := NewNoise(Single(Gaussian(0, 1, rand.NewPCG(9, 9))), &recorder{})
	b := NewNoise(Single(Gaussian(0, 1, rand.NewPCG(9, 9))), &recorder{})
	x := []float64{1, 2}
	for i := 0; i < 5; i++ {
		ga, err := a.Evaluate(x)
		require.NoError(t, err)
		gb, err := b.Evaluate(x)
		require.NoError(t, err)
		assert.Equal(t, ga, gb)
		assert.NotEqual(t, direct(x), ga)
	}
}

func TestNoiseUniformRange(t *testing.T) {
	nz := NewNoise(Single(Uniform(-0.1, 0.1, rand.NewPCG(5, 6))), &recorder{})
	x := []float64{1, 2}
	for i := 0; i < 100; i++ {
		got, err := nz.Evaluate(x)
		require.NoError(t, err)
		for j, r := range direct(x) {
			assert.InDelta(t, r, got[j], 0.1)
		}
	}
}

func TestNoisePropagatesErrors(t *testing.T) {
	fail := errors.New("boom")
	ev := benchtools.EvalFunc(func(x []float64, args ...any) (benchtools.Fitness, error) {
		return nil, fail
	})
	_, err := NewNoise(Single(Constant(1)), ev).Evaluate([]float64{1})
	assert.ErrorIs(t, err, fail)
}

func TestStacked(t *testing.T) {
	rec := &recorder{}
	sc, err := NewScale(rec, []float64{2, 2, 2})
	require.NoError(t, err)
	tr := NewTranslate(sc, []float64{1, 1, 1})
	nz := NewNoise(Single(Constant(10)), tr)

	got, err := nz.Evaluate([]float64{3, 5, 7})
	require.NoError(t, err)
	// translate first, then scale: (x - 1) / 2
	assert.InDeltaSlice(t, []float64{1, 2, 3}, rec.x, tol)
	assert.InDeltaSlice(t, []float64{16, 11}, got, tol)

	// the outer evaluator keeps its identity while inner parameters change
	require.NoError(t, tr.Set([]float64{0, 0, 0}))
	require.NoError(t, sc.Set([]float64{1, 1, 1}))
	require.NoError(t, nz.Set(NoNoise()))
	got, err = nz.Evaluate([]float64{3, 5, 7})
	require.NoError(t, err)
	assert.Equal(t, direct([]float64{3, 5, 7}), got)
}

func TestLoggerOption(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})

	tr := NewTranslate(&recorder{}, []float64{1}, Logger(log))
	require.NoError(t, tr.Set([]float64{2}))
	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[1], "translate"), lines[1])
	assert.True(t, strings.Contains(lines[1], "translation set"), lines[1])
}
