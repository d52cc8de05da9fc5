// Package linalg provides the linear algebra capability needed by the
// rotation transform, with an implementation on top of gonum.
package linalg

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Backend is the matrix support a rotation needs.
type Backend interface {
	// Inverse returns the inverse of the square matrix a.
	Inverse(a mat.Matrix) (mat.Matrix, error)
	// MulVec returns the matrix-vector product a*x.
	MulVec(a mat.Matrix, x []float64) []float64
}

// Gonum is a Backend using gonum's dense matrices.
type Gonum struct{}

// Default is the backend used when callers have no preference.
var Default Backend = Gonum{}

func (Gonum) Inverse(a mat.Matrix) (mat.Matrix, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("linalg: cannot invert %vx%v matrix", r, c)
	}
	inv := &mat.Dense{}
	if err := inv.Inverse(a); err != nil {
		return nil, err
	}
	return inv, nil
}

func (Gonum) MulVec(a mat.Matrix, x []float64) []float64 {
	r, _ := a.Dims()
	v := mat.NewVecDense(r, nil)
	v.MulVec(a, mat.NewVecDense(len(x), append([]float64{}, x...)))
	return v.RawVector().Data
}

// Eye returns the n by n identity matrix.
func Eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// RandomOrthogonal returns a random n by n orthogonal matrix taken from the
// QR decomposition of a matrix with uniform random entries.
func RandomOrthogonal(n int, src rand.Source) *mat.Dense {
	rng := rand.New(src)
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()
	}

	var qr mat.QR
	qr.Factorize(mat.NewDense(n, n, data))
	q := &mat.Dense{}
	qr.QTo(q)
	return q
}

// IsOrthogonal reports whether q is square and q*q^T equals the identity
// within tol.
func IsOrthogonal(q mat.Matrix, tol float64) bool {
	r, c := q.Dims()
	if r != c {
		return false
	}
	prod := &mat.Dense{}
	prod.Mul(q, q.T())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(prod.At(i, j)-want) > tol {
				return false
			}
		}
	}
	return true
}
