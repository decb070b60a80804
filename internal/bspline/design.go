package bspline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrIllConditioned is returned when a linear system is singular or too
// badly conditioned to trust its solution.
var ErrIllConditioned = errors.New("bspline: ill-conditioned system")

// DesignMatrix returns the len(params)×ncp matrix of basis function values:
// row i holds the basis functions evaluated at params[i]. Only the
// degree+1 columns of the segment containing params[i] are nonzero; for
// closed knots they wrap around modulo ncp.
func DesignMatrix(k *Knots, params []float64) *mat.Dense {
	a := mat.NewDense(len(params), k.ControlPoints(), nil)
	for i, t := range params {
		seg, n := k.BasisFuncs(t)
		for j, b := range n {
			col := k.ControlIndex(seg, j)
			// closed curves with nseg == degree visit a column twice
			a.Set(i, col, a.At(i, col)+b)
		}
	}
	return a
}

// SolveLeastSquares solves min ‖a·x − b‖ for every right-hand side in
// channels, one coordinate channel at a time, and returns the solutions as
// rows of control points. a must have at least as many rows as columns.
func SolveLeastSquares(a *mat.Dense, channels [][]float64) ([][]float64, error) {
	r, c := a.Dims()
	if r < c {
		return nil, fmt.Errorf("bspline: underdetermined system %d×%d", r, c)
	}
	var qr mat.QR
	qr.Factorize(a)
	return solveChannels(c, channels, func(dst *mat.VecDense, b *mat.VecDense) error {
		return qr.SolveVecTo(dst, false, b)
	})
}

// SolveSquare solves a·x = b for every right-hand side in channels using an
// LU decomposition of the square matrix a.
func SolveSquare(a *mat.Dense, channels [][]float64) ([][]float64, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("bspline: expected square system, got %d×%d", r, c)
	}
	var lu mat.LU
	lu.Factorize(a)
	return solveChannels(c, channels, func(dst *mat.VecDense, b *mat.VecDense) error {
		return lu.SolveVecTo(dst, false, b)
	})
}

func solveChannels(n int, channels [][]float64, solve func(dst, b *mat.VecDense) error) ([][]float64, error) {
	out := grid(n, len(channels))
	for ch, rhs := range channels {
		var x mat.VecDense
		if err := solve(&x, mat.NewVecDense(len(rhs), rhs)); err != nil {
			return nil, fmt.Errorf("%w: channel %d: %v", ErrIllConditioned, ch, err)
		}
		for i := range n {
			out[i][ch] = x.AtVec(i)
		}
	}
	return out, nil
}

// Channels transposes points (one per row) into coordinate channels.
func Channels(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	out := grid(len(points[0]), len(points))
	for i, p := range points {
		for ch, v := range p {
			out[ch][i] = v
		}
	}
	return out
}
