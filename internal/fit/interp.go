package fit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/stepgeom/curve/internal/bspline"
)

// withEndConditions extends the N×(N+2) interpolation matrix of an open
// curve with two rows prescribing the first derivative at both ends, making
// it square.
func (e *Engine) withEndConditions(k *bspline.Knots, a *mat.Dense, channels [][]float64) (*mat.Dense, [][]float64) {
	n, cols := a.Dims()
	sq := mat.NewDense(n+2, cols, nil)
	sq.Slice(0, n, 0, cols).(*mat.Dense).Copy(a)

	first, last := e.domain()
	for i, t := range []float64{first, last} {
		seg, ders := k.DerivBasisFuncs(t, 1)
		for j, b := range ders[1] {
			col := k.ControlIndex(seg, j)
			sq.Set(n+i, col, sq.At(n+i, col)+b)
		}
	}
	for ch := range channels {
		channels[ch] = append(channels[ch], e.start[ch], e.end[ch])
	}
	return sq, channels
}
