package curve

import (
	"github.com/golang/geo/r3"
)

// Interpolate2D returns the cubic curve through every point. It accepts the
// same options as [NewApproximation2D].
func Interpolate2D(points []Point, params []float64, opts ...Option) (BSplineCurve, error) {
	a, err := NewApproximation2D(points, params, opts...)
	if err != nil {
		return BSplineCurve{}, err
	}
	return a.Interpolate()
}

// Interpolate3D is the spatial counterpart of [Interpolate2D].
func Interpolate3D(points []r3.Vector, params []float64, opts ...Option) (BSplineCurve3D, error) {
	a, err := NewApproximation3D(points, params, opts...)
	if err != nil {
		return BSplineCurve3D{}, err
	}
	return a.Interpolate()
}

// ChordLengthParams returns parameters in [0, 1] proportional to the
// accumulated distance between consecutive points. With closed set the
// closing chord back to the first point is included and the result has
// len(points)+1 entries, as closed approximations expect.
//
// Coincident consecutive points produce repeated parameters, which
// approximations reject.
func ChordLengthParams(points []Point, closed bool) []float64 {
	return chordLength(len(points), closed, func(i, j int) float64 {
		return points[i].Distance(points[j])
	})
}

// ChordLengthParams3D is the spatial counterpart of [ChordLengthParams].
func ChordLengthParams3D(points []r3.Vector, closed bool) []float64 {
	return chordLength(len(points), closed, func(i, j int) float64 {
		return points[i].Distance(points[j])
	})
}

func chordLength(n int, closed bool, dist func(i, j int) float64) []float64 {
	if n == 0 {
		return nil
	}
	m := n
	if closed {
		m++
	}
	out := make([]float64, m)
	for i := 1; i < m; i++ {
		out[i] = out[i-1] + dist(i-1, i%n)
	}
	if total := out[m-1]; total > 0 {
		for i := range out {
			out[i] /= total
		}
		out[m-1] = 1
	}
	return out
}
