package curve

import (
	"github.com/golang/geo/r3"
)

// Approximation3D is the spatial counterpart of [Approximation2D].
type Approximation3D struct {
	approximation
}

// NewApproximation3D validates the samples and prepares them for fitting.
// See [NewApproximation2D] for the rules; end tangents are given with
// [WithEndTangents3D].
func NewApproximation3D(points []r3.Vector, params []float64, opts ...Option) (*Approximation3D, error) {
	a, err := newApproximation(vectorsCoords(points), params, opts)
	if err != nil {
		return nil, err
	}
	return &Approximation3D{a}, nil
}

func (a *Approximation3D) FitWithKnots(nseg int, breakpoints []float64) (BSplineCurve3D, error) {
	c, err := a.eng.FitWithKnots(nseg, breakpoints)
	if err != nil {
		return BSplineCurve3D{}, err
	}
	return BSplineCurve3D{c}, nil
}

func (a *Approximation3D) FitWithTolerance(dtol, midtol float64) (BSplineCurve3D, error) {
	c, err := a.fitWithTolerance(dtol, midtol)
	if err != nil {
		return BSplineCurve3D{}, err
	}
	return BSplineCurve3D{c}, nil
}

func (a *Approximation3D) Interpolate() (BSplineCurve3D, error) {
	c, err := a.eng.Interpolate()
	if err != nil {
		return BSplineCurve3D{}, err
	}
	return BSplineCurve3D{c}, nil
}

// EndTangents returns the end derivatives of an open curve. ok is false for
// closed curves.
func (a *Approximation3D) EndTangents() (t0, t1 r3.Vector, ok bool) {
	s, e := a.eng.EndTangents()
	if s == nil {
		return r3.Vector{}, r3.Vector{}, false
	}
	return vectorOf(s), vectorOf(e), true
}

func (a *Approximation3D) Residuals(c BSplineCurve3D) []float64 {
	return a.eng.Residuals(c.c)
}
