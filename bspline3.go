package curve

import (
	"github.com/golang/geo/r3"

	"github.com/stepgeom/curve/internal/bspline"
)

// BSplineCurve3D is a non-rational cubic B-spline curve in space, as
// produced by [Approximation3D]. It follows the conventions of
// [BSplineCurve].
type BSplineCurve3D struct {
	c *bspline.Curve
}

func vectorCoords(v r3.Vector) []float64 { return []float64{v.X, v.Y, v.Z} }

func vectorOf(c []float64) r3.Vector { return r3.Vector{X: c[0], Y: c[1], Z: c[2]} }

func vectorsCoords(vs []r3.Vector) [][]float64 {
	out := make([][]float64, len(vs))
	for i, v := range vs {
		out[i] = vectorCoords(v)
	}
	return out
}

// Eval returns the point at parameter t.
func (b BSplineCurve3D) Eval(t float64) r3.Vector {
	return vectorOf(b.c.Eval(t))
}

// Deriv returns the order-th derivative at t.
func (b BSplineCurve3D) Deriv(t float64, order int) r3.Vector {
	if order < 0 {
		panic("curve: negative derivative order")
	}
	return vectorOf(b.c.Derivs(t, order)[order])
}

// Curvature returns the curvature |C' × C''| / |C'|³ at t. It is 0 where
// the curve has no well-defined tangent.
func (b BSplineCurve3D) Curvature(t float64) float64 {
	d := b.c.Derivs(t, 2)
	d1, d2 := vectorOf(d[1]), vectorOf(d[2])
	speed := d1.Norm()
	if speed == 0 {
		return 0
	}
	return d1.Cross(d2).Norm() / (speed * speed * speed)
}

func (b BSplineCurve3D) Domain() (lo, hi float64) { return b.c.Knots.Domain() }

func (b BSplineCurve3D) Degree() int { return b.c.Knots.Degree() }

func (b BSplineCurve3D) Closed() bool { return b.c.Knots.Closed() }

func (b BSplineCurve3D) Segments() int { return b.c.Knots.Segments() }

func (b BSplineCurve3D) Breakpoints() []float64 { return b.c.Knots.Breakpoints() }

func (b BSplineCurve3D) Knots() []float64 { return b.c.Knots.Values() }

func (b BSplineCurve3D) Multiplicities() []int { return b.c.Knots.Multiplicities() }

func (b BSplineCurve3D) ExpandedKnots() []float64 { return b.c.Knots.Expanded() }

// ControlPoints returns a copy of the control points.
func (b BSplineCurve3D) ControlPoints() []r3.Vector {
	out := make([]r3.Vector, len(b.c.Ctrl))
	for i, c := range b.c.Ctrl {
		out[i] = vectorOf(c)
	}
	return out
}

// Beziers returns the Bézier control points of every segment.
func (b BSplineCurve3D) Beziers() [][4]r3.Vector {
	out := make([][4]r3.Vector, b.Segments())
	for s := range out {
		cp := b.c.Bezier(s)
		for i := range out[s] {
			out[s][i] = vectorOf(cp[i])
		}
	}
	return out
}
