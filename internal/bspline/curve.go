package bspline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Curve is a non-rational B-spline curve in any number of dimensions.
type Curve struct {
	Knots *Knots
	// Ctrl holds one control point per row; all rows have the same length.
	Ctrl [][]float64
}

// NewCurve pairs a knot vector with control points, checking that the
// counts agree.
func NewCurve(k *Knots, ctrl [][]float64) (*Curve, error) {
	if len(ctrl) != k.ControlPoints() {
		return nil, fmt.Errorf("%w: %d control points for a knot vector expecting %d",
			ErrKnots, len(ctrl), k.ControlPoints())
	}
	if len(ctrl) == 0 {
		return nil, fmt.Errorf("%w: no control points", ErrKnots)
	}
	dim := len(ctrl[0])
	for i, p := range ctrl {
		if len(p) != dim {
			return nil, fmt.Errorf("bspline: control point %d has %d coordinates, want %d", i, len(p), dim)
		}
	}
	return &Curve{Knots: k, Ctrl: ctrl}, nil
}

// Dim returns the number of coordinates per point.
func (c *Curve) Dim() int { return len(c.Ctrl[0]) }

// Eval returns the point at parameter t.
func (c *Curve) Eval(t float64) []float64 {
	seg, n := c.Knots.BasisFuncs(t)
	out := make([]float64, c.Dim())
	for j, b := range n {
		floats.AddScaled(out, b, c.Ctrl[c.Knots.ControlIndex(seg, j)])
	}
	return out
}

// Derivs returns the point at t and its derivatives up to order nd.
func (c *Curve) Derivs(t float64, nd int) [][]float64 {
	seg, ders := c.Knots.DerivBasisFuncs(t, nd)
	out := grid(nd+1, c.Dim())
	for i := range ders {
		for j, b := range ders[i] {
			floats.AddScaled(out[i], b, c.Ctrl[c.Knots.ControlIndex(seg, j)])
		}
	}
	return out
}

// Curvature returns the magnitude of the curvature at t,
// |C' × C''| / |C'|³, computed from the Gram determinant so that it works in
// any dimension. Where |C'| is at most eps the curvature is reported as 0.
func (c *Curve) Curvature(t, eps float64) float64 {
	d := c.Derivs(t, 2)
	d1, d2 := d[1], d[2]
	s11 := floats.Dot(d1, d1)
	speed := math.Sqrt(s11)
	if speed <= eps {
		return 0
	}
	s22 := floats.Dot(d2, d2)
	s12 := floats.Dot(d1, d2)
	cross2 := s11*s22 - s12*s12
	if cross2 < 0 {
		// rounding on nearly collinear derivatives
		cross2 = 0
	}
	return math.Sqrt(cross2) / (speed * speed * speed)
}

// Blossom evaluates the polar form of segment seg at the degree arguments
// in args, using de Boor's algorithm with one argument per level.
func (c *Curve) Blossom(seg int, args []float64) []float64 {
	p := c.Knots.degree
	u := c.Knots.flat
	span := seg + p
	pts := make([][]float64, p+1)
	for j := range pts {
		pts[j] = append([]float64(nil), c.Ctrl[c.Knots.ControlIndex(seg, j)]...)
	}
	for r := 1; r <= p; r++ {
		x := args[r-1]
		for j := p; j >= r; j-- {
			i := span - p + j
			alpha := (x - u[i]) / (u[i+p+1-r] - u[i])
			for l := range pts[j] {
				pts[j][l] = (1-alpha)*pts[j-1][l] + alpha*pts[j][l]
			}
		}
	}
	return pts[p]
}

// Bezier returns the Bézier control points of segment seg.
func (c *Curve) Bezier(seg int) [][]float64 {
	p := c.Knots.degree
	a, b := c.Knots.flat[seg+p], c.Knots.flat[seg+p+1]
	out := make([][]float64, p+1)
	args := make([]float64, p)
	for i := range out {
		for r := range args {
			if r < p-i {
				args[r] = a
			} else {
				args[r] = b
			}
		}
		out[i] = c.Blossom(seg, args)
	}
	return out
}
