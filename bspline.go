package curve

import (
	"github.com/stepgeom/curve/internal/bspline"
)

// BSplineCurve is a non-rational cubic B-spline curve in the plane, as
// produced by [Approximation2D].
//
// Open curves are clamped: they start at the first control point and end at
// the last. Closed curves are periodic; parameters outside the domain wrap
// around. The zero value is not usable.
type BSplineCurve struct {
	c *bspline.Curve
}

// Eval returns the point at parameter t.
func (b BSplineCurve) Eval(t float64) Point {
	return pointOf(b.c.Eval(t))
}

// Deriv returns the order-th derivative at t. Derivatives above the degree
// are zero.
func (b BSplineCurve) Deriv(t float64, order int) Vec2 {
	if order < 0 {
		panic("curve: negative derivative order")
	}
	d := b.c.Derivs(t, order)[order]
	return Vec2{X: d[0], Y: d[1]}
}

// Curvature returns the signed curvature at t, positive where the curve
// turns counterclockwise in a y-up frame. It is 0 where the curve has no
// well-defined tangent.
func (b BSplineCurve) Curvature(t float64) float64 {
	d := b.c.Derivs(t, 2)
	d1 := Vec2{X: d[1][0], Y: d[1][1]}
	d2 := Vec2{X: d[2][0], Y: d[2][1]}
	speed := d1.Hypot()
	if speed == 0 {
		return 0
	}
	return d1.Cross(d2) / (speed * speed * speed)
}

// Domain returns the parameter range of the curve.
func (b BSplineCurve) Domain() (lo, hi float64) { return b.c.Knots.Domain() }

// Degree returns the polynomial degree, which is always 3 for fitted curves.
func (b BSplineCurve) Degree() int { return b.c.Knots.Degree() }

// Closed reports whether the curve is periodic.
func (b BSplineCurve) Closed() bool { return b.c.Knots.Closed() }

// Segments returns the number of polynomial segments.
func (b BSplineCurve) Segments() int { return b.c.Knots.Segments() }

// Breakpoints returns the parameters bounding the segments.
func (b BSplineCurve) Breakpoints() []float64 { return b.c.Knots.Breakpoints() }

// Knots returns the distinct knot values. For closed curves this includes
// the Degree wrap-around knots on either side of the domain.
func (b BSplineCurve) Knots() []float64 { return b.c.Knots.Values() }

// Multiplicities returns the multiplicity of every value in [BSplineCurve.Knots].
func (b BSplineCurve) Multiplicities() []int { return b.c.Knots.Multiplicities() }

// ExpandedKnots returns the knot vector with every knot repeated by its
// multiplicity. It has 2*Degree+Segments+1 entries.
func (b BSplineCurve) ExpandedKnots() []float64 { return b.c.Knots.Expanded() }

// ControlPoints returns a copy of the control points.
func (b BSplineCurve) ControlPoints() []Point {
	out := make([]Point, len(b.c.Ctrl))
	for i, c := range b.c.Ctrl {
		out[i] = pointOf(c)
	}
	return out
}

// Beziers returns the segments of the curve as cubic Bézier segments, in
// parameter order. Segment i covers [Breakpoints()[i], Breakpoints()[i+1]].
func (b BSplineCurve) Beziers() []CubicBez {
	out := make([]CubicBez, b.Segments())
	for s := range out {
		cp := b.c.Bezier(s)
		out[s] = CubicBez{pointOf(cp[0]), pointOf(cp[1]), pointOf(cp[2]), pointOf(cp[3])}
	}
	return out
}

// BezPath returns the curve as a path of cubic Bézier elements, closed for
// closed curves.
func (b BSplineCurve) BezPath() BezPath {
	bez := b.Beziers()
	p := make(BezPath, 0, len(bez)+2)
	p.MoveTo(bez[0].P0)
	for _, c := range bez {
		p.CubicTo(c.P1, c.P2, c.P3)
	}
	if b.Closed() {
		p.ClosePath()
	}
	return p
}

// Transform returns the curve with aff applied. B-splines are affine
// invariant, so this transforms every point of the curve exactly.
func (b BSplineCurve) Transform(aff Affine) BSplineCurve {
	ctrl := make([][]float64, len(b.c.Ctrl))
	for i, c := range b.c.Ctrl {
		ctrl[i] = pointOf(c).Transform(aff).coords()
	}
	return BSplineCurve{c: &bspline.Curve{Knots: b.c.Knots, Ctrl: ctrl}}
}

// ControlBox returns the bounding box of the control points, which contains
// the curve.
func (b BSplineCurve) ControlBox() Rect {
	return BoundingRect(b.ControlPoints()...)
}
