package curve

// CubicBez is a cubic Bézier segment. Every segment of a [BSplineCurve] can
// be written as one; see [BSplineCurve.Beziers].
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// Eval evaluates the segment at t ∈ [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Start() Point { return c.P0 }

func (c CubicBez) End() Point { return c.P3 }

// Subdivide splits the segment into halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Midpoint(c.P1)
	p12 := c.P1.Midpoint(c.P2)
	p23 := c.P2.Midpoint(c.P3)
	p012 := p01.Midpoint(p12)
	p123 := p12.Midpoint(p23)
	pm := p012.Midpoint(p123)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

// Tangents returns the derivatives at the start and end of the segment,
// with respect to the segment's own parameter.
func (c CubicBez) Tangents() (Vec2, Vec2) {
	return c.P1.Sub(c.P0).Mul(3), c.P3.Sub(c.P2).Mul(3)
}

// Transform applies aff to every control point.
func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// ControlBox returns the bounding box of the control points, which contains
// the segment.
func (c CubicBez) ControlBox() Rect {
	return BoundingRect(c.P0, c.P1, c.P2, c.P3)
}
