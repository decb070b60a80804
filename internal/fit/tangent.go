package fit

import "gonum.org/v1/gonum/floats"

// besselTangents estimates the derivatives at both ends of an open sample
// sequence. Each end gets the derivative of the quadratic through the three
// nearest samples at their parameters; with only two samples both ends get
// the chord slope.
func besselTangents(points [][]float64, params []float64) (start, end []float64) {
	n := len(points)
	if n == 2 {
		d := chordSlope(points[0], points[1], params[0], params[1])
		return d, append([]float64(nil), d...)
	}
	start = quadTangent(points[0], points[1], points[2], params[0], params[1], params[2], false)
	end = quadTangent(points[n-3], points[n-2], points[n-1], params[n-3], params[n-2], params[n-1], true)
	return start, end
}

func chordSlope(p0, p1 []float64, t0, t1 float64) []float64 {
	d := make([]float64, len(p0))
	floats.SubTo(d, p1, p0)
	floats.Scale(1/(t1-t0), d)
	return d
}

// quadTangent fits a quadratic Bézier p0, c, p2 through p0, p1, p2 with p1
// at the relative parameter r = (t1-t0)/(t2-t0), and returns its derivative
// with respect to t at p0, or at p2 when atEnd is set.
func quadTangent(p0, p1, p2 []float64, t0, t1, t2 float64, atEnd bool) []float64 {
	span := t2 - t0
	r := (t1 - t0) / span
	s := 1 - r
	c := make([]float64, len(p0))
	for i := range c {
		c[i] = (p1[i] - s*s*p0[i] - r*r*p2[i]) / (2 * r * s)
	}
	d := make([]float64, len(p0))
	if atEnd {
		floats.SubTo(d, p2, c)
	} else {
		floats.SubTo(d, c, p0)
	}
	floats.Scale(2/span, d)
	return d
}
