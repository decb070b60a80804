package curve

import "math"

// Circle is a circle in the plane.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether pt lies inside the circle or on it.
func (c Circle) Contains(pt Point) bool {
	return pt.Distance(c.Center) <= math.Abs(c.Radius)
}

// Translate returns the circle moved by v.
func (c Circle) Translate(v Vec2) Circle {
	return Circle{
		Center: c.Center.Translate(v),
		Radius: c.Radius,
	}
}

// Samples returns n points evenly spaced around the circle, starting at
// angle 0 and running counterclockwise in a y-up frame, together with the
// n+1 uniform parameters over [0, 1] that a closed approximation of them
// expects.
func (c Circle) Samples(n int) ([]Point, []float64) {
	if n <= 0 {
		return nil, nil
	}
	pts := make([]Point, n)
	params := make([]float64, n+1)
	for i := range pts {
		pts[i] = pointOnCircle(c.Center, c.Radius, 2*math.Pi*float64(i)/float64(n))
	}
	for i := range params {
		params[i] = float64(i) / float64(n)
	}
	return pts, params
}

func pointOnCircle(center Point, radius float64, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: center.X + cos*radius,
		Y: center.Y + sin*radius,
	}
}
