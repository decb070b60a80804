package fit

import (
	"gonum.org/v1/gonum/floats"

	"github.com/stepgeom/curve/internal/bspline"
)

// Residuals returns the distance between every sample and c evaluated at
// the sample's parameter.
func (e *Engine) Residuals(c *bspline.Curve) []float64 {
	out := make([]float64, len(e.points))
	for i, t := range e.samples() {
		out[i] = floats.Distance(e.points[i], c.Eval(t), 2)
	}
	return out
}

// MidpointDeviations returns, for every pair of consecutive samples, the
// distance between the midpoint of their chord and c evaluated at the mean
// of their parameters. Closed curves include the pair closing the loop.
func (e *Engine) MidpointDeviations(c *bspline.Curve) []float64 {
	n := len(e.points)
	pairs := n - 1
	if e.closed {
		pairs = n
	}
	out := make([]float64, pairs)
	mid := make([]float64, len(e.points[0]))
	for i := range pairs {
		p, q := e.points[i], e.points[(i+1)%n]
		floats.AddTo(mid, p, q)
		floats.Scale(0.5, mid)
		t := (e.params[i] + e.params[i+1]) / 2
		out[i] = floats.Distance(mid, c.Eval(t), 2)
	}
	return out
}

// tolerated reports whether every residual is within dtol and every chord
// midpoint within midtol.
func (e *Engine) tolerated(c *bspline.Curve, dtol, midtol float64) bool {
	for _, r := range e.Residuals(c) {
		if r > dtol {
			return false
		}
	}
	for _, d := range e.MidpointDeviations(c) {
		if d > midtol {
			return false
		}
	}
	return true
}
