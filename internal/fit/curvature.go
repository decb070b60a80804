package fit

import (
	"slices"

	"github.com/stepgeom/curve/internal/bspline"
)

// curvatureProfile holds the curvature of the interpolating curve at every
// sample, restricted to the samples that may become interior breakpoints.
type curvatureProfile struct {
	values       []float64
	sorted       []float64
	lower, upper int
}

// newCurvatureProfile samples c at params[lower..upper]. The first two
// samples and the last two (three for open curves) are never candidates, so
// their entries stay zero.
func newCurvatureProfile(c *bspline.Curve, params []float64, closed bool, eps float64) curvatureProfile {
	n := len(params)
	if closed {
		// params carries the closing parameter as its last entry
		n--
	}
	p := curvatureProfile{values: make([]float64, n), lower: 2}
	if closed {
		p.upper = n - 2
	} else {
		p.upper = n - 3
	}
	if p.upper < p.lower {
		return p
	}
	for i := p.lower; i <= p.upper; i++ {
		p.values[i] = c.Curvature(params[i], eps)
	}
	p.sorted = slices.Clone(p.values[p.lower : p.upper+1])
	slices.Sort(p.sorted)
	return p
}

// breakpoints returns the segment boundaries for nseg segments from start
// to end.
func (p curvatureProfile) breakpoints(nseg int, params []float64, end float64) ([]float64, bool) {
	return bspline.SelectBreakpoints(nseg, params, p.values, p.sorted, p.lower, p.upper, end)
}
