package fit

import (
	"math"
	"slices"
)

// FitWithTolerance searches for the smallest number of segments whose fit
// keeps every sample within dtol and every chord midpoint within midtol of
// the curve. Breakpoints are placed at the samples of highest curvature of
// the interpolating curve.
//
// Failing to meet the tolerances is not an error: the result is then the
// exact interpolant with Interpolated set. A closed fit whose segment count
// comes within Degree of the sample count is discarded in favour of the
// interpolant, since such fits tend to wind around the samples.
func (e *Engine) FitWithTolerance(dtol, midtol float64) (*Result, error) {
	if math.IsNaN(dtol) || math.IsNaN(midtol) || dtol < 0 || midtol < 0 {
		return nil, invalidf("tolerances must be non-negative, got %g and %g", dtol, midtol)
	}
	interp, err := e.Interpolate()
	if err != nil {
		return nil, err
	}
	fallback := &Result{Curve: interp, Segments: interp.Knots.Segments(), Interpolated: true}

	n := len(e.points)
	search := newSegmentSearch(n, Degree, e.closed)
	nseg, ok := search.start()
	if !ok {
		e.log.Debug("fit: too few points for a reduced fit", "points", n)
		return fallback, nil
	}

	profile := newCurvatureProfile(interp, e.params, e.closed, e.tol.Real())
	_, end := e.domain()
	var best *Result
	for {
		good := false
		if bp, ok := profile.breakpoints(nseg, e.params, end); ok {
			if c, err := e.fit(bp); err == nil {
				good = e.tolerated(c, dtol, midtol)
				if good {
					best = &Result{Curve: c, Segments: nseg}
				}
			} else {
				e.log.Debug("fit: rejected trial", "segments", nseg, "err", err)
			}
		}
		e.log.Debug("fit: trial", "segments", nseg, "tolerated", good)
		if nseg, ok = search.next(good); !ok {
			break
		}
	}

	trials := slices.Clone(search.trials)
	if best != nil && e.closed && best.Segments >= n-Degree {
		e.log.Debug("fit: discarding closed fit close to interpolation",
			"segments", best.Segments, "points", n)
		best = nil
	}
	if best == nil {
		fallback.Trials = trials
		return fallback, nil
	}
	best.Trials = trials
	return best, nil
}
