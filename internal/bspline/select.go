package bspline

// SelectBreakpoints picks the segment boundaries for a fit with nseg
// segments, placing interior breakpoints at the samples with the highest
// curvature.
//
// curvature is indexed like params. sorted holds curvature[lower:upper+1] in
// ascending order. The threshold is the (nseg-1)-th largest value of that
// range; samples lower..upper are walked in order and every sample at or
// above the threshold contributes its parameter until nseg-1 interior
// breakpoints have been chosen. The result starts with params[0] and ends
// with end.
//
// The second result is false when the range cannot supply exactly nseg-1
// interior breakpoints; callers treat that as a rejected candidate, not as
// an error.
func SelectBreakpoints(nseg int, params, curvature, sorted []float64, lower, upper int, end float64) ([]float64, bool) {
	if nseg < 1 {
		return nil, false
	}
	if nseg == 1 {
		return []float64{params[0], end}, true
	}
	if upper < lower || len(sorted) != upper-lower+1 {
		return nil, false
	}
	rank := (upper - lower) - (nseg - 2)
	if rank < 0 {
		return nil, false
	}
	threshold := sorted[rank]

	out := make([]float64, 1, nseg+1)
	out[0] = params[0]
	for i := lower; i <= upper && len(out) < nseg; i++ {
		if curvature[i] >= threshold {
			out = append(out, params[i])
		}
	}
	if len(out) != nseg {
		return nil, false
	}
	return append(out, end), true
}
