package fit

import (
	"math/bits"
	"slices"
)

// Trial records one segment count tried by the adaptive search and whether
// the resulting fit stayed within tolerance.
type Trial struct {
	Segments  int
	Tolerated bool
}

// maxDenom bounds the refinement. Once the denominator reaches it a single
// step moves the guess by less than one segment for any realistic sample
// count, so the search is over.
const maxDenom = 1 << 62

// segmentSearch proposes segment counts for the adaptive fit.
//
// The guess is floor(n*numer/denom), starting at 1/2. After every trial both
// numerator and denominator are doubled and the numerator is moved one step
// down (tolerated: try fewer segments) or up (try more). The search stops as
// soon as a guess repeats an earlier trial, which also catches two counts
// flip-flopping between tolerated and not tolerated.
type segmentSearch struct {
	n      int
	min    int
	max    int
	rawMax int

	numer, denom uint64
	current      int
	trials       []Trial
}

func newSegmentSearch(n, degree int, closed bool) *segmentSearch {
	s := &segmentSearch{n: n, numer: 1, denom: 2}
	if closed {
		s.min = degree + 1
		s.rawMax = n
	} else {
		s.min = 1
		s.rawMax = n - degree
	}
	s.max = max(s.rawMax, s.min)
	return s
}

// bounds returns the valid range of segment counts.
func (s *segmentSearch) bounds() (lo, hi int) {
	return s.min, s.max
}

func (s *segmentSearch) guess() int {
	hi, lo := bits.Mul64(uint64(s.n), s.numer)
	// numer < denom, so the quotient is below n and cannot overflow
	q, _ := bits.Div64(hi, lo, s.denom)
	return min(max(int(q), s.min), s.max)
}

// start returns the first segment count to try. It reports false when there
// are too few points for even the smallest valid fit.
func (s *segmentSearch) start() (int, bool) {
	nseg := s.guess()
	if nseg > s.rawMax {
		return -1, false
	}
	s.current = nseg
	return nseg, true
}

// next records the verdict for the current segment count and returns the
// next one to try, or false when the search is over.
func (s *segmentSearch) next(tolerated bool) (int, bool) {
	s.trials = append(s.trials, Trial{Segments: s.current, Tolerated: tolerated})
	if s.denom >= maxDenom {
		return -1, false
	}
	s.numer *= 2
	s.denom *= 2
	if tolerated {
		s.numer--
	} else {
		s.numer++
	}
	nseg := s.guess()
	if s.tried(nseg) {
		return -1, false
	}
	s.current = nseg
	return nseg, true
}

func (s *segmentSearch) tried(nseg int) bool {
	return slices.ContainsFunc(s.trials, func(t Trial) bool { return t.Segments == nseg })
}
