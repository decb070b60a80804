package fit

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentSearchStart(t *testing.T) {
	tests := []struct {
		n      int
		closed bool
		want   int
		ok     bool
	}{
		{2, false, -1, false},
		{3, false, -1, false},
		{4, false, 1, true},
		{9, false, 4, true},
		{40, false, 20, true},
		{3, true, -1, false},
		{4, true, 4, true},
		{6, true, 4, true},
		{8, true, 4, true},
		{20, true, 10, true},
	}
	for _, tt := range tests {
		s := newSegmentSearch(tt.n, Degree, tt.closed)
		got, ok := s.start()
		assert.Equal(t, tt.ok, ok, "n=%d closed=%v", tt.n, tt.closed)
		assert.Equal(t, tt.want, got, "n=%d closed=%v", tt.n, tt.closed)

		lo, hi := s.bounds()
		assert.LessOrEqual(t, lo, hi)
	}
}

func runSearch(n int, closed bool, verdict func(nseg int) bool) []Trial {
	s := newSegmentSearch(n, Degree, closed)
	nseg, ok := s.start()
	for ok {
		nseg, ok = s.next(verdict(nseg))
	}
	return s.trials
}

func TestSegmentSearchPaths(t *testing.T) {
	always := func(int) bool { return true }
	never := func(int) bool { return false }

	assert.Equal(t, []Trial{{4, true}, {2, true}, {1, true}}, runSearch(9, false, always))
	assert.Equal(t, []Trial{{4, false}, {6, false}}, runSearch(9, false, never))
	assert.Equal(t, []Trial{{4, true}}, runSearch(8, true, always))

	// tolerated from three segments upwards
	atLeast3 := func(nseg int) bool { return nseg >= 3 }
	assert.Equal(t, []Trial{{4, true}, {2, false}, {3, true}}, runSearch(9, false, atLeast3))
}

func TestSegmentSearchTerminates(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, closed := range []bool{false, true} {
		for n := 2; n <= 120; n++ {
			s := newSegmentSearch(n, Degree, closed)
			lo, hi := s.bounds()
			verdicts := []func(int) bool{
				func(int) bool { return true },
				func(int) bool { return false },
				func(nseg int) bool { return nseg >= n/3 },
				func(nseg int) bool { return nseg%2 == 0 },
				func(int) bool { return rng.IntN(2) == 0 },
			}
			for _, v := range verdicts {
				trials := runSearch(n, closed, v)
				require.LessOrEqual(t, len(trials), hi-lo+1, "n=%d closed=%v", n, closed)
				seen := map[int]bool{}
				for _, tr := range trials {
					assert.False(t, seen[tr.Segments], "n=%d closed=%v repeated %d", n, closed, tr.Segments)
					seen[tr.Segments] = true
					assert.GreaterOrEqual(t, tr.Segments, lo)
					assert.LessOrEqual(t, tr.Segments, hi)
				}
			}
		}
	}
}

func TestSegmentSearchDenominatorLimit(t *testing.T) {
	s := newSegmentSearch(1000, Degree, false)
	_, ok := s.start()
	require.True(t, ok)
	s.numer, s.denom = 1, maxDenom
	_, ok = s.next(true)
	assert.False(t, ok)
	assert.Len(t, s.trials, 1)
}
