package curve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

// cubicSamples samples x = 0.4t, y = 0.2t - 0.35t² + 0.15t³ at t = i/8. The
// end derivatives are ⟨0.4, 0.2⟩ and ⟨0.4, -0.05⟩.
func cubicSamples() ([]Point, []float64) {
	params := make([]float64, 9)
	pts := make([]Point, 9)
	for i := range params {
		t := float64(i) / 8
		params[i] = t
		pts[i] = Pt(0.4*t, 0.2*t-0.35*t*t+0.15*t*t*t)
	}
	return pts, params
}

func sineSamples(n int) ([]Point, []float64) {
	params := make([]float64, n)
	pts := make([]Point, n)
	for i := range params {
		t := float64(i) / float64(n-1)
		params[i] = t
		pts[i] = Pt(t, 0.3*math.Sin(2*math.Pi*t))
	}
	return pts, params
}

func checkBelow(t *testing.T, values []float64, limit float64) {
	t.Helper()
	for i, v := range values {
		if v > limit {
			t.Errorf("value %d is %g, want at most %g", i, v, limit)
		}
	}
}
