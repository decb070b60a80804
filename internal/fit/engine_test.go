package fit

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/stepgeom/curve/tolerance"
)

func uniformParams(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

// cubicSamples samples x = 0.4t, y = 0.2t - 0.35t² + 0.15t³ at t = i/8.
// The end derivatives are (0.4, 0.2) and (0.4, -0.05).
func cubicSamples() ([][]float64, []float64) {
	params := uniformParams(9)
	points := make([][]float64, len(params))
	for i, t := range params {
		points[i] = []float64{0.4 * t, 0.2*t - 0.35*t*t + 0.15*t*t*t}
	}
	return points, params
}

func sineSamples(n int) ([][]float64, []float64) {
	params := uniformParams(n)
	points := make([][]float64, n)
	for i, t := range params {
		points[i] = []float64{t, 0.3 * math.Sin(2*math.Pi*t)}
	}
	return points, params
}

// polygon returns n points on the unit circle and n+1 uniform parameters.
func polygon(n int) ([][]float64, []float64) {
	points := make([][]float64, n)
	params := make([]float64, n+1)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(n)
		points[i] = []float64{math.Cos(a), math.Sin(a)}
	}
	for i := range params {
		params[i] = float64(i) / float64(n)
	}
	return points, params
}

func assertAllBelow(t *testing.T, values []float64, limit float64) {
	t.Helper()
	for i, v := range values {
		assert.LessOrEqual(t, v, limit, "index %d", i)
	}
}

func TestNewInvalidArgument(t *testing.T) {
	pts, params := sineSamples(5)
	closedPts, closedParams := polygon(4)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"one open point", Config{Points: pts[:1], Params: params[:1]}},
		{"two closed points", Config{Points: closedPts[:2], Params: []float64{0, 0.5, 1}, Closed: true}},
		{"param count", Config{Points: pts, Params: params[:4]}},
		{"closed param count", Config{Points: closedPts, Params: closedParams[:4], Closed: true}},
		{"ragged points", Config{Points: [][]float64{{0, 0}, {1}}, Params: []float64{0, 1}}},
		{"empty point", Config{Points: [][]float64{{}, {}}, Params: []float64{0, 1}}},
		{"nan point", Config{Points: [][]float64{{0, 0}, {math.NaN(), 1}}, Params: []float64{0, 1}}},
		{"decreasing params", Config{Points: pts[:3], Params: []float64{0, 0.5, 0.4}}},
		{"repeated params", Config{Points: pts[:3], Params: []float64{0, 0.5, 0.5}}},
		{"inf param", Config{Points: pts[:2], Params: []float64{0, math.Inf(1)}}},
		{"one tangent", Config{Points: pts, Params: params, StartTangent: []float64{1, 0}}},
		{"tangent dims", Config{Points: pts, Params: params, StartTangent: []float64{1}, EndTangent: []float64{1}}},
		{"zero tangent", Config{Points: pts, Params: params, StartTangent: []float64{0, 0}, EndTangent: []float64{1, 0}}},
		{"closed tangents", Config{Points: closedPts, Params: closedParams, Closed: true,
			StartTangent: []float64{1, 0}, EndTangent: []float64{1, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	pts, params := sineSamples(5)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)
	pts[0][0] = 42
	params[1] = 0.9
	assert.Equal(t, 0.0, e.points[0][0])
	assert.Equal(t, 0.25, e.params[1])
	assert.Equal(t, tolerance.Default(), e.Tolerance())
}

func TestBesselTangents(t *testing.T) {
	// samples of the parabola (t, t²) at uneven parameters
	params := []float64{0, 0.3, 1}
	points := [][]float64{{0, 0}, {0.3, 0.09}, {1, 1}}
	start, end := besselTangents(points, params)
	assert.InDeltaSlice(t, []float64{1, 0}, start, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 2}, end, 1e-12)

	start, end = besselTangents(points[:2], []float64{0, 0.5})
	assert.InDeltaSlice(t, []float64{0.6, 0.18}, start, 1e-12)
	assert.Equal(t, start, end)
}

func TestEstimatedTangents(t *testing.T) {
	pts, params := sineSamples(9)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)
	start, end := e.EndTangents()
	require.Len(t, start, 2)
	require.Len(t, end, 2)

	closedPts, closedParams := polygon(6)
	e, err = New(Config{Points: closedPts, Params: closedParams, Closed: true})
	require.NoError(t, err)
	start, end = e.EndTangents()
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestInterpolateOpen(t *testing.T) {
	pts, params := sineSamples(9)
	e, err := New(Config{
		Points:       pts,
		Params:       params,
		StartTangent: []float64{1, 2},
		EndTangent:   []float64{1, -1},
	})
	require.NoError(t, err)

	c, err := e.Interpolate()
	require.NoError(t, err)
	assert.Len(t, c.Ctrl, len(pts)+2)
	assertAllBelow(t, e.Residuals(c), 1e-9)

	d := c.Derivs(0, 1)
	assert.InDeltaSlice(t, []float64{1, 2}, d[1], 1e-9)
	d = c.Derivs(1, 1)
	assert.InDeltaSlice(t, []float64{1, -1}, d[1], 1e-9)
}

func TestInterpolateReproducesCubic(t *testing.T) {
	pts, params := cubicSamples()
	e, err := New(Config{
		Points:       pts,
		Params:       params,
		StartTangent: []float64{0.4, 0.2},
		EndTangent:   []float64{0.4, -0.05},
	})
	require.NoError(t, err)
	c, err := e.Interpolate()
	require.NoError(t, err)
	for _, u := range []float64{0.05, 0.33, 0.61, 0.97} {
		want := []float64{0.4 * u, 0.2*u - 0.35*u*u + 0.15*u*u*u}
		assert.InDeltaSlice(t, want, c.Eval(u), 1e-12)
	}
}

func TestInterpolateClosed(t *testing.T) {
	pts, params := polygon(7)
	e, err := New(Config{Points: pts, Params: params, Closed: true})
	require.NoError(t, err)

	c, err := e.Interpolate()
	require.NoError(t, err)
	assert.Len(t, c.Ctrl, len(pts))
	assert.True(t, c.Knots.Closed())
	assertAllBelow(t, e.Residuals(c), 1e-9)
	assert.InDeltaSlice(t, pts[0], c.Eval(1), 1e-9)
	assert.Len(t, e.MidpointDeviations(c), len(pts))
}

func TestFitWithKnotsInvalid(t *testing.T) {
	pts, params := sineSamples(9)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)

	lo, hi := e.SegmentBounds()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 6, hi)

	tests := []struct {
		name string
		nseg int
		bp   []float64
	}{
		{"zero segments", 0, []float64{0}},
		{"too many segments", 7, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 1}},
		{"breakpoint count", 2, []float64{0, 1}},
		{"short domain", 2, []float64{0, 0.5, 0.9}},
		{"late start", 2, []float64{0.1, 0.5, 1}},
		{"unordered", 3, []float64{0, 0.6, 0.4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.FitWithKnots(tt.nseg, tt.bp)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestFitWithKnotsCounts(t *testing.T) {
	pts, params := sineSamples(9)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)
	c, err := e.FitWithKnots(2, []float64{0, 0.5, 1})
	require.NoError(t, err)
	assert.Len(t, c.Ctrl, 2+Degree)
	assert.Len(t, c.Knots.Breakpoints(), 3)

	cpts, cparams := polygon(8)
	e, err = New(Config{Points: cpts, Params: cparams, Closed: true})
	require.NoError(t, err)
	c, err = e.FitWithKnots(4, []float64{0, 0.25, 0.5, 0.75, 1})
	require.NoError(t, err)
	assert.Len(t, c.Ctrl, 4)
	assert.Len(t, c.Knots.Expanded(), 2*Degree+4+1)
}

func TestFitWithKnotsHonoursEndTangents(t *testing.T) {
	pts, params := sineSamples(9)
	t0 := []float64{1, 1}
	t1 := []float64{1, -3}
	e, err := New(Config{Points: pts, Params: params, StartTangent: t0, EndTangent: t1})
	require.NoError(t, err)
	c, err := e.FitWithKnots(2, []float64{0, 0.5, 1})
	require.NoError(t, err)

	n := len(c.Ctrl)
	parallel := func(a, b, dir []float64) {
		v := make([]float64, 2)
		floats.SubTo(v, b, a)
		require.Greater(t, floats.Norm(v, 2), 1e-9)
		sin := math.Abs(v[0]*dir[1]-v[1]*dir[0]) / (floats.Norm(v, 2) * floats.Norm(dir, 2))
		assert.LessOrEqual(t, sin, e.Tolerance().Angle())
	}
	parallel(c.Ctrl[0], c.Ctrl[1], t0)
	parallel(c.Ctrl[n-2], c.Ctrl[n-1], t1)
}

func TestFitWithToleranceScenario(t *testing.T) {
	pts, params := cubicSamples()
	e, err := New(Config{
		Points:       pts,
		Params:       params,
		StartTangent: []float64{0.4, 0.2},
		EndTangent:   []float64{0.4, -0.05},
	})
	require.NoError(t, err)

	res, err := e.FitWithTolerance(0.1, 10)
	require.NoError(t, err)
	assert.False(t, res.Interpolated)
	assert.Less(t, len(res.Curve.Ctrl), len(pts))
	assert.Equal(t, res.Segments+Degree, len(res.Curve.Ctrl))
	assert.Len(t, res.Curve.Knots.Breakpoints(), res.Segments+1)
	assertAllBelow(t, e.Residuals(res.Curve), 0.1)
	assert.Equal(t, []Trial{{4, true}, {2, true}, {1, true}}, res.Trials)
}

func TestFitWithToleranceFallsBackToInterpolation(t *testing.T) {
	pts, params := sineSamples(9)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)

	res, err := e.FitWithTolerance(0, 0)
	require.NoError(t, err)
	assert.True(t, res.Interpolated)
	assert.Len(t, res.Curve.Ctrl, len(pts)+2)
	assertAllBelow(t, e.Residuals(res.Curve), 1e-9)
	assert.Equal(t, []Trial{{4, false}, {6, false}}, res.Trials)
}

func TestFitWithToleranceTooFewPoints(t *testing.T) {
	pts, params := sineSamples(3)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)
	res, err := e.FitWithTolerance(1, 1)
	require.NoError(t, err)
	assert.True(t, res.Interpolated)
	assert.Empty(t, res.Trials)
	assert.Len(t, res.Curve.Ctrl, 5)
}

func TestFitWithToleranceClosedOctagon(t *testing.T) {
	pts, params := polygon(8)
	e, err := New(Config{Points: pts, Params: params, Closed: true})
	require.NoError(t, err)

	res, err := e.FitWithTolerance(0.1, 10)
	require.NoError(t, err)
	if res.Interpolated {
		assert.Len(t, res.Curve.Ctrl, len(pts))
	} else {
		assert.Less(t, res.Segments, len(pts)-Degree)
		assert.Len(t, res.Curve.Ctrl, res.Segments)
		assertAllBelow(t, e.Residuals(res.Curve), 0.1)
	}
	require.NotEmpty(t, res.Trials)
	assert.Equal(t, 4, res.Trials[0].Segments)
}

func TestFitWithToleranceClosedDegeneracyGuard(t *testing.T) {
	// every valid segment count for six samples is within Degree of six
	pts, params := polygon(6)
	e, err := New(Config{Points: pts, Params: params, Closed: true})
	require.NoError(t, err)

	res, err := e.FitWithTolerance(10, 10)
	require.NoError(t, err)
	assert.Equal(t, []Trial{{4, true}}, res.Trials)
	assert.True(t, res.Interpolated)
	assert.Len(t, res.Curve.Ctrl, len(pts))
	assertAllBelow(t, e.Residuals(res.Curve), 1e-9)
}

func TestFitWithToleranceInvalid(t *testing.T) {
	pts, params := sineSamples(9)
	e, err := New(Config{Points: pts, Params: params})
	require.NoError(t, err)
	_, err = e.FitWithTolerance(-1, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.FitWithTolerance(1, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFitWithToleranceLogsTrials(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pts, params := cubicSamples()
	e, err := New(Config{Points: pts, Params: params, Logger: logger})
	require.NoError(t, err)
	_, err = e.FitWithTolerance(0.1, 10)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fit: trial")
	assert.Contains(t, buf.String(), "segments=4")
}
