// Package fit approximates ordered sample points with cubic B-spline curves.
//
// An Engine is built once per sample set. It can fit a curve for a
// prescribed set of breakpoints, interpolate the samples exactly, or search
// for the smallest segment count whose fit stays within a distance and a
// midpoint tolerance.
package fit

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/stepgeom/curve/internal/bspline"
	"github.com/stepgeom/curve/tolerance"
)

// Degree is the polynomial degree of every curve produced by this package.
const Degree = 3

// Config describes the samples to approximate.
type Config struct {
	// Points holds one sample per row; all rows have the same length.
	Points [][]float64
	// Params holds the strictly increasing sample parameters. Closed curves
	// carry one extra entry: the parameter at which the curve returns to
	// Points[0].
	Params []float64
	Closed bool
	// StartTangent and EndTangent are the derivatives at the ends of an open
	// curve. Either both are set or neither; when unset they are estimated
	// from the samples.
	StartTangent []float64
	EndTangent   []float64
	// Tolerance defaults to tolerance.Default() when zero.
	Tolerance tolerance.Set
	Logger    *slog.Logger
}

// Result is the outcome of an adaptive fit.
type Result struct {
	Curve    *bspline.Curve
	Segments int
	// Interpolated is set when no reduced fit was accepted and Curve is the
	// exact interpolant.
	Interpolated bool
	Trials       []Trial
}

// Engine fits B-spline curves to a fixed sample set.
type Engine struct {
	points     [][]float64
	params     []float64
	closed     bool
	start, end []float64
	tol        tolerance.Set
	log        *slog.Logger
}

// New validates cfg and returns an engine for it. Inputs are copied.
func New(cfg Config) (*Engine, error) {
	n := len(cfg.Points)
	if cfg.Closed && n < 3 {
		return nil, invalidf("closed curve needs at least 3 points, got %d", n)
	}
	if !cfg.Closed && n < 2 {
		return nil, invalidf("open curve needs at least 2 points, got %d", n)
	}
	want := n
	if cfg.Closed {
		want++
	}
	if len(cfg.Params) != want {
		return nil, invalidf("%d points need %d parameters, got %d", n, want, len(cfg.Params))
	}

	dim := len(cfg.Points[0])
	if dim == 0 {
		return nil, invalidf("points have no coordinates")
	}
	points := make([][]float64, n)
	for i, p := range cfg.Points {
		if len(p) != dim {
			return nil, invalidf("point %d has %d coordinates, want %d", i, len(p), dim)
		}
		if !finite(p) {
			return nil, invalidf("point %d is not finite", i)
		}
		points[i] = slices.Clone(p)
	}

	tol := cfg.Tolerance
	if tol.IsZero() {
		tol = tolerance.Default()
	}
	if !finite(cfg.Params) {
		return nil, invalidf("parameters are not finite")
	}
	for i := 1; i < len(cfg.Params); i++ {
		if cfg.Params[i]-cfg.Params[i-1] <= tol.Parameter() {
			return nil, invalidf("parameters not strictly increasing at %d", i)
		}
	}

	e := &Engine{
		points: points,
		params: slices.Clone(cfg.Params),
		closed: cfg.Closed,
		tol:    tol,
		log:    cfg.Logger,
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if (cfg.StartTangent == nil) != (cfg.EndTangent == nil) {
		return nil, invalidf("end tangents must be given in pairs")
	}
	switch {
	case cfg.StartTangent != nil && cfg.Closed:
		return nil, invalidf("end tangents are only meaningful for open curves")
	case cfg.StartTangent != nil:
		for _, t := range [][]float64{cfg.StartTangent, cfg.EndTangent} {
			if len(t) != dim {
				return nil, invalidf("tangent has %d coordinates, want %d", len(t), dim)
			}
			if !finite(t) || floats.Norm(t, 2) <= tol.Real() {
				return nil, invalidf("tangent %v is degenerate", t)
			}
		}
		e.start = slices.Clone(cfg.StartTangent)
		e.end = slices.Clone(cfg.EndTangent)
	case !cfg.Closed:
		e.start, e.end = besselTangents(e.points, e.params)
	}
	return e, nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Closed reports whether the engine fits periodic curves.
func (e *Engine) Closed() bool { return e.closed }

// Len returns the number of samples.
func (e *Engine) Len() int { return len(e.points) }

// Tolerance returns the tolerance set in effect.
func (e *Engine) Tolerance() tolerance.Set { return e.tol }

// EndTangents returns the end derivatives of an open curve, either as given
// or as estimated. Closed curves return nil.
func (e *Engine) EndTangents() (start, end []float64) {
	return slices.Clone(e.start), slices.Clone(e.end)
}

// SegmentBounds returns the range of segment counts FitWithKnots accepts.
// hi is below lo when there are too few samples for any reduced fit.
func (e *Engine) SegmentBounds() (lo, hi int) {
	s := newSegmentSearch(len(e.points), Degree, e.closed)
	return s.min, s.rawMax
}

// samples returns the parameters of the samples themselves, without the
// closing parameter of a closed curve.
func (e *Engine) samples() []float64 {
	return e.params[:len(e.points)]
}

func (e *Engine) domain() (lo, hi float64) {
	return e.params[0], e.params[len(e.params)-1]
}

// FitWithKnots fits a curve with nseg segments bounded by breakpoints, which
// must hold nseg+1 strictly increasing values spanning the sample domain.
func (e *Engine) FitWithKnots(nseg int, breakpoints []float64) (*bspline.Curve, error) {
	lo, hi := e.SegmentBounds()
	if nseg < lo || nseg > hi {
		return nil, invalidf("segment count %d outside [%d, %d]", nseg, lo, hi)
	}
	if len(breakpoints) != nseg+1 {
		return nil, invalidf("%d segments need %d breakpoints, got %d", nseg, nseg+1, len(breakpoints))
	}
	first, last := e.domain()
	ptol := e.tol.Parameter()
	if math.Abs(breakpoints[0]-first) > ptol || math.Abs(breakpoints[nseg]-last) > ptol {
		return nil, invalidf("breakpoints [%g, %g] do not span the samples [%g, %g]",
			breakpoints[0], breakpoints[nseg], first, last)
	}
	c, err := e.fit(breakpoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return c, nil
}

func (e *Engine) fit(breakpoints []float64) (*bspline.Curve, error) {
	k, err := bspline.NewKnots(Degree, breakpoints, e.closed)
	if err != nil {
		return nil, err
	}
	a := bspline.DesignMatrix(k, e.samples())
	ctrl, err := bspline.SolveLeastSquares(a, bspline.Channels(e.points))
	if err != nil {
		return nil, err
	}
	if !e.closed {
		n := len(ctrl)
		e.alignTangent(ctrl[1], ctrl[0], e.start)
		e.alignTangent(ctrl[n-2], ctrl[n-1], e.end)
	}
	return bspline.NewCurve(k, ctrl)
}

// alignTangent moves p onto the line through origin along dir.
func (e *Engine) alignTangent(p, origin, dir []float64) {
	norm := floats.Norm(dir, 2)
	if norm <= e.tol.Real() {
		return
	}
	v := make([]float64, len(p))
	floats.SubTo(v, p, origin)
	along := floats.Dot(v, dir) / norm
	moved := make([]float64, len(p))
	floats.AddScaledTo(moved, origin, along/norm, dir)
	if d := floats.Distance(p, moved, 2); d > e.tol.Distance() {
		e.log.Debug("fit: projected control point onto end tangent", "moved", d)
	}
	copy(p, moved)
}

// Interpolate returns the cubic curve through every sample. Open curves
// have a breakpoint at every sample and honour the end tangents; closed
// curves are periodic with one segment per sample.
func (e *Engine) Interpolate() (*bspline.Curve, error) {
	k, err := bspline.NewKnots(Degree, e.params, e.closed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	channels := bspline.Channels(e.points)
	a := bspline.DesignMatrix(k, e.samples())
	if !e.closed {
		a, channels = e.withEndConditions(k, a, channels)
	}
	ctrl, err := bspline.SolveSquare(a, channels)
	if err != nil {
		return nil, fmt.Errorf("fit: interpolation: %w", err)
	}
	return bspline.NewCurve(k, ctrl)
}
