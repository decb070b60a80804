package curve

import (
	"slices"

	"github.com/stepgeom/curve/internal/bspline"
	"github.com/stepgeom/curve/internal/fit"
	"github.com/stepgeom/curve/tolerance"
)

// Trial records one segment count tried by
// [Approximation2D.FitWithTolerance] and whether its fit met the
// tolerances.
type Trial = fit.Trial

// approximation holds what the 2D and 3D front ends share.
type approximation struct {
	eng          *fit.Engine
	trials       []Trial
	interpolated bool
}

func newApproximation(points [][]float64, params []float64, opts []Option) (approximation, error) {
	cfg := newConfig(opts)
	eng, err := fit.New(fit.Config{
		Points:       points,
		Params:       params,
		Closed:       cfg.closed,
		StartTangent: cfg.start,
		EndTangent:   cfg.end,
		Tolerance:    cfg.tol,
		Logger:       cfg.logger,
	})
	if err != nil {
		return approximation{}, err
	}
	return approximation{eng: eng}, nil
}

func (a *approximation) fitWithTolerance(dtol, midtol float64) (*bspline.Curve, error) {
	res, err := a.eng.FitWithTolerance(dtol, midtol)
	if err != nil {
		return nil, err
	}
	a.trials = res.Trials
	a.interpolated = res.Interpolated
	return res.Curve, nil
}

// Closed reports whether the approximation is periodic.
func (a *approximation) Closed() bool { return a.eng.Closed() }

// Len returns the number of sample points.
func (a *approximation) Len() int { return a.eng.Len() }

// Tolerance returns the tolerances in effect.
func (a *approximation) Tolerance() tolerance.Set { return a.eng.Tolerance() }

// SegmentBounds returns the range of segment counts accepted by
// FitWithKnots: [1, N-3] for open curves and [4, N] for closed ones. hi is
// below lo when there are too few points for a reduced fit.
func (a *approximation) SegmentBounds() (lo, hi int) { return a.eng.SegmentBounds() }

// Trials returns the segment counts tried by the last call to
// FitWithTolerance, in order. No count appears twice.
func (a *approximation) Trials() []Trial { return slices.Clone(a.trials) }

// Interpolated reports whether the last call to FitWithTolerance fell back
// to the exact interpolant.
func (a *approximation) Interpolated() bool { return a.interpolated }

// Approximation2D approximates an ordered set of planar sample points with
// cubic B-spline curves.
//
// An Approximation2D is not safe for concurrent use.
type Approximation2D struct {
	approximation
}

// NewApproximation2D validates the samples and prepares them for fitting.
// Open curves need at least 2 points and len(points) parameters; closed
// curves (see [Closed]) need at least 3 points and len(points)+1
// parameters. Parameters must increase strictly, by more than the parameter
// tolerance. Invalid input returns an error wrapping [ErrInvalidArgument].
func NewApproximation2D(points []Point, params []float64, opts ...Option) (*Approximation2D, error) {
	a, err := newApproximation(pointCoords(points), params, opts)
	if err != nil {
		return nil, err
	}
	return &Approximation2D{a}, nil
}

// FitWithKnots fits a curve with nseg segments bounded by the nseg+1
// breakpoints, in the least-squares sense. The breakpoints must be strictly
// increasing and span the sample parameters. For open curves the second and
// second-to-last control points are moved onto the end tangents.
func (a *Approximation2D) FitWithKnots(nseg int, breakpoints []float64) (BSplineCurve, error) {
	c, err := a.eng.FitWithKnots(nseg, breakpoints)
	if err != nil {
		return BSplineCurve{}, err
	}
	return BSplineCurve{c}, nil
}

// FitWithTolerance returns a curve with as few segments as it can find
// that passes within dtol of every sample and within midtol of the
// midpoint of every chord between consecutive samples.
//
// When no such curve is found the result is the exact interpolant; this is
// not an error. See [Approximation2D.Interpolated] and
// [Approximation2D.Trials].
func (a *Approximation2D) FitWithTolerance(dtol, midtol float64) (BSplineCurve, error) {
	c, err := a.fitWithTolerance(dtol, midtol)
	if err != nil {
		return BSplineCurve{}, err
	}
	return BSplineCurve{c}, nil
}

// Interpolate returns the cubic curve through every sample point.
func (a *Approximation2D) Interpolate() (BSplineCurve, error) {
	c, err := a.eng.Interpolate()
	if err != nil {
		return BSplineCurve{}, err
	}
	return BSplineCurve{c}, nil
}

// EndTangents returns the end derivatives of an open curve, as given or as
// estimated. ok is false for closed curves.
func (a *Approximation2D) EndTangents() (t0, t1 Vec2, ok bool) {
	s, e := a.eng.EndTangents()
	if s == nil {
		return Vec2{}, Vec2{}, false
	}
	return Vec2{s[0], s[1]}, Vec2{e[0], e[1]}, true
}

// Residuals returns the distance of every sample from c at the sample's
// parameter.
func (a *Approximation2D) Residuals(c BSplineCurve) []float64 {
	return a.eng.Residuals(c.c)
}
