// Package curve approximates ordered sample points with cubic B-spline
// curves, in the plane and in space.
//
// # Approximation
//
// [NewApproximation2D] and [NewApproximation3D] take sample points together
// with strictly increasing parameters, one per point. Closed (periodic)
// curves, requested with [Closed], carry one extra parameter at which the
// curve returns to its first point. [ChordLengthParams] produces
// parameters for callers that have none.
//
// [Approximation2D.FitWithTolerance] looks for a curve with few segments
// that passes within a distance tolerance of every sample and within a
// midpoint tolerance of the midpoint of every chord between consecutive
// samples. Segment boundaries are placed at the samples where the exact
// interpolant bends the most, and the number of segments is refined by
// repeatedly halving a step, stopping as soon as a count repeats. When no
// reduced curve meets the tolerances, the exact interpolant is returned
// instead. That is not an error: errors, which wrap [ErrInvalidArgument],
// are reserved for malformed input.
//
// [Approximation2D.FitWithKnots] fits a curve for caller-chosen breakpoints
// and [Approximation2D.Interpolate] passes through every sample.
//
// # Curves
//
// Fitted curves are [BSplineCurve] and [BSplineCurve3D] values. Open curves
// are clamped, so they start and end at their first and last control
// points; their end tangents follow the ones given with [WithEndTangents]
// or estimated from the samples. Closed curves have one control point per
// segment and wrap around. A planar curve can be converted to cubic Bézier
// segments with [BSplineCurve.Beziers] and to SVG with
// [BSplineCurve.BezPath].
//
// # Tolerances and logging
//
// Numeric tolerances come from package tolerance; pass them with
// [WithTolerance]. Diagnostics from the adaptive search go to the
// [log/slog] logger set with [SetLogger] or [WithLogger]; nothing is logged
// by default.
package curve
