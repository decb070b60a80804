// Package bspline implements the knot bookkeeping, basis functions and
// linear systems behind B-spline curve fitting.
//
// Curves are dimension independent: a control point is a []float64 with one
// entry per coordinate channel.
package bspline

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// ErrKnots is returned when a knot vector cannot be built from the given
// breakpoints.
var ErrKnots = errors.New("bspline: invalid knot vector")

// Knots describes the knot vector of a B-spline curve.
//
// Open curves are clamped: the first and last knots have multiplicity
// degree+1. Closed curves are uniformly periodic in structure: every knot has
// multiplicity 1 and the knot array is extended by degree knots on each side,
// mirroring the spacing at the other end of the curve.
//
// In both cases the expanded knot vector (each knot repeated by its
// multiplicity) has 2*degree+nseg+1 entries, segment s covers
// [u[degree+s], u[degree+s+1]], and uses the control points
// (s+j) mod ncp for j = 0..degree.
type Knots struct {
	degree int
	closed bool
	nseg   int
	values []float64
	mults  []int
	flat   []float64
}

// NewKnots builds the knot vector for a curve whose segments are bounded by
// the given breakpoints. Breakpoints must be strictly increasing; closed
// curves need at least degree segments.
func NewKnots(degree int, breakpoints []float64, closed bool) (*Knots, error) {
	if degree < 1 {
		return nil, fmt.Errorf("%w: degree %d", ErrKnots, degree)
	}
	nseg := len(breakpoints) - 1
	if nseg < 1 {
		return nil, fmt.Errorf("%w: need at least 2 breakpoints, got %d", ErrKnots, len(breakpoints))
	}
	for i := 1; i < len(breakpoints); i++ {
		if !(breakpoints[i] > breakpoints[i-1]) {
			return nil, fmt.Errorf("%w: breakpoints not strictly increasing at %d", ErrKnots, i)
		}
	}
	if closed && nseg < degree {
		return nil, fmt.Errorf("%w: closed curve of degree %d needs at least %d segments, got %d",
			ErrKnots, degree, degree, nseg)
	}

	k := &Knots{degree: degree, closed: closed, nseg: nseg}
	if closed {
		first, last := breakpoints[0], breakpoints[nseg]
		k.values = make([]float64, 0, 2*degree+nseg+1)
		for j := degree; j >= 1; j-- {
			k.values = append(k.values, first-(last-breakpoints[nseg-j]))
		}
		k.values = append(k.values, breakpoints...)
		for j := 1; j <= degree; j++ {
			k.values = append(k.values, last+(breakpoints[j]-first))
		}
		k.mults = make([]int, len(k.values))
		for i := range k.mults {
			k.mults[i] = 1
		}
		k.flat = slices.Clone(k.values)
		return k, nil
	}

	k.values = slices.Clone(breakpoints)
	k.mults = make([]int, len(k.values))
	for i := range k.mults {
		k.mults[i] = 1
	}
	k.mults[0] = degree + 1
	k.mults[nseg] = degree + 1
	k.flat = make([]float64, 0, 2*degree+nseg+1)
	for i, v := range k.values {
		for range k.mults[i] {
			k.flat = append(k.flat, v)
		}
	}
	return k, nil
}

// Degree returns the polynomial degree of the curve.
func (k *Knots) Degree() int { return k.degree }

// Closed reports whether the knot vector is periodic.
func (k *Knots) Closed() bool { return k.closed }

// Segments returns the number of polynomial segments.
func (k *Knots) Segments() int { return k.nseg }

// ControlPoints returns the number of control points the knot vector
// supports: nseg+degree for open curves and nseg for closed ones.
func (k *Knots) ControlPoints() int {
	if k.closed {
		return k.nseg
	}
	return k.nseg + k.degree
}

// Values returns a copy of the distinct knot values.
func (k *Knots) Values() []float64 { return slices.Clone(k.values) }

// Multiplicities returns a copy of the knot multiplicities, parallel to
// [Knots.Values].
func (k *Knots) Multiplicities() []int { return slices.Clone(k.mults) }

// Expanded returns a copy of the knot vector with every knot repeated by its
// multiplicity.
func (k *Knots) Expanded() []float64 { return slices.Clone(k.flat) }

// Domain returns the parameter range covered by the curve's segments.
func (k *Knots) Domain() (lo, hi float64) {
	return k.flat[k.degree], k.flat[k.degree+k.nseg]
}

// Breakpoints returns the parameters bounding the segments.
func (k *Knots) Breakpoints() []float64 {
	return slices.Clone(k.flat[k.degree : k.degree+k.nseg+1])
}

// ControlIndex maps the j-th control point of segment s to its index in the
// control point array.
func (k *Knots) ControlIndex(s, j int) int {
	return (s + j) % k.ControlPoints()
}

// Wrap maps t into the curve's domain. Closed curves wrap periodically;
// open curves are clamped.
func (k *Knots) Wrap(t float64) float64 {
	lo, hi := k.Domain()
	if t >= lo && t <= hi {
		return t
	}
	if !k.closed {
		return min(max(t, lo), hi)
	}
	period := hi - lo
	t = lo + math.Mod(t-lo, period)
	if t < lo {
		t += period
	}
	return t
}

// Segment returns the index of the segment containing t, after wrapping t
// into the domain. The domain's upper end belongs to the last segment.
func (k *Knots) Segment(t float64) int {
	t = k.Wrap(t)
	bp := k.flat[k.degree : k.degree+k.nseg+1]
	// first breakpoint strictly greater than t, minus one
	s := sort.Search(len(bp), func(i int) bool { return bp[i] > t }) - 1
	return min(max(s, 0), k.nseg-1)
}

// Span returns the index into the expanded knot vector of the knot span
// containing t; it is Segment(t)+Degree().
func (k *Knots) Span(t float64) int {
	return k.Segment(t) + k.degree
}
