// Package tolerance holds the numeric tolerances used by geometric
// operations: distances, angles, curve parameters and plain real numbers.
//
// A [Set] can be passed explicitly, carried in a [context.Context] with
// [NewContext], or pushed onto a [Stack] for the duration of a
// sub-computation. Lookups that find nothing fall back to [Default].
package tolerance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned when a tolerance value is not finite and positive.
var ErrInvalid = errors.New("tolerance: invalid value")

// Set is an immutable collection of tolerances.
//
// The zero Set is not valid; use [New] or [Default].
type Set struct {
	distance  float64
	angle     float64
	parameter float64
	real      float64
}

var defaultSet = Set{
	distance:  1e-6,
	angle:     0.01,
	parameter: 1e-8,
	real:      1e-10,
}

// Default returns the process-wide default tolerances.
func Default() Set {
	return defaultSet
}

// New returns a Set with the given tolerances. Angles are in radians.
func New(distance, angle, parameter, real float64) (Set, error) {
	for _, v := range [...]struct {
		name string
		v    float64
	}{
		{"distance", distance},
		{"angle", angle},
		{"parameter", parameter},
		{"real", real},
	} {
		if math.IsNaN(v.v) || math.IsInf(v.v, 0) || v.v <= 0 {
			return Set{}, fmt.Errorf("%w: %s tolerance %g", ErrInvalid, v.name, v.v)
		}
	}
	return Set{
		distance:  distance,
		angle:     angle,
		parameter: parameter,
		real:      real,
	}, nil
}

// Distance returns the tolerance below which two points are considered
// coincident.
func (s Set) Distance() float64 { return s.distance }

// Angle returns the tolerance, in radians, below which two directions are
// considered parallel.
func (s Set) Angle() float64 { return s.angle }

// Parameter returns the tolerance below which two curve parameters are
// considered equal.
func (s Set) Parameter() float64 { return s.parameter }

// Real returns the tolerance below which a real number is considered zero.
func (s Set) Real() float64 { return s.real }

// IsZero reports whether s is the zero Set.
func (s Set) IsZero() bool {
	return s == Set{}
}

// WithDistance returns a copy of s with the distance tolerance replaced.
func (s Set) WithDistance(d float64) (Set, error) {
	return New(d, s.angle, s.parameter, s.real)
}

func (s Set) String() string {
	return fmt.Sprintf("tolerance{distance: %g, angle: %g, parameter: %g, real: %g}",
		s.distance, s.angle, s.parameter, s.real)
}
