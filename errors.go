package curve

import "github.com/stepgeom/curve/internal/fit"

// ErrInvalidArgument is returned, wrapped, for malformed input: too few
// points, mismatched parameter counts, parameters that do not increase,
// segment counts outside [Approximation2D.SegmentBounds] and the like.
//
// Failing to meet a tolerance is never an error. Use [errors.Is] to test
// for it.
var ErrInvalidArgument = fit.ErrInvalidArgument
