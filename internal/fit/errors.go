package fit

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for malformed input: mismatched point and
// parameter counts, too few points, out-of-range segment counts and the
// like. It is never returned because a tolerance could not be met.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
