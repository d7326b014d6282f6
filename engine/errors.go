package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks construction-time failures: non-positive windows,
// missing input lines, mismatched input arity. These are fatal where they
// occur; nothing is clamped or deferred to a later step.
var ErrInvalidConfig = errors.New("invalid configuration")

// DesyncError reports that an input's observed length does not match what
// the consuming indicator expects for the current step. A desynchronized
// cursor is the most consequential failure mode in this design, so it
// always aborts the run instead of miscomputing silently.
type DesyncError struct {
	Indicator string
	Input     string
	Want      int
	Got       int
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("engine: %s desynchronized: input %s has %d bars, step requires %d",
		e.Indicator, e.Input, e.Got, e.Want)
}
