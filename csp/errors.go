package csp

import (
	"errors"
	"fmt"
)

// PoisonError is returned by Read, Write, and selection on any end of a
// poisoned channel. Strength carries the strength of the first effective
// poison; it never changes afterwards.
//
// A process catching a PoisonError is expected, by convention, to poison
// its remaining channel ends with at most Strength-1 and terminate.
// Strength 0 must not be propagated further.
type PoisonError struct {
	Strength int
}

func (e *PoisonError) Error() string {
	return fmt.Sprintf("channel poisoned (strength %d)", e.Strength)
}

// IsPoison reports whether err is a poison condition.
func IsPoison(err error) bool {
	var pe *PoisonError
	return errors.As(err, &pe)
}

// PoisonStrength returns the strength carried by a poison condition,
// or -1 if err is not one.
func PoisonStrength(err error) int {
	var pe *PoisonError
	if errors.As(err, &pe) {
		return pe.Strength
	}
	return -1
}
