package geometry

import (
	"errors"
	"fmt"
)

// ErrUnknownProbabilityFuncType indicates an unrecognized
// probabilityFuncType configuration code.
var ErrUnknownProbabilityFuncType = errors.New("geometry: unknown probability function type")

// errUnknownProbabilityFuncType formats the configuration error for an
// unrecognized probabilityFuncType code (spec.md §7, §6).
func errUnknownProbabilityFuncType(t ProbabilityFuncType) error {
	return fmt.Errorf("%w: %d", ErrUnknownProbabilityFuncType, int(t))
}
