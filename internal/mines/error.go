package mines

import "errors"

var (
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidState      = errors.New("cell is not in superposition")
	ErrInvalidDimensions = errors.New("grid dimensions must be positive and within the cell limit")
)

// AssertionError reports a broken engine invariant. It is raised with panic
// and never expected at runtime.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
