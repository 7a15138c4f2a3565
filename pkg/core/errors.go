package core

import "fmt"

// ValidationError reports a construction-time geometry validation failure:
// non-positive or inconsistent dimensions, a curvature too small for the
// aperture, and similar. It is returned by the call that introduced the
// bad parameter and leaves no partially constructed object behind.
type ValidationError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid geometry: %s = %g: %s", e.Param, e.Value, e.Reason)
}

// NewValidationError creates a ValidationError
func NewValidationError(param string, value float64, reason string) *ValidationError {
	return &ValidationError{Param: param, Value: value, Reason: reason}
}
