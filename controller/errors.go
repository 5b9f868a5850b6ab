package controller

import (
	"errors"
	"fmt"
)

// ValidationError is returned synchronously when a submission carries an
// out-of-range floor or an unusable direction; the request is never
// enqueued.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

var ErrElevatorNotFound = errors.New("elevator not found")
