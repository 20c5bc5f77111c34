// Package apperror separates errors the client caused from errors the
// infrastructure caused, so HTTP handlers can choose between a 400 with
// the message and a 500 with a generic one.
package apperror

import (
	"errors"
	"fmt"
)

type invalidInput struct {
	err error
}

func (e *invalidInput) Error() string { return e.err.Error() }
func (e *invalidInput) Unwrap() error { return e.err }

// Invalid builds an error caused by bad client input. The message is safe
// to return in a response body.
func Invalid(format string, args ...interface{}) error {
	return &invalidInput{err: fmt.Errorf(format, args...)}
}

// IsInvalid reports whether err, or any error it wraps, came from Invalid.
func IsInvalid(err error) bool {
	var e *invalidInput
	return errors.As(err, &e)
}
