package engine

import (
	"errors"
	"fmt"
)

// Error is returned by Session operations that reject a request.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeNotInResults indicates a pin target outside the current results.
	ErrCodeNotInResults ErrorCode = "NOT_IN_RESULTS"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotInResults returns true if the error is a pin rejection.
// Uses errors.As to handle wrapped errors.
func IsNotInResults(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeNotInResults
	}
	return false
}

func notInResults(kind, id string) *Error {
	return &Error{
		Code:    ErrCodeNotInResults,
		Message: fmt.Sprintf("%s %q is not in the current results", kind, id),
		Details: map[string]string{"kind": kind, "id": id},
	}
}
