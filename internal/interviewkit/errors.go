package interviewkit

import (
	"errors"
	"fmt"
)

// ErrEmptyGeneration is returned when the model produced nothing usable:
// no response, an empty body, or no questions field.
var ErrEmptyGeneration = errors.New("generation produced no usable output")

// InputError reports an Input that failed validation.
type InputError struct {
	// Field names the offending input field when it is known.
	Field string
	Err   error
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// CountError is returned under CountStrict when the model produced the
// wrong number of questions.
type CountError struct {
	Want int
	Got  int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("expected %d questions, model produced %d", e.Want, e.Got)
}
