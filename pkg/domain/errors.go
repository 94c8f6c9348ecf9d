package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when a model is built from zero records.
	ErrEmptyInput = errors.New("empty input")

	// ErrInsufficientInput is returned when the input holds a header and nothing else.
	ErrInsufficientInput = errors.New("insufficient input")

	// ErrUnknownState is returned when a state is not part of the model.
	ErrUnknownState = errors.New("unknown state")

	// ErrInvalidStartState is returned when a walk is requested from a state the model does not know.
	ErrInvalidStartState = errors.New("invalid start state")

	// ErrStepLimitTooLow is returned when a walk is requested with a step limit of 2 or less.
	ErrStepLimitTooLow = errors.New("step limit too low")

	// ErrDegenerateModel is returned when coverage cannot be computed because
	// the model has no states or no live transitions.
	ErrDegenerateModel = errors.New("degenerate model")

	// ErrInvalidDriver is returned when a replay target cannot act as a driver.
	ErrInvalidDriver = errors.New("invalid driver")

	// ErrWalkNotFound is returned when a walk ID cannot be found in the store.
	ErrWalkNotFound = errors.New("walk not found")
)

// AggregateError collects several independent failures found in one pass.
// errors.Is and errors.As see every wrapped error.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns the wrapped failures if err is an AggregateError, nil otherwise.
func Errors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
