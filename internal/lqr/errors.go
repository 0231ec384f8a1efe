package lqr

import (
	"errors"
	"fmt"
)

// Validation failures. Every error returned by [Problem.Validate] and
// [Solve] wraps exactly one of these.
var (
	// ErrInvalidType indicates a missing or empty argument, or one holding NaN/Inf.
	ErrInvalidType = errors.New("lqr: invalid type")

	// ErrShapeMismatch indicates inconsistent dimensions between arguments.
	ErrShapeMismatch = errors.New("lqr: shape mismatch")

	// ErrNotPositiveSemiDefinite indicates Q or Qf is not symmetric PSD.
	ErrNotPositiveSemiDefinite = errors.New("lqr: matrix is not symmetric positive semi-definite")

	// ErrNotPositiveDefinite indicates R is not symmetric PD.
	ErrNotPositiveDefinite = errors.New("lqr: matrix is not symmetric positive definite")

	// ErrInvalidHorizon indicates a non-positive time horizon.
	ErrInvalidHorizon = errors.New("lqr: time horizon must be positive")
)

// ValidationError names the argument that failed validation.
type ValidationError struct {
	Arg    string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Arg)
	}
	return fmt.Sprintf("%v: %s %s", e.Err, e.Arg, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(arg string, err error, format string, args ...any) error {
	return &ValidationError{Arg: arg, Detail: fmt.Sprintf(format, args...), Err: err}
}
