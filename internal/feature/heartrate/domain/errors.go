// Package domain defines the failure taxonomy of the heart-rate feature.
package domain

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error leaving the estimator matches exactly one of them with errors.Is.
var (
	// ErrInsufficientData indicates the signal is shorter than the minimum analysis window.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNoValidPeak indicates no cardiac-band peak could be identified.
	ErrNoValidPeak = errors.New("no valid peak")

	// ErrComputation indicates a numeric failure such as an invalid sample rate,
	// an unstable filter design or non-finite values.
	ErrComputation = errors.New("computation error")
)

// AnalysisError carries a failure kind together with a human-readable message.
type AnalysisError struct {
	Kind    error
	Message string
}

// NewAnalysisError builds an AnalysisError of the given kind.
func NewAnalysisError(kind error, format string, args ...any) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *AnalysisError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Kind }

// KindOf returns the failure kind of err, or nil when err is not one of the known kinds.
func KindOf(err error) error {
	for _, kind := range []error{ErrInsufficientData, ErrNoValidPeak, ErrComputation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
