package sim

import (
	"errors"
	"fmt"
)

// RunError represents a failure detected while executing a run. Every
// failure is fatal to the run in progress: state is sequential and
// there is no meaningful partial result once an invariant breaks.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Step is the zero-based step index for step-scoped failures, or
	// -1 when the error is not tied to a step.
	Step int

	// Err is the underlying error, if any.
	Err error
}

// RunErrorCode categorizes run failures.
type RunErrorCode string

const (
	// ErrCodeConfigInvalid indicates degenerate or non-physical
	// configuration, caught before any propagation begins.
	ErrCodeConfigInvalid RunErrorCode = "CONFIG_INVALID"

	// ErrCodeSeriesDiverged indicates the reconstructed time or forcing
	// grid does not match the generated scenario.
	ErrCodeSeriesDiverged RunErrorCode = "SERIES_DIVERGED"

	// ErrCodeDomain indicates a numeric-domain failure inside a
	// diagnostic, e.g. non-positive carbon fed to the pH logarithm.
	ErrCodeDomain RunErrorCode = "DOMAIN_ERROR"
)

func (e *RunError) Error() string {
	if e.Step >= 0 {
		return fmt.Sprintf("%s: %s (step=%d)", e.Code, e.Message, e.Step)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a configuration failure.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	return hasCode(err, ErrCodeConfigInvalid)
}

// IsDivergenceError reports whether err is a consistency-guard failure.
func IsDivergenceError(err error) bool {
	return hasCode(err, ErrCodeSeriesDiverged)
}

// IsDomainError reports whether err is a numeric-domain failure.
func IsDomainError(err error) bool {
	return hasCode(err, ErrCodeDomain)
}

func hasCode(err error, code RunErrorCode) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}
