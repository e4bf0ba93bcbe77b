package model

import (
	"errors"
	"fmt"
)

// DomainError reports a physically meaningless value that would break a
// diagnostic, e.g. a non-positive atmospheric carbon mass fed to the pH
// logarithm. A run that produces one has broken down and must stop; the
// error is never recoverable by skipping a step.
type DomainError struct {
	Quantity string
	Value    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s out of physical domain: %g", e.Quantity, e.Value)
}

// IsDomainError reports whether err wraps a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
