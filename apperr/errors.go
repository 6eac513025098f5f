// Package apperr defines the error kinds shared by the catalog, generative and
// search services. Callers classify errors with errors.Is against the sentinels.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad input. Never retryable.
	ErrValidation = errors.New("validation error")

	// ErrCatalogFetch marks an unreachable catalog source or a malformed response.
	ErrCatalogFetch = errors.New("catalog fetch failed")

	// ErrGenerationFailed marks a generative source failure.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrGenerationUnavailable marks a transient generative failure (429/502/503/504, timeouts).
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrFilterApplication is raised only when an unvalidated filter reaches the filter stage.
	ErrFilterApplication = errors.New("filter application failed")
)

// Validation builds an ErrValidation with a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Wrap tags cause with kind, keeping both reachable through errors.Is.
func Wrap(kind error, op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", kind, op)
	}
	return fmt.Errorf("%w: %s: %w", kind, op, cause)
}

// Retryable reports whether the caller may reasonably retry.
func Retryable(err error) bool {
	return errors.Is(err, ErrGenerationUnavailable)
}
