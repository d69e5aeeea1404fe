package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable indicates the database cannot be reached.
	ErrStoreUnavailable = errors.New("migration store is unavailable")

	// ErrCorruptMarker indicates the persisted version marker is inconsistent
	// and requires manual intervention.
	ErrCorruptMarker = errors.New("schema version marker is corrupt")

	// ErrRegistryGap indicates the registered steps do not form a contiguous
	// linear chain. This is a programming error caught at registration time.
	ErrRegistryGap = errors.New("migration registry has a gap")

	// ErrStepFailed indicates a step's action returned an error and the
	// transaction was rolled back.
	ErrStepFailed = errors.New("migration step failed")
)

// StepError carries the identity of the failing step alongside the underlying
// cause so callers can report exactly which migration halted startup.
type StepError struct {
	Name string
	From Version
	To   Version
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("migration %q (v%d->v%d): %v", e.Name, e.From, e.To, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches a target sentinel.
func (e *StepError) Is(target error) bool {
	return target == ErrStepFailed || errors.Is(e.Err, target)
}

func newStepError(step Step, err error) *StepError {
	return &StepError{
		Name: step.Name,
		From: step.From,
		To:   step.To,
		Err:  err,
	}
}
