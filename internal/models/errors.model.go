package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrMissingEvidence   = errors.New("at least one media reference is required to complete a job")
	ErrUnknownRole       = errors.New("unknown role")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflicting update")

	// ErrJobCompleted is a validation error: completed jobs are frozen.
	ErrJobCompleted = fmt.Errorf("%w: job is completed and can no longer change", ErrValidation)
)

// IncompleteChecklistError reports the required checklist items that still
// block completion of a job.
type IncompleteChecklistError struct {
	MissingItemIDs []uuid.UUID
}

func (e *IncompleteChecklistError) Error() string {
	ids := make([]string, len(e.MissingItemIDs))
	for i, id := range e.MissingItemIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("required checklist items incomplete: %s", strings.Join(ids, ", "))
}

func NotFound(kind string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, kind, id)
}

func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
