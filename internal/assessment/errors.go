package assessment

import (
	"errors"
	"fmt"
)

// ErrInvalidInput rejects a query with no symptoms at all. It is recovered at
// the boundary by prompting the user, never retried internally.
var ErrInvalidInput = errors.New("symptom input is empty")

// ErrNotFound reports a missing stored assessment.
var ErrNotFound = errors.New("assessment not found")

// ErrHistoryUnavailable reports that the assessment history store is not
// connected. Assessments still run; they are just not persisted.
var ErrHistoryUnavailable = errors.New("assessment history unavailable")

// UnknownSpeciesError reports a species the knowledge base does not cover.
// No default species is ever substituted.
type UnknownSpeciesError struct {
	Species string
}

func (e *UnknownSpeciesError) Error() string {
	return fmt.Sprintf("species %q is not covered by the knowledge base", e.Species)
}
