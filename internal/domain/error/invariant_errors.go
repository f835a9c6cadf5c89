package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSubcategoryNotFound is returned when a subcategory is not found.
	ErrSubcategoryNotFound = errors.New("subcategory not found")
)

// InvariantViolationError indicates internal ledger state that should be
// impossible: it signals a bug, not bad input. The unit of work carrying it
// rolls back in full and the API surfaces it as an internal error; it must
// never be handled as part of normal control flow.
type InvariantViolationError struct {
	Message string
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Message
}

// NewInvariantViolationError creates a new InvariantViolationError.
func NewInvariantViolationError(message string) *InvariantViolationError {
	return &InvariantViolationError{Message: message}
}
