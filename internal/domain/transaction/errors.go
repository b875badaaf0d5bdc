package transaction

import "fmt"

// ValidationError reports a single row failing a cleaning rule. It is a tagged
// result value consumed by counting logic, never a batch-fatal condition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a row-level validation error.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
