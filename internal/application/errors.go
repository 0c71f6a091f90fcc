package application

import (
	"errors"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a uniqueness rule rejects a write.
	ErrAlreadyExists = errors.New("application: already exists")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// SchedulingError rejects a write because the proposed program change breaks
// scheduling rules. It carries the full violation list so callers can show
// every problem at once.
type SchedulingError struct {
	Violations []scheduling.Violation
}

// Error implements the error interface.
func (s *SchedulingError) Error() string {
	if s == nil || len(s.Violations) == 0 {
		return "scheduling conflict"
	}
	return "scheduling conflict: " + s.Violations[0].Message
}
