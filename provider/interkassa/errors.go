package interkassa

import (
	"errors"
	"fmt"
)

// ValidationError is returned when required construction data is missing or malformed
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "interkassa: " + e.Message
	}
	return fmt.Sprintf("interkassa: %s: %s", e.Field, e.Message)
}

// VerificationError is returned when a status notification cannot be trusted:
// the shop id does not match or the signature is wrong.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return "interkassa: " + e.Reason
}

func newValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err (or anything it wraps) is a *ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsVerificationError reports whether err (or anything it wraps) is a *VerificationError
func IsVerificationError(err error) bool {
	var target *VerificationError
	return errors.As(err, &target)
}
