package tracker

import (
	"errors"
	"fmt"

	"bagbuilder-go/internal/onboarding"
)

// ValidationError reports user input that was rejected before reaching the
// store or the analytics.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func fromAnswerError(err error) error {
	var ia *onboarding.InvalidAnswerError
	if errors.As(err, &ia) {
		reason := "is required"
		if ia.Value != "" {
			reason = fmt.Sprintf("%q is not one of the offered options", ia.Value)
		}
		return invalid(ia.Field, reason)
	}
	return err
}
