package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidLimit         = errors.New("budget limit must be positive")
	ErrEmptyDescription     = errors.New("empty description")
	ErrEmptyCategory        = errors.New("empty category")
	ErrEmptyName            = errors.New("empty name")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrInvalidInterval      = errors.New("invalid recurring interval")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ValidationError reports which submitted field was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func Invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
