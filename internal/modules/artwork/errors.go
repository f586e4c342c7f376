package artwork

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrOwnerRequired = errors.New("artist email is required")
)

// FieldError описывает поле частичного обновления с неверным типом или
// значением.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
