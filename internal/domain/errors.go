package domain

import "errors"

// ValidationError marks bad client input. Transports map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func ErrValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

var ErrNotFound = errors.New("not found")

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
