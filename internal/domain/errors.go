package domain

import "errors"

var (
	ErrUnauthenticated      = errors.New("user is not authenticated")
	ErrAlreadyAuthenticated = errors.New("user is already logged in")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
)

// ConflictError reports a uniqueness violation on a single field.
type ConflictError struct {
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
