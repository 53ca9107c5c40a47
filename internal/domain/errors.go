package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDataBase         = errors.New("database error")
	ErrValidation       = errors.New("validation error")
	ErrAlreadyConfirmed = errors.New("confirmation code is confirmed already")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// Validation refinements. errors.Is(err, ErrValidation) holds for all of them.
var (
	ErrInvalidCode    = &FieldError{Err: ErrValidation, Message: "confirmation code is not valid", Field: "code"}
	ErrDuplicateLogin = &FieldError{Err: ErrValidation, Message: "login already exists", Field: "login"}
	ErrDuplicateEmail = &FieldError{Err: ErrValidation, Message: "email already exists", Field: "email"}
)

// FieldError is a domain error attributable to a single request field
type FieldError struct {
	Err     error
	Message string
	Field   string
}

func NewFieldError(err error, message, field string) *FieldError {
	return &FieldError{Err: err, Message: message, Field: field}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
