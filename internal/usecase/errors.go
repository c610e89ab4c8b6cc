package usecase

import (
	"errors"

	"pizza-delivery/pkg/utils"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("account is deactivated")
	ErrNotSuperuser       = errors.New("not a superuser")
	ErrNotAllowed         = errors.New("user not allowed")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoOrderForUser     = errors.New("no order with such user")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOrderLocked        = errors.New("order can no longer be modified")
	ErrValidation         = errors.New("validation failed")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
