// Package services holds the business rules for rides, accounts, cabs and
// payments. Storage is reached through the small interfaces in stores.go.
package services

import (
	"errors"
	"fmt"

	"cabsy/internal/repositories"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
}

func invalidState(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// conflict turns a unique-constraint failure into a validation error naming
// the field; other errors pass through.
func conflict(err error, what string) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return validationError("%s already in use", what)
	}
	return err
}
