// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound marks a lookup of an entity id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation blocked by an existing reference.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation failed")
)

// NotFound returns an error carrying msg and marked as ErrNotFound.
func NotFound(msg string) error {
	return errors.Mark(errors.New(msg), ErrNotFound)
}

// Conflict returns an error carrying msg and marked as ErrConflict.
func Conflict(msg string) error {
	return errors.Mark(errors.New(msg), ErrConflict)
}

// Validation returns an error carrying msg and marked as ErrValidation.
func Validation(msg string) error {
	return errors.Mark(errors.New(msg), ErrValidation)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// Wrap adds context to err while keeping its marks. Nil stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// IsNotFound reports whether err is marked as ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is marked as ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err is marked as ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// Message returns the outermost message of err that is safe to show to callers.
// For a NotFound created with NotFound("Cliente no encontrado") it is that text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return errors.UnwrapAll(err).Error()
}
