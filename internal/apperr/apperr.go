// Package apperr defines the error kinds raised by the service layer and
// translated to HTTP statuses at the API boundary.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity id does not exist.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Entity, e.ID)
}

func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ForbiddenError signals an authenticated caller lacking the required role
// or ownership.
type ForbiddenError struct{}

func (e *ForbiddenError) Error() string {
	return "forbidden"
}

func Forbidden() error {
	return &ForbiddenError{}
}

// ValidationError carries per-field rule failures.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

func Validation(fields map[string][]string) error {
	return &ValidationError{Fields: fields}
}

// ValidationField builds a single-field validation error.
func ValidationField(field, message string) error {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// AsValidation returns the validation error details, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var e *ValidationError
	ok := errors.As(err, &e)
	return e, ok
}
