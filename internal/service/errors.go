package service

import (
	"errors"
	"fmt"

	"go-campus-events/pkg/validator"
)

var (
	ErrForbidden   = errors.New("not allowed")
	ErrInvalidTime = errors.New("end time must be after start time")
)

// ValidationError carries the per-field failures of a request.
type ValidationError struct {
	Errors []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation error"
	}
	first := e.Errors[0]
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

// validate runs struct validation and wraps failures in *ValidationError.
func validate(req any) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
