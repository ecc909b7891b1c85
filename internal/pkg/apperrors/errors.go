package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrConflict = errors.New("resource conflict")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {

	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// ValidationErrors aggregates every failing field of a payload so callers
// see all problems at once instead of just the first one.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Errors))
	for i, fieldErr := range e.Errors {
		msgs[i] = fieldErr.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Unwrap() error {
	return ErrValidation
}

func (e *ValidationErrors) Append(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// domainError carries a caller-facing message while still matching one of
// the sentinel kinds through errors.Is.
type domainError struct {
	msg  string
	kind error
}

func (e *domainError) Error() string {
	return e.msg
}

func (e *domainError) Unwrap() error {
	return e.kind
}

// NewDomainError builds an error whose Error() is exactly the formatted
// message and whose kind is one of the package sentinels.
func NewDomainError(kind error, format string, args ...any) error {
	return &domainError{msg: fmt.Sprintf(format, args...), kind: kind}
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
