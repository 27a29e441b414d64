package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrHasReference          = errors.New("resource is still referenced")

	// Validation errors
	ErrInvalidField = errors.New("invalid field")
	ErrBadRequest   = errors.New("bad request")
)

// Scheduling errors
var (
	// ErrInvalidTeacher covers unqualified and double-booked teachers
	ErrInvalidTeacher = errors.New("invalid teacher")
	// ErrInvalidGroup covers groups not studying the subject and double-booked groups
	ErrInvalidGroup = errors.New("invalid group")
	// ErrInvalidClassRoom is a double-booked classroom
	ErrInvalidClassRoom = errors.New("invalid classroom")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NotFoundf is NewResourceNotFoundError with formatting
func NotFoundf(format string, args ...interface{}) error {
	return NewResourceNotFoundError(fmt.Sprintf(format, args...))
}

// AlreadyExistsf reports a uniqueness violation
func AlreadyExistsf(format string, args ...interface{}) error {
	return NewCustomError(ErrResourceAlreadyExists, fmt.Sprintf(format, args...))
}

// InvalidFieldf reports a missing or malformed field
func InvalidFieldf(format string, args ...interface{}) error {
	return NewCustomError(ErrInvalidField, fmt.Sprintf(format, args...))
}

// HasReferencef reports a deletion blocked by dependents
func HasReferencef(format string, args ...interface{}) error {
	return NewCustomError(ErrHasReference, fmt.Sprintf(format, args...))
}

// InvalidTeacherf reports an unqualified or unavailable teacher
func InvalidTeacherf(format string, args ...interface{}) error {
	return NewCustomError(ErrInvalidTeacher, fmt.Sprintf(format, args...))
}

// InvalidGroupf reports a group that can't attend the lecture
func InvalidGroupf(format string, args ...interface{}) error {
	return NewCustomError(ErrInvalidGroup, fmt.Sprintf(format, args...))
}

// InvalidClassRoomf reports an occupied classroom
func InvalidClassRoomf(format string, args ...interface{}) error {
	return NewCustomError(ErrInvalidClassRoom, fmt.Sprintf(format, args...))
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
