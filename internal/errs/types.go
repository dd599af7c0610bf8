package errs

import "strings"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

// ValidationError carries every violation found, not just the first.
type ValidationError struct {
	ErrorMessage
	Violations []string
}

// DatabaseError wraps a document store failure with the operation that produced it.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
		Violations:   []string{message},
	}
}

// NewViolationsError joins violations into the message and keeps the list for callers.
func NewViolationsError(violations []string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: strings.Join(violations, "; ")},
		Violations:   violations,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}
