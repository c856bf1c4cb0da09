package apperr

import "strings"

type ValidationError struct {
	Message    string
	Violations []string
	Err        error
}

func (e *ValidationError) Error() string {
	if len(e.Violations) > 0 {
		return e.Message + ": " + strings.Join(e.Violations, "; ")
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

func NewValidationViolations(msg string, violations []string) *ValidationError {
	return &ValidationError{Message: msg, Violations: violations}
}

// NotFoundError signals that a referenced entity name matched nothing and
// could not be auto-created.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return e.Kind + " not found"
	}
	return e.Kind + " \"" + e.Name + "\" not found"
}

func NewNotFound(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

// DuplicateError signals a unique-key collision with an existing entity.
// Callers treat it as benign: the record is counted as a skip, not a failure.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

func NewDuplicate(msg string) *DuplicateError {
	return &DuplicateError{Message: msg}
}

// AuthError signals a credential or session failure. It aborts the current
// record without consuming retry budget, since it likely affects every
// subsequent call too.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func NewAuth(msg string) *AuthError {
	return &AuthError{Message: msg}
}

// TransientError wraps connectivity and other retriable failures.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func NewTransient(msg string, err error) *TransientError {
	return &TransientError{Message: msg, Err: err}
}
