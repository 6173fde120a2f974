package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// FetchError indicates an asynchronous list/count/email-resolution failure.
// Callers surface it as a non-blocking notification rather than a fatal error.
type FetchError struct {
	Op  string
	Err error
}

func NewFetchError(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}

func (err FetchError) Error() string {
	if err.Err == nil {
		return err.Op + " failed"
	}
	return err.Op + ": " + err.Err.Error()
}

func (err FetchError) Unwrap() error { return err.Err }

func IsFetchError(err error) bool {
	_, ok := errors.Cause(err).(*FetchError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
