// Package apperr defines the error type used across selfremember. An Error
// carries a message template so callers can format a specific instance
// while errors.Is still matches the sentinel it was derived from.
package apperr

import "fmt"

// Error is an application error built from a message template.
type Error struct {
	Cause    error
	Message  string
	template string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target was derived from the same template as e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.tmpl() == e.tmpl()
}

func (e *Error) tmpl() string {
	if e.template != "" {
		return e.template
	}

	return e.Message
}

// Fmt returns a copy of the error with the message template formatted
// using the given arguments.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message:  fmt.Sprintf(e.tmpl(), args...),
		Cause:    e.Cause,
		template: e.tmpl(),
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message:  e.Message,
		Cause:    err,
		template: e.tmpl(),
	}
}
