// Package apperr defines the error kinds shared by the time-accounting engine.
//
// Usage defects (freezing twice, operating on an empty tracker map) are
// reported as InvalidState; bad constructor input as InvalidArgument. Both
// kinds are matched with errors.Is:
//
//	if errors.Is(err, apperr.InvalidState) { ... }
package apperr

import "fmt"

// Kind is a category of failure
type Kind string

// Error implements the error interface so a Kind can be used as an errors.Is target
func (k Kind) Error() string {
	return string(k)
}

const (
	InvalidState    Kind = "invalid state"
	InvalidArgument Kind = "invalid argument"
	NotFound        Kind = "not found"
)

// Error carries a Kind, a message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's Kind
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to a cause
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
