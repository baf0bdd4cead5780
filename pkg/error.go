package pkg

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrReadInput is returned when a script or standard input cannot be read.
// It should be wrapped with the underlying I/O error.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrScriptNotFound is returned when a script name resolves to no file in
// the working directory or any search path entry.
var ErrScriptNotFound = MakeErrorf("script not found")

// ErrConfig is returned when the configuration file cannot be decoded.
var ErrConfig = MakeErrorf("invalid configuration file")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to a copy of the receiver and returns the
// result. The receiver, typically a sentinel, is never modified.
func (e Error) Wrap(err ...error) Error {
	return slices.Concat(e, err)
}

// Wrapf appends a formatted error to a copy of the receiver and returns the
// result.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is reports whether e was derived from target by [Error.Wrap] or
// [Error.Wrapf], that is, whether both chains begin with the same error.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(e) == 0 {
		return false
	}

	if !reflect.TypeOf(t[0]).Comparable() {
		return false
	}

	return e[0] == t[0]
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
