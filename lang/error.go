package lang

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/marmoset/eval"
	"github.com/ardnew/marmoset/parser"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput = NewError("failed to read input")
	ErrEvaluate  = NewError("evaluation failed")
	ErrFormat    = NewError("failed to format program")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError collects every syntax error found in one source text.
type ParseError struct {
	Errors []*parser.Error
	Source string // The original source input
}

// NewParseError returns a ParseError for errs found in source.
func NewParseError(errs []*parser.Error, source string) *ParseError {
	return &ParseError{Errors: errs, Source: source}
}

// Error describes the first syntax error with a snippet of the offending
// line and notes how many more follow.
func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return "parse error"
	}

	msg := e.Format(e.Errors[0])

	if n := len(e.Errors) - 1; n > 0 {
		msg += "(" + strconv.Itoa(n) + " more " + plural(n, "error") + ")"
	}

	return msg
}

// Unwrap returns the individual parser errors.
func (e *ParseError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, pe := range e.Errors {
		errs[i] = pe
	}

	return errs
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("count", len(e.Errors))}
	if len(e.Errors) > 0 {
		attrs = append(attrs, slog.Any("first", e.Errors[0]))
	}

	return slog.GroupValue(attrs...)
}

// Format renders err with the source line it occurred on and a caret
// under the offending column:
//
//	parse error at line 1, column 5: expected = token but found int 5
//	  1 | let x 5;
//	            ^
func (e *ParseError) Format(err *parser.Error) string {
	pos := err.Actual.Pos

	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(pos.Column))
	buf.WriteString(": ")
	buf.WriteString(err.Message())
	buf.WriteRune('\n')

	lines := strings.Split(e.Source, "\n")

	if pos.Line > 0 && pos.Line <= len(lines) {
		line := lines[pos.Line-1]

		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(pos.Line))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteRune('\n')

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", len(strconv.Itoa(pos.Line))+5)
		if pos.Column > 0 {
			padding += strings.Repeat(" ", pos.Column-1)
		}

		buf.WriteString(padding + "^\n")
	}

	return buf.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}

// Report writes a human-readable account of err to w. Every syntax error in
// a [*ParseError] is written with its source snippet. A runtime error is
// written on one line, with its position when known.
func Report(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	var buf strings.Builder

	var pe *ParseError
	if errors.As(err, &pe) && len(pe.Errors) > 0 {
		for _, e := range pe.Errors {
			buf.WriteString(strings.TrimSuffix(pe.Format(e), "\n"))
			buf.WriteRune('\n')
		}

		_, err = io.WriteString(w, buf.String())

		return err
	}

	msg := err.Error()

	var ee *eval.Error
	if errors.As(err, &ee) {
		msg = ee.Error()

		if ee.Pos.Line > 0 {
			buf.WriteString("error at line ")
			buf.WriteString(strconv.Itoa(ee.Pos.Line))
			buf.WriteString(", column ")
			buf.WriteString(strconv.Itoa(ee.Pos.Column))
			buf.WriteString(": ")
		}
	}

	if buf.Len() == 0 {
		buf.WriteString("error: ")
	}

	buf.WriteString(msg)
	buf.WriteRune('\n')

	_, err = io.WriteString(w, buf.String())

	return err
}
