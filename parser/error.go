package parser

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/marmoset/token"
)

// ErrorKind classifies a parse [Error].
type ErrorKind int

const (
	// WrongToken means the next token did not have the required kind.
	WrongToken ErrorKind = iota
	// NoValidPrefix means no expression can begin with the current token.
	NoValidPrefix
	// Generic covers failures that fit no other kind.
	Generic
)

func (k ErrorKind) String() string {
	switch k {
	case WrongToken:
		return "wrong token"

	case NoValidPrefix:
		return "no valid prefix"

	default:
		return "parse error"
	}
}

// Sentinel errors matched by [errors.Is] on kind alone.
var (
	ErrWrongToken    = &Error{Kind: WrongToken}
	ErrNoValidPrefix = &Error{Kind: NoValidPrefix}
	ErrGeneric       = &Error{Kind: Generic}
)

// Error is a single structured parse failure. The parser accumulates these
// rather than stopping at the first.
type Error struct {
	Kind ErrorKind
	// Expected is the required token kind (WrongToken only).
	Expected token.Kind
	// Actual is the token that was found.
	Actual token.Token
	// Msg is the free-form description (Generic only).
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	pos := e.Actual.Pos

	return fmt.Sprintf("line %d, column %d: %s", pos.Line, pos.Column, e.Message())
}

// Message describes the failure without position information.
func (e *Error) Message() string {
	switch e.Kind {
	case WrongToken:
		return fmt.Sprintf(
			"expected %s token but found %s",
			e.Expected, describe(e.Actual),
		)

	case NoValidPrefix:
		return describe(e.Actual) + " is not a valid prefix token"

	default:
		if e.Msg == "" {
			return e.Kind.String()
		}

		return e.Msg
	}
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Kind == e.Kind
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("position", e.Actual.Pos.String()),
		slog.String("actual", e.Actual.Kind.String()),
	}

	if e.Kind == WrongToken {
		attrs = append(attrs, slog.String("expected", e.Expected.String()))
	}

	if e.Msg != "" {
		attrs = append(attrs, slog.String("message", e.Msg))
	}

	return slog.GroupValue(attrs...)
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.Ident, token.Int, token.String, token.Illegal:
		return t.Kind.String() + " " + t.String()

	default:
		return t.Kind.String()
	}
}
