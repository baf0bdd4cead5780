package eval

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/token"
)

// Kind classifies an evaluation [Error].
type Kind int

const (
	TypeMismatch Kind = iota
	InvalidOperator
	InvalidPrefix
	IdentifierNotFound
	InvalidParamCount
	InvalidParamTypes
	InvalidObjectType
	InvalidOperation
	IndexOperatorNotSupported
	IndexOutOfBounds
	InvalidHashKeyType
	ImpossibleState
	CallDepthExceeded
	Canceled
)

var kindName = [...]string{
	TypeMismatch:              "type mismatch",
	InvalidOperator:           "invalid operator",
	InvalidPrefix:             "invalid prefix",
	IdentifierNotFound:        "identifier not found",
	InvalidParamCount:         "invalid parameter count",
	InvalidParamTypes:         "invalid parameter types",
	InvalidObjectType:         "invalid object type",
	InvalidOperation:          "invalid operation",
	IndexOperatorNotSupported: "index operator not supported",
	IndexOutOfBounds:          "index out of bounds",
	InvalidHashKeyType:        "invalid hash key type",
	ImpossibleState:           "impossible state",
	CallDepthExceeded:         "call depth exceeded",
	Canceled:                  "canceled",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindName) {
		return kindName[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel errors for use with [errors.Is]. Matching compares kinds only.
var (
	ErrTypeMismatch              = &Error{Kind: TypeMismatch}
	ErrInvalidOperator           = &Error{Kind: InvalidOperator}
	ErrInvalidPrefix             = &Error{Kind: InvalidPrefix}
	ErrIdentifierNotFound        = &Error{Kind: IdentifierNotFound}
	ErrInvalidParamCount         = &Error{Kind: InvalidParamCount}
	ErrInvalidParamTypes         = &Error{Kind: InvalidParamTypes}
	ErrInvalidObjectType         = &Error{Kind: InvalidObjectType}
	ErrInvalidOperation          = &Error{Kind: InvalidOperation}
	ErrIndexOperatorNotSupported = &Error{Kind: IndexOperatorNotSupported}
	ErrIndexOutOfBounds          = &Error{Kind: IndexOutOfBounds}
	ErrInvalidHashKeyType        = &Error{Kind: InvalidHashKeyType}
	ErrImpossibleState           = &Error{Kind: ImpossibleState}
	ErrCallDepthExceeded         = &Error{Kind: CallDepthExceeded}
	ErrCanceled                  = &Error{Kind: Canceled}
)

// Error is a runtime failure. Evaluation stops at the first one.
type Error struct {
	Kind Kind
	// Pos is the position of the expression that failed, if known.
	Pos token.Position
	// Operands holds the values the failing operation was applied to.
	Operands []object.Object

	msg string
	err error
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func typeMismatch(l, r object.Object) *Error {
	e := newError(TypeMismatch, "%s and %s are different types",
		l.Inspect(), r.Inspect())
	e.Operands = []object.Object{l, r}

	return e
}

func invalidOperator(l object.Object, op token.Kind, r object.Object) *Error {
	e := newError(InvalidOperator, "%s %s %s is an invalid operation",
		l.Inspect(), op, r.Inspect())
	e.Operands = []object.Object{l, r}

	return e
}

func invalidOperation(op string, o object.Object) *Error {
	e := newError(InvalidOperation, "%s is not a valid operation on %s",
		op, o.Inspect())
	e.Operands = []object.Object{o}

	return e
}

func invalidObjectType(want object.Type, got object.Object) *Error {
	e := newError(InvalidObjectType, "%s was expected, but got %s",
		want, got.Inspect())
	e.Operands = []object.Object{got}

	return e
}

func invalidHashKey(o object.Object) *Error {
	e := newError(InvalidHashKeyType, "%s is not a valid hash key type",
		o.Inspect())
	e.Operands = []object.Object{o}

	return e
}

func indexNotSupported(o object.Object) *Error {
	e := newError(IndexOperatorNotSupported,
		"could not use index accessor on %s", o.Inspect())
	e.Operands = []object.Object{o}

	return e
}

func paramCount(want, got int) *Error {
	return newError(InvalidParamCount,
		"got %d params but was expecting %d", got, want)
}

func outOfBounds(index int64, length int) *Error {
	return newError(IndexOutOfBounds,
		"attempted to access index %d when array is only %d big", index, length)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}

	return e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Kind == e.Kind
}

// at records the position of the failing node unless one is already set.
func (e *Error) at(pos token.Position) *Error {
	if e.Pos == (token.Position{}) {
		e.Pos = pos
	}

	return e
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("message", e.Error()),
	}

	if e.Pos != (token.Position{}) {
		attrs = append(attrs, slog.String("position", e.Pos.String()))
	}

	for i, o := range e.Operands {
		attrs = append(attrs, slog.String(
			fmt.Sprintf("operand.%d", i), o.Type().String()))
	}

	return slog.GroupValue(attrs...)
}

// unwind carries a return value out of an expression to the enclosing
// statement. It never escapes the evaluator.
type unwind struct {
	ret *object.ReturnValue
}

func (*unwind) Error() string { return "return outside of block" }
