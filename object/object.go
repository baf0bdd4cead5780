// Package object defines the runtime values of the marmoset language and the
// lexical environments that bind names to them.
//
// Values are immutable once constructed. Collections share their elements by
// reference, so the same value may be reachable from several arrays, hashes
// and scopes at once.
package object

import (
	"context"
	"strconv"
	"strings"

	"github.com/ardnew/marmoset/ast"
)

// Type identifies the variant of an [Object].
type Type int

const (
	NullType Type = iota
	IntegerType
	BooleanType
	StringType
	ArrayType
	HashType
	FunctionType
	BuiltinType
	ReturnType
)

var typeName = [...]string{
	NullType:     "null",
	IntegerType:  "int",
	BooleanType:  "bool",
	StringType:   "string",
	ArrayType:    "array",
	HashType:     "hash",
	FunctionType: "function",
	BuiltinType:  "builtin",
	ReturnType:   "return",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeName) {
		return typeName[t]
	}

	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Object is a runtime value.
//
// String is the display form used for program output and error messages.
// Inspect is the form used when the value is nested in a collection; it
// differs from String only for strings, which it quotes.
type Object interface {
	Type() Type
	String() string
	Inspect() string
}

// Singletons for the values that carry no identity.
var (
	Nil   = &Null{}
	True  = &Boolean{Value: true}
	False = &Boolean{Value: false}
)

// Bool returns the shared [Boolean] for b.
func Bool(b bool) *Boolean {
	if b {
		return True
	}

	return False
}

// IsTruthy reports whether o counts as true in a condition. Only false and
// null are falsy.
func IsTruthy(o Object) bool {
	switch o := o.(type) {
	case *Null:
		return false

	case *Boolean:
		return o.Value

	default:
		return o != nil
	}
}

// Null is the absence of a value.
type Null struct{}

func (*Null) Type() Type        { return NullType }
func (*Null) String() string    { return "null" }
func (n *Null) Inspect() string { return n.String() }

// Integer is a signed 64-bit integer.
type Integer struct {
	Value int64
}

func (*Integer) Type() Type        { return IntegerType }
func (i *Integer) String() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Inspect() string { return i.String() }

// Boolean is true or false. Use [Bool] rather than constructing one.
type Boolean struct {
	Value bool
}

func (*Boolean) Type() Type        { return BooleanType }
func (b *Boolean) String() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Inspect() string { return b.String() }

// String is a byte string.
type String struct {
	Value string
}

func (*String) Type() Type        { return StringType }
func (s *String) String() string  { return s.Value }
func (s *String) Inspect() string { return `"` + s.Value + `"` }

// Array is an ordered sequence of values.
type Array struct {
	Elements []Object
}

func (*Array) Type() Type       { return ArrayType }
func (a *Array) String() string { return a.Inspect() }

func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Function is a closure: a parameter list and body paired with the
// environment that was active where the function literal was evaluated.
// Env is shared, never copied.
type Function struct {
	Parameters []string
	Body       *ast.BlockStatement
	Env        *Environment
}

func (*Function) Type() Type { return FunctionType }

func (f *Function) String() string {
	body := "{ }"
	if f.Body != nil && len(f.Body.Statements) > 0 {
		body = "{ " + f.Body.String() + " }"
	}

	return "fn(" + strings.Join(f.Parameters, ", ") + ") " + body
}

func (f *Function) Inspect() string { return f.String() }

// BuiltinFunction is the native implementation of a [Builtin].
type BuiltinFunction func(ctx context.Context, args ...Object) (Object, error)

// Builtin is a named native function.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (*Builtin) Type() Type        { return BuiltinType }
func (b *Builtin) String() string  { return "builtin(" + b.Name + ")" }
func (b *Builtin) Inspect() string { return b.String() }

// ReturnValue carries a returned value out of nested blocks. It never
// escapes a function call or a program.
type ReturnValue struct {
	Value Object
}

func (*ReturnValue) Type() Type        { return ReturnType }
func (r *ReturnValue) String() string  { return "return " + r.Value.Inspect() }
func (r *ReturnValue) Inspect() string { return r.String() }
