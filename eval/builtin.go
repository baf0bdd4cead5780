package eval

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/marmoset/object"
)

var builtins = map[string]object.BuiltinFunction{
	"len":   builtinLen,
	"first": builtinFirst,
	"last":  builtinLast,
	"rest":  builtinRest,
	"push":  builtinPush,
}

// BuiltinNames returns the names of the built-in functions, sorted.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// NewEnvironment returns a root scope with every built-in function bound.
func NewEnvironment() *object.Environment {
	env := object.NewEnvironment()
	for name, fn := range builtins {
		env.Set(name, &object.Builtin{Name: name, Fn: fn})
	}

	return env
}

func checkCount(want int, args []object.Object) error {
	if len(args) != want {
		return paramCount(want, len(args))
	}

	return nil
}

// array returns the elements of args[0], which the builtin named op requires
// to be an array.
func array(op string, args []object.Object) ([]object.Object, error) {
	a, ok := args[0].(*object.Array)
	if !ok {
		return nil, invalidOperation(op, args[0])
	}

	return a.Elements, nil
}

func builtinLen(_ context.Context, args ...object.Object) (object.Object, error) {
	if err := checkCount(1, args); err != nil {
		return nil, err
	}

	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Value))}, nil

	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}, nil

	default:
		return nil, invalidOperation("len", arg)
	}
}

func builtinFirst(_ context.Context, args ...object.Object) (object.Object, error) {
	if err := checkCount(1, args); err != nil {
		return nil, err
	}

	elems, err := array("first", args)
	if err != nil {
		return nil, err
	}

	if len(elems) == 0 {
		return nil, outOfBounds(0, 0)
	}

	return elems[0], nil
}

func builtinLast(_ context.Context, args ...object.Object) (object.Object, error) {
	if err := checkCount(1, args); err != nil {
		return nil, err
	}

	elems, err := array("last", args)
	if err != nil {
		return nil, err
	}

	if len(elems) == 0 {
		return nil, outOfBounds(0, 0)
	}

	return elems[len(elems)-1], nil
}

func builtinRest(_ context.Context, args ...object.Object) (object.Object, error) {
	if err := checkCount(1, args); err != nil {
		return nil, err
	}

	elems, err := array("rest", args)
	if err != nil {
		return nil, err
	}

	if len(elems) == 0 {
		return nil, outOfBounds(1, 0)
	}

	return &object.Array{Elements: slices.Clone(elems[1:])}, nil
}

func builtinPush(_ context.Context, args ...object.Object) (object.Object, error) {
	if err := checkCount(2, args); err != nil {
		return nil, err
	}

	a, ok := args[0].(*object.Array)
	if !ok {
		got := make([]string, len(args))
		for i, arg := range args {
			got[i] = arg.Inspect()
		}

		e := newError(InvalidParamTypes, "expected params: (%s, %s) but got (%s)",
			object.ArrayType, "any", strings.Join(got, ", "))
		e.Operands = args

		return nil, e
	}

	elems := make([]object.Object, len(a.Elements), len(a.Elements)+1)
	copy(elems, a.Elements)

	return &object.Array{Elements: append(elems, args[1])}, nil
}
