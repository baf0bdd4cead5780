package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/marmoset/lexer"
	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/parser"
	"github.com/ardnew/marmoset/token"
)

func run(t *testing.T, src string, opts ...Option) (object.Object, error) {
	t.Helper()

	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse errors in %q", src)

	return New(opts...).Program(t.Context(), prog, NewEnvironment())
}

func mustRun(t *testing.T, src string) object.Object {
	t.Helper()

	v, err := run(t, src)
	require.NoError(t, err, src)

	return v
}

func integer(t *testing.T, want int64, got object.Object) {
	t.Helper()

	i, ok := got.(*object.Integer)
	require.True(t, ok, "got %s (%T), want int %d", got.Inspect(), got, want)
	assert.Equal(t, want, i.Value)
}

func TestIntegerExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"5", 5},
		{"0", 0},
		{"9223372036854775807", 9223372036854775807},
		{"-5", -5},
		{"--5", 5},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
		{"10 - 2 - 3", 5},
		{"100 / 10 / 5", 2},
		{"7 / 2", 3},
		{"-7 / 2", -3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			integer(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestBooleanExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 <= 1", true},
		{"2 >= 3", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"true == true", true},
		{"true != false", true},
		{`"a" == "a"`, true},
		{`"a" != "b"`, true},
		{"(1 < 2) == true", true},
		{"(1 > 2) == true", false},
		{"if (false) { 1 } == if (false) { 2 }", true},
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!0", false},
		{`!""`, false},
		{"!!5", true},
		{"!if (false) { 1 }", true},
		{"!-true", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Same(t, object.Bool(tt.want), mustRun(t, tt.input))
		})
	}
}

func TestStrings(t *testing.T) {
	v := mustRun(t, `"Hello" + " " + "World!"`)

	s, ok := v.(*object.String)
	require.True(t, ok)
	assert.Equal(t, "Hello World!", s.Value)
}

func TestNegateNonInteger(t *testing.T) {
	for _, src := range []string{"-true", `-"a"`, "-[1]", "-fn() {}"} {
		t.Run(src, func(t *testing.T) {
			assert.Same(t, object.Nil, mustRun(t, src))
		})
	}
}

func TestIfElse(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"if (true) { 10 }", int64(10)},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", int64(10)},
		{"if (0) { 10 }", int64(10)},
		{"if (1 < 2) { 10 }", int64(10)},
		{"if (1 > 2) { 10 }", nil},
		{"if (1 > 2) { 10 } else { 20 }", int64(20)},
		{"if (1 < 2) { 10 } else { 20 }", int64(10)},
		{"if (true) { }", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := mustRun(t, tt.input)
			if want, ok := tt.want.(int64); ok {
				integer(t, want, v)
			} else {
				assert.Same(t, object.Nil, v)
			}
		})
	}
}

func TestReturn(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"return 10;", 10},
		{"return 10; 9;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		{"if (true) { if (true) { return 10; } return 1; }", 10},
		{"let f = fn(x) { return x; x + 10; }; f(10);", 10},
		{"let f = fn(x) { let r = x * 2; return r; }; f(5);", 10},
		{"let f = fn() { if (true) { return 10; } 1 }; f() + 0", 10},
		{"let f = fn() { let x = if (true) { return 10; }; 1 }; f()", 10},
		{"let f = fn() { 1 + if (true) { return 10; } }; f()", 10},
		{"let f = fn() { [1, if (true) { return 10; }] }; f()", 10},
		{"let x = if (true) { return 10; }; 20", 10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			integer(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestLet(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
		{"let a = 1; let a = 2; a", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			integer(t, tt.want, mustRun(t, tt.input))
		})
	}

	assert.Same(t, object.Nil, mustRun(t, "let a = 1;"))
}

func TestFunctions(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		v := mustRun(t, "fn(x) { x + 2; };")

		fn, ok := v.(*object.Function)
		require.True(t, ok)
		assert.Equal(t, []string{"x"}, fn.Parameters)
		assert.Equal(t, "fn(x) { (x + 2) }", fn.String())
	})

	tests := []struct {
		input string
		want  int64
	}{
		{"let identity = fn(x) { x; }; identity(5);", 5},
		{"let double = fn(x) { x * 2; }; double(5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5, 5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));", 20},
		{"fn(x) { x; }(5)", 5},
		{"let newAdder = fn(x) { fn(y) { x + y } }; let addTwo = newAdder(2); addTwo(3);", 5},
		{"let fib = fn(n) { if (n < 2) { n } else { fib(n - 1) + fib(n - 2) } }; fib(15)", 610},
		{"let apply = fn(f, x) { f(x) }; apply(fn(v) { v * 3 }, 4)", 12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			integer(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestScoping(t *testing.T) {
	t.Run("shadow does not mutate outer", func(t *testing.T) {
		src := "let x = 1; let f = fn() { let x = 2; x }; f(); x"
		integer(t, 1, mustRun(t, src))
	})

	t.Run("parameter shadows outer", func(t *testing.T) {
		src := "let x = 1; let f = fn(x) { x }; f(5) + x"
		integer(t, 6, mustRun(t, src))
	})

	t.Run("closure sees later bindings", func(t *testing.T) {
		src := "let f = fn() { y }; let y = 7; f()"
		integer(t, 7, mustRun(t, src))
	})

	t.Run("blocks share scope", func(t *testing.T) {
		src := "if (true) { let z = 3; }; z"
		integer(t, 3, mustRun(t, src))
	})

	t.Run("call scope discarded", func(t *testing.T) {
		_, err := run(t, "let f = fn() { let inner = 1; }; f(); inner")
		require.ErrorIs(t, err, ErrIdentifierNotFound)
	})
}

func TestArrays(t *testing.T) {
	v := mustRun(t, "[1, 2 * 2, 3 + 3]")

	arr, ok := v.(*object.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	integer(t, 1, arr.Elements[0])
	integer(t, 4, arr.Elements[1])
	integer(t, 6, arr.Elements[2])

	tests := []struct {
		input string
		want  int64
	}{
		{"[1, 2, 3][0]", 1},
		{"[1, 2, 3][1]", 2},
		{"[1, 2, 3][2]", 3},
		{"let i = 0; [1][i];", 1},
		{"[1, 2, 3][1 + 1];", 3},
		{"let a = [1, 2, 3]; a[2];", 3},
		{"let a = [1, 2, 3]; a[0] + a[1] + a[2];", 6},
		{"let a = [1, 2, 3]; let i = a[0]; a[i]", 2},
		{"[[1, 2], [3, 4]][1][0]", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			integer(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestHashes(t *testing.T) {
	src := `let two = "two";
{
  "one": 10 - 9,
  two: 1 + 1,
  "thr" + "ee": 6 / 2,
  4: 4,
  true: 5,
  false: 6
}`

	v := mustRun(t, src)

	hash, ok := v.(*object.Hash)
	require.True(t, ok)
	assert.Equal(t,
		`{"one": 1, "two": 2, "three": 3, 4: 4, true: 5, false: 6}`,
		hash.Inspect())

	tests := []struct {
		input string
		want  any
	}{
		{`{"foo": 5}["foo"]`, int64(5)},
		{`{"foo": 5}["bar"]`, nil},
		{`let key = "foo"; {"foo": 5}[key]`, int64(5)},
		{`{}["foo"]`, nil},
		{`{5: 5}[5]`, int64(5)},
		{`{true: 5}[true]`, int64(5)},
		{`{false: 5}[false]`, int64(5)},
		{`{1: 1, 1: 2}[1]`, int64(2)},
		{`{1: 5}[true]`, nil},
		{`{if (false) { 1 }: 9}[if (false) { 2 }]`, int64(9)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := mustRun(t, tt.input)
			if want, ok := tt.want.(int64); ok {
				integer(t, want, v)
			} else {
				assert.Same(t, object.Nil, v)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  *Error
		msg   string
	}{
		{"5 + true;", ErrTypeMismatch, "5 and true are different types"},
		{"5 + true; 5;", ErrTypeMismatch, "5 and true are different types"},
		{"5 * [1]", ErrTypeMismatch, "5 and [1] are different types"},
		{"true + 5", ErrInvalidOperator, "true + 5 is an invalid operation"},
		{"-true + 5", ErrInvalidOperator, "null + 5 is an invalid operation"},
		{"true + false", ErrInvalidOperator, "true + false is an invalid operation"},
		{`"a" - "b"`, ErrInvalidOperator, `"a" - "b" is an invalid operation`},
		{`"a" == 1`, ErrInvalidOperator, `"a" == 1 is an invalid operation`},
		{"1 == true", ErrInvalidOperator, "1 == true is an invalid operation"},
		{"[1] == [1]", ErrInvalidOperator, "[1] == [1] is an invalid operation"},
		{`"a" < "b"`, ErrInvalidOperator, `"a" < "b" is an invalid operation`},
		{"5 / 0", ErrInvalidOperator, "5 / 0 is an invalid operation"},
		{"if (10 > 1) { true + false; }", ErrInvalidOperator, "true + false is an invalid operation"},
		{"if (10 > 1) { if (10 > 1) { return true + false; } return 1; }", ErrInvalidOperator, "true + false is an invalid operation"},
		{"foobar", ErrIdentifierNotFound, "could not find foobar"},
		{"let f = fn(x) { x }; f()", ErrInvalidParamCount, "got 0 params but was expecting 1"},
		{"let f = fn(x) { x }; f(1, 2)", ErrInvalidParamCount, "got 2 params but was expecting 1"},
		{"5(1)", ErrInvalidObjectType, "function was expected, but got 5"},
		{`[1, 2]["a"]`, ErrInvalidObjectType, `int was expected, but got "a"`},
		{"[1, 2, 3][3]", ErrIndexOutOfBounds, "attempted to access index 3 when array is only 3 big"},
		{"[1, 2, 3][5]", ErrIndexOutOfBounds, "attempted to access index 5 when array is only 3 big"},
		{"[1, 2, 3][-1]", ErrIndexOutOfBounds, "attempted to access index -1 when array is only 3 big"},
		{"5[0]", ErrIndexOperatorNotSupported, "could not use index accessor on 5"},
		{`{[1]: 2}`, ErrInvalidHashKeyType, "[1] is not a valid hash key type"},
		{`{"a": 1}[fn(x) { x }]`, ErrInvalidHashKeyType, "fn(x) { x } is not a valid hash key type"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := run(t, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestErrorDetails(t *testing.T) {
	_, err := run(t, "let x = 1;\nx + true")
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, TypeMismatch, e.Kind)
	assert.Equal(t, token.Position{Line: 2, Column: 3}, e.Pos)
	require.Len(t, e.Operands, 2)
	assert.Equal(t, object.IntegerType, e.Operands[0].Type())
	assert.Equal(t, object.BooleanType, e.Operands[1].Type())

	_, err = run(t, "missing")
	require.True(t, errors.As(err, &e))
	assert.Equal(t, token.Position{Line: 1, Column: 1}, e.Pos)
}

func TestFirstErrorWins(t *testing.T) {
	_, err := run(t, "[missing, 1 + true]")
	assert.ErrorIs(t, err, ErrIdentifierNotFound)

	_, err = run(t, "let f = fn(a, b) { a }; f(1 + true, missing)")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMaxCallDepth(t *testing.T) {
	src := "let loop = fn(n) { loop(n + 1) }; loop(0)"

	_, err := run(t, src, WithMaxCallDepth(50))
	require.ErrorIs(t, err, ErrCallDepthExceeded)

	v, err := run(t,
		"let down = fn(n) { if (n == 0) { 0 } else { down(n - 1) } }; down(50)",
		WithMaxCallDepth(51))
	require.NoError(t, err)
	integer(t, 0, v)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	p := parser.New(lexer.New("let f = fn() { 1 }; f()"))
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	_, err := New().Program(ctx, prog, NewEnvironment())
	require.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionPersistence(t *testing.T) {
	env := NewEnvironment()
	ev := New()

	for _, src := range []string{"let a = 2;", "let b = fn(x) { x * a };"} {
		p := parser.New(lexer.New(src))
		_, err := ev.Program(t.Context(), p.ParseProgram(), env)
		require.NoError(t, err)
	}

	p := parser.New(lexer.New("b(21)"))
	v, err := ev.Program(t.Context(), p.ParseProgram(), env)
	require.NoError(t, err)
	integer(t, 42, v)
}
