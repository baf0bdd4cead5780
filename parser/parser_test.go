package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/lexer"
	"github.com/ardnew/marmoset/token"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()

	p := New(lexer.New(src))
	prog := p.ParseProgramContext(t.Context())

	for _, err := range p.Errors() {
		t.Errorf("unexpected parse error: %v", err)
	}

	return prog
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"!(-5)", "(!(-5))"},
		{"-5 * b", "((-5) * b)"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 <= 4 != 3 >= 4", "((5 <= 4) != (3 >= 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true", "true"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a, b, 1, (2 * 3))", "add(a, b, 1, (2 * 3))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a * b[2], b[1], 2 * [1, 2][1])", "add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))"},
		{"f(1)(2)", "f(1)(2)"},
		{"a[0][1]", "((a[0])[1])"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.input).String())
		})
	}
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input string
		name  string
		value string
	}{
		{"let x = 5;", "x", "5"},
		{"let y = true", "y", "true"},
		{"let foobar = y;", "foobar", "y"},
		{`let s = "hi";`, "s", `"hi"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parse(t, tt.input)
			require.Len(t, prog.Statements, 1)

			stmt, ok := prog.Statements[0].(*ast.LetStatement)
			require.True(t, ok, "statement is %T", prog.Statements[0])
			assert.Equal(t, tt.name, stmt.Name.Name)
			assert.Equal(t, tt.value, stmt.Value.String())
		})
	}
}

func TestReturnStatements(t *testing.T) {
	prog := parse(t, "return (5)return 10;return 838383;")
	require.Len(t, prog.Statements, 3)

	for _, s := range prog.Statements {
		_, ok := s.(*ast.ReturnStatement)
		assert.True(t, ok, "statement is %T", s)
	}

	assert.Equal(t, "return 5;return 10;return 838383;", prog.String())
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello world"`, `"hello world"`},
		{"[1, 2 * 2, 3 + 3]", "[1, (2 * 2), (3 + 3)]"},
		{"[]", "[]"},
		{`{"one": 1, "two": 2}`, `{"one": 1, "two": 2}`},
		{"{}", "{}"},
		{`{"one": 0 + 1, true: 10 - 8}`, `{"one": (0 + 1), true: (10 - 8)}`},
		{"fn(x, y) { x + y; }", "fn(x, y) { (x + y) }"},
		{"fn() {}", "fn() { }"},
		{"if (x < y) { x }", "if ((x < y)) { x }"},
		{"if (x < y) { x } else { y }", "if ((x < y)) { x } else { y }"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.input).String())
		})
	}
}

func TestHashPairOrder(t *testing.T) {
	prog := parse(t, `{"b": 2, "a": 1, "c": 3}`)
	require.Len(t, prog.Statements, 1)

	hash, ok := prog.Statements[0].(*ast.ExpressionStatement).
		Expression.(*ast.HashLiteral)
	require.True(t, ok)
	require.Len(t, hash.Pairs, 3)

	keys := make([]string, len(hash.Pairs))
	for i, p := range hash.Pairs {
		keys[i] = p.Key.String()
	}

	assert.Equal(t, []string{`"b"`, `"a"`, `"c"`}, keys)
}

func TestFunctionParameters(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"fn() {};", []string{}},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parse(t, tt.input)
			require.Len(t, prog.Statements, 1)

			fn, ok := prog.Statements[0].(*ast.ExpressionStatement).
				Expression.(*ast.FunctionLiteral)
			require.True(t, ok)
			assert.Equal(t, tt.want, fn.ParameterNames())
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("accumulates", func(t *testing.T) {
		p := New(lexer.New("let = 5; let x 5; let 838383;"))
		p.ParseProgram()

		errs := p.Errors()
		require.Len(t, errs, 3)

		for _, err := range errs {
			assert.Equal(t, WrongToken, err.Kind)
		}

		assert.Equal(t, token.Ident, errs[0].Expected)
		assert.Equal(t, token.Assign, errs[0].Actual.Kind)
		assert.Equal(t, token.Assign, errs[1].Expected)
		assert.Equal(t, token.Int, errs[1].Actual.Kind)
		assert.Equal(t, token.Ident, errs[2].Expected)
	})

	t.Run("recovers", func(t *testing.T) {
		p := New(lexer.New("let = 1; let y = 2; y"))
		prog := p.ParseProgram()

		assert.Len(t, p.Errors(), 1)
		assert.Equal(t, "let y = 2;y", prog.String())
	})

	t.Run("no prefix", func(t *testing.T) {
		p := New(lexer.New("* 5"))
		p.ParseProgram()

		require.NotEmpty(t, p.Errors())

		err := p.Errors()[0]
		assert.ErrorIs(t, err, ErrNoValidPrefix)
		assert.False(t, errors.Is(err, ErrWrongToken))
		assert.Equal(t, "line 1, column 1: * is not a valid prefix token", err.Error())
	})

	t.Run("wrong token message", func(t *testing.T) {
		p := New(lexer.New("if x"))
		p.ParseProgram()

		require.NotEmpty(t, p.Errors())
		assert.Equal(t,
			"line 1, column 4: expected ( token but found ident x",
			p.Errors()[0].Error())
	})

	t.Run("unterminated block", func(t *testing.T) {
		p := New(lexer.New("fn(x) { x"))
		p.ParseProgram()

		require.NotEmpty(t, p.Errors())

		err := p.Errors()[len(p.Errors())-1]
		assert.Equal(t, token.RBrace, err.Expected)
		assert.Equal(t, token.EOF, err.Actual.Kind)
	})

	t.Run("trailing comma", func(t *testing.T) {
		tests := []struct {
			input  string
			closer token.Kind
		}{
			{"[1, 2,]", token.RBracket},
			{"f(1,)", token.RParen},
			{`{"a": 1,}`, token.RBrace},
		}

		for _, tt := range tests {
			p := New(lexer.New(tt.input))
			p.ParseProgram()

			require.NotEmpty(t, p.Errors(), tt.input)

			err := p.Errors()[0]
			assert.ErrorIs(t, err, ErrNoValidPrefix, tt.input)
			assert.Equal(t, tt.closer, err.Actual.Kind, tt.input)
		}

		p := New(lexer.New("fn(a,) { a }"))
		p.ParseProgram()

		require.NotEmpty(t, p.Errors())
		assert.Equal(t, token.Ident, p.Errors()[0].Expected)
		assert.Equal(t, token.RParen, p.Errors()[0].Actual.Kind)
	})

	t.Run("illegal", func(t *testing.T) {
		p := New(lexer.New(`"open`))
		p.ParseProgram()

		require.Len(t, p.Errors(), 1)
		assert.ErrorIs(t, p.Errors()[0], ErrGeneric)
	})
}

func FuzzParseProgram(f *testing.F) {
	for _, seed := range []string{
		"let x = 5;",
		"fn(a, b) { a + b }(1, 2)",
		`{"a": [1, 2, 3][0]}`,
		"if (1 < 2) { return 1; } else { 2 }",
		"let = ; ) ( ] [ } {",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		p := New(lexer.New(src))
		if prog := p.ParseProgram(); prog == nil {
			t.Fatal("nil program")
		}
	})
}
