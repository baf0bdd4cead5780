package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/token"
)

// Format writes prog in native syntax. Blocks are broken over lines and
// indented by indent spaces; an indent of zero writes the whole program on
// one line. The output parses back to an equivalent program.
func Format(_ context.Context, w io.Writer, prog *ast.Program, indent int) error {
	f := formatter{indent: indent}

	for i, stmt := range prog.Statements {
		if i > 0 {
			if indent > 0 {
				f.buf.WriteString("\n")
			} else {
				f.buf.WriteString(" ")
			}
		}

		f.statement(stmt, 0)
	}

	f.buf.WriteString("\n")

	_, err := io.WriteString(w, f.buf.String())

	return err
}

// FormatJSON writes the program as JSON to the writer.
func FormatJSON(_ context.Context, w io.Writer, prog *ast.Program, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToNative(prog), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToNative(prog))
	}

	if err != nil {
		return ErrFormat.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, prog *ast.Program, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToNative(prog), opts...)
	if err != nil {
		return ErrFormat.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTree writes one line per syntax tree node, nested by indent spaces.
func FormatTree(_ context.Context, w io.Writer, prog *ast.Program, indent int) error {
	var buf strings.Builder

	writeTree(&buf, prog, strings.Repeat(" ", max(indent, 1)), 0)

	_, err := io.WriteString(w, buf.String())

	return err
}

type formatter struct {
	buf    strings.Builder
	indent int
}

func (f *formatter) pad(depth int) {
	f.buf.WriteString(strings.Repeat(" ", depth*f.indent))
}

func (f *formatter) statement(stmt ast.Statement, depth int) {
	switch stmt := stmt.(type) {
	case *ast.LetStatement:
		f.buf.WriteString("let " + stmt.Name.Name + " = ")
		f.expression(stmt.Value, depth)

	case *ast.ReturnStatement:
		f.buf.WriteString("return ")
		f.expression(stmt.Value, depth)

	case *ast.ExpressionStatement:
		f.expression(stmt.Expression, depth)
	}

	f.buf.WriteString(";")
}

func (f *formatter) block(b *ast.BlockStatement, depth int) {
	if len(b.Statements) == 0 {
		f.buf.WriteString("{}")

		return
	}

	f.buf.WriteString("{")

	for _, stmt := range b.Statements {
		if f.indent > 0 {
			f.buf.WriteString("\n")
			f.pad(depth + 1)
		} else {
			f.buf.WriteString(" ")
		}

		f.statement(stmt, depth+1)
	}

	if f.indent > 0 {
		f.buf.WriteString("\n")
		f.pad(depth)
	} else {
		f.buf.WriteString(" ")
	}

	f.buf.WriteString("}")
}

// binding returns how tightly expr binds, using the same scale as the
// parser's operator precedence.
func binding(expr ast.Expression) int {
	switch expr := expr.(type) {
	case *ast.InfixExpression:
		switch expr.Operator {
		case token.Equal, token.NotEqual:
			return 1
		case token.LessThan, token.LessEqual, token.GreaterThan, token.GreaterEqual:
			return 2
		case token.Plus, token.Minus:
			return 3
		default:
			return 4
		}

	case *ast.PrefixExpression:
		return 5

	default:
		return 8
	}
}

// operand writes expr, parenthesized if it binds looser than least.
func (f *formatter) operand(expr ast.Expression, depth, least int) {
	if binding(expr) < least {
		f.buf.WriteString("(")
		f.expression(expr, depth)
		f.buf.WriteString(")")

		return
	}

	f.expression(expr, depth)
}

func (f *formatter) list(exprs []ast.Expression, depth int) {
	for i, e := range exprs {
		if i > 0 {
			f.buf.WriteString(", ")
		}

		f.expression(e, depth)
	}
}

func (f *formatter) expression(expr ast.Expression, depth int) {
	switch expr := expr.(type) {
	case *ast.PrefixExpression:
		f.buf.WriteString(expr.Operator.String())
		f.operand(expr.Right, depth, binding(expr))

	case *ast.InfixExpression:
		prec := binding(expr)
		f.operand(expr.Left, depth, prec)
		f.buf.WriteString(" " + expr.Operator.String() + " ")
		f.operand(expr.Right, depth, prec+1)

	case *ast.IfExpression:
		f.buf.WriteString("if (")
		f.expression(expr.Condition, depth)
		f.buf.WriteString(") ")
		f.block(expr.Consequence, depth)

		if expr.Alternative != nil {
			f.buf.WriteString(" else ")
			f.block(expr.Alternative, depth)
		}

	case *ast.FunctionLiteral:
		f.buf.WriteString("fn(" + strings.Join(expr.ParameterNames(), ", ") + ") ")
		f.block(expr.Body, depth)

	case *ast.CallExpression:
		f.operand(expr.Function, depth, 6)
		f.buf.WriteString("(")
		f.list(expr.Arguments, depth)
		f.buf.WriteString(")")

	case *ast.ArrayLiteral:
		f.buf.WriteString("[")
		f.list(expr.Elements, depth)
		f.buf.WriteString("]")

	case *ast.HashLiteral:
		f.buf.WriteString("{")

		for i, p := range expr.Pairs {
			if i > 0 {
				f.buf.WriteString(", ")
			}

			f.expression(p.Key, depth)
			f.buf.WriteString(": ")
			f.expression(p.Value, depth)
		}

		f.buf.WriteString("}")

	case *ast.IndexExpression:
		f.operand(expr.Left, depth, 7)
		f.buf.WriteString("[")
		f.expression(expr.Index, depth)
		f.buf.WriteString("]")

	default:
		f.buf.WriteString(expr.String())
	}
}

func writeTree(buf *strings.Builder, node ast.Node, pad string, depth int) {
	line := func(format string, args ...any) {
		buf.WriteString(strings.Repeat(pad, depth))
		fmt.Fprintf(buf, format, args...)
		buf.WriteString("\n")
	}

	child := func(n ast.Node) { writeTree(buf, n, pad, depth+1) }

	switch n := node.(type) {
	case *ast.BlockStatement:
		line("Block")

		for _, s := range n.Statements {
			child(s)
		}

	case *ast.LetStatement:
		line("Let %s", n.Name.Name)
		child(n.Value)

	case *ast.ReturnStatement:
		line("Return")
		child(n.Value)

	case *ast.ExpressionStatement:
		line("Expression")
		child(n.Expression)

	case *ast.Identifier:
		line("Identifier %s", n.Name)

	case *ast.IntegerLiteral:
		line("Integer %d", n.Value)

	case *ast.StringLiteral:
		line("String %q", n.Value)

	case *ast.BooleanLiteral:
		line("Boolean %t", n.Value)

	case *ast.PrefixExpression:
		line("Prefix %s", n.Operator)
		child(n.Right)

	case *ast.InfixExpression:
		line("Infix %s", n.Operator)
		child(n.Left)
		child(n.Right)

	case *ast.IfExpression:
		line("If")
		child(n.Condition)
		child(n.Consequence)

		if n.Alternative != nil {
			child(n.Alternative)
		}

	case *ast.FunctionLiteral:
		line("Function (%s)", strings.Join(n.ParameterNames(), ", "))
		child(n.Body)

	case *ast.CallExpression:
		line("Call")
		child(n.Function)

		for _, a := range n.Arguments {
			child(a)
		}

	case *ast.ArrayLiteral:
		line("Array")

		for _, e := range n.Elements {
			child(e)
		}

	case *ast.HashLiteral:
		line("Hash")

		for _, p := range n.Pairs {
			child(p.Key)
			writeTree(buf, p.Value, pad, depth+2)
		}

	case *ast.IndexExpression:
		line("Index")
		child(n.Left)
		child(n.Index)
	}
}
