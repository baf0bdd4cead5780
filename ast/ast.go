// Package ast defines the syntax tree produced by the parser and consumed by
// the evaluator.
//
// The node set is closed: every [Statement] and [Expression] implementation
// lives in this package, and consumers dispatch with type switches.
package ast

import (
	"strconv"
	"strings"

	"github.com/ardnew/marmoset/token"
)

// Node is implemented by every syntax tree node.
//
// String renders the node in a canonical, fully parenthesized form that
// makes operator grouping explicit.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is a node that appears directly in a [BlockStatement].
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// BlockStatement is an ordered sequence of statements. It doubles as the
// root of a whole program.
type BlockStatement struct {
	Token      token.Token // '{' for nested blocks, zero for a program
	Statements []Statement
}

// Program is the root of a parsed source text.
type Program = BlockStatement

func (b *BlockStatement) Pos() token.Position { return b.Token.Pos }

func (b *BlockStatement) String() string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(s.String())
	}

	return sb.String()
}

// LetStatement binds the value of an expression to a name in the current
// scope: let <Name> = <Value>;
type LetStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (*LetStatement) statementNode()        {}
func (s *LetStatement) Pos() token.Position { return s.Token.Pos }

func (s *LetStatement) String() string {
	return "let " + s.Name.String() + " = " + s.Value.String() + ";"
}

// ReturnStatement unwinds the enclosing function (or program) with a value.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (*ReturnStatement) statementNode()        {}
func (s *ReturnStatement) Pos() token.Position { return s.Token.Pos }

func (s *ReturnStatement) String() string {
	return "return " + s.Value.String() + ";"
}

// ExpressionStatement is an expression evaluated for its value.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (*ExpressionStatement) statementNode()        {}
func (s *ExpressionStatement) Pos() token.Position { return s.Token.Pos }
func (s *ExpressionStatement) String() string      { return s.Expression.String() }

// Identifier references a binding by name.
type Identifier struct {
	Token token.Token
	Name  string
}

func (*Identifier) expressionNode()       {}
func (e *Identifier) Pos() token.Position { return e.Token.Pos }
func (e *Identifier) String() string      { return e.Name }

// IntegerLiteral is a signed 64-bit integer constant.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (*IntegerLiteral) expressionNode()       {}
func (e *IntegerLiteral) Pos() token.Position { return e.Token.Pos }
func (e *IntegerLiteral) String() string      { return strconv.FormatInt(e.Value, 10) }

// StringLiteral is a string constant.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (*StringLiteral) expressionNode()       {}
func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return `"` + e.Value + `"` }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (*BooleanLiteral) expressionNode()       {}
func (e *BooleanLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BooleanLiteral) String() string      { return strconv.FormatBool(e.Value) }

// PrefixExpression applies a unary operator: <Operator><Right>.
type PrefixExpression struct {
	Token    token.Token
	Operator token.Kind
	Right    Expression
}

func (*PrefixExpression) expressionNode()       {}
func (e *PrefixExpression) Pos() token.Position { return e.Token.Pos }

func (e *PrefixExpression) String() string {
	return "(" + e.Operator.String() + e.Right.String() + ")"
}

// InfixExpression applies a binary operator: <Left> <Operator> <Right>.
type InfixExpression struct {
	Token    token.Token
	Operator token.Kind
	Left     Expression
	Right    Expression
}

func (*InfixExpression) expressionNode()       {}
func (e *InfixExpression) Pos() token.Position { return e.Token.Pos }

func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator.String() + " " +
		e.Right.String() + ")"
}

// IfExpression evaluates Consequence when Condition is truthy, otherwise
// Alternative if present.
type IfExpression struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else branch
}

func (*IfExpression) expressionNode()       {}
func (e *IfExpression) Pos() token.Position { return e.Token.Pos }

func (e *IfExpression) String() string {
	s := "if (" + e.Condition.String() + ") " + braced(e.Consequence)
	if e.Alternative != nil {
		s += " else " + braced(e.Alternative)
	}

	return s
}

// FunctionLiteral constructs a closure over the defining scope.
type FunctionLiteral struct {
	Token      token.Token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (*FunctionLiteral) expressionNode()       {}
func (e *FunctionLiteral) Pos() token.Position { return e.Token.Pos }

func (e *FunctionLiteral) String() string {
	return "fn(" + strings.Join(e.ParameterNames(), ", ") + ") " +
		braced(e.Body)
}

// ParameterNames returns the names of the parameters in declaration order.
func (e *FunctionLiteral) ParameterNames() []string {
	names := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		names[i] = p.Name
	}

	return names
}

// CallExpression invokes Function with Arguments.
type CallExpression struct {
	Token     token.Token // '('
	Function  Expression
	Arguments []Expression
}

func (*CallExpression) expressionNode()       {}
func (e *CallExpression) Pos() token.Position { return e.Token.Pos }

func (e *CallExpression) String() string {
	return e.Function.String() + "(" + joinExprs(e.Arguments) + ")"
}

// ArrayLiteral is an ordered list of element expressions.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (*ArrayLiteral) expressionNode()       {}
func (e *ArrayLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ArrayLiteral) String() string      { return "[" + joinExprs(e.Elements) + "]" }

// HashPair is one key: value entry of a [HashLiteral].
type HashPair struct {
	Key   Expression
	Value Expression
}

// HashLiteral is an ordered list of key/value expression pairs. The order is
// the written order and determines evaluation order.
type HashLiteral struct {
	Token token.Token
	Pairs []HashPair
}

func (*HashLiteral) expressionNode()       {}
func (e *HashLiteral) Pos() token.Position { return e.Token.Pos }

func (e *HashLiteral) String() string {
	parts := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// IndexExpression selects an element: <Left>[<Index>].
type IndexExpression struct {
	Token token.Token // '['
	Left  Expression
	Index Expression
}

func (*IndexExpression) expressionNode()       {}
func (e *IndexExpression) Pos() token.Position { return e.Token.Pos }

func (e *IndexExpression) String() string {
	return "(" + e.Left.String() + "[" + e.Index.String() + "])"
}

func braced(b *BlockStatement) string {
	if b == nil || len(b.Statements) == 0 {
		return "{ }"
	}

	return "{ " + b.String() + " }"
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}

	return strings.Join(parts, ", ")
}
