// Package parser builds an [ast.Program] from a token stream using Pratt
// (precedence climbing) parsing.
//
// The parser never stops at the first problem. Each malformed statement is
// recorded as an [*Error], the parser skips ahead to the next statement
// boundary, and parsing continues. Callers must check [Parser.Errors] before
// evaluating the result.
package parser

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/token"
)

// Source is a pull-based token stream. After the input is exhausted it must
// keep returning [token.EOF].
type Source interface {
	Next() token.Token
}

type (
	prefixFn func() ast.Expression
	infixFn  func(ast.Expression) ast.Expression
)

// Parser holds the current and one-token lookahead state over a [Source].
type Parser struct {
	src    Source
	cur    token.Token
	peek   token.Token
	errors []*Error
	logger log.Logger

	prefix map[token.Kind]prefixFn
	infix  map[token.Kind]infixFn
}

// Option configures a [Parser].
type Option func(*Parser)

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New returns a parser reading from src.
func New(src Source, opts ...Option) *Parser {
	p := &Parser{src: src}

	for _, opt := range opts {
		opt(p)
	}

	p.prefix = map[token.Kind]prefixFn{
		token.Ident:    p.parseIdentifier,
		token.Int:      p.parseInteger,
		token.String:   p.parseString,
		token.True:     p.parseBoolean,
		token.False:    p.parseBoolean,
		token.Bang:     p.parsePrefix,
		token.Minus:    p.parsePrefix,
		token.LParen:   p.parseGroup,
		token.If:       p.parseIf,
		token.Function: p.parseFunction,
		token.LBracket: p.parseArray,
		token.LBrace:   p.parseHash,
	}

	p.infix = map[token.Kind]infixFn{
		token.LParen:   p.parseCall,
		token.LBracket: p.parseIndex,
	}

	for k := range precedences {
		if _, ok := p.infix[k]; !ok {
			p.infix[k] = p.parseInfix
		}
	}

	// Fill both cur and peek.
	p.advance()
	p.advance()

	return p
}

// Errors returns every error recorded so far, in source order.
func (p *Parser) Errors() []*Error { return p.errors }

// ParseProgram parses statements until end of input. It always returns a
// non-nil program containing every statement that parsed successfully.
func (p *Parser) ParseProgram() *ast.Program {
	return p.ParseProgramContext(context.Background())
}

// ParseProgramContext is like [Parser.ParseProgram] but attaches ctx to the
// trace records it emits.
func (p *Parser) ParseProgramContext(ctx context.Context) *ast.Program {
	p.logger.TraceContext(ctx, "parse start",
		slog.String("position", p.cur.Pos.String()))

	prog := &ast.Program{}

	for p.cur.Kind != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.synchronize()
		}

		p.advance()
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("statements", len(prog.Statements)),
		slog.Int("errors", len(p.errors)))

	return prog
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.src.Next()
}

// synchronize skips to the end of the current statement.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.Semicolon && p.cur.Kind != token.EOF {
		p.advance()
	}
}

// expectPeek advances if the next token has kind k, otherwise it records a
// WrongToken error and leaves the position unchanged.
func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peek.Kind == k {
		p.advance()

		return true
	}

	p.errors = append(p.errors, &Error{
		Kind:     WrongToken,
		Expected: k,
		Actual:   p.peek,
	})

	return false
}

func (p *Parser) fail(t token.Token, msg string) {
	p.errors = append(p.errors, &Error{Kind: Generic, Actual: t, Msg: msg})
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.Let:
		return p.parseLet()

	case token.Return:
		return p.parseReturn()

	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLet() ast.Statement {
	stmt := &ast.LetStatement{Token: p.cur}

	if !p.expectPeek(token.Ident) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.cur, Name: p.cur.Literal}

	if !p.expectPeek(token.Assign) {
		return nil
	}

	p.advance()

	if stmt.Value = p.parseExpression(lowest); stmt.Value == nil {
		return nil
	}

	p.skipSemicolon()

	return stmt
}

func (p *Parser) parseReturn() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.cur}

	p.advance()

	if stmt.Value = p.parseExpression(lowest); stmt.Value == nil {
		return nil
	}

	p.skipSemicolon()

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.cur}

	if stmt.Expression = p.parseExpression(lowest); stmt.Expression == nil {
		return nil
	}

	p.skipSemicolon()

	return stmt
}

func (p *Parser) skipSemicolon() {
	if p.peek.Kind == token.Semicolon {
		p.advance()
	}
}

// parseBlock parses statements up to the closing brace. On return the
// current token is the '}'.
func (p *Parser) parseBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur}

	p.advance()

	for p.cur.Kind != token.RBrace {
		if p.cur.Kind == token.EOF {
			p.errors = append(p.errors, &Error{
				Kind:     WrongToken,
				Expected: token.RBrace,
				Actual:   p.cur,
			})

			return nil
		}

		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}

		p.advance()
	}

	return block
}

func (p *Parser) parseExpression(prec precedence) ast.Expression {
	fn, ok := p.prefix[p.cur.Kind]
	if !ok {
		if p.cur.Kind == token.Illegal {
			p.fail(p.cur, "illegal token "+strconv.Quote(p.cur.Literal))
		} else {
			p.errors = append(p.errors, &Error{Kind: NoValidPrefix, Actual: p.cur})
		}

		return nil
	}

	left := fn()

	for left != nil &&
		p.peek.Kind != token.Semicolon &&
		prec < precedenceOf(p.peek.Kind) {
		infix, ok := p.infix[p.peek.Kind]
		if !ok {
			break
		}

		p.advance()

		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
}

func (p *Parser) parseInteger() ast.Expression {
	v, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		p.fail(p.cur, "could not parse "+strconv.Quote(p.cur.Literal)+
			" as integer")

		return nil
	}

	return &ast.IntegerLiteral{Token: p.cur, Value: v}
}

func (p *Parser) parseString() ast.Expression {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.cur, Value: p.cur.Kind == token.True}
}

func (p *Parser) parsePrefix() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.cur, Operator: p.cur.Kind}

	p.advance()

	if expr.Right = p.parseExpression(prefix); expr.Right == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.cur,
		Operator: p.cur.Kind,
		Left:     left,
	}

	prec := precedenceOf(p.cur.Kind)

	p.advance()

	if expr.Right = p.parseExpression(prec); expr.Right == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseGroup() ast.Expression {
	p.advance()

	expr := p.parseExpression(lowest)
	if expr == nil || !p.expectPeek(token.RParen) {
		return nil
	}

	return expr
}

func (p *Parser) parseIf() ast.Expression {
	expr := &ast.IfExpression{Token: p.cur}

	if !p.expectPeek(token.LParen) {
		return nil
	}

	p.advance()

	if expr.Condition = p.parseExpression(lowest); expr.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RParen) || !p.expectPeek(token.LBrace) {
		return nil
	}

	if expr.Consequence = p.parseBlock(); expr.Consequence == nil {
		return nil
	}

	if p.peek.Kind == token.Else {
		p.advance()

		if !p.expectPeek(token.LBrace) {
			return nil
		}

		if expr.Alternative = p.parseBlock(); expr.Alternative == nil {
			return nil
		}
	}

	return expr
}

func (p *Parser) parseFunction() ast.Expression {
	expr := &ast.FunctionLiteral{Token: p.cur}

	if !p.expectPeek(token.LParen) {
		return nil
	}

	params, ok := p.parseParameters()
	if !ok || !p.expectPeek(token.LBrace) {
		return nil
	}

	expr.Parameters = params

	if expr.Body = p.parseBlock(); expr.Body == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}

	if p.peek.Kind == token.RParen {
		p.advance()

		return params, true
	}

	for {
		if !p.expectPeek(token.Ident) {
			return nil, false
		}

		params = append(params, &ast.Identifier{Token: p.cur, Name: p.cur.Literal})

		if p.peek.Kind != token.Comma {
			break
		}

		p.advance()
	}

	return params, p.expectPeek(token.RParen)
}

func (p *Parser) parseCall(fn ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.cur, Function: fn}

	args, ok := p.parseExpressionList(token.RParen)
	if !ok {
		return nil
	}

	expr.Arguments = args

	return expr
}

func (p *Parser) parseArray() ast.Expression {
	expr := &ast.ArrayLiteral{Token: p.cur}

	elems, ok := p.parseExpressionList(token.RBracket)
	if !ok {
		return nil
	}

	expr.Elements = elems

	return expr
}

// parseExpressionList parses comma-separated expressions up to end. On entry
// the current token is the opening delimiter. A trailing comma is rejected,
// as in hash literals and parameter lists.
func (p *Parser) parseExpressionList(end token.Kind) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peek.Kind == end {
		p.advance()

		return list, true
	}

	for {
		p.advance()

		expr := p.parseExpression(lowest)
		if expr == nil {
			return nil, false
		}

		list = append(list, expr)

		if p.peek.Kind != token.Comma {
			break
		}

		p.advance()
	}

	return list, p.expectPeek(end)
}

func (p *Parser) parseHash() ast.Expression {
	expr := &ast.HashLiteral{Token: p.cur, Pairs: []ast.HashPair{}}

	if p.peek.Kind == token.RBrace {
		p.advance()

		return expr
	}

	for {
		p.advance()

		key := p.parseExpression(lowest)
		if key == nil || !p.expectPeek(token.Colon) {
			return nil
		}

		p.advance()

		value := p.parseExpression(lowest)
		if value == nil {
			return nil
		}

		expr.Pairs = append(expr.Pairs, ast.HashPair{Key: key, Value: value})

		if p.peek.Kind != token.Comma {
			break
		}

		p.advance()
	}

	if !p.expectPeek(token.RBrace) {
		return nil
	}

	return expr
}

func (p *Parser) parseIndex(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.cur, Left: left}

	p.advance()

	if expr.Index = p.parseExpression(lowest); expr.Index == nil {
		return nil
	}

	if !p.expectPeek(token.RBracket) {
		return nil
	}

	return expr
}
