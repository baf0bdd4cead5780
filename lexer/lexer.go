// Package lexer converts marmoset source text into a stream of tokens.
package lexer

import (
	"strconv"

	"github.com/ardnew/marmoset/token"
)

// Lexer is a pull-based byte scanner. Each call to [Lexer.Next] yields the
// next token; once the input is exhausted it yields [token.EOF] forever.
type Lexer struct {
	input []byte
	pos   int // offset of ch
	next  int // offset of the byte after ch
	ch    byte
	line  int
	col   int
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: []byte(input), line: 1}
	l.read()

	return l
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	pos := token.Position{Line: l.line, Column: l.col}
	tok := func(k token.Kind, lit string) token.Token {
		return token.Token{Kind: k, Literal: lit, Pos: pos}
	}

	switch ch := l.ch; {
	case ch == 0 && l.pos >= len(l.input):
		return tok(token.EOF, "")

	case ch == '"':
		s, ok := l.readString()
		if !ok {
			return tok(token.Illegal, `"`+s)
		}

		return tok(token.String, s)

	case isDigit(ch):
		digits := l.readWhile(isDigit)
		if _, err := strconv.ParseInt(digits, 10, 64); err != nil {
			return tok(token.Illegal, digits)
		}

		return tok(token.Int, digits)

	case isLetter(ch):
		ident := l.readWhile(isLetter)

		return tok(token.LookupIdent(ident), ident)
	}

	kind := token.Illegal
	lit := string(l.ch)

	switch l.ch {
	case '=':
		kind = l.either('=', token.Equal, token.Assign)
	case '!':
		kind = l.either('=', token.NotEqual, token.Bang)
	case '<':
		kind = l.either('=', token.LessEqual, token.LessThan)
	case '>':
		kind = l.either('=', token.GreaterEqual, token.GreaterThan)
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Asterisk
	case '/':
		kind = token.Slash
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	}

	if kind != token.Illegal {
		lit = kind.String()
	}

	l.read()

	return tok(kind, lit)
}

// All scans the remaining input and returns every token up to and including
// the terminating [token.EOF].
func (l *Lexer) All() []token.Token {
	var toks []token.Token

	for {
		t := l.Next()
		toks = append(toks, t)

		if t.Kind == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}

	if l.next >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		l.next = len(l.input) + 1
	} else {
		l.ch = l.input[l.next]
		l.pos = l.next
		l.next++
	}

	l.col++
}

func (l *Lexer) peek() byte {
	if l.next >= len(l.input) {
		return 0
	}

	return l.input[l.next]
}

// either consumes a second byte and returns two if the byte after ch is want,
// otherwise it returns one.
func (l *Lexer) either(want byte, two, one token.Kind) token.Kind {
	if l.peek() == want {
		l.read()

		return two
	}

	return one
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.input) && pred(l.ch) {
		l.read()
	}

	return string(l.input[start:l.pos])
}

// readString consumes a double-quoted string and reports whether the closing
// quote was found.
func (l *Lexer) readString() (string, bool) {
	l.read() // opening quote

	start := l.pos
	for l.pos < len(l.input) && l.ch != '"' {
		l.read()
	}

	s := string(l.input[start:min(l.pos, len(l.input))])
	if l.pos >= len(l.input) {
		return s, false
	}

	l.read() // closing quote

	return s, true
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) &&
		(l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.read()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
