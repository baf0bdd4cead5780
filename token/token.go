// Package token defines the lexical tokens of the marmoset language.
package token

import "strconv"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	Illegal Kind = iota // illegal
	EOF                 // eof

	Ident  // ident
	Int    // int
	String // string

	Assign   // =
	Bang     // !
	Minus    // -
	Plus     // +
	Asterisk // *
	Slash    // /

	Equal        // ==
	NotEqual     // !=
	LessThan     // <
	LessEqual    // <=
	GreaterThan  // >
	GreaterEqual // >=

	Comma     // ,
	Semicolon // ;
	Colon     // :
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]

	Function // fn
	Let      // let
	True     // true
	False    // false
	If       // if
	Else     // else
	Return   // return
)

var kindName = [...]string{
	Illegal:      "illegal",
	EOF:          "eof",
	Ident:        "ident",
	Int:          "int",
	String:       "string",
	Assign:       "=",
	Bang:         "!",
	Minus:        "-",
	Plus:         "+",
	Asterisk:     "*",
	Slash:        "/",
	Equal:        "==",
	NotEqual:     "!=",
	LessThan:     "<",
	LessEqual:    "<=",
	GreaterThan:  ">",
	GreaterEqual: ">=",
	Comma:        ",",
	Semicolon:    ";",
	Colon:        ":",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Function:     "fn",
	Let:          "let",
	True:         "true",
	False:        "false",
	If:           "if",
	Else:         "else",
	Return:       "return",
}

// String returns the source spelling of fixed tokens and a lowercase class
// name for the variable ones.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindName) {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

var keywords = map[string]Kind{
	"fn":     Function,
	"let":    Let,
	"true":   True,
	"false":  False,
	"if":     If,
	"else":   Else,
	"return": Return,
}

// LookupIdent returns the keyword kind for ident, or [Ident] if it is not a
// reserved word.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}

	return Ident
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}

	return words
}

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a single lexical unit. It is immutable once produced.
//
// Literal holds the identifier name, the digits of an integer, or the
// unquoted contents of a string. For [Illegal] tokens it holds the offending
// text.
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position
}

// String returns the literal for variable tokens and the kind spelling for
// all others.
func (t Token) String() string {
	switch t.Kind {
	case Ident, Int, Illegal:
		return t.Literal

	case String:
		return strconv.Quote(t.Literal)

	default:
		return t.Kind.String()
	}
}
