package parser

import "github.com/ardnew/marmoset/token"

// precedence is the binding power of an operator. Higher binds tighter.
type precedence int

const (
	lowest      precedence = iota
	equals                 // == !=
	lessGreater            // < > <= >=
	sum                    // + -
	product                // * /
	prefix                 // -x !x
	call                   // f(x)
	index                  // a[i]
)

var precedences = map[token.Kind]precedence{
	token.Equal:        equals,
	token.NotEqual:     equals,
	token.LessThan:     lessGreater,
	token.LessEqual:    lessGreater,
	token.GreaterThan:  lessGreater,
	token.GreaterEqual: lessGreater,
	token.Plus:         sum,
	token.Minus:        sum,
	token.Asterisk:     product,
	token.Slash:        product,
	token.LParen:       call,
	token.LBracket:     index,
}

func precedenceOf(k token.Kind) precedence {
	if p, ok := precedences[k]; ok {
		return p
	}

	return lowest
}
