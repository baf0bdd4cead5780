// Package lang is the embedding interface to the marmoset language.
//
// It ties together the lexer, parser and evaluator behind a small API:
//
//   - [Parse] and [ParseReader] turn source text into an [ast.Program],
//     reporting every syntax error at once as a [*ParseError].
//   - [Eval] runs a complete program in a fresh environment.
//   - [Session] keeps one root environment alive across many inputs, the
//     way an interactive shell does.
//
// # Language
//
// Programs are sequences of statements separated by optional semicolons:
//
//	let fib = fn(n) {
//	  if (n < 2) { n } else { fib(n - 1) + fib(n - 2) }
//	};
//	let squares = fn(arr) {
//	  if (len(arr) == 0) { [] } else {
//	    push(squares(rest(arr)), first(arr) * first(arr))
//	  }
//	};
//	{"fib": fib(10), "squares": squares([1, 2, 3])}
//
// Values are integers, booleans, strings, arrays, hashes, functions and
// null. Only false and null are falsy. Functions are closures over the scope
// that defined them; only function calls open a new scope.
//
// # Caching
//
// Parsed programs are immutable, so [Parse] memoizes them by source text.
// The cache keeps the most recent [CacheCapacity] texts. Disable it with
// [WithCache] or drop every entry with [ClearCache].
package lang
