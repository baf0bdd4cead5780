package object

import (
	"maps"
	"slices"
)

// Environment is one lexical scope: a set of local bindings and an optional
// enclosing scope.
//
// Environments are shared by reference. Every closure created in a scope
// holds the same *Environment, so bindings added later are visible to all of
// them. An Environment is not safe for concurrent use.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment returns an empty root scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment returns an empty scope nested in outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer

	return env
}

// Outer returns the enclosing scope, or nil for a root scope.
func (e *Environment) Outer() *Environment { return e.outer }

// Get resolves name in this scope, then in each enclosing scope in turn.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if o, ok := env.store[name]; ok {
			return o, true
		}
	}

	return nil, false
}

// Set binds name to o in this scope only, shadowing any outer binding.
func (e *Environment) Set(name string, o Object) Object {
	e.store[name] = o

	return o
}

// Names returns every name visible from this scope, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Depth returns the number of enclosing scopes.
func (e *Environment) Depth() int {
	n := 0
	for env := e.outer; env != nil; env = env.outer {
		n++
	}

	return n
}
