// Package eval implements a tree-walking interpreter for marmoset programs.
//
// Evaluation is synchronous and strictly left to right. The first error
// aborts the whole evaluation and is returned as an [*Error].
package eval

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/token"
)

// Evaluator walks syntax trees. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	logger   log.Logger
	maxDepth int
	depth    int
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(ev *Evaluator) { ev.logger = logger }
}

// WithMaxCallDepth limits how deeply function calls may nest. Calls beyond
// the limit fail with [CallDepthExceeded]. Zero means no limit, in which
// case runaway recursion exhausts the goroutine stack.
func WithMaxCallDepth(n int) Option {
	return func(ev *Evaluator) { ev.maxDepth = max(n, 0) }
}

// New returns an evaluator configured by opts.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{}
	for _, opt := range opts {
		opt(ev)
	}

	return ev
}

// Eval evaluates prog in env with a default [Evaluator].
func Eval(
	ctx context.Context,
	prog *ast.Program,
	env *object.Environment,
) (object.Object, error) {
	return New().Program(ctx, prog, env)
}

// Program evaluates every statement of prog in env. A top-level return ends
// the program early and yields the returned value.
func (ev *Evaluator) Program(
	ctx context.Context,
	prog *ast.Program,
	env *object.Environment,
) (object.Object, error) {
	ev.logger.TraceContext(ctx, "eval start",
		slog.Int("statements", len(prog.Statements)))

	result, err := ev.Eval(ctx, prog, env)
	if err != nil {
		ev.logger.TraceContext(ctx, "eval failed", slog.Any("error", err))

		return nil, err
	}

	ev.logger.TraceContext(ctx, "eval complete",
		slog.String("type", result.Type().String()))

	return result, nil
}

// Eval evaluates a single node in env. Any return signal is unwrapped, so
// the result is always an ordinary value.
func (ev *Evaluator) Eval(
	ctx context.Context,
	node ast.Node,
	env *object.Environment,
) (object.Object, error) {
	v, err := ev.eval(ctx, node, env)

	var u *unwind
	if errors.As(err, &u) {
		v, err = u.ret, nil
	}

	if err != nil {
		return nil, err
	}

	if r, ok := v.(*object.ReturnValue); ok {
		return r.Value, nil
	}

	return v, nil
}

func (ev *Evaluator) eval(
	ctx context.Context,
	node ast.Node,
	env *object.Environment,
) (object.Object, error) {
	switch node := node.(type) {
	case *ast.BlockStatement:
		return ev.evalBlock(ctx, node, env)

	case ast.Statement:
		return ev.evalStatement(ctx, node, env)

	case ast.Expression:
		return ev.evalExpression(ctx, node, env)

	default:
		return nil, newError(ImpossibleState, "unknown node %T", node)
	}
}

// evalBlock evaluates statements in env without opening a new scope. It
// stops at the first return value and passes it on still wrapped.
func (ev *Evaluator) evalBlock(
	ctx context.Context,
	block *ast.BlockStatement,
	env *object.Environment,
) (object.Object, error) {
	var result object.Object = object.Nil

	for _, stmt := range block.Statements {
		v, err := ev.evalStatement(ctx, stmt, env)
		if err != nil {
			return nil, err
		}

		if _, ok := v.(*object.ReturnValue); ok {
			return v, nil
		}

		result = v
	}

	return result, nil
}

func (ev *Evaluator) evalStatement(
	ctx context.Context,
	stmt ast.Statement,
	env *object.Environment,
) (object.Object, error) {
	v, err := ev.statement(ctx, stmt, env)

	var u *unwind
	if errors.As(err, &u) {
		return u.ret, nil
	}

	return v, err
}

func (ev *Evaluator) statement(
	ctx context.Context,
	stmt ast.Statement,
	env *object.Environment,
) (object.Object, error) {
	switch stmt := stmt.(type) {
	case *ast.LetStatement:
		v, err := ev.value(ctx, stmt.Value, env)
		if err != nil {
			return nil, err
		}

		env.Set(stmt.Name.Name, v)

		return object.Nil, nil

	case *ast.ReturnStatement:
		v, err := ev.value(ctx, stmt.Value, env)
		if err != nil {
			return nil, err
		}

		return &object.ReturnValue{Value: v}, nil

	case *ast.ExpressionStatement:
		return ev.evalExpression(ctx, stmt.Expression, env)

	default:
		return nil, newError(ImpossibleState, "unknown statement %T", stmt).
			at(stmt.Pos())
	}
}

// value evaluates an expression whose result feeds another computation. A
// return escaping a nested block surfaces as an unwind error so the caller
// stops and the enclosing statement can pass it on.
func (ev *Evaluator) value(
	ctx context.Context,
	expr ast.Expression,
	env *object.Environment,
) (object.Object, error) {
	v, err := ev.evalExpression(ctx, expr, env)
	if err != nil {
		return nil, err
	}

	if r, ok := v.(*object.ReturnValue); ok {
		return nil, &unwind{ret: r}
	}

	return v, nil
}

func (ev *Evaluator) values(
	ctx context.Context,
	exprs []ast.Expression,
	env *object.Environment,
) ([]object.Object, error) {
	vs := make([]object.Object, 0, len(exprs))

	for _, expr := range exprs {
		v, err := ev.value(ctx, expr, env)
		if err != nil {
			return nil, err
		}

		vs = append(vs, v)
	}

	return vs, nil
}

func (ev *Evaluator) evalExpression(
	ctx context.Context,
	expr ast.Expression,
	env *object.Environment,
) (object.Object, error) {
	switch expr := expr.(type) {
	case *ast.IntegerLiteral:
		return &object.Integer{Value: expr.Value}, nil

	case *ast.StringLiteral:
		return &object.String{Value: expr.Value}, nil

	case *ast.BooleanLiteral:
		return object.Bool(expr.Value), nil

	case *ast.Identifier:
		if v, ok := env.Get(expr.Name); ok {
			return v, nil
		}

		return nil, newError(IdentifierNotFound, "could not find %s", expr.Name).
			at(expr.Pos())

	case *ast.PrefixExpression:
		right, err := ev.value(ctx, expr.Right, env)
		if err != nil {
			return nil, err
		}

		v, err := prefixOperator(expr.Operator, right)

		return v, locate(err, expr.Pos())

	case *ast.InfixExpression:
		left, err := ev.value(ctx, expr.Left, env)
		if err != nil {
			return nil, err
		}

		right, err := ev.value(ctx, expr.Right, env)
		if err != nil {
			return nil, err
		}

		v, err := infixOperator(expr.Operator, left, right)

		return v, locate(err, expr.Pos())

	case *ast.IfExpression:
		cond, err := ev.value(ctx, expr.Condition, env)
		if err != nil {
			return nil, err
		}

		switch {
		case object.IsTruthy(cond):
			return ev.evalBlock(ctx, expr.Consequence, env)

		case expr.Alternative != nil:
			return ev.evalBlock(ctx, expr.Alternative, env)

		default:
			return object.Nil, nil
		}

	case *ast.FunctionLiteral:
		return &object.Function{
			Parameters: expr.ParameterNames(),
			Body:       expr.Body,
			Env:        env,
		}, nil

	case *ast.CallExpression:
		return ev.evalCall(ctx, expr, env)

	case *ast.ArrayLiteral:
		elems, err := ev.values(ctx, expr.Elements, env)
		if err != nil {
			return nil, err
		}

		return &object.Array{Elements: elems}, nil

	case *ast.HashLiteral:
		return ev.evalHash(ctx, expr, env)

	case *ast.IndexExpression:
		return ev.evalIndex(ctx, expr, env)

	default:
		return nil, newError(ImpossibleState, "unknown expression %T", expr).
			at(expr.Pos())
	}
}

func (ev *Evaluator) evalCall(
	ctx context.Context,
	call *ast.CallExpression,
	env *object.Environment,
) (object.Object, error) {
	callee, err := ev.value(ctx, call.Function, env)
	if err != nil {
		return nil, err
	}

	switch callee.(type) {
	case *object.Function, *object.Builtin:
	default:
		return nil, invalidObjectType(object.FunctionType, callee).at(call.Pos())
	}

	args, err := ev.values(ctx, call.Arguments, env)
	if err != nil {
		return nil, err
	}

	v, err := ev.apply(ctx, callee, args)

	return v, locate(err, call.Pos())
}

// apply invokes fn with already evaluated arguments.
func (ev *Evaluator) apply(
	ctx context.Context,
	fn object.Object,
	args []object.Object,
) (object.Object, error) {
	switch fn := fn.(type) {
	case *object.Builtin:
		ev.logger.TraceContext(ctx, "builtin",
			slog.String("name", fn.Name), slog.Int("args", len(args)))

		return fn.Fn(ctx, args...)

	case *object.Function:
		if len(args) != len(fn.Parameters) {
			return nil, paramCount(len(fn.Parameters), len(args))
		}

		if err := ctx.Err(); err != nil {
			e := newError(Canceled, "evaluation canceled")
			e.err = err

			return nil, e
		}

		ev.depth++
		defer func() { ev.depth-- }()

		if ev.maxDepth > 0 && ev.depth > ev.maxDepth {
			return nil, newError(CallDepthExceeded,
				"maximum call depth %d exceeded", ev.maxDepth)
		}

		scope := object.NewEnclosedEnvironment(fn.Env)
		for i, name := range fn.Parameters {
			scope.Set(name, args[i])
		}

		if ev.logger.Enabled(ctx, log.LevelTrace) {
			ev.logger.TraceContext(ctx, "call",
				slog.Int("depth", ev.depth),
				slog.Int("scope", scope.Depth()),
				slog.Int("args", len(args)))
		}

		v, err := ev.evalBlock(ctx, fn.Body, scope)
		if err != nil {
			return nil, err
		}

		if r, ok := v.(*object.ReturnValue); ok {
			return r.Value, nil
		}

		return v, nil

	default:
		return nil, newError(ImpossibleState,
			"%s passed the callable check but cannot be called", fn.Type())
	}
}

func (ev *Evaluator) evalHash(
	ctx context.Context,
	lit *ast.HashLiteral,
	env *object.Environment,
) (object.Object, error) {
	hash := object.NewHash(len(lit.Pairs))

	for _, pair := range lit.Pairs {
		key, err := ev.value(ctx, pair.Key, env)
		if err != nil {
			return nil, err
		}

		val, err := ev.value(ctx, pair.Value, env)
		if err != nil {
			return nil, err
		}

		k, ok := object.KeyOf(key)
		if !ok {
			return nil, invalidHashKey(key).at(pair.Key.Pos())
		}

		hash.Put(k, key, val)
	}

	return hash, nil
}

func (ev *Evaluator) evalIndex(
	ctx context.Context,
	expr *ast.IndexExpression,
	env *object.Environment,
) (object.Object, error) {
	left, err := ev.value(ctx, expr.Left, env)
	if err != nil {
		return nil, err
	}

	switch left.(type) {
	case *object.Array, *object.Hash:
	default:
		return nil, indexNotSupported(left).at(expr.Pos())
	}

	index, err := ev.value(ctx, expr.Index, env)
	if err != nil {
		return nil, err
	}

	v, err := indexOperator(left, index)

	return v, locate(err, expr.Pos())
}

// locate stamps pos on an evaluation error that has no position yet.
func locate(err error, pos token.Position) error {
	var e *Error
	if errors.As(err, &e) {
		e.at(pos)
	}

	return err
}
