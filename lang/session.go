package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/eval"
	"github.com/ardnew/marmoset/object"
)

// Session evaluates successive inputs against one root environment, so
// bindings made by one input are visible to the next. A Session is not safe
// for concurrent use.
type Session struct {
	cfg  config
	opts []Option
	eval *eval.Evaluator
	env  *object.Environment
}

// NewSession returns a session whose root environment holds the built-in
// functions.
func NewSession(opts ...Option) *Session {
	cfg := makeConfig(opts...)

	return &Session{
		cfg:  cfg,
		opts: opts,
		eval: eval.New(
			eval.WithLogger(cfg.logger),
			eval.WithMaxCallDepth(cfg.maxCallDepth),
		),
		env: eval.NewEnvironment(),
	}
}

// Eval parses source and, if it parsed cleanly, evaluates it. Evaluation
// errors are wrapped in [ErrEvaluate] and still match the eval package
// sentinels with [errors.Is].
func (s *Session) Eval(ctx context.Context, source string) (object.Object, error) {
	prog, err := Parse(ctx, source, s.opts...)
	if err != nil {
		return nil, err
	}

	return s.Run(ctx, prog)
}

// Run evaluates an already parsed program.
func (s *Session) Run(ctx context.Context, prog *ast.Program) (object.Object, error) {
	v, err := s.eval.Program(ctx, prog, s.env)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err)
	}

	s.cfg.logger.TraceContext(ctx, "session eval",
		slog.String("result", v.Type().String()))

	return v, nil
}

// Get returns the value bound to name in the root environment.
func (s *Session) Get(name string) (object.Object, bool) {
	return s.env.Get(name)
}

// Names returns every bound name, built-ins included, sorted.
func (s *Session) Names() []string {
	return s.env.Names()
}

// Reset discards every binding made so far.
func (s *Session) Reset() {
	s.env = eval.NewEnvironment()
}
