package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/lexer"
	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/parser"
)

// Parse parses source and returns the program. If any statement fails to
// parse, the returned error is a [*ParseError] listing every problem and
// the program is nil.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	cfg := makeConfig(opts...)

	if cfg.cache {
		return parseCached(ctx, cfg, source)
	}

	return parse(ctx, cfg, source)
}

// ParseReader reads all of r and parses it as with [Parse].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*ast.Program, error) {
	cfg := makeConfig(opts...)

	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	cfg.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true))

	return Parse(ctx, string(data), opts...)
}

func parse(ctx context.Context, cfg config, source string) (*ast.Program, error) {
	p := parser.New(lexer.New(source), parser.WithLogger(cfg.logger))
	prog := p.ParseProgramContext(ctx)

	if errs := p.Errors(); len(errs) > 0 {
		return nil, NewParseError(errs, source)
	}

	return prog, nil
}

// Eval parses and evaluates source in a fresh [Session].
func Eval(ctx context.Context, source string, opts ...Option) (object.Object, error) {
	return NewSession(opts...).Eval(ctx, source)
}
