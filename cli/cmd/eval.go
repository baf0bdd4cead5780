package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/marmoset/lang"
)

// Eval evaluates source given on the command line.
type Eval struct {
	Expr []string `arg:"" help:"Program text; multiple arguments are joined with spaces." name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, stdio *Stdio) error {
	src := strings.Join(e.Expr, " ")

	result, err := lang.Eval(ctx, src, optionsFrom(ctx)...)
	if err != nil {
		return ErrEval.With(slog.String("expr", src)).Wrap(err)
	}

	return printResult(stdio.Out, result)
}
