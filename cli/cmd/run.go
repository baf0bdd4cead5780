package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/object"
)

// Run evaluates one or more scripts in a single session, so later scripts
// see the bindings of earlier ones. The value of the last script is
// printed unless it is null.
type Run struct {
	Files []string `arg:"" help:"Script file(s), or '-' for stdin. Relative names are also searched for in --path." name:"file"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context, stdio *Stdio) error {
	srcs, err := sources(ctx, r.Files)
	if err != nil {
		return ErrRun.Wrap(err)
	}

	session := lang.NewSession(optionsFrom(ctx)...)

	var result object.Object = object.Nil

	for _, src := range srcs {
		text, err := src.read(stdio)
		if err != nil {
			return ErrRun.With(slog.String("file", src.name)).Wrap(err)
		}

		log.DebugContext(ctx, "run script",
			slog.String("file", src.name),
			slog.Int("bytes", len(text)))

		result, err = session.Eval(ctx, text)
		if err != nil {
			return ErrRun.With(slog.String("file", src.name)).Wrap(err)
		}
	}

	return printResult(stdio.Out, result)
}
