package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/marmoset/ast"
	"github.com/ardnew/marmoset/lang"
)

// Fmt parses a script and prints it back in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree."`
}

func parseSource(ctx context.Context, stdio *Stdio, name string) (*ast.Program, error) {
	srcs, err := sources(ctx, []string{name})
	if err != nil {
		return nil, err
	}

	r, err := srcs[0].open(stdio)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return lang.ParseReader(ctx, r, optionsFrom(ctx)...)
}

type formatFunc func(context.Context, io.Writer, *ast.Program, int) error

func format(
	ctx context.Context,
	stdio *Stdio,
	source, name string,
	indent int,
	fn formatFunc,
) error {
	prog, err := parseSource(ctx, stdio, source)
	if err != nil {
		return ErrFormat.
			With(slog.String("format", name), slog.String("source", source)).
			Wrap(err)
	}

	if err := fn(ctx, stdio.Out, prog, indent); err != nil {
		return ErrFormat.With(slog.String("format", name)).Wrap(err)
	}

	return nil
}

// Native formats a script as native syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width; 0 prints everything on one line." short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the fmt native command.
func (n *Native) Run(ctx context.Context, stdio *Stdio) error {
	return format(ctx, stdio, n.Source, "native", n.Indent, lang.Format)
}

// JSON formats a script's syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output." short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context, stdio *Stdio) error {
	return format(ctx, stdio, j.Source, "json", j.Indent, lang.FormatJSON)
}

// YAML formats a script's syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 uses flow style." short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context, stdio *Stdio) error {
	return format(ctx, stdio, y.Source, "yaml", y.Indent, lang.FormatYAML)
}

// AST prints a script's syntax tree one node per line.
type AST struct {
	Indent int `default:"2" help:"Indent width per tree level." short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context, stdio *Stdio) error {
	return format(ctx, stdio, a.Source, "ast", a.Indent, lang.FormatTree)
}
