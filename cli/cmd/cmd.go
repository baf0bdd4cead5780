package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/pkg"
)

// Stdio holds the streams a command reads from and writes to.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStdio returns the process standard streams.
func DefaultStdio() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type (
	optionsKey    struct{}
	searchPathKey struct{}
)

// WithOptions returns a context carrying the [lang.Option] values every
// command applies when parsing and evaluating.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func optionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return opts
}

// WithSearchPath returns a context carrying the directories searched for
// script names that do not exist relative to the working directory.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// SearchPath prefixes dirs onto the list held by $MARMOSET_PATH.
func SearchPath(dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var path []string

	for _, dir := range filepath.SplitList(list) {
		if dir != "" {
			path = append(path, dir)
		}
	}

	return path
}

// stdinSource names standard input wherever a file name is accepted.
const stdinSource = "-"

// scriptExt is appended to a script name that has no extension when the
// bare name is not found.
const scriptExt = ".mar"

// resolveScript locates name in the working directory or, for relative
// names, in each directory of dirs in order.
func resolveScript(name string, dirs []string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+scriptExt)
	}

	for _, c := range candidates {
		if isFile(c) {
			return c, nil
		}
	}

	if !filepath.IsAbs(name) {
		for _, dir := range dirs {
			for _, c := range candidates {
				if p := filepath.Join(dir, c); isFile(p) {
					return p, nil
				}
			}
		}
	}

	return "", pkg.ErrScriptNotFound.Wrapf("%s", name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// source is one script to parse or evaluate.
type source struct {
	name string
	info os.FileInfo // nil for stdin
}

// sources resolves names to distinct scripts. A file named more than once,
// directly or through a link, is kept only at its first position. Standard
// input may appear at most once.
func sources(ctx context.Context, names []string) ([]source, error) {
	var (
		out   []source
		stdin bool
	)

	dirs := searchPathFrom(ctx)

	for _, name := range names {
		if name == stdinSource {
			if !stdin {
				out = append(out, source{name: stdinSource})
				stdin = true
			}

			continue
		}

		path, err := resolveScript(name, dirs)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		if duplicate(out, info) {
			log.DebugContext(ctx, "skip duplicate script",
				slog.String("path", path))

			continue
		}

		out = append(out, source{name: path, info: info})
	}

	return out, nil
}

func duplicate(srcs []source, info os.FileInfo) bool {
	for _, s := range srcs {
		if s.info != nil && os.SameFile(s.info, info) {
			return true
		}
	}

	return false
}

// open returns a reader for src.
func (s source) open(stdio *Stdio) (io.ReadCloser, error) {
	if s.info == nil {
		return io.NopCloser(stdio.In), nil
	}

	f, err := os.Open(s.name)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return f, nil
}

// read returns the full text of src.
func (s source) read(stdio *Stdio) (string, error) {
	r, err := s.open(stdio)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", pkg.ErrReadInput.Wrap(err)
	}

	return string(data), nil
}

// printResult writes the display form of v followed by a newline. Null
// results print nothing.
func printResult(w io.Writer, v object.Object) error {
	if v == nil || v.Type() == object.NullType {
		return nil
	}

	_, err := io.WriteString(w, v.String()+"\n")

	return err
}
