package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/marmoset/cli/cmd"
	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/pkg"
)

// CLI is the top-level command-line interface for marmoset.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Path     []string         `help:"Directory searched for scripts; repeatable, searched before $MARMOSET_PATH." short:"I" type:"path"`
	MaxDepth int              `default:"0"                                                                      help:"Maximum function call depth (0 is unlimited)."`
	NoCache  bool             `help:"Parse every input even if identical text was parsed before."`
	Version  kong.VersionFlag `help:"Print version and exit."                                                  short:"V"`

	Run  cmd.Run  `cmd:"" help:"Evaluate script files in one session."`
	Eval cmd.Eval `cmd:"" help:"Evaluate program text given as arguments."`
	Fmt  cmd.Fmt  `cmd:"" help:"Print a script in another format."`
	Repl cmd.Repl `cmd:"" default:"1" help:"Start an interactive session (default)."`
	Init cmd.Init `cmd:"" help:"Write a configuration file holding the current flag values."`
}

// options returns the language options selected by global flags.
func (c *CLI) options() []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxCallDepth(c.MaxDepth),
		lang.WithCache(!c.NoCache),
	}
}

// Run executes the marmoset CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, as for --help.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, cmd.DefaultStdio(), exit, args)
}

func run(
	ctx context.Context,
	stdio *cmd.Stdio,
	exit func(code int),
	args []string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{
		"version":             pkg.Name + " " + pkg.Version,
		cmd.ConfigIdentifier:  configFile,
		cmd.HistoryIdentifier: pkg.CachePath(baseHistory),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdio.Out, stdio.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadConfig, configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithOptions(ctx, cli.options()...)
	ctx = cmd.WithSearchPath(ctx, cmd.SearchPath(cli.Path...))

	ktx.BindTo(ctx, (*context.Context)(nil))

	return ktx.Run(stdio)
}

// defaultDirMode is the permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(pkg.ConfigDir(), defaultDirMode); err != nil {
		return err
	}

	return os.MkdirAll(pkg.CacheDir(), defaultDirMode)
}
