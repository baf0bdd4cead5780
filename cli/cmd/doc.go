// Package cmd implements the marmoset subcommands: run, eval, fmt, init,
// and repl. Each command is a kong command struct whose Run method is
// invoked with the bound [context.Context] and [*Stdio].
package cmd

const (
	// ConfigIdentifier is the kong variable holding the path to the
	// configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable holding the default path of the
	// REPL history file.
	HistoryIdentifier = "history"

	// PathEnv is the environment variable listing script directories.
	PathEnv = "MARMOSET_PATH"
)
