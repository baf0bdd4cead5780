package cmd

import (
	"context"

	"github.com/ardnew/marmoset/cli/cmd/repl"
	"github.com/ardnew/marmoset/log"
)

// Repl starts an interactive session.
type Repl struct {
	History   string `default:"${history}" help:"History file." type:"path"`
	NoHistory bool   `help:"Neither read nor write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, stdio *Stdio) error {
	history := r.History
	if r.NoHistory {
		history = ""
	}

	return repl.Run(ctx, repl.Config{
		In:      stdio.In,
		Out:     stdio.Out,
		History: history,
		Options: optionsFrom(ctx),
		Logger:  log.Default(),
	})
}
