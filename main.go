package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/marmoset/cli"
	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		_ = lang.Report(os.Stderr, err)

		log.Debug("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
