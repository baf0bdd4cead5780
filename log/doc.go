// Package log is a thin, concurrency-safe layer over [log/slog].
//
// It adds a [LevelTrace] below Debug, named time layouts, and a colorized
// text handler for terminals. A zero [Logger] discards everything, so
// library types can embed one without checking for nil:
//
//	type Parser struct {
//		logger log.Logger
//	}
//
//	p.logger.TraceContext(ctx, "parse complete", slog.Int("statements", n))
//
// Construct a live logger with [Make] and functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// default logger that the command line configures once with [Config].
package log
