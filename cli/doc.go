// Package cli contains the command line interface for marmoset.
//
// # Usage
//
//	marmoset                          # interactive session
//	marmoset eval 'let x = 4; x * x'  # prints 16
//	marmoset run lib.mar main.mar     # one session across both files
//	marmoset fmt json main.mar        # syntax tree as JSON
//
// Scripts named on the command line are looked up in the working
// directory first, then in each --path directory, then in $MARMOSET_PATH.
// A name without an extension also matches the same name ending in ".mar".
//
// # Configuration
//
// Global flags may be set in $XDG_CONFIG_HOME/marmoset/config.yaml:
//
//	log:
//	  level: debug
//	max-depth: 10000
//	path: [~/lib/marmoset]
//
// Command-line flags override file values. The init command writes a file
// holding the current values.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, error
//   - --log-format: text, json
//   - --log-time-layout: RFC3339, Kitchen, none, or any Go layout
//   - --log-caller: include caller information
//   - --[no-]log-pretty: colorize text output
//
// At trace level the parser and evaluator report their progress.
//
// # Profiling Options
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread, trace
//   - --pprof-dir: profile output directory (default
//     ~/.cache/marmoset/pprof)
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
package cli
