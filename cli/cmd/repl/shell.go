package repl

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/log"
	"github.com/ardnew/marmoset/object"
)

func helpMessage() string {
	return `Commands:
  :help    Print this message
  :env     List the bindings made in this session
  :reset   Discard every binding
  :clear   Clear the screen
  :quit    Exit (also Ctrl+D on an empty line)

Anything else is evaluated as a program. Bindings persist between inputs.
Completions appear as you type; Tab and Shift+Tab cycle through them.
Up and Down browse the history.`
}

var commandAlias = map[string]string{
	"h":    "help",
	"?":    "help",
	"q":    "quit",
	"exit": "quit",
}

// outcome is the result of one line of input.
type outcome struct {
	text  string
	err   bool
	quit  bool
	clear bool
}

// shell evaluates lines against a persistent session. It is shared by the
// interactive and line-oriented front ends.
type shell struct {
	session *lang.Session
	logger  log.Logger
}

func (s *shell) exec(ctx context.Context, line string) outcome {
	line = strings.TrimSpace(line)
	if line == "" {
		return outcome{}
	}

	if name, ok := strings.CutPrefix(line, commandPrefix); ok {
		return s.command(ctx, strings.TrimSpace(name))
	}

	s.logger.TraceContext(ctx, "repl eval", slog.String("input", line))

	v, err := s.session.Eval(ctx, line)
	if err != nil {
		var buf bytes.Buffer
		_ = lang.Report(&buf, err)

		return outcome{text: strings.TrimSuffix(buf.String(), "\n"), err: true}
	}

	if v == nil || v.Type() == object.NullType {
		return outcome{}
	}

	return outcome{text: v.Inspect()}
}

func (s *shell) command(ctx context.Context, name string) outcome {
	if alias, ok := commandAlias[name]; ok {
		name = alias
	}

	s.logger.TraceContext(ctx, "repl command", slog.String("command", name))

	switch name {
	case "help":
		return outcome{text: helpMessage()}

	case "env":
		return outcome{text: s.bindings()}

	case "reset":
		s.session.Reset()

		return outcome{text: "session reset"}

	case "clear":
		return outcome{clear: true}

	case "quit":
		return outcome{quit: true}

	default:
		return outcome{
			text: "unknown command " + commandPrefix + name +
				" (try " + commandPrefix + "help)",
			err: true,
		}
	}
}

// bindings lists every non-builtin binding as "name = value".
func (s *shell) bindings() string {
	var b strings.Builder

	for _, name := range s.session.Names() {
		v, ok := s.session.Get(name)
		if !ok {
			continue
		}

		if _, builtin := v.(*object.Builtin); builtin {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(name + " = " + v.Inspect())
	}

	if b.Len() == 0 {
		return "(no bindings)"
	}

	return b.String()
}
