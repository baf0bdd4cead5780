package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type prettyStyles struct {
	time, source, key, value, message lipgloss.Style
	level                             map[slog.Level]lipgloss.Style
}

func makePrettyStyles(r *lipgloss.Renderer) prettyStyles {
	level := func(c string) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}

	return prettyStyles{
		time:    r.NewStyle().Foreground(lipgloss.Color("8")),
		source:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		key:     r.NewStyle().Foreground(lipgloss.Color("6")),
		value:   r.NewStyle(),
		message: r.NewStyle().Bold(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): level("5"),
			slog.Level(LevelDebug): level("4"),
			slog.Level(LevelInfo):  level("2"),
			slog.Level(LevelWarn):  level("3"),
			slog.Level(LevelError): level("1"),
		},
	}
}

// prettyHandler writes colorized single-line records of the form
//
//	TIME LEVEL source message key=value ...
//
// Colors are dropped automatically when the output is not a terminal.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	styles prettyStyles
	attrs  string // preformatted attributes from WithAttrs
	group  string // dotted key prefix from WithGroup
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		styles: makePrettyStyles(lipgloss.NewRenderer(w)),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.replace(nil, slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			buf.WriteString(h.styles.time.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := h.replace(nil, slog.Any(slog.LevelKey, r.Level)).Value.String()
	style, ok := h.styles.level[r.Level]
	if !ok {
		style = h.styles.message
	}

	buf.WriteString(style.Render(fmt.Sprintf("%-5s", level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			buf.WriteByte(' ')
			buf.WriteString(h.styles.source.Render(
				src.File + ":" + strconv.Itoa(src.Line),
			))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.message.Render(r.Message))
	buf.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.group, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer
	for _, a := range attrs {
		h.appendAttr(&buf, h.group, a)
	}

	c := *h
	c.attrs += buf.String()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group += name + "."

	return &c
}

func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

func (h *prettyHandler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}

		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range group {
			h.appendAttr(buf, prefix, g)
		}

		return
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	var groups []string
	if prefix != "" {
		groups = strings.Split(strings.TrimSuffix(prefix, "."), ".")
	}

	if a = h.replace(groups, a); a.Equal(slog.Attr{}) {
		return
	}

	val := a.Value.String()
	if val == "" || strings.ContainsAny(val, " \t\n\"=") {
		val = strconv.Quote(val)
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.styles.value.Render(val))
}
