package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/log"
)

const prompt = ">> "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// Config configures [Run].
type Config struct {
	In  io.Reader
	Out io.Writer
	// History is the path of the history file. Empty keeps history in
	// memory only.
	History string
	Options []lang.Option
	Logger  log.Logger
}

// Run reads and evaluates input until it is exhausted or the user quits.
// When In is a terminal the interactive editor is used; otherwise input is
// read line by line and results are written to Out.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if cfg.In == nil {
		return ErrNoInput
	}

	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	sh := &shell{
		session: lang.NewSession(cfg.Options...),
		logger:  cfg.Logger,
	}

	if !isTerminal(cfg.In) {
		cfg.Logger.TraceContext(ctx, "repl start", slog.String("mode", "lines"))

		return runLines(ctx, sh, cfg.In, cfg.Out)
	}

	history := NewHistory(cfg.History)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", cfg.History),
			slog.Any("error", err))
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("mode", "terminal"),
		slog.Int("history", history.Len()))

	p := tea.NewProgram(
		newModel(ctx, sh, history),
		tea.WithContext(ctx),
		tea.WithInput(cfg.In),
		tea.WithOutput(cfg.Out),
	)
	_, err = p.Run()

	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })

	return ok && term.IsTerminal(int(f.Fd()))
}

// runLines evaluates each line of r, writing results and errors to w.
func runLines(ctx context.Context, sh *shell, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		out := sh.exec(ctx, scanner.Text())
		if out.quit {
			return nil
		}

		if out.text != "" {
			if _, err := fmt.Fprintln(w, out.text); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}

const defaultWidth = 80

// model is the Bubble Tea model for the interactive REPL.
type model struct {
	ctx          context.Context
	input        textinput.Model
	shell        *shell
	history      *History
	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	selected     int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
}

func newModel(ctx context.Context, sh *shell, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctx:        ctx,
		input:      ti,
		shell:      sh,
		history:    history,
		historyIdx: history.Len(),
		selected:   -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(
			strconv.Itoa(m.historyIdx+1) + "/" + strconv.Itoa(m.history.Len()),
		))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(
			"Type a program, or " + commandPrefix + "help for commands",
		))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.shell.session, m.matches, m.selected, m.width,
		))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive {
			m.tabActive = false
			m.refresh()

			return m, nil
		}

		return m.execute()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.browse(-1), nil

	case tea.KeyDown:
		return m.browse(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refresh()
		}

		return m, nil
	}

	// Any other key accepts a cycled candidate.
	m.tabActive = false

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// cycle moves the selected candidate by step and writes it into the input.
// A single candidate is accepted outright.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.matches = nil
		m.selected = -1

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if step > 0 {
			m.selected = -1
		} else {
			m.selected = 0
		}
	}

	n := len(m.matches)
	m.selected = ((m.selected+step)%n + n) % n
	m.replaceWord(m.matches[m.selected].Str)

	return m
}

func (m *model) replaceWord(word string) {
	input := m.input.Value()
	m.input.SetValue(input[:m.wordStart] + word + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(word))
	m.wordEnd = m.wordStart + len(word)
}

// refresh recomputes completions for the word under the cursor.
func (m *model) refresh() {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = complete(
		m.shell.session, m.input.Value(), m.input.Position(),
	)
	m.selected = -1
}

// browse steps through history; stepping past the newest entry clears the
// input.
func (m model) browse(step int) model {
	idx := m.historyIdx + step
	if idx < 0 {
		return m
	}

	m.tabActive = false

	if idx >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refresh()

		return m
	}

	line, err := m.history.Entry(idx)
	if err != nil {
		return m
	}

	m.historyIdx = idx
	m.input.SetValue(line)
	m.input.CursorEnd()
	m.matches = nil

	return m
}

func (m model) execute() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	if err := m.history.Add(line); err != nil {
		m.shell.logger.WarnContext(m.ctx, "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	m.matches = nil

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))
	out := m.shell.exec(m.ctx, line)

	switch {
	case out.quit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case out.clear:
		return m, tea.ClearScreen

	case out.text == "":
		return m, echo

	case out.err:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(out.text)))

	default:
		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out.text)))
	}
}
