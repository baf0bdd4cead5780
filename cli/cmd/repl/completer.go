package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/marmoset/lang"
	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/token"
)

// commandPrefix introduces a REPL command instead of program text.
const commandPrefix = ":"

// commands are the REPL commands, without their prefix.
var commands = []string{"help", "env", "reset", "clear", "quit"}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the identifier surrounding cursor and its byte offsets
// in input. The word is empty when the cursor is not touching an
// identifier.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isIdentRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isIdentRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completions available at a word starting at
// wordStart. Directly after a leading command prefix these are the REPL commands;
// anywhere else they are the session's bindings and the keywords.
func candidates(s *lang.Session, input string, wordStart int) []string {
	if strings.TrimSpace(input[:wordStart]) == commandPrefix {
		return commands
	}

	names := append(s.Names(), token.Keywords()...)
	slices.Sort(names)

	return slices.Compact(names)
}

// complete finds fuzzy matches for the word under cursor, best first.
func complete(s *lang.Session, input string, cursor int) (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	matches = fuzzy.Find(word, candidates(s, input, start))

	// Hide the lone exact match; there is nothing left to complete.
	if len(matches) == 1 && matches[0].Str == word {
		return nil, start, end
	}

	return matches, start, end
}

// isFunction reports whether name is bound to something callable.
func isFunction(s *lang.Session, name string) bool {
	v, ok := s.Get(name)
	if !ok {
		return false
	}

	switch v.(type) {
	case *object.Function, *object.Builtin:
		return true
	default:
		return false
	}
}

// renderCandidateBar builds the single-line completion bar, cut short with
// an ellipsis when it would exceed width.
func renderCandidateBar(
	s *lang.Session,
	matches fuzzy.Matches,
	selected int,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	room := width - lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected, isFunction(s, match.Str))

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w > room {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Callable names get a "()" suffix.
func renderCandidate(match fuzzy.Match, selected, callable bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if callable {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
