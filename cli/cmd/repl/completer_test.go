package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/marmoset/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "len(fo", 6, "fo", 4, 6},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_bracket", "xs[id", 5, "id", 3, 5},
		{"underscore", "my_var", 6, "my_var", 0, 6},
		{"digits", "x1 + y2", 7, "y2", 5, 7},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"command", ":he", 3, "he", 1, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			assert.Equal(t, tt.wantWord, word)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestCandidates(t *testing.T) {
	s := lang.NewSession()
	_, err := s.Eval(t.Context(), "let total = 1;")
	require.NoError(t, err)

	got := candidates(s, "to", 0)
	assert.Contains(t, got, "total")
	assert.Contains(t, got, "push")
	assert.Contains(t, got, "let")
	assert.IsNonDecreasing(t, got)

	assert.Equal(t, commands, candidates(s, ":qu", 1))

	_, start, _ := wordBounds(" : qu", len(" : qu"))
	assert.Equal(t, 3, start)
	assert.Equal(t, commands, candidates(s, " : qu", start))

	assert.NotEqual(t, commands, candidates(s, ":x + qu", 5))
}

func TestComplete(t *testing.T) {
	s := lang.NewSession()

	matches, start, end := complete(s, "1 + pu", 6)
	require.Len(t, matches, 1)
	assert.Equal(t, "push", matches[0].Str)
	assert.Equal(t, 4, start)
	assert.Equal(t, 6, end)

	matches, _, _ = complete(s, "push", 4)
	assert.Empty(t, matches, "exact match needs no completion")

	matches, _, _ = complete(s, "1 + ", 4)
	assert.Empty(t, matches)

	matches, _, _ = complete(s, ":q", 2)
	require.NotEmpty(t, matches)
	assert.Equal(t, "quit", matches[0].Str)
}

func TestIsFunction(t *testing.T) {
	s := lang.NewSession()
	_, err := s.Eval(t.Context(), "let inc = fn(x) { x + 1 }; let n = 2;")
	require.NoError(t, err)

	assert.True(t, isFunction(s, "len"))
	assert.True(t, isFunction(s, "inc"))
	assert.False(t, isFunction(s, "n"))
	assert.False(t, isFunction(s, "missing"))
}

func TestRenderCandidateBar(t *testing.T) {
	s := lang.NewSession()

	matches, _, _ := complete(s, "l", 1)
	require.NotEmpty(t, matches)

	bar := renderCandidateBar(s, matches, -1, 80)
	assert.Contains(t, bar, "len()")
	assert.Empty(t, renderCandidateBar(s, nil, -1, 80))
	assert.Empty(t, renderCandidateBar(s, matches, -1, 0))

	narrow := renderCandidateBar(s, matches, -1, 8)
	assert.Contains(t, narrow, "...")
}
