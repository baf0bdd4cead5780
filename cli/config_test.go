package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	require.NoError(t, err)

	return v
}

func TestLoadConfig(t *testing.T) {
	const doc = `
max_depth: 64
no-cache: true
path:
  - /usr/share/marmoset
  - ./lib
log:
  level: debug
  time_layout: none
`

	r, err := loadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.NoError(t, r.Validate(nil))

	assert.Equal(t, "64", resolve(t, r, "max-depth"))
	assert.Equal(t, true, resolve(t, r, "no-cache"))
	assert.Equal(t, "/usr/share/marmoset,./lib", resolve(t, r, "path"))
	assert.Equal(t, "debug", resolve(t, r, "log-level"))
	assert.Equal(t, "none", resolve(t, r, "log-time-layout"))
	assert.Nil(t, resolve(t, r, "log-format"))
}

func TestLoadConfigEmpty(t *testing.T) {
	r, err := loadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, resolve(t, r, "max-depth"))
}

func TestLoadConfigInvalid(t *testing.T) {
	r, err := loadConfig(strings.NewReader("max-depth: [1, 2\n"))
	require.NoError(t, err)
	assert.Nil(t, resolve(t, r, "max-depth"))
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{"text", "text"},
		{int64(-3), "-3"},
		{uint64(12), "12"},
		{2.5, "2.5"},
		{[]any{"a", uint64(1), false}, "a,1,false"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, flagValue(tt.in), "%#v", tt.in)
	}
}
