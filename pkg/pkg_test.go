package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, "marmoset", Name)
	assert.NotEmpty(t, Description)
	assert.Regexp(t, `^\d+\.\d+\.\d+`, Version)
	require.NotEmpty(t, Author)

	for _, a := range Author {
		assert.False(t, a.Name == "" && a.Email == "")
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/usr/bin/marmoset", "marmoset"},
		{"/tmp/__debug_bin123", Name},
		{"C:/bin/mar.exe", "mar"},
		{"/home/u/.hidden", Name},
		{"/home/u/.mar.sh", "mar"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, prefixOf(tt.path))
		})
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, Prefix(), filepath.Base(ConfigDir()))
	assert.Equal(t, Prefix(), filepath.Base(CacheDir()))
	assert.Equal(t,
		filepath.Join(ConfigDir(), "config.yaml"),
		ConfigPath("config.yaml"),
	)
	assert.Equal(t, CacheDir(), CachePath())
}

func TestErrorChain(t *testing.T) {
	err := ErrReadInput.Wrap(fs.ErrNotExist)

	assert.Equal(t, "failed to read input: file does not exist", err.Error())
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = ErrScriptNotFound.Wrapf("%s", "fib.mar")
	assert.Equal(t, "script not found: fib.mar", err.Error())

	chain := MakeError(nil, errors.New("a"), nil, errors.New("b"))
	assert.Len(t, chain, 2)
	assert.Empty(t, MakeError())
}

func TestErrorIs(t *testing.T) {
	assert.ErrorIs(t, ErrScriptNotFound, ErrScriptNotFound)

	err := ErrScriptNotFound.Wrapf("%s", "x")
	assert.ErrorIs(t, err, ErrScriptNotFound)
	assert.NotErrorIs(t, err, ErrReadInput)

	err = ErrReadInput.Wrap(fs.ErrPermission)
	assert.ErrorIs(t, err, ErrReadInput)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrConfig)

	wrapped := fmt.Errorf("loading: %w", ErrConfig.Wrap(errors.New("bad")))
	assert.ErrorIs(t, wrapped, ErrConfig)

	assert.NotErrorIs(t, Error{}, ErrConfig)
	assert.NotErrorIs(t, ErrConfig, Error{})
}

func TestErrorWrapCopies(t *testing.T) {
	base := ErrReadInput.Wrap(errors.New("a"))

	x := base.Wrap(errors.New("x"))
	y := base.Wrap(errors.New("y"))

	assert.Equal(t, "failed to read input: a: x", x.Error())
	assert.Equal(t, "failed to read input: a: y", y.Error())
	assert.Len(t, ErrReadInput, 1)
}

func TestUnwrapErrors(t *testing.T) {
	inner := errors.New("inner")
	outer := errors.Join(inner, errors.New("other"))

	chain := UnwrapErrors(outer)
	require.Len(t, chain, 3)
	assert.Equal(t, inner, chain[0])
	assert.Equal(t, outer, chain[2])
	assert.Nil(t, UnwrapErrors(nil))
}
