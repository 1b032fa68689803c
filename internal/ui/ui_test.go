package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelmacinnis/lish/internal/engine"
	"github.com/michaelmacinnis/lish/internal/system/cache"
	"github.com/stretchr/testify/require"
)

func TestCompleteSymbols(t *testing.T) {
	e, err := engine.New(engine.Options{})
	require.NoError(t, err)

	complete := Completer(e.Env(), nil, "")

	head, cs, tail := complete("(prog x)", 5)
	require.Equal(t, "(", head)
	require.Equal(t, []string{"progn"}, cs)
	require.Equal(t, " x)", tail)

	_, cs, _ = complete("(defm", 5)
	require.Equal(t, []string{"defmacro"}, cs)

	_, cs, _ = complete("(", 1)
	require.Empty(t, cs)
}

func TestCompletePrograms(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "progtool"), nil, 0o755))

	e, err := engine.New(engine.Options{})
	require.NoError(t, err)

	complete := Completer(e.Env(), cache.New(), dir)

	_, cs, _ := complete("(prog", 5)
	require.Equal(t, []string{"progn", "progtool"}, cs)

	_, cs, _ = complete("(list prog", 10)
	require.Equal(t, []string{"progn"}, cs)
}

func TestTrim(t *testing.T) {
	require.Equal(t, "b\nc\n", trim("a\nb\nc\n", 2))
	require.Equal(t, "a\nb\n", trim("a\nb\n", 0))
}
