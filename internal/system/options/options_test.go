package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, s string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(s), 0o600))

	return path
}

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), c)
}

func TestLoadOverrides(t *testing.T) {
	path := write(t, `
prompt: "> "
history_size: 50
loose_symbols: true
gc_threshold: 10
history: ~/lish-history
init:
  - a.lisp
  - b.lisp
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "> ", c.Prompt)
	require.Equal(t, 50, c.HistorySize)
	require.True(t, c.Loose)
	require.Equal(t, 10, c.GCThreshold)
	require.Equal(t, []string{"a.lisp", "b.lisp"}, c.Init)
	require.Equal(t, Defaults().MaxDepth, c.MaxDepth)

	dir, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "lish-history"), c.History)
}

func TestLoadMalformed(t *testing.T) {
	path := write(t, "prompt: [unterminated\n")

	c, err := Load(path)
	require.Error(t, err)
	require.Equal(t, Defaults(), c)
}

func TestParseCommand(t *testing.T) {
	path := write(t, "prompt: \"$ \"\n")

	o := Parse([]string{"-l", "-c", "(println 1)", "x", "y"}, "test")
	require.Equal(t, "(println 1)", o.Command)
	require.True(t, o.Config.Loose)
	require.False(t, o.Interactive)
	require.Equal(t, []string{"x", "y"}, o.Args[1:])

	o = Parse([]string{"--config=" + path}, "test")
	require.Equal(t, path, o.ConfigPath)
	require.Equal(t, "$ ", o.Config.Prompt)
}

func TestParseScript(t *testing.T) {
	o := Parse([]string{"run.lisp", "1", "2"}, "test")
	require.Equal(t, "run.lisp", o.Script)
	require.Equal(t, []string{"run.lisp", "1", "2"}, o.Args)
	require.False(t, o.Interactive)
}
