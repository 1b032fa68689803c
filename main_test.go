package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.Equal(t, 0, run([]string{"-c", "(def 'x 1)"}))
	require.Equal(t, 4, run([]string{"-c", "(exit 4)"}))
	require.Equal(t, 1, run([]string{"-c", "(no-such-function-or-program-for-lish)"}))
}

func TestRunScript(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "args.lisp")
	require.NoError(t, os.WriteFile(path, []byte(`
(if (= (length *args*) 3)
  (exit (str->int (car (cdr (cdr *args*)))))
  (exit 9))
`), 0o600))

	require.Equal(t, 7, run([]string{path, "a", "7"}))
}
