package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecutables(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	for path, mode := range map[string]os.FileMode{
		filepath.Join(a, "lish-one"):  0o755,
		filepath.Join(a, "lish-data"): 0o644,
		filepath.Join(b, "lish-two"):  0o700,
		filepath.Join(b, "other"):     0o755,
	} {
		require.NoError(t, os.WriteFile(path, nil, mode))
	}

	require.NoError(t, os.Mkdir(filepath.Join(a, "lish-dir"), 0o755))

	c := New()
	path := strings.Join([]string{a, b, a}, string(os.PathListSeparator))

	c.Populate(path)

	require.Equal(t, []string{"lish-one", "lish-two"}, c.Executables(path, "lish-"))
	require.Equal(t, []string{"other"}, c.Executables(path, "o"))
	require.Empty(t, c.Executables(path, "x"))
}
