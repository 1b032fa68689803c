//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package process

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithoutTerminal(t *testing.T) {
	p := New(-1)

	require.Equal(t, os.Getpid(), p.ID())
	require.Equal(t, p.Group(), p.ForegroundGroup())

	// No terminal means nothing to hand over.
	p.RestoreForegroundGroup()
	p.SetForegroundGroup(1)
}

func TestSysProcAttr(t *testing.T) {
	p := New(-1)

	sys := p.SysProcAttr(true, 42)
	require.True(t, sys.Setpgid)
	require.Equal(t, 42, sys.Pgid)
	require.False(t, sys.Foreground)

	p = &T{group: 1, id: 1, terminal: 5}

	sys = p.SysProcAttr(true, 0)
	require.True(t, sys.Foreground)
	require.Equal(t, 5, sys.Ctty)

	sys = p.SysProcAttr(false, 7)
	require.False(t, sys.Foreground)
	require.Equal(t, 7, sys.Pgid)
}
