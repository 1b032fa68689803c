package reader

import (
	"testing"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/stretchr/testify/require"
)

func TestScanAccumulates(t *testing.T) {
	r := New(lisp.New(lisp.Config{}), "repl")

	forms, err := r.Scan("(def 'x\n")
	require.NoError(t, err)
	require.Nil(t, forms)
	require.True(t, r.Pending())

	forms, err = r.Scan("  \"a;b\") (list 1\n")
	require.NoError(t, err)
	require.True(t, r.Pending())
	require.Nil(t, forms)

	forms, err = r.Scan("2)\n")
	require.NoError(t, err)
	require.False(t, r.Pending())
	require.Len(t, forms, 2)
	require.Equal(t, `(def 'x "a;b")`, forms[0].String())
	require.Equal(t, "(list 1 2)", forms[1].String())
	require.Equal(t, "repl:2:10", forms[1].Meta().String())
}

func TestScanError(t *testing.T) {
	r := New(lisp.New(lisp.Config{}), "repl")

	_, err := r.Scan("(a))\n")
	require.Error(t, err)
	require.False(t, r.Pending())

	forms, err := r.Scan("b\n")
	require.NoError(t, err)
	require.Len(t, forms, 1)
}

func TestReset(t *testing.T) {
	r := New(lisp.New(lisp.Config{}), "repl")

	_, err := r.Scan("(a\n")
	require.NoError(t, err)
	require.True(t, r.Pending())

	r.Reset()
	require.False(t, r.Pending())
}

func TestReaderIncomplete(t *testing.T) {
	e := lisp.New(lisp.Config{})

	_, err := Reader(e)("file.lisp", "(a")

	kind, ok := lisp.KindOf(err)
	require.True(t, ok)
	require.Equal(t, lisp.Syntax, kind)
}
