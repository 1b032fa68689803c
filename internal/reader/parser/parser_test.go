package parser

import (
	"testing"

	"github.com/michaelmacinnis/lish/internal/engine/boot"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/michaelmacinnis/lish/internal/reader/lexer"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, e *lisp.Env, s string) string {
	t.Helper()

	l := lexer.New("test")

	l.Scan(s)

	forms, err := New(e, l.Token).Parse()
	require.NoError(t, err)

	p := ""
	for _, f := range forms {
		p += f.String() + "\n"
	}

	return p
}

func check(t *testing.T, s string) {
	t.Helper()

	e := lisp.New(lisp.Config{})

	p := parse(t, e, s)
	r := parse(t, e, p)

	if p != r {
		t.Fatalf("Parsed (%s) and reparsed (%s) do not match", p, r)
	}
}

func TestBoot(t *testing.T) {
	check(t, boot.Script())
}

func TestBquote(t *testing.T) {
	check(t, "`(a ,b ,@c)\n")
}

func TestDotted(t *testing.T) {
	check(t, "(1 . 2)\n")
}

func TestNested(t *testing.T) {
	check(t, "(def 'f (fn (x &rest y) (if (> x 1) #(x y) \"s\\t\")))\n")
}

func TestQuotedUnquote(t *testing.T) {
	check(t, "`(def ',name 1)\n")
}

func TestAtoms(t *testing.T) {
	e := lisp.New(lisp.Config{})

	tests := []struct {
		in, out, kind string
	}{
		{"42", "42", "Int"},
		{"-7", "-7", "Int"},
		{"0x1f", "31", "Int"},
		{"1.5", "1.5", "Float"},
		{"-.5", "-0.5", "Float"},
		{"1e3", "1000.0", "Float"},
		{"inf", "inf", "Symbol"},
		{"-", "-", "Symbol"},
		{"nil", "nil", "Nil"},
		{"t", "t", "True"},
		{`"a\nb"`, `"a\nb"`, "String"},
		{`#\space`, `#\space`, "Char"},
		{`#\x`, `#\x`, "Char"},
		{":kw", ":kw", "Symbol"},
		{"()", "nil", "Nil"},
	}

	for _, tt := range tests {
		l := lexer.New("test")
		l.Scan(tt.in + "\n")

		forms, err := New(e, l.Token).Parse()
		require.NoError(t, err, tt.in)
		require.Len(t, forms, 1, tt.in)
		require.Equal(t, tt.out, forms[0].String(), tt.in)
		require.Equal(t, tt.kind, forms[0].Type(), tt.in)
	}
}

func TestIncomplete(t *testing.T) {
	e := lisp.New(lisp.Config{})

	for _, s := range []string{"(a b", "'", "#(1", "(a . "} {
		l := lexer.New("test")
		l.Scan(s + "\n")

		_, err := New(e, l.Token).Parse()
		require.ErrorIs(t, err, ErrIncomplete, s)
	}
}

func TestUnexpectedClose(t *testing.T) {
	e := lisp.New(lisp.Config{})

	l := lexer.New("test")
	l.Scan("(a))\n")

	_, err := New(e, l.Token).Parse()

	kind, ok := lisp.KindOf(err)
	require.True(t, ok)
	require.Equal(t, lisp.Syntax, kind)
	require.Contains(t, err.Error(), "test:1:4")
}

func TestMeta(t *testing.T) {
	e := lisp.New(lisp.Config{})

	l := lexer.New("file.lisp")
	l.Scan("\n  (a b)\n")

	forms, err := New(e, l.Token).Parse()
	require.NoError(t, err)
	require.Equal(t, "file.lisp:2:3", forms[0].Meta().String())
}
