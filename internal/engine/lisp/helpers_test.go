package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// build turns Go values into expressions: strings are symbols, ints are
// integers and slices are lists.
func build(e *Env, v any) Expression {
	switch v := v.(type) {
	case Expression:
		return v
	case string:
		return e.Sym(v)
	case int:
		return e.Int(int64(v))
	case float64:
		return e.Float(v)
	case bool:
		return e.Bool(v)
	case []any:
		xs := make([]Expression, len(v))
		for i, x := range v {
			xs[i] = build(e, x)
		}

		return e.List(xs...)
	}

	panic("unsupported test value")
}

func l(xs ...any) []any {
	return xs
}

func newEnv(t *testing.T) (*Env, *bytes.Buffer) {
	t.Helper()

	var stderr bytes.Buffer

	return New(Config{Stderr: &stderr, Stdout: &bytes.Buffer{}}), &stderr
}

func run(t *testing.T, e *Env, v any) Expression {
	t.Helper()

	r, err := e.Run(build(e, v))
	require.NoError(t, err)

	return r
}

func runErr(t *testing.T, e *Env, v any) *Error {
	t.Helper()

	_, err := e.Run(build(e, v))
	require.Error(t, err)

	le, ok := err.(*Error)
	require.True(t, ok, "expected *Error, got %T", err)

	return le
}
