// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// ListFunctions returns the list and pair natives.
func ListFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"car":     car,
		"cdr":     cdr,
		"cons":    cons,
		"first":   first,
		"last":    last,
		"length":  length,
		"list":    list,
		"rest":    rest,
		"reverse": reverse,
		"xar!":    xar,
		"xdr!":    xdr,
	}
}

func items(name string, x lisp.Expression) ([]lisp.Expression, error) {
	xs, ok := x.Items()
	if !ok {
		return nil, mismatch(name, "a list or vector", x)
	}

	return xs, nil
}

func list(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return e.List(args...), nil
}

func first(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("first", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	xs, err := items("first", v[0])
	if err != nil || len(xs) == 0 {
		return e.Nil(), err
	}

	return xs[0], nil
}

func rest(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("rest", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	switch x := v[0].Value().(type) {
	case lisp.Nil:
		return e.Nil(), nil
	case lisp.Pair:
		return x.Tail, nil
	case *lisp.Vector:
		if len(x.Items) < 2 {
			return e.Nil(), nil
		}

		return e.Vector(append([]lisp.Expression{}, x.Items[1:]...)), nil
	}

	return e.Nil(), mismatch("rest", "a list or vector", v[0])
}

func last(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("last", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	xs, err := items("last", v[0])
	if err != nil || len(xs) == 0 {
		return e.Nil(), err
	}

	return xs[len(xs)-1], nil
}

func length(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("length", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	n, err := v[0].Length()
	if err != nil {
		return e.Nil(), err
	}

	return e.Int(int64(n)), nil
}

func reverse(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("reverse", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	xs, err := items("reverse", v[0])
	if err != nil {
		return e.Nil(), err
	}

	r := make([]lisp.Expression, len(xs))
	for i, x := range xs {
		r[len(xs)-1-i] = x
	}

	if _, ok := v[0].Value().(*lisp.Vector); ok {
		return e.Vector(r), nil
	}

	return e.List(r...), nil
}
