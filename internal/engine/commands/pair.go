// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

func pairArg(name string, x lisp.Expression) (lisp.Pair, error) {
	p, ok := x.Value().(lisp.Pair)
	if !ok {
		return p, mismatch(name, "a pair", x)
	}

	return p, nil
}

func cons(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("cons", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	return e.Cons(v[0], v[1]), nil
}

func car(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("car", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	if v[0].IsNil() {
		return e.Nil(), nil
	}

	p, err := pairArg("car", v[0])
	if err != nil {
		return e.Nil(), err
	}

	return p.Head, nil
}

func cdr(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("cdr", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	if v[0].IsNil() {
		return e.Nil(), nil
	}

	p, err := pairArg("cdr", v[0])
	if err != nil {
		return e.Nil(), err
	}

	return p.Tail, nil
}

func xar(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("xar!", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	p, err := pairArg("xar!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	p.Head = v[1]
	v[0].Mutate(p)

	return v[0], nil
}

func xdr(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("xdr!", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	p, err := pairArg("xdr!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	p.Tail = v[1]
	v[0].Mutate(p)

	return v[0], nil
}
