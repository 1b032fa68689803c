// Released under an MIT license. See LICENSE.

package commands

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// A number is an Int unless float is set.
type number struct {
	f     float64
	i     int64
	float bool
}

func toNumber(name string, x lisp.Expression) (number, error) {
	switch v := x.Value().(type) {
	case lisp.Int:
		return number{f: float64(v), i: int64(v)}, nil
	case lisp.Float:
		return number{f: float64(v), float: true}, nil
	}

	return number{}, mismatch(name, "a number", x)
}

func numbers(name string, args []lisp.Expression) ([]number, error) {
	ns := make([]number, len(args))

	for i, a := range args {
		n, err := toNumber(name, a)
		if err != nil {
			return nil, err
		}

		ns[i] = n
	}

	return ns, nil
}

func (n number) expression(e *lisp.Env) lisp.Expression {
	if n.float {
		return e.Float(n.f)
	}

	return e.Int(n.i)
}

func random(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("random", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	if len(v) == 0 {
		return e.Float(rand.Float64()), nil //nolint:gosec
	}

	n, err := integer("random", v[0])
	if err != nil {
		return e.Nil(), err
	}

	if n <= 0 {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "random: limit must be positive")
	}

	return e.Int(rand.Int63n(n)), nil //nolint:gosec
}

func strToInt(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("str->int", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	s, err := text("str->int", v[0])
	if err != nil {
		return e.Nil(), err
	}

	i, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "str->int: not an integer: %s", s)
	}

	return e.Int(i), nil
}

func strToFloat(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("str->float", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	s, err := text("str->float", v[0])
	if err != nil {
		return e.Nil(), err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "str->float: not a number: %s", s)
	}

	return e.Float(f), nil
}
