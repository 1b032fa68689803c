// Released under an MIT license. See LICENSE.

package commands

import (
	"strings"

	"github.com/michaelmacinnis/lish/internal/common/validate"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// RelationalFunctions returns the comparison natives.
func RelationalFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"<":      chain("<", func(c int) bool { return c < 0 }),
		"<=":     chain("<=", func(c int) bool { return c <= 0 }),
		"=":      chain("=", func(c int) bool { return c == 0 }),
		">":      chain(">", func(c int) bool { return c > 0 }),
		">=":     chain(">=", func(c int) bool { return c >= 0 }),
		"eq?":    eq,
		"equal?": equal,
	}
}

func chain(name string, ok func(int) bool) lisp.Native {
	return func(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
		if _, _, err := validate.Variadic(args, 2, validate.Unlimited); err != nil {
			return e.Nil(), lisp.Errorf(lisp.Arity, "%s: %s", name, err)
		}

		for i := 1; i < len(args); i++ {
			c, err := compare(name, args[i-1], args[i])
			if err != nil {
				return e.Nil(), err
			}

			if !ok(c) {
				return e.Nil(), nil
			}
		}

		return e.True(), nil
	}
}

// Numbers compare numerically and strings lexically.
func compare(name string, a, b lisp.Expression) (int, error) {
	if x, err := toNumber(name, a); err == nil {
		y, err := toNumber(name, b)
		if err != nil {
			return 0, err
		}

		switch {
		case !x.float && !y.float:
			return cmp(x.i < y.i, x.i > y.i), nil
		default:
			return cmp(x.f < y.f, x.f > y.f), nil
		}
	}

	x, err := text(name, a)
	if err != nil {
		return 0, mismatch(name, "a number or string", a)
	}

	y, err := text(name, b)
	if err != nil {
		return 0, mismatch(name, "a number or string", b)
	}

	return strings.Compare(x, y), nil
}

func cmp(lt, gt bool) int {
	switch {
	case lt:
		return -1
	case gt:
		return 1
	}

	return 0
}

func eq(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("eq?", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	return e.Bool(same(v[0], v[1])), nil
}

func equal(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("equal?", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	return e.Bool(deepEqual(v[0], v[1])), nil
}

// Atoms are the same when their values match. Anything else must be the
// same object.
func same(a, b lisp.Expression) bool {
	if a.Is(b) {
		return true
	}

	switch x := a.Value().(type) {
	case lisp.True, lisp.Nil, lisp.Int, lisp.Float, lisp.Symbol, lisp.Char:
		return x == b.Value()
	case lisp.String, lisp.StringRef:
		switch b.Value().(type) {
		case lisp.String, lisp.StringRef:
			return a.Text() == b.Text()
		}
	}

	return false
}

func deepEqual(a, b lisp.Expression) bool {
	if same(a, b) {
		return true
	}

	switch x := a.Value().(type) {
	case *lisp.StringBuf:
		y, ok := b.Value().(*lisp.StringBuf)

		return ok && x.S == y.S
	case lisp.Pair:
		y, ok := b.Value().(lisp.Pair)

		return ok && deepEqual(x.Head, y.Head) && deepEqual(x.Tail, y.Tail)
	case *lisp.Vector:
		y, ok := b.Value().(*lisp.Vector)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}

		for i := range x.Items {
			if !deepEqual(x.Items[i], y.Items[i]) {
				return false
			}
		}

		return true
	case *lisp.HashMap:
		y, ok := b.Value().(*lisp.HashMap)
		if !ok || len(x.Map) != len(y.Map) {
			return false
		}

		for k, v := range x.Map {
			w, ok := y.Map[k]
			if !ok || !deepEqual(v, w) {
				return false
			}
		}

		return true
	}

	return false
}
