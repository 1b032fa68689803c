// Released under an MIT license. See LICENSE.

package commands

import (
	"math"

	"github.com/michaelmacinnis/lish/internal/common/validate"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// ArithmeticFunctions returns the numeric natives.
func ArithmeticFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"%":          mod,
		"*":          mul,
		"+":          add,
		"-":          sub,
		"/":          div,
		"random":     random,
		"str->float": strToFloat,
		"str->int":   strToInt,
	}
}

type op struct {
	float func(a, b float64) float64
	int   func(a, b int64) (int64, error)
}

func fold(e *lisp.Env, name string, args []lisp.Expression, min int, acc number, o op) (lisp.Expression, error) {
	if _, _, err := validate.Variadic(args, min, validate.Unlimited); err != nil {
		return e.Nil(), lisp.Errorf(lisp.Arity, "%s: %s", name, err)
	}

	ns, err := numbers(name, args)
	if err != nil {
		return e.Nil(), err
	}

	if min > 0 {
		acc, ns = ns[0], ns[1:]
	}

	for _, n := range ns {
		if acc.float || n.float {
			acc = number{f: o.float(acc.f, n.f), float: true}

			continue
		}

		i, err := o.int(acc.i, n.i)
		if err != nil {
			return e.Nil(), err
		}

		acc = number{f: float64(i), i: i}
	}

	return acc.expression(e), nil
}

func add(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return fold(e, "+", args, 0, number{}, op{
		float: func(a, b float64) float64 { return a + b },
		int:   func(a, b int64) (int64, error) { return a + b, nil },
	})
}

func mul(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return fold(e, "*", args, 0, number{f: 1, i: 1}, op{
		float: func(a, b float64) float64 { return a * b },
		int:   func(a, b int64) (int64, error) { return a * b, nil },
	})
}

func sub(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if len(args) == 1 {
		n, err := toNumber("-", args[0])
		if err != nil {
			return e.Nil(), err
		}

		return number{f: -n.f, i: -n.i, float: n.float}.expression(e), nil
	}

	return fold(e, "-", args, 2, number{}, op{
		float: func(a, b float64) float64 { return a - b },
		int:   func(a, b int64) (int64, error) { return a - b, nil },
	})
}

func div(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return fold(e, "/", args, 2, number{}, op{
		float: func(a, b float64) float64 { return a / b },
		int: func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, lisp.Errorf(lisp.TypeMismatch, "/: divide by zero")
			}

			return a / b, nil
		},
	})
}

func mod(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("%", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	ns, err := numbers("%", v)
	if err != nil {
		return e.Nil(), err
	}

	if ns[0].float || ns[1].float {
		return e.Float(math.Mod(ns[0].f, ns[1].f)), nil
	}

	if ns[1].i == 0 {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "%%: divide by zero")
	}

	return e.Int(ns[0].i % ns[1].i), nil
}
