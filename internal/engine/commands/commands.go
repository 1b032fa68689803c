// Released under an MIT license. See LICENSE.

// Package commands provides lish's native library.
package commands

import (
	"github.com/michaelmacinnis/lish/internal/common/validate"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// Version is reported by the version builtin and lish -v.
const Version = "0.1.0"

// Functions returns every native in the library.
func Functions() map[string]lisp.Native {
	all := map[string]lisp.Native{}

	for _, m := range []map[string]lisp.Native{
		ArithmeticFunctions(),
		CoreFunctions(),
		FileFunctions(),
		HashFunctions(),
		JobFunctions(),
		ListFunctions(),
		PredicateFunctions(),
		RelationalFunctions(),
		StringFunctions(),
		VectorFunctions(),
	} {
		for k, v := range m {
			all[k] = v
		}
	}

	return all
}

// Register binds the library in e's root scope.
func Register(e *lisp.Env) {
	e.RegisterAll(lisp.Ordinary, Functions(), docs)
}

func check(name string, args []lisp.Expression, min, max int) ([]lisp.Expression, error) {
	return lisp.Check(name, args, min, max)
}

func mismatch(name, want string, x lisp.Expression) error {
	return lisp.Errorf(lisp.TypeMismatch, "%s: expected %s, got %s", name, want, x.Type())
}

func integer(name string, x lisp.Expression) (int64, error) {
	i, ok := x.Value().(lisp.Int)
	if !ok {
		return 0, mismatch(name, "an integer", x)
	}

	return int64(i), nil
}

func text(name string, x lisp.Expression) (string, error) {
	switch v := x.Value().(type) {
	case lisp.String:
		return string(v), nil
	case lisp.StringRef:
		return string(v), nil
	case *lisp.StringBuf:
		return v.S, nil
	case lisp.Symbol:
		return string(v), nil
	}

	return "", mismatch(name, "a string", x)
}

func variadic(name string, args []lisp.Expression, min int) ([]lisp.Expression, []lisp.Expression, error) {
	v, rest, err := validate.Variadic(args, min, min)
	if err != nil {
		return nil, nil, lisp.Errorf(lisp.Arity, "%s: %s", name, err)
	}

	return v, rest, nil
}
