// Released under an MIT license. See LICENSE.

package commands

import (
	"strings"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// PredicateFunctions returns the type predicates.
func PredicateFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"char?":     is("char?", kind[lisp.Char]),
		"file?":     is("file?", kind[*lisp.File]),
		"float?":    is("float?", kind[lisp.Float]),
		"hash?":     is("hash?", kind[*lisp.HashMap]),
		"int?":      is("int?", kind[lisp.Int]),
		"keyword?":  is("keyword?", isKeyword),
		"lambda?":   is("lambda?", isLambda),
		"list?":     is("list?", isList),
		"macro?":    is("macro?", kind[*lisp.Macro]),
		"nil?":      is("nil?", kind[lisp.Nil]),
		"pair?":     is("pair?", kind[lisp.Pair]),
		"process?":  is("process?", kind[lisp.Process]),
		"string?":   is("string?", isString),
		"symbol?":   is("symbol?", kind[lisp.Symbol]),
		"true?":     is("true?", kind[lisp.True]),
		"vector?":   is("vector?", kind[*lisp.Vector]),
		"function?": is("function?", kind[*lisp.Function]),
	}
}

func is(name string, p func(lisp.Value) bool) lisp.Native {
	return func(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
		v, err := check(name, args, 1, 1)
		if err != nil {
			return e.Nil(), err
		}

		return e.Bool(p(v[0].Value())), nil
	}
}

func kind[T lisp.Value](v lisp.Value) bool {
	_, ok := v.(T)

	return ok
}

func isKeyword(v lisp.Value) bool {
	s, ok := v.(lisp.Symbol)

	return ok && strings.HasPrefix(string(s), ":")
}

func isLambda(v lisp.Value) bool {
	switch v.(type) {
	case *lisp.Lambda, *lisp.LazyFn:
		return true
	}

	return false
}

func isList(v lisp.Value) bool {
	switch v.(type) {
	case lisp.Nil, lisp.Pair:
		return true
	}

	return false
}

func isString(v lisp.Value) bool {
	switch v.(type) {
	case lisp.String, lisp.StringRef, *lisp.StringBuf:
		return true
	}

	return false
}
