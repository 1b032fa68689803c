// Released under an MIT license. See LICENSE.

package commands

import (
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// StringFunctions returns the string natives.
func StringFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"match":        match,
		"str":          str,
		"str-append":   strAppend,
		"str-buf":      strBuf,
		"str-contains": strContains,
		"str-lower":    mapString("str-lower", strings.ToLower),
		"str-replace":  strReplace,
		"str-split":    strSplit,
		"str-trim":     mapString("str-trim", strings.TrimSpace),
		"str-upper":    mapString("str-upper", strings.ToUpper),
		"sym":          sym,
		"sym->str":     symToStr,
	}
}

func concat(args []lisp.Expression) string {
	var b strings.Builder

	for _, a := range args {
		b.WriteString(a.Text())
	}

	return b.String()
}

func str(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return e.Str(concat(args)), nil
}

func strBuf(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return e.Alloc(&lisp.StringBuf{S: concat(args)}), nil
}

// A StringBuf is appended to in place. Any other string yields a new string.
func strAppend(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, rest, err := variadic("str-append", args, 1)
	if err != nil {
		return e.Nil(), err
	}

	if b, ok := v[0].Value().(*lisp.StringBuf); ok {
		b.S += concat(rest)

		return v[0], nil
	}

	s, err := text("str-append", v[0])
	if err != nil {
		return e.Nil(), err
	}

	return e.Str(s + concat(rest)), nil
}

func mapString(name string, f func(string) string) lisp.Native {
	return func(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
		v, err := check(name, args, 1, 1)
		if err != nil {
			return e.Nil(), err
		}

		s, err := text(name, v[0])
		if err != nil {
			return e.Nil(), err
		}

		return e.Str(f(s)), nil
	}
}

func strContains(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	s, err := texts("str-contains", args, 2)
	if err != nil {
		return e.Nil(), err
	}

	return e.Bool(strings.Contains(s[1], s[0])), nil
}

func strReplace(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	s, err := texts("str-replace", args, 3)
	if err != nil {
		return e.Nil(), err
	}

	return e.Str(strings.ReplaceAll(s[0], s[1], s[2])), nil
}

func strSplit(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	s, err := texts("str-split", args, 2)
	if err != nil {
		return e.Nil(), err
	}

	var parts []string
	if s[0] == "" {
		parts = strings.Fields(s[1])
	} else {
		parts = strings.Split(s[1], s[0])
	}

	xs := make([]lisp.Expression, len(parts))
	for i, p := range parts {
		xs[i] = e.Str(p)
	}

	return e.Vector(xs), nil
}

func match(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	s, err := texts("match", args, 2)
	if err != nil {
		return e.Nil(), err
	}

	ok, err := adapted.Match(s[0], s[1])
	if err != nil {
		return e.Nil(), lisp.Wrap(lisp.TypeMismatch, err)
	}

	return e.Bool(ok), nil
}

func sym(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if len(args) == 0 {
		return e.Nil(), lisp.Errorf(lisp.Arity, "sym: expected at least 1 argument, passed 0")
	}

	return e.Sym(concat(args)), nil
}

func symToStr(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("sym->str", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	if _, ok := v[0].Value().(lisp.Symbol); !ok {
		return e.Nil(), mismatch("sym->str", "a symbol", v[0])
	}

	return e.Str(v[0].Text()), nil
}

func texts(name string, args []lisp.Expression, n int) ([]string, error) {
	v, err := check(name, args, n, n)
	if err != nil {
		return nil, err
	}

	s := make([]string, n)

	for i, x := range v {
		s[i], err = text(name, x)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}
