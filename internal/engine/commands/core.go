// Released under an MIT license. See LICENSE.

package commands

import (
	"os"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// CoreFunctions returns the natives for loading code, the host
// environment and interpreter state.
func CoreFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"export":       export,
		"gc":           gc,
		"gc-stats":     gcStats,
		"get-env":      getEnv,
		"intern-stats": internStats,
		"load":         load,
		"read":         read,
		"type":         typeOf,
		"unexport":     unexport,
		"version":      version,
	}
}

func typeOf(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("type", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	return e.Str(v[0].Type()), nil
}

func version(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if _, err := check("version", args, 0, 0); err != nil {
		return e.Nil(), err
	}

	return e.Str(Version), nil
}

// Load reads path and evaluates each form in turn.
func Load(e *lisp.Env, path string) (lisp.Expression, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	forms, err := e.Read(path, string(b))
	if err != nil {
		return e.Nil(), err
	}

	return e.EvalBody(forms)
}

func load(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("load", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	path, err := text("load", v[0])
	if err != nil {
		return e.Nil(), err
	}

	return Load(e, path)
}

func read(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("read", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	s, err := text("read", v[0])
	if err != nil {
		return e.Nil(), err
	}

	forms, err := e.Read("read", s)
	if err != nil || len(forms) == 0 {
		return e.Nil(), err
	}

	return forms[0], nil
}

func export(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("export", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	if _, ok := v[0].Value().(lisp.Symbol); !ok {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "export: first form must evaluate to a symbol")
	}

	var val string

	switch x := v[1].Value().(type) {
	case lisp.Symbol, lisp.String, lisp.StringRef, *lisp.StringBuf, lisp.Int, lisp.Float:
		val = v[1].Text()
	case lisp.Process:
		val = v[1].String()
	default:
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "export: value not valid, got %s", x.Type())
	}

	if err := os.Setenv(v[0].Text(), val); err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Str(val), nil
}

func unexport(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("unexport", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	if _, ok := v[0].Value().(lisp.Symbol); !ok {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "unexport can only have one expression (symbol)")
	}

	if err := os.Unsetenv(v[0].Text()); err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Nil(), nil
}

func getEnv(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("get-env", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	s, ok := os.LookupEnv(v[0].Text())
	if !ok {
		return e.Nil(), nil
	}

	return e.Str(s), nil
}

func gc(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if _, err := check("gc", args, 0, 0); err != nil {
		return e.Nil(), err
	}

	e.RequestCollect()

	return e.Nil(), nil
}

func gcStats(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if _, err := check("gc-stats", args, 0, 0); err != nil {
		return e.Nil(), err
	}

	return e.Vector([]lisp.Expression{e.Int(int64(e.Live())), e.Int(int64(e.Collected()))}), nil
}

func internStats(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if _, err := check("intern-stats", args, 0, 0); err != nil {
		return e.Nil(), err
	}

	return e.Str(e.Interner().Stats()), nil
}
