// Released under an MIT license. See LICENSE.

package commands

import (
	"sort"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// HashFunctions returns the hash map natives.
func HashFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"hash-clear!":  hashClear,
		"hash-get":     hashGet,
		"hash-haskey":  hashHasKey,
		"hash-keys":    hashKeys,
		"hash-remove!": hashRemove,
		"hash-set!":    hashSet,
		"make-hash":    makeHash,
	}
}

func hashArg(name string, x lisp.Expression) (*lisp.HashMap, error) {
	m, ok := x.Value().(*lisp.HashMap)
	if !ok {
		return nil, mismatch(name, "a hash map", x)
	}

	return m, nil
}

// Keys are stored by their text.
func key(name string, x lisp.Expression) (string, error) {
	switch x.Value().(type) {
	case lisp.Symbol, lisp.String, lisp.StringRef, *lisp.StringBuf, lisp.Int, lisp.Char:
		return x.Text(), nil
	}

	return "", mismatch(name, "a symbol, string or integer key", x)
}

func makeHash(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("make-hash", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	m := map[string]lisp.Expression{}

	if len(v) == 1 {
		pairs, err := items("make-hash", v[0])
		if err != nil {
			return e.Nil(), err
		}

		for _, x := range pairs {
			p, err := pairArg("make-hash", x)
			if err != nil {
				return e.Nil(), err
			}

			k, err := key("make-hash", p.Head)
			if err != nil {
				return e.Nil(), err
			}

			m[k] = p.Tail
		}
	}

	return e.Alloc(&lisp.HashMap{Map: m}), nil
}

func hashGet(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("hash-get", args, 2, 3)
	if err != nil {
		return e.Nil(), err
	}

	m, err := hashArg("hash-get", v[0])
	if err != nil {
		return e.Nil(), err
	}

	k, err := key("hash-get", v[1])
	if err != nil {
		return e.Nil(), err
	}

	if x, ok := m.Map[k]; ok {
		return x, nil
	}

	if len(v) == 3 {
		return v[2], nil
	}

	return e.Nil(), nil
}

func hashSet(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("hash-set!", args, 3, 3)
	if err != nil {
		return e.Nil(), err
	}

	m, err := hashArg("hash-set!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	k, err := key("hash-set!", v[1])
	if err != nil {
		return e.Nil(), err
	}

	m.Map[k] = v[2]

	return v[0], nil
}

func hashRemove(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("hash-remove!", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	m, err := hashArg("hash-remove!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	k, err := key("hash-remove!", v[1])
	if err != nil {
		return e.Nil(), err
	}

	x, ok := m.Map[k]
	if !ok {
		return e.Nil(), nil
	}

	delete(m.Map, k)

	return x, nil
}

func hashHasKey(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("hash-haskey", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	m, err := hashArg("hash-haskey", v[0])
	if err != nil {
		return e.Nil(), err
	}

	k, err := key("hash-haskey", v[1])
	if err != nil {
		return e.Nil(), err
	}

	_, ok := m.Map[k]

	return e.Bool(ok), nil
}

func hashKeys(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("hash-keys", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	m, err := hashArg("hash-keys", v[0])
	if err != nil {
		return e.Nil(), err
	}

	keys := make([]string, 0, len(m.Map))
	for k := range m.Map {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	xs := make([]lisp.Expression, len(keys))
	for i, k := range keys {
		xs[i] = e.Sym(k)
	}

	return e.Vector(xs), nil
}

func hashClear(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("hash-clear!", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	m, err := hashArg("hash-clear!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	m.Map = map[string]lisp.Expression{}

	return v[0], nil
}
