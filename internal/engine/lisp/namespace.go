// Released under an MIT license. See LICENSE.

package lisp

func nsName(e *Env, name string, args []Expression) (string, error) {
	v, err := Check(name, args, 1, 1)
	if err != nil {
		return "", err
	}

	switch n := v[0].Value().(type) {
	case Symbol:
		return string(n), nil
	case String, StringRef, *StringBuf:
		return v[0].Text(), nil
	}

	return "", Errorf(TypeMismatch, "%s: namespace name must be a symbol or string", name)
}

func nsCreate(e *Env, args []Expression) (Expression, error) {
	name, err := nsName(e, "ns-create", args)
	if err != nil {
		return e.nilExp, err
	}

	return e.nilExp, e.NsCreate(name)
}

func nsEnter(e *Env, args []Expression) (Expression, error) {
	name, err := nsName(e, "ns-enter", args)
	if err != nil {
		return e.nilExp, err
	}

	return e.nilExp, e.NsEnter(name)
}

func nsExists(e *Env, args []Expression) (Expression, error) {
	name, err := nsName(e, "ns-exists?", args)
	if err != nil {
		return e.nilExp, err
	}

	return e.Bool(e.NsExists(name)), nil
}

func nsList(e *Env, args []Expression) (Expression, error) {
	if _, err := Check("ns-list", args, 0, 0); err != nil {
		return e.nilExp, err
	}

	names := e.NsList()
	items := make([]Expression, len(names))

	for i, n := range names {
		items[i] = e.Str(n)
	}

	return e.Vector(items), nil
}

func nsPop(e *Env, args []Expression) (Expression, error) {
	if _, err := Check("ns-pop", args, 0, 0); err != nil {
		return e.nilExp, err
	}

	return e.nilExp, e.NsPop()
}

func nsSymbols(e *Env, args []Expression) (Expression, error) {
	name, err := nsName(e, "ns-symbols", args)
	if err != nil {
		return e.nilExp, err
	}

	s, ok := e.NsScope(name)
	if !ok {
		return e.nilExp, Errorf(Namespace, "Error, namespace %s does not exist!", name)
	}

	keys := s.Keys()
	items := make([]Expression, len(keys))

	for i, k := range keys {
		items[i] = e.Sym(k)
	}

	return e.Vector(items), nil
}
