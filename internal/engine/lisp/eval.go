// Released under an MIT license. See LICENSE.

package lisp

import (
	"os"
	"strings"

	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
	"github.com/michaelmacinnis/lish/internal/common/validate"
)

// Run evaluates a top-level form. A block exit or recur that escapes
// every handler becomes an error, as does a stale handle. On error the
// scope stack is restored.
func (e *env) Run(x Expression) (r Expression, err error) {
	scopes := len(e.scopes)
	stack := len(e.stack)
	depth := e.depth

	defer func() {
		if p := recover(); p != nil {
			s, ok := p.(*heap.StaleError)
			if !ok {
				panic(p)
			}

			r, err = e.nilExp, stale(s)
		}

		if err != nil {
			for len(e.scopes) > scopes {
				e.pop()
			}
		}

		e.stack = e.stack[:stack]
		e.depth = depth
	}()

	r, err = e.Eval(x)

	switch c := err.(type) {
	case *ReturnFrom:
		err = &Error{Kind: UnmatchedBlock, Message: c.Error(), Meta: e.meta}
	case *TailCall:
		err = &Error{Kind: Arity, Message: c.Error(), Meta: e.meta}
	}

	return r, err
}

// Eval evaluates x, performing any deferred application.
func (e *env) Eval(x Expression) (Expression, error) {
	r, err := e.EvalTail(x)
	if err != nil {
		return r, err
	}

	return e.Force(r)
}

// EvalTail evaluates x in tail position. A call to a lambda may be
// returned unapplied as a LazyFn; callers that return the result
// directly to their own caller may use it, everyone else uses Eval.
func (e *env) EvalTail(x Expression) (Expression, error) {
	switch v := x.Value().(type) {
	case Symbol:
		return e.symbol(x, string(v))
	case Pair:
		return e.evalPair(x, v)
	}

	return x, nil
}

// Force performs the application x defers, if any.
func (e *env) Force(x Expression) (Expression, error) {
	if l, ok := x.Value().(*LazyFn); ok {
		return e.applyLambda(l.Lambda, l.Args)
	}

	return x, nil
}

// Apply calls f with already evaluated arguments.
func (e *env) Apply(f Expression, args []Expression) (Expression, error) {
	switch fn := f.Value().(type) {
	case *Function:
		r, err := e.call(fn, args)
		if err != nil {
			return r, err
		}

		return e.Force(r)
	case *Lambda:
		return e.applyLambda(f, args)
	}

	return e.nilExp, Errorf(TypeMismatch, "Not a function: %s", f)
}

// EvalBody evaluates forms in order and returns the last result.
func (e *env) EvalBody(forms []Expression) (Expression, error) {
	r := e.nilExp

	for _, f := range forms {
		var err error

		r, err = e.Eval(f)
		if err != nil {
			return r, err
		}
	}

	return r, nil
}

// ExpandMacro expands x if it is a macro call. With once set only one
// level is expanded. The second result reports whether x was a macro call.
func (e *env) ExpandMacro(x Expression, once bool) (Expression, bool, error) {
	expanded := false

	for {
		m, args, ok := e.macroCall(x)
		if !ok {
			return x, expanded, nil
		}

		r, err := e.WithLazy(false, func() (Expression, error) {
			return e.expand(m, args)
		})
		if err != nil {
			return r, expanded, err
		}

		x = r
		expanded = true

		if once {
			return x, expanded, nil
		}
	}
}

// ExpandAll expands macro calls in x and in every subform of x.
func (e *env) ExpandAll(x Expression) (Expression, error) {
	x, _, err := e.ExpandMacro(x, false)
	if err != nil {
		return x, err
	}

	p, ok := x.Value().(Pair)
	if !ok {
		return x, nil
	}

	if s, ok := p.Head.Value().(Symbol); ok && s == "quote" {
		return x, nil
	}

	var items []Expression

	for {
		item, err := e.ExpandAll(p.Head)
		if err != nil {
			return item, err
		}

		items = append(items, item)

		next, ok := p.Tail.Value().(Pair)
		if !ok {
			r := e.ListTail(items, p.Tail)
			r.SetMeta(x.Meta())

			return r, nil
		}

		p = next
	}
}

func (e *env) annotate(err error, x Expression) error {
	le, ok := err.(*Error)
	if !ok {
		return err
	}

	if le.Meta == nil {
		le.Meta = x.Meta()
	}

	if le.Stack == nil && e.stackOnError {
		le.Stack = []string{x.String()}
		for i := len(e.stack) - 1; i >= 0; i-- {
			le.Stack = append(le.Stack, e.stack[i].String())
		}
	}

	return le
}

func (e *env) applyLambda(f Expression, args []Expression) (Expression, error) {
	for {
		l, ok := f.Value().(*Lambda)
		if !ok {
			return e.nilExp, Errorf(TypeMismatch, "Not a lambda: %s", f)
		}

		s := NewScope(l.Capture)

		err := e.bindParams(s, l.Params, args)
		if err != nil {
			return e.nilExp, err
		}

		r, err := e.Within(s, func() (Expression, error) {
			return e.body(l, s)
		})
		if err != nil {
			return r, err
		}

		lazy, ok := r.Value().(*LazyFn)
		if !ok {
			return r, nil
		}

		f, args = lazy.Lambda, lazy.Args
	}
}

// The recur loop: a TailCall rebinds the parameters in the same scope.
func (e *env) body(l *Lambda, s *Scope) (Expression, error) {
	for {
		r, err := e.EvalTail(l.Body)

		tc, ok := err.(*TailCall)
		if !ok {
			return r, err
		}

		err = e.bindParams(s, l.Params, tc.Args)
		if err != nil {
			return e.nilExp, err
		}
	}
}

func (e *env) bindParams(s *Scope, params Expression, args []Expression) error {
	ps, ok := params.Items()
	if !ok {
		return Errorf(TypeMismatch, "parameters must be a list or vector: %s", params)
	}

	i := 0
	optional := false

	for n := 0; n < len(ps); n++ {
		name, ok := ps[n].Value().(Symbol)
		if !ok {
			return Errorf(TypeMismatch, "parameter %s is not a symbol", ps[n])
		}

		switch name {
		case "&optional":
			optional = true

			continue
		case "&rest":
			if n != len(ps)-2 {
				return Errorf(TypeMismatch, "&rest must be followed by exactly one name")
			}

			rest, ok := ps[n+1].Value().(Symbol)
			if !ok {
				return Errorf(TypeMismatch, "parameter %s is not a symbol", ps[n+1])
			}

			e.bind(s, string(rest), e.List(args[i:]...), "")

			return nil
		}

		switch {
		case i < len(args):
			e.bind(s, string(name), args[i], "")
			i++
		case optional:
			e.bind(s, string(name), e.nilExp, "")
		default:
			return arity(ps, len(args))
		}
	}

	if i < len(args) {
		return arity(ps, len(args))
	}

	return nil
}

func arity(ps []Expression, passed int) error {
	min, max := 0, 0
	optional := false

	for _, p := range ps {
		switch s, _ := p.Value().(Symbol); s {
		case "&optional":
			optional = true
		case "&rest":
			return Errorf(Arity, "wrong number of arguments: expected %s, passed %d",
				validate.Expected(min, validate.Unlimited), passed)
		default:
			max++
			if !optional {
				min++
			}
		}
	}

	return Errorf(Arity, "wrong number of arguments: expected %s, passed %d",
		validate.Expected(min, max), passed)
}

func (e *env) call(f *Function, args []Expression) (Expression, error) {
	if e.Interrupted.CompareAndSwap(true, false) {
		return e.nilExp, Errorf(Interrupted, "interrupted")
	}

	r, err := f.Fn(e, args)
	if err != nil {
		if _, ok := err.(*Error); !ok && !IsControl(err) {
			err = Wrap(HostIO, err)
		}

		return e.nilExp, err
	}

	if r.heap == nil {
		r = e.nilExp
	}

	return r, nil
}

func (e *env) dispatch(x Expression, p Pair) (Expression, error) {
	args, ok := p.Tail.Items()
	if _, vector := p.Tail.Value().(*Vector); !ok || vector {
		return e.nilExp, Errorf(TypeMismatch, "cannot evaluate improper list %s", x)
	}

	name, symbol := p.Head.Value().(Symbol)

	if e.form == ExternalOnly {
		if !symbol {
			return e.nilExp, Errorf(FormRestriction, "Not a valid command %s, must be a symbol.", p.Head)
		}

		return e.external(string(name), args)
	}

	var f Expression

	if symbol {
		r, ok := e.Resolve(string(name))
		if !ok {
			if sigil(string(name)) {
				return e.nilExp, Errorf(TypeMismatch, "Not a function: %s", name)
			}

			if e.launcher != nil || e.form == FormOnly {
				return e.external(string(name), args)
			}

			return e.nilExp, Errorf(Unbound, "Symbol %s not found", name)
		}

		f = r.Exp
	} else {
		var err error

		f, err = e.Eval(p.Head)
		if err != nil {
			return f, err
		}
	}

	switch fn := f.Value().(type) {
	case *Function:
		if fn.Form == Special {
			return e.call(fn, args)
		}

		vals, err := e.evalArgs(args)
		if err != nil {
			return e.nilExp, err
		}

		return e.call(fn, vals)
	case *Lambda:
		vals, err := e.evalArgs(args)
		if err != nil {
			return e.nilExp, err
		}

		if e.lazy {
			return e.Alloc(&LazyFn{Lambda: f, Args: vals}), nil
		}

		return e.applyLambda(f, vals)
	case *Macro:
		code, err := e.expand(fn, args)
		if err != nil {
			return code, err
		}

		return e.EvalTail(code)
	}

	return e.nilExp, Errorf(TypeMismatch, "Not a function: %s", p.Head)
}

func (e *env) evalArgs(args []Expression) ([]Expression, error) {
	vals := make([]Expression, len(args))

	for i, a := range args {
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}

		vals[i] = v
	}

	return vals, nil
}

func (e *env) evalPair(x Expression, p Pair) (Expression, error) {
	if e.depth >= e.maxDepth {
		return e.nilExp, e.annotate(Errorf(Overflow, "maximum evaluation depth (%d) exceeded", e.maxDepth), x)
	}

	if m := x.Meta(); m != nil {
		e.meta = m
	}

	e.depth++
	e.stack = append(e.stack, x)

	r, err := e.dispatch(x, p)

	e.stack = e.stack[:len(e.stack)-1]
	e.depth--

	if err != nil {
		return r, e.annotate(err, x)
	}

	return r, nil
}

func (e *env) expand(m *Macro, args []Expression) (Expression, error) {
	s := NewScope(e.Scope())

	err := e.bindParams(s, m.Params, args)
	if err != nil {
		return e.nilExp, err
	}

	return e.Within(s, func() (Expression, error) {
		return e.Eval(m.Body)
	})
}

func (e *env) macroCall(x Expression) (*Macro, []Expression, bool) {
	p, ok := x.Value().(Pair)
	if !ok {
		return nil, nil, false
	}

	name, ok := p.Head.Value().(Symbol)
	if !ok {
		return nil, nil, false
	}

	r, ok := e.Resolve(string(name))
	if !ok {
		return nil, nil, false
	}

	m, ok := r.Exp.Value().(*Macro)
	if !ok {
		return nil, nil, false
	}

	args, ok := p.Tail.Items()
	if !ok {
		return nil, nil, false
	}

	return m, args, true
}

func (e *env) symbol(x Expression, name string) (Expression, error) {
	switch {
	case strings.HasPrefix(name, "$") && len(name) > 1:
		return e.Str(os.Getenv(name[1:])), nil
	case strings.HasPrefix(name, ":"):
		return x, nil
	}

	if r, ok := e.Resolve(name); ok {
		return r.Exp, nil
	}

	if e.loose {
		return e.Str(name), nil
	}

	err := Errorf(Unbound, "Symbol %s not found", name)
	err.Meta = x.Meta()

	return e.nilExp, err
}

func sigil(name string) bool {
	return strings.HasPrefix(name, "$") || strings.HasPrefix(name, ":")
}
