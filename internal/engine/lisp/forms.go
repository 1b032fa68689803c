// Released under an MIT license. See LICENSE.

package lisp

import (
	"fmt"
	"strings"

	"github.com/michaelmacinnis/lish/internal/common/validate"
)

// SpecialForms returns the core natives that receive unevaluated arguments.
func SpecialForms() map[string]Native {
	return map[string]Native{
		"and":              and,
		"block":            block,
		"bquote":           bquote,
		"command":          command,
		"def":              def,
		"dyn":              dyn,
		"expand-macro":     expandMacro,
		"expand-macro-all": expandMacroAll,
		"expand-macro1":    expandMacro1,
		"fn":               fn,
		"form":             form,
		"get":              get,
		"get-error":        getError,
		"if":               ifForm,
		"let":              let,
		"loose-symbols":    looseSymbols,
		"macro":            macro,
		"or":               or,
		"progn":            progn,
		"quote":            quoteForm,
		"return-from":      returnFrom,
		"run-bg":           runBg,
		"set":              set,
		"undef":            undef,
		"unwind-protect":   unwindProtect,
	}
}

// Functions returns the core natives that receive evaluated arguments.
func Functions() map[string]Native {
	return map[string]Native{
		"apply":           apply,
		"def?":            isDefined,
		"doc":             doc,
		"doc-raw":         docRaw,
		"err":             raise,
		"error-stack-off": errorStackOff,
		"error-stack-on":  errorStackOn,
		"eval":            eval,
		"exit":            exit,
		"fncall":          fncall,
		"gensym":          gensym,
		"meta-column-no":  metaColumnNo,
		"meta-file-name":  metaFileName,
		"meta-line-no":    metaLineNo,
		"not":             not,
		"ns-create":       nsCreate,
		"ns-enter":        nsEnter,
		"ns-exists?":      nsExists,
		"ns-list":         nsList,
		"ns-pop":          nsPop,
		"ns-symbols":      nsSymbols,
		"recur":           recur,
		"symbol-name":     symbolName,
		"to-symbol":       toSymbol,
	}
}

// Register binds a native in the root scope.
func (e *env) Register(name string, form Form, fn Native, doc string) {
	e.bind(e.root, name, e.Alloc(&Function{Doc: doc, Fn: fn, Form: form, Name: name}), doc)
}

// RegisterAll binds every native in fns.
func (e *env) RegisterAll(form Form, fns map[string]Native, docs map[string]string) {
	for name, fn := range fns {
		e.Register(name, form, fn, docs[name])
	}
}

func (e *env) registerCore() {
	e.RegisterAll(Special, SpecialForms(), docs)
	e.RegisterAll(Ordinary, Functions(), docs)
}

// Check validates the number of arguments passed to a builtin.
func Check(name string, args []Expression, min, max int) ([]Expression, error) {
	v, err := validate.Fixed(args, min, max)
	if err != nil {
		return nil, Errorf(Arity, "%s: %s", name, err)
	}

	return v, nil
}

// Warn writes a diagnostic to *stderr*.
func (e *env) Warn(format string, args ...any) {
	f, err := e.Stream("*stderr*")
	if err != nil {
		println(fmt.Sprintf(format, args...))

		return
	}

	_ = f.WriteString(fmt.Sprintf(format, args...) + "\n")
}

func symbolArg(name string, x Expression) (string, error) {
	s, ok := x.Value().(Symbol)
	if !ok {
		return "", Errorf(TypeMismatch, "%s: first form (binding key) must evaluate to a symbol", name)
	}

	return string(s), nil
}

func stringArg(name string, x Expression) (string, error) {
	switch v := x.Value().(type) {
	case String:
		return string(v), nil
	case StringRef:
		return string(v), nil
	case *StringBuf:
		return v.S, nil
	}

	return "", Errorf(TypeMismatch, "%s: expected a string, got %s", name, x.Type())
}

// Binding.

func (e *env) setVars(name string, args []Expression) (string, string, Expression, error) {
	if len(args) != 2 && len(args) != 3 {
		return "", "", e.nilExp, Errorf(Arity, "def/set requires a key, optional docstring and value")
	}

	k, err := e.Eval(args[0])
	if err != nil {
		return "", "", k, err
	}

	key, err := symbolArg(name, k)
	if err != nil {
		return "", "", e.nilExp, err
	}

	doc := ""

	if len(args) == 3 {
		d, err := e.Eval(args[1])
		if err != nil {
			return "", "", d, err
		}

		doc, err = stringArg(name, d)
		if err != nil {
			return "", "", e.nilExp, err
		}
	}

	v, err := e.Eval(args[len(args)-1])

	return key, doc, v, err
}

func def(e *Env, args []Expression) (Expression, error) {
	key, doc, v, err := e.setVars("def", args)
	if err != nil {
		return v, err
	}

	return v, e.Define(key, v, doc)
}

func set(e *Env, args []Expression) (Expression, error) {
	key, doc, v, err := e.setVars("set", args)
	if err != nil {
		return v, err
	}

	return v, e.Assign(key, v, doc)
}

func undef(e *Env, args []Expression) (Expression, error) {
	v, err := Check("undef", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	k, err := e.Eval(v[0])
	if err != nil {
		return k, err
	}

	key, err := symbolArg("undef", k)
	if err != nil {
		return e.nilExp, err
	}

	return e.nilExp, e.Undefine(key)
}

func isDefined(e *Env, args []Expression) (Expression, error) {
	v, err := Check("def?", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	key, err := symbolArg("def?", v[0])
	if err != nil {
		return e.nilExp, err
	}

	_, ok := e.Resolve(key)

	return e.Bool(ok), nil
}

func dyn(e *Env, args []Expression) (Expression, error) {
	if len(args) != 3 {
		return e.nilExp, Errorf(Arity, "dyn requires three expressions (symbol, value, form to evaluate)")
	}

	k, err := e.Eval(args[0])
	if err != nil {
		return k, err
	}

	key, err := symbolArg("dyn", k)
	if err != nil {
		return e.nilExp, err
	}

	v, err := e.Eval(args[1])
	if err != nil {
		return v, err
	}

	return e.Dyn(key, v, func() (Expression, error) {
		return e.Eval(args[2])
	})
}

func let(e *Env, args []Expression) (Expression, error) {
	if len(args) < 1 {
		return e.nilExp, Errorf(Arity, "let requires a list of bindings and a body")
	}

	bindings, ok := args[0].Items()
	if !ok {
		return e.nilExp, Errorf(TypeMismatch, "let: bindings must be a list")
	}

	s := NewScope(e.Scope())

	for _, b := range bindings {
		if name, ok := b.Value().(Symbol); ok {
			e.bind(s, string(name), e.nilExp, "")

			continue
		}

		pair, ok := b.Items()
		if !ok || len(pair) < 1 || len(pair) > 2 {
			return e.nilExp, Errorf(TypeMismatch, "let: binding %s must be a symbol or (symbol value)", b)
		}

		name, ok := pair[0].Value().(Symbol)
		if !ok {
			return e.nilExp, Errorf(TypeMismatch, "let: binding %s must be a symbol or (symbol value)", b)
		}

		v := e.nilExp

		if len(pair) == 2 {
			var err error

			v, err = e.Eval(pair[1])
			if err != nil {
				return v, err
			}
		}

		e.bind(s, string(name), v, "")
	}

	return e.Within(s, func() (Expression, error) {
		return progn(e, args[1:])
	})
}

// Control.

func and(e *Env, args []Expression) (Expression, error) {
	r := e.trueExp

	for _, a := range args {
		var err error

		r, err = e.Eval(a)
		if err != nil || r.IsNil() {
			return r, err
		}
	}

	return r, nil
}

func or(e *Env, args []Expression) (Expression, error) {
	for _, a := range args {
		r, err := e.Eval(a)
		if err != nil || r.Truthy() {
			return r, err
		}
	}

	return e.nilExp, nil
}

func not(e *Env, args []Expression) (Expression, error) {
	v, err := Check("not", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	return e.Bool(v[0].IsNil()), nil
}

func ifForm(e *Env, args []Expression) (Expression, error) {
	if len(args) < 2 {
		return e.nilExp, Errorf(Arity, "if needs at least two expressions")
	}

	for ; len(args) >= 2; args = args[2:] {
		c, err := e.Eval(args[0])
		if err != nil {
			return c, err
		}

		if c.Truthy() {
			return e.EvalTail(args[1])
		}
	}

	if len(args) == 1 {
		return e.EvalTail(args[0])
	}

	return e.nilExp, nil
}

func progn(e *Env, args []Expression) (Expression, error) {
	if len(args) == 0 {
		return e.nilExp, nil
	}

	last := len(args) - 1

	for _, a := range args[:last] {
		r, err := e.Eval(a)
		if err != nil {
			return r, err
		}
	}

	return e.EvalTail(args[last])
}

// A symbol argument is looked up as written. Anything else must
// evaluate to a symbol.
func get(e *Env, args []Expression) (Expression, error) {
	v, err := Check("get", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	x := v[0]
	if _, ok := x.Value().(Symbol); !ok {
		x, err = e.Eval(x)
		if err != nil {
			return x, err
		}
	}

	name, err := symbolArg("get", x)
	if err != nil {
		return e.nilExp, err
	}

	return e.symbol(x, name)
}

func quoteForm(e *Env, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return e.nilExp, Errorf(Arity, "quote takes one form")
	}

	return args[0], nil
}

func bquote(e *Env, args []Expression) (Expression, error) {
	if len(args) == 2 {
		if s, ok := args[0].Value().(Symbol); ok && s == "," {
			return e.Eval(args[1])
		}
	}

	if len(args) != 1 {
		return e.nilExp, Errorf(Arity, "bquote takes one form")
	}

	return e.backquote(args[0])
}

func (e *env) backquote(x Expression) (Expression, error) {
	switch v := x.Value().(type) {
	case Pair:
		items, ok := x.Items()
		if !ok {
			return x, nil
		}

		out, err := e.unquote(items)
		if err != nil {
			return e.nilExp, err
		}

		r := e.List(out...)
		r.SetMeta(x.Meta())

		return r, nil
	case *Vector:
		out, err := e.unquote(v.Items)
		if err != nil {
			return e.nilExp, err
		}

		return e.Vector(out), nil
	}

	return x, nil
}

func (e *env) unquote(items []Expression) ([]Expression, error) {
	out := make([]Expression, 0, len(items))

	comma, splice := false, false

	for _, item := range items {
		if s, ok := item.Value().(Symbol); ok && !comma && !splice {
			switch s {
			case ",":
				comma = true

				continue
			case ",@":
				splice = true

				continue
			}
		}

		item, err := e.backquote(item)
		if err != nil {
			return nil, err
		}

		switch {
		case comma:
			v, err := e.Eval(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
			comma = false
		case splice:
			v, err := e.Eval(item)
			if err != nil {
				return nil, err
			}

			elems, ok := v.Items()
			if !ok {
				return nil, Errorf(TypeMismatch, ",@ must be applied to a list")
			}

			out = append(out, elems...)
			splice = false
		default:
			out = append(out, item)
		}
	}

	return out, nil
}

// Closures and macros.

func (e *env) closureParts(name string, args []Expression) (Expression, Expression, error) {
	if len(args) < 1 {
		return e.nilExp, e.nilExp, Errorf(Arity, "%s needs a parameter list and a body", name)
	}

	params := args[0]

	ps, ok := params.Items()
	if !ok {
		return e.nilExp, e.nilExp, Errorf(TypeMismatch, "%s: parameters must be a list or vector", name)
	}

	for _, p := range ps {
		if _, ok := p.Value().(Symbol); !ok {
			return e.nilExp, e.nilExp, Errorf(TypeMismatch, "%s: parameter %s is not a symbol", name, p)
		}
	}

	switch len(args) {
	case 1:
		return params, e.nilExp, nil
	case 2:
		return params, args[1], nil
	}

	body := e.List(append([]Expression{e.Sym("progn")}, args[1:]...)...)
	body.SetMeta(args[1].Meta())

	return params, body, nil
}

func fn(e *Env, args []Expression) (Expression, error) {
	params, body, err := e.closureParts("fn", args)
	if err != nil {
		return e.nilExp, err
	}

	return e.Alloc(&Lambda{Params: params, Body: body, Capture: e.Scope()}), nil
}

func macro(e *Env, args []Expression) (Expression, error) {
	params, body, err := e.closureParts("macro", args)
	if err != nil {
		return e.nilExp, err
	}

	return e.Alloc(&Macro{Params: params, Body: body}), nil
}

func recur(e *Env, args []Expression) (Expression, error) {
	return e.nilExp, &TailCall{Args: args}
}

func expandMacro(e *Env, args []Expression) (Expression, error) {
	v, err := Check("expand-macro", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	r, _, err := e.ExpandMacro(v[0], false)

	return r, err
}

func expandMacro1(e *Env, args []Expression) (Expression, error) {
	v, err := Check("expand-macro1", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	r, _, err := e.ExpandMacro(v[0], true)

	return r, err
}

func expandMacroAll(e *Env, args []Expression) (Expression, error) {
	v, err := Check("expand-macro-all", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	return e.WithLazy(false, func() (Expression, error) {
		return e.ExpandAll(v[0])
	})
}

// Blocks and errors.

func block(e *Env, args []Expression) (Expression, error) {
	if len(args) < 1 {
		return e.nilExp, Errorf(Arity, "block requires a name")
	}

	name, ok := args[0].Value().(Symbol)
	if !ok {
		return e.nilExp, Errorf(TypeMismatch, "block: Name must be a symbol (not evaluated).")
	}

	r := e.nilExp

	for _, a := range args[1:] {
		var err error

		r, err = e.Eval(a)
		if rf, ok := err.(*ReturnFrom); ok && (rf.Name == "" || rf.Name == string(name)) {
			return rf.Value, nil
		}

		if err != nil {
			return r, err
		}
	}

	return r, nil
}

func returnFrom(e *Env, args []Expression) (Expression, error) {
	v, err := Check("return-from", args, 1, 2)
	if err != nil {
		return e.nilExp, err
	}

	name := ""

	switch n := v[0].Value().(type) {
	case Nil:
	case Symbol:
		name = string(n)
	default:
		return e.nilExp, Errorf(TypeMismatch, "return-from: name must be a symbol or nil")
	}

	r := e.nilExp

	if len(v) == 2 {
		r, err = e.Eval(v[1])
		if err != nil {
			return r, err
		}
	}

	return e.nilExp, &ReturnFrom{Name: name, Value: r}
}

func getError(e *Env, args []Expression) (Expression, error) {
	saved := e.stackOnError
	defer func() { e.stackOnError = saved }()

	e.stackOnError = false

	r, err := e.EvalBody(args)
	if err == nil || IsControl(err) {
		return r, err
	}

	msg := err.Error()
	if le, ok := err.(*Error); ok {
		msg = le.Message
	}

	return e.Vector([]Expression{e.Sym(":error"), e.Str(msg)}), nil
}

func unwindProtect(e *Env, args []Expression) (Expression, error) {
	if len(args) < 1 {
		return e.nilExp, Errorf(Arity, "unwind-protect requires a protected form")
	}

	r, err := e.Eval(args[0])

	for _, c := range args[1:] {
		if _, cerr := e.Eval(c); cerr != nil {
			e.Warn("ERROR in unwind-protect cleanup form %s, %s will continue cleanup", c, cerr)
		}
	}

	return r, err
}

func raise(e *Env, args []Expression) (Expression, error) {
	v, err := Check("err", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	return e.nilExp, Errorf(UserRaised, "%s", v[0].Text())
}

func errorStackOn(e *Env, args []Expression) (Expression, error) {
	e.stackOnError = true

	return e.nilExp, nil
}

func errorStackOff(e *Env, args []Expression) (Expression, error) {
	e.stackOnError = false

	return e.nilExp, nil
}

// Modes.

func command(e *Env, args []Expression) (Expression, error) {
	return e.WithForm(ExternalOnly, func() (Expression, error) {
		return e.EvalBody(args)
	})
}

func form(e *Env, args []Expression) (Expression, error) {
	return e.WithForm(FormOnly, func() (Expression, error) {
		return e.EvalBody(args)
	})
}

func looseSymbols(e *Env, args []Expression) (Expression, error) {
	return e.WithLoose(true, func() (Expression, error) {
		return e.EvalBody(args)
	})
}

func runBg(e *Env, args []Expression) (Expression, error) {
	return e.WithBackground(true, func() (Expression, error) {
		return e.EvalBody(args)
	})
}

// Application.

func apply(e *Env, args []Expression) (Expression, error) {
	if len(args) < 1 {
		return e.nilExp, Errorf(Arity, "apply requires a function")
	}

	call := append([]Expression{}, args[1:]...)

	if n := len(call); n > 0 {
		last, ok := call[n-1].Items()
		if !ok {
			return e.nilExp, Errorf(TypeMismatch, "apply: last argument must be a list or vector")
		}

		call = append(call[:n-1], last...)
	}

	return e.Apply(args[0], call)
}

func fncall(e *Env, args []Expression) (Expression, error) {
	if len(args) < 1 {
		return e.nilExp, Errorf(Arity, "fncall requires a function")
	}

	return e.Apply(args[0], args[1:])
}

func eval(e *Env, args []Expression) (Expression, error) {
	v, err := Check("eval", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	s, err := stringArg("eval", v[0])
	if err != nil {
		return e.Eval(v[0])
	}

	forms, err := e.Read("eval", s)
	if err != nil {
		return e.nilExp, err
	}

	return e.EvalBody(forms)
}

func exit(e *Env, args []Expression) (Expression, error) {
	v, err := Check("exit", args, 0, 1)
	if err != nil {
		return e.nilExp, err
	}

	code := 0

	if len(v) == 1 {
		i, ok := v[0].Value().(Int)
		if !ok {
			return e.nilExp, Errorf(TypeMismatch, "exit: code must be an integer")
		}

		code = int(i)
	}

	e.Exit(code)

	return e.nilExp, nil
}

// Symbols.

func gensym(e *Env, args []Expression) (Expression, error) {
	if _, err := Check("gensym", args, 0, 0); err != nil {
		return e.nilExp, err
	}

	return e.Gensym(), nil
}

func symbolName(e *Env, args []Expression) (Expression, error) {
	v, err := Check("symbol-name", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	s, ok := v[0].Value().(Symbol)
	if !ok {
		return e.nilExp, Errorf(TypeMismatch, "symbol-name: expected a symbol, got %s", v[0].Type())
	}

	return e.Str(string(s)), nil
}

func toSymbol(e *Env, args []Expression) (Expression, error) {
	v, err := Check("to-symbol", args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	switch v[0].Value().(type) {
	case String, StringRef, *StringBuf, Symbol, Int, Float:
		return e.Sym(v[0].Text()), nil
	}

	return e.nilExp, Errorf(TypeMismatch, "to-symbol: cannot convert %s", v[0].Type())
}

// Introspection.

func doc(e *Env, args []Expression) (Expression, error) {
	return docString(e, "doc", args, false)
}

func docRaw(e *Env, args []Expression) (Expression, error) {
	return docString(e, "doc-raw", args, true)
}

func docString(e *Env, name string, args []Expression, raw bool) (Expression, error) {
	v, err := Check(name, args, 1, 1)
	if err != nil {
		return e.nilExp, err
	}

	s, ok := v[0].Value().(Symbol)
	if !ok {
		return e.nilExp, Errorf(TypeMismatch, "%s: first form must evaluate to a symbol", name)
	}

	key := string(s)

	r, ok := e.Resolve(key)
	if !ok {
		return e.nilExp, nil
	}

	if raw {
		if r.Doc == "" {
			return e.nilExp, nil
		}

		return e.Str(r.Doc), nil
	}

	var b strings.Builder

	b.WriteString(key + "\nType: " + r.Exp.Type())

	if r.Namespace != "" {
		b.WriteString("\nNamespace: " + r.Namespace)
	}

	if r.Doc == "" || !strings.Contains(r.Doc, "Usage:") {
		b.WriteString(usage(key, r.Exp))
	}

	if r.Doc != "" {
		b.WriteString("\n\n" + r.Doc)
	}

	b.WriteString("\n")

	return e.Str(b.String()), nil
}

func usage(key string, x Expression) string {
	var params Expression

	switch v := x.Value().(type) {
	case *Lambda:
		params = v.Params
	case *Macro:
		params = v.Params
	default:
		return ""
	}

	ps, _ := params.Items()

	u := "\n\nUsage: (" + key
	for _, p := range ps {
		u += " " + p.Text()
	}

	return u + ")"
}

func metaFileName(e *Env, args []Expression) (Expression, error) {
	if e.meta == nil {
		return e.nilExp, nil
	}

	return e.Str(e.meta.Name), nil
}

func metaLineNo(e *Env, args []Expression) (Expression, error) {
	if e.meta == nil {
		return e.nilExp, nil
	}

	return e.Int(int64(e.meta.Line)), nil
}

func metaColumnNo(e *Env, args []Expression) (Expression, error) {
	if e.meta == nil {
		return e.nilExp, nil
	}

	return e.Int(int64(e.meta.Char)), nil
}
