// Released under an MIT license. See LICENSE.

package lisp

import (
	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
)

// Value is the content of an object in the heap. Every composite value
// must mark the handles it holds in Trace.
type Value interface {
	Trace(t *heap.Tracer)
	Type() string
}

// Form distinguishes natives that receive unevaluated arguments.
type Form int

// Native calling conventions.
const (
	Ordinary Form = iota
	Special
)

// Native is the signature shared by all builtins.
type Native func(e *Env, args []Expression) (Expression, error)

// True is the canonical true value.
type True struct{}

// Nil is the empty list and the false value.
type Nil struct{}

// Float is a 64-bit floating point number.
type Float float64

// Int is a 64-bit integer.
type Int int64

// Symbol is an interned name.
type Symbol string

// StringRef is an immutable string such as a literal from source.
type StringRef string

// String is a string produced at runtime.
type String string

// StringBuf is a mutable string.
type StringBuf struct {
	S string
}

// Char is a single character.
type Char rune

// Lambda is a closure over the scope it was created in.
type Lambda struct {
	Params  Expression
	Body    Expression
	Capture *Scope
}

// Macro rewrites its unevaluated arguments into new code.
type Macro struct {
	Params Expression
	Body   Expression
}

// Vector is a mutable sequence.
type Vector struct {
	Items []Expression
}

// Pair is a cons cell.
type Pair struct {
	Head Expression
	Tail Expression
}

// HashMap maps strings to expressions.
type HashMap struct {
	Map map[string]Expression
}

// Function is a native builtin.
type Function struct {
	Doc  string
	Fn   Native
	Form Form
	Name string
}

// Process is an external program started by the evaluator.
type Process struct {
	Pid     int
	Running bool
	Status  int
}

// LazyFn is an application of Lambda to Args that has not happened yet.
type LazyFn struct {
	Lambda Expression
	Args   []Expression
}

func (True) Trace(*heap.Tracer)      {}
func (Nil) Trace(*heap.Tracer)       {}
func (Float) Trace(*heap.Tracer)     {}
func (Int) Trace(*heap.Tracer)       {}
func (Symbol) Trace(*heap.Tracer)    {}
func (StringRef) Trace(*heap.Tracer) {}
func (String) Trace(*heap.Tracer)    {}
func (Char) Trace(*heap.Tracer)      {}
func (Process) Trace(*heap.Tracer)   {}

func (*StringBuf) Trace(*heap.Tracer) {}
func (*Function) Trace(*heap.Tracer)  {}

func (l *Lambda) Trace(t *heap.Tracer) {
	t.Mark(l.Params.h)
	t.Mark(l.Body.h)
	l.Capture.Trace(t)
}

func (m *Macro) Trace(t *heap.Tracer) {
	t.Mark(m.Params.h)
	t.Mark(m.Body.h)
}

func (v *Vector) Trace(t *heap.Tracer) {
	for _, x := range v.Items {
		t.Mark(x.h)
	}
}

func (p Pair) Trace(t *heap.Tracer) {
	t.Mark(p.Head.h)
	t.Mark(p.Tail.h)
}

func (m *HashMap) Trace(t *heap.Tracer) {
	for _, x := range m.Map {
		t.Mark(x.h)
	}
}

func (l *LazyFn) Trace(t *heap.Tracer) {
	t.Mark(l.Lambda.h)

	for _, x := range l.Args {
		t.Mark(x.h)
	}
}

func (True) Type() string       { return "True" }
func (Nil) Type() string        { return "Nil" }
func (Float) Type() string      { return "Float" }
func (Int) Type() string        { return "Int" }
func (Symbol) Type() string     { return "Symbol" }
func (StringRef) Type() string  { return "String" }
func (String) Type() string     { return "String" }
func (*StringBuf) Type() string { return "StringBuf" }
func (Char) Type() string       { return "Char" }
func (*Lambda) Type() string    { return "Lambda" }
func (*Macro) Type() string     { return "Macro" }
func (*Vector) Type() string    { return "Vector" }
func (Pair) Type() string       { return "Pair" }
func (*HashMap) Type() string   { return "HashMap" }
func (Process) Type() string    { return "Process" }
func (*LazyFn) Type() string    { return "Lambda" }

func (f *Function) Type() string {
	if f.Form == Special {
		return "SpecialForm"
	}

	return "Function"
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	_ = Value(True{})
	_ = Value(Nil{})
	_ = Value(Float(0))
	_ = Value(Int(0))
	_ = Value(Symbol(""))
	_ = Value(StringRef(""))
	_ = Value(String(""))
	_ = Value(&StringBuf{})
	_ = Value(Char(0))
	_ = Value(&Lambda{})
	_ = Value(&Macro{})
	_ = Value(&Vector{})
	_ = Value(Pair{})
	_ = Value(&HashMap{})
	_ = Value(&Function{})
	_ = Value(Process{})
	_ = Value(&File{})
	_ = Value(&LazyFn{})

	_ = heap.Freer(&File{})
	_ = heap.Object(&object{})
}
