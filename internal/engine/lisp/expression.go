// Released under an MIT license. See LICENSE.

package lisp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
	"github.com/michaelmacinnis/lish/internal/common/struct/loc"
)

// Expression is a handle to a value in the heap. Expressions are cheap to
// copy. An expression stays valid while something rooted can reach it.
type Expression struct {
	heap *heap.T
	h    heap.Handle
}

type object struct {
	meta  *loc.T
	value Value
}

func (o *object) Free() {
	if f, ok := o.value.(heap.Freer); ok {
		f.Free()
	}
}

func (o *object) Trace(t *heap.Tracer) {
	o.value.Trace(t)
}

// Is returns true if x and y refer to the same object.
func (x Expression) Is(y Expression) bool {
	return x.h == y.h
}

// IsNil returns true if x is nil.
func (x Expression) IsNil() bool {
	_, ok := x.Value().(Nil)

	return ok
}

// Meta returns the source location recorded for x, if any.
func (x Expression) Meta() *loc.T {
	return x.object().meta
}

// Mutate replaces the value of x in place. Every holder of x sees the change.
func (x Expression) Mutate(v Value) {
	x.object().value = v
}

// SetMeta records the source location for x.
func (x Expression) SetMeta(m *loc.T) {
	x.object().meta = m
}

// Truthy returns false for nil and true for everything else.
func (x Expression) Truthy() bool {
	return !x.IsNil()
}

// Type returns the name of x's type.
func (x Expression) Type() string {
	return x.Value().Type()
}

// Valid returns true if x refers to a live object.
func (x Expression) Valid() bool {
	if x.heap == nil {
		return false
	}

	_, err := x.heap.Get(x.h)

	return err == nil
}

// Value returns the current value of x. A stale handle panics with a
// *heap.StaleError which the evaluator converts into an Error.
func (x Expression) Value() Value {
	return x.object().value
}

func (x Expression) object() *object {
	if x.heap == nil {
		panic(&heap.StaleError{Handle: x.h})
	}

	o, err := x.heap.Get(x.h)
	if err != nil {
		panic(err)
	}

	return o.(*object)
}

// Items returns the elements of a proper list or vector.
// The second result is false for anything else.
func (x Expression) Items() ([]Expression, bool) {
	switch v := x.Value().(type) {
	case Nil:
		return nil, true
	case *Vector:
		return v.Items, true
	case Pair:
		items := []Expression{v.Head}

		slow := x
		for t, i := v.Tail, 1; ; i++ {
			switch tv := t.Value().(type) {
			case Nil:
				return items, true
			case Pair:
				items = append(items, tv.Head)
				t = tv.Tail
			default:
				return items, false
			}

			// The slow pointer advances every other step and meets t on a cycle.
			if i%2 == 0 {
				slow = slow.Value().(Pair).Tail
			}

			if t.Is(slow) {
				return items, false
			}
		}
	}

	return nil, false
}

// Length implements the length builtin: characters for strings, one for
// other atoms, elements for collections and cons cells for pairs. A
// circular list is an error.
func (x Expression) Length() (int, error) {
	switch v := x.Value().(type) {
	case Nil:
		return 0, nil
	case StringRef:
		return len([]rune(string(v))), nil
	case String:
		return len([]rune(string(v))), nil
	case *StringBuf:
		return len([]rune(v.S)), nil
	case *Vector:
		return len(v.Items), nil
	case *HashMap:
		return len(v.Map), nil
	case Pair:
		n := 1

		slow := x
		for t := v.Tail; ; n++ {
			p, ok := t.Value().(Pair)
			if !ok {
				return n, nil
			}

			t = p.Tail

			if n%2 == 0 {
				slow = slow.Value().(Pair).Tail
			}

			if t.Is(slow) {
				return 0, Errorf(TypeMismatch, "length: circular list")
			}
		}
	case True, Float, Int, Symbol, Char, *Lambda, *Macro:
		return 1, nil
	}

	return 0, nil
}

// String returns the printed representation of x.
func (x Expression) String() string {
	var b strings.Builder

	x.print(&b, map[heap.Handle]bool{})

	return b.String()
}

// Text returns x as text: strings and characters without quoting,
// everything else as printed.
func (x Expression) Text() string {
	switch v := x.Value().(type) {
	case StringRef:
		return string(v)
	case String:
		return string(v)
	case *StringBuf:
		return v.S
	case Char:
		return string(rune(v))
	case Symbol:
		return string(v)
	}

	return x.String()
}

func (x Expression) print(b *strings.Builder, seen map[heap.Handle]bool) {
	if seen[x.h] {
		b.WriteString("...")
		return
	}

	switch v := x.Value().(type) {
	case True:
		b.WriteString("t")
	case Nil:
		b.WriteString("nil")
	case Float:
		b.WriteString(formatFloat(float64(v)))
	case Int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case Symbol:
		b.WriteString(string(v))
	case StringRef:
		b.WriteString(quote(string(v)))
	case String:
		b.WriteString(quote(string(v)))
	case *StringBuf:
		b.WriteString(quote(v.S))
	case Char:
		b.WriteString(charName(rune(v)))
	case *Lambda:
		b.WriteString("(fn ")
		v.Params.print(b, seen)
		b.WriteString(" ")
		v.Body.print(b, seen)
		b.WriteString(")")
	case *Macro:
		b.WriteString("(macro ")
		v.Params.print(b, seen)
		b.WriteString(" ")
		v.Body.print(b, seen)
		b.WriteString(")")
	case Process:
		if v.Running {
			b.WriteString("#<PID: " + strconv.Itoa(v.Pid) + " Running>")
		} else {
			b.WriteString("#<PID: " + strconv.Itoa(v.Pid) +
				", EXIT STATUS: " + strconv.Itoa(v.Status) + ",  Complete>")
		}
	case *Function:
		b.WriteString("#<Function>")
	case *File:
		b.WriteString(v.String())
	case *LazyFn:
		b.WriteString("#<LAZYFN<")
		v.Lambda.print(b, seen)
		b.WriteString(">>")
	case *Vector:
		seen[x.h] = true
		b.WriteString("#(")
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(" ")
			}
			item.print(b, seen)
		}
		b.WriteString(")")
		delete(seen, x.h)
	case *HashMap:
		seen[x.h] = true
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("(make-hash (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("(" + k + " . ")
			v.Map[k].print(b, seen)
			b.WriteString(")")
		}
		b.WriteString("))")
		delete(seen, x.h)
	case Pair:
		seen[x.h] = true
		x.printPair(b, v, seen)
		delete(seen, x.h)
	}
}

func (x Expression) printPair(b *strings.Builder, p Pair, seen map[heap.Handle]bool) {
	if s, ok := p.Head.Value().(Symbol); ok {
		if t, ok := p.Tail.Value().(Pair); ok && t.Tail.IsNil() {
			prefix := map[Symbol]string{"quote": "'", "bquote": "`"}[s]
			if prefix != "" {
				b.WriteString(prefix)
				t.Head.print(b, seen)

				return
			}
		}
	}

	b.WriteString("(")

	glue := false
	for {
		if glue {
			b.WriteString(" ")
		}

		p.Head.print(b, seen)

		glue = true
		if s, ok := p.Head.Value().(Symbol); ok && (s == "," || s == ",@") {
			glue = false
		}

		switch t := p.Tail.Value().(type) {
		case Nil:
			b.WriteString(")")
			return
		case Pair:
			if seen[p.Tail.h] {
				b.WriteString(" ...)")
				return
			}
			p = t
		default:
			b.WriteString(" . ")
			p.Tail.print(b, seen)
			b.WriteString(")")

			return
		}
	}
}

func charName(r rune) string {
	switch r {
	case ' ':
		return `#\space`
	case '\n':
		return `#\newline`
	case '\t':
		return `#\tab`
	}

	return `#\` + string(r)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}

	return s + ".0"
}

// The canonical form is $'...' with single quotes escaped.
func quote(s string) string {
	c := adapted.CanonicalString(s)
	c = c[2 : len(c)-1]
	c = strings.ReplaceAll(c, `\'`, `'`)
	c = strings.ReplaceAll(c, `"`, `\"`)

	return `"` + c + `"`
}
