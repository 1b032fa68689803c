// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for lish.
package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/lish/internal/common/struct/token"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// ErrIncomplete is returned when the input ends inside a form.
var ErrIncomplete = errors.New("incomplete form")

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	env   *lisp.Env       // Allocator for parsed expressions.
	item  func() *token.T // Function to call to get another token.
	token *token.T        // Token lookahead.
}

type incomplete struct{}

// New creates a new parser.
// It connects a producer of tokens with the heap that holds the result.
func New(e *lisp.Env, item func() *token.T) *T {
	return &T{env: e, item: item}
}

// Parse consumes tokens and returns every form read until there are no
// more tokens.
func (p *T) Parse() (forms []lisp.Expression, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		switch r := r.(type) {
		case incomplete:
			forms, err = nil, ErrIncomplete
		case *lisp.Error:
			forms, err = nil, r
		default:
			panic(r)
		}
	}()

	for t := p.peek(); t != nil; t = p.peek() {
		forms = append(forms, p.form())
	}

	return forms, nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume.")
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	return t
}

func (p *T) fail(t *token.T, format string, args ...any) {
	err := lisp.Errorf(lisp.Syntax, format, args...)
	err.Meta = t.Source()

	panic(err)
}

func (p *T) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

func (p *T) required() *token.T {
	t := p.peek()
	if t == nil {
		panic(incomplete{})
	}

	return t
}

// T state functions.

// <form> ::= <list> | <vector> | <prefixed> | <atom> .
func (p *T) form() lisp.Expression {
	t := p.required()

	switch {
	case t.Is('('):
		p.consume()

		return p.list(t)
	case t.Is(token.VectorOpen):
		p.consume()

		return p.vector(t)
	case t.Is(token.Quote):
		return p.prefixed("quote")
	case t.Is(token.BackQuote):
		return p.prefixed("bquote")
	case t.Is(token.Unquote, token.Splice):
		p.consume()

		return p.symbol(t, t.Value())
	case t.Is(')'):
		p.fail(t, "unexpected ')'")
	}

	p.consume()

	return p.atom(t)
}

// <list> ::= '(' <form>* ('.' <form>)? ')' .
func (p *T) list(open *token.T) lisp.Expression {
	var items []lisp.Expression

	tail := p.env.Nil()

	for t := p.required(); !t.Is(')'); t = p.required() {
		if t.Is(token.Symbol) && t.Value() == "." && len(items) > 0 {
			p.consume()

			tail = p.form()

			if t := p.required(); !t.Is(')') {
				p.fail(t, "expected ')' after dotted tail, got %q", t.Value())
			}

			break
		}

		items = append(items, p.form())
	}

	p.consume()

	if len(items) == 0 {
		return p.env.Nil()
	}

	l := p.env.ListTail(items, tail)
	l.SetMeta(open.Source())

	return l
}

// <prefixed> ::= ( Quote | BackQuote ) ( ( Unquote | Splice ) <form> | <form> ) .
// A quoted unquote keeps the comma inline: ',x reads as (quote , x).
func (p *T) prefixed(name string) lisp.Expression {
	t := p.consume()

	items := []lisp.Expression{p.symbol(t, name)}

	if n := p.required(); n.Is(token.Unquote, token.Splice) {
		p.consume()

		items = append(items, p.symbol(n, n.Value()))
	}

	items = append(items, p.form())

	l := p.env.List(items...)
	l.SetMeta(t.Source())

	return l
}

// <vector> ::= VectorOpen <form>* ')' .
func (p *T) vector(open *token.T) lisp.Expression {
	var items []lisp.Expression

	for t := p.required(); !t.Is(')'); t = p.required() {
		items = append(items, p.form())
	}

	p.consume()

	v := p.env.Vector(items)
	v.SetMeta(open.Source())

	return v
}

func (p *T) atom(t *token.T) lisp.Expression {
	text := t.Value()

	switch {
	case t.Is(token.DoubleQuoted):
		s, err := adapted.ActualBytes(text[1 : len(text)-1])
		if err != nil {
			p.fail(t, "%s", err)
		}

		return p.env.AllocAt(lisp.String(s), t.Source())
	case t.Is(token.Char):
		return p.env.AllocAt(p.char(t, text[2:]), t.Source())
	}

	switch text {
	case "nil":
		return p.env.Nil()
	case "t":
		return p.env.True()
	}

	if v, ok := number(text); ok {
		return p.env.AllocAt(v, t.Source())
	}

	return p.symbol(t, text)
}

func (p *T) char(t *token.T, name string) lisp.Char {
	switch name {
	case "space":
		return ' '
	case "newline":
		return '\n'
	case "tab":
		return '\t'
	case "return":
		return '\r'
	case "nul":
		return 0
	}

	r, w := utf8.DecodeRuneInString(name)
	if w != len(name) {
		p.fail(t, "unknown character #\\%s", name)
	}

	return lisp.Char(r)
}

func (p *T) symbol(t *token.T, name string) lisp.Expression {
	s := p.env.Sym(name)
	s.SetMeta(t.Source())

	return s
}

// Helper functions.

func number(s string) (lisp.Value, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return lisp.Int(i), true
	}

	digits := strings.TrimLeft(s, "+-")

	if strings.HasPrefix(digits, "0x") {
		i, err := strconv.ParseInt(digits[2:], 16, 64)
		if err != nil {
			return nil, false
		}

		if strings.HasPrefix(s, "-") {
			i = -i
		}

		return lisp.Int(i), true
	}

	digits = strings.TrimPrefix(digits, ".")
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return nil, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}

	return lisp.Float(f), true
}
