// Released under an MIT license. See LICENSE.

// Package reader encapsulates the lish lexer and parser.
package reader

import (
	"errors"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/michaelmacinnis/lish/internal/reader/lexer"
	"github.com/michaelmacinnis/lish/internal/reader/parser"
)

// T (reader) accumulates lines until they hold complete forms.
type T struct {
	buffer string
	env    *lisp.Env
	name   string
}

type reader = T

// New creates a new reader for name.
func New(e *lisp.Env, name string) *T {
	return &T{env: e, name: name}
}

// Pending returns true if a partial form is waiting for more input.
func (r *reader) Pending() bool {
	return r.buffer != ""
}

// Reset discards any partial form.
func (r *reader) Reset() {
	r.buffer = ""
}

// Scan adds line to the buffered input. It returns the forms read once
// the input is complete and nil while more input is needed. On error the
// buffered input is discarded.
func (r *reader) Scan(line string) ([]lisp.Expression, error) {
	text := r.buffer + line

	forms, err := Parse(r.env, r.name, text)
	if errors.Is(err, parser.ErrIncomplete) {
		r.buffer = text

		return nil, nil
	}

	r.buffer = ""

	return forms, err
}

// Parse reads every form in text. Input that ends inside a form returns
// parser.ErrIncomplete.
func Parse(e *lisp.Env, name, text string) ([]lisp.Expression, error) {
	l := lexer.New(name)

	l.Scan(text + "\n")

	forms, err := parser.New(e, l.Token).Parse()
	if err != nil {
		return nil, err
	}

	if l.Pending() {
		return nil, parser.ErrIncomplete
	}

	return forms, nil
}

// Reader returns a lisp.Reader that parses complete text for e.
func Reader(e *lisp.Env) lisp.Reader {
	return func(name, text string) ([]lisp.Expression, error) {
		forms, err := Parse(e, name, text)
		if errors.Is(err, parser.ErrIncomplete) {
			return nil, lisp.Errorf(lisp.Syntax, "%s: unexpected end of input", name)
		}

		return forms, err
	}
}
