// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for lish.
//
// The lish lexer adapts the state function approach used by Go's text/template
// lexer and described in detail in Rob Pike's talk "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/lish/internal/common/struct/loc"
	"github.com/michaelmacinnis/lish/internal/common/struct/token"
)

// T holds the state of the scanner.
type T struct {
	bytes string // Buffer being scanned.
	first int    // Index of the current token's first byte.
	index int    // Index of the current byte.
	saved action // Escaped action.
	state action // Current action.

	position loc.T // Location of the current byte.
	source   loc.T // Location of the current token's first byte.

	tokens []*token.T
}

// New creates a new T. Label can be a file name or other identifier.
func New(label string) *T {
	l := &T{
		position: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
	}

	l.source = l.position
	l.state = skipWhitespace

	return l
}

// Pending returns true if the input ended inside a token.
func (l *T) Pending() bool {
	return l.first < len(l.bytes)
}

// Scan passes a text buffer to the lexer for scanning.
func (l *T) Scan(text string) {
	l.bytes = l.bytes[l.first:] + text
	l.index -= l.first
	l.first = 0
}

// Text is used to return the text corresponding to the current token.
func (l *T) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token, or nil if more input is needed.
func (l *T) Token() *token.T {
	for len(l.tokens) == 0 {
		state := l.state(l)
		if state == nil {
			break
		}

		l.state = state
	}

	if len(l.tokens) == 0 {
		return nil
	}

	t := l.tokens[0]
	l.tokens = l.tokens[1:]

	return t
}

type action func(*T) action

const eof = -1

func (l *T) accept(r token.Class, w int) {
	if r == '\n' {
		l.position.Line++
		l.position.Char = 1
	} else {
		l.position.Char++
	}

	l.index += w
}

func (l *T) emit(c token.Class, v string) {
	l.tokens = append(l.tokens, token.New(c, v, l.source))
	l.skip()
}

func (l *T) escape(escaped, a action) action {
	l.saved = escaped

	return a
}

func (l *T) next() token.Class {
	r, w := l.peek()
	l.accept(r, w)

	return r
}

func (l *T) peek() (token.Class, int) {
	r, w := rune(eof), 0
	if l.index < len(l.bytes) {
		r, w = utf8.DecodeRuneInString(l.bytes[l.index:])
	}

	return token.Class(r), w
}

func (l *T) resume() action {
	resumed := l.saved
	l.saved = nil

	return resumed
}

func (l *T) skip() {
	l.source = l.position
	l.first = l.index
}

// T states.

func afterComma(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '@':
		l.accept(r, w)
		l.emit(token.Splice, l.Text())
	default:
		l.emit(token.Unquote, l.Text())
	}

	return skipWhitespace
}

func afterHash(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '(':
		l.accept(r, w)
		l.emit(token.VectorOpen, l.Text())

		return skipWhitespace
	case '\\':
		l.accept(r, w)

		return scanChar
	case '|':
		l.accept(r, w)

		return skipBlockComment
	case '!':
		l.accept(r, w)

		return skipComment
	}

	return scanSymbol
}

func escapeNextCharacter(l *T) action {
	r := l.next()

	if r == eof {
		return nil
	}

	return l.resume()
}

// A character is #\ followed by one rune and, for named characters
// like #\space, any letters that follow.
func scanChar(l *T) action {
	r, w := l.peek()
	if r == eof {
		return nil
	}

	l.accept(r, w)

	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case delimiter(r):
			l.emit(token.Char, l.Text())

			return skipWhitespace
		}

		l.accept(r, w)
	}
}

func scanDoubleQuoted(l *T) action {
	for {
		c := l.next()

		switch c {
		case eof:
			return nil
		case '"':
			l.emit(token.DoubleQuoted, l.Text())

			return skipWhitespace
		case '\\':
			return l.escape(scanDoubleQuoted, escapeNextCharacter)
		}
	}
}

func scanSymbol(l *T) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case r == '\\':
			l.accept(r, w)

			return l.escape(scanSymbol, escapeNextCharacter)
		case delimiter(r):
			l.emit(token.Symbol, l.Text())

			return skipWhitespace
		}

		l.accept(r, w)
	}
}

func skipBlockComment(l *T) action {
	for {
		switch l.next() {
		case eof:
			return nil
		case '|':
			if r, w := l.peek(); r == '#' {
				l.accept(r, w)
				l.skip()

				return skipWhitespace
			}
		}
	}
}

func skipComment(l *T) action {
	for {
		r, w := l.peek()

		switch r {
		case eof:
			l.skip()

			return nil
		case '\n':
			l.accept(r, w)
			l.skip()

			return skipWhitespace
		}

		l.accept(r, w)
	}
}

func skipWhitespace(l *T) action {
	for {
		r, w := l.peek()

		if strings.ContainsRune("\n\r\t ", rune(r)) {
			l.accept(r, w)
			l.skip()

			continue
		}

		switch r {
		case eof:
			return nil
		case '(', ')':
			l.accept(r, w)
			l.emit(r, l.Text())
		case '\'':
			l.accept(r, w)
			l.emit(token.Quote, l.Text())
		case '`':
			l.accept(r, w)
			l.emit(token.BackQuote, l.Text())
		case ',':
			l.accept(r, w)

			return afterComma
		case '"':
			l.accept(r, w)

			return scanDoubleQuoted
		case '#':
			l.accept(r, w)

			return afterHash
		case ';':
			return skipComment
		default:
			return scanSymbol
		}
	}
}

// Helper functions (well, function).

func delimiter(r token.Class) bool {
	return strings.ContainsRune("\n\r\t ()\"';`,", rune(r))
}
