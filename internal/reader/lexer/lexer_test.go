package lexer

import (
	"testing"

	"github.com/michaelmacinnis/lish/internal/common/struct/loc"
	"github.com/michaelmacinnis/lish/internal/common/struct/token"
)

func TestList(t *testing.T) {
	h := setup(t, "List")

	h.scan("(a 1)\n",
		h.literal("("),
		h.symbol("a"),
		h.space(1),
		h.symbol("1"),
		h.literal(")"),
		nil,
	)
}

func TestQuotes(t *testing.T) {
	h := setup(t, "Quotes")

	h.scan("'a `(b ,c ,@d)\n",
		h.other(token.Quote, "'"),
		h.symbol("a"),
		h.space(1),
		h.other(token.BackQuote, "`"),
		h.literal("("),
		h.symbol("b"),
		h.space(1),
		h.other(token.Unquote, ","),
		h.symbol("c"),
		h.space(1),
		h.other(token.Splice, ",@"),
		h.symbol("d"),
		h.literal(")"),
		nil,
	)
}

func TestStrings(t *testing.T) {
	h := setup(t, "Strings")

	h.scan(`"a \"b\"" "c"`+"\n",
		h.other(token.DoubleQuoted, `"a \"b\""`),
		h.space(1),
		h.other(token.DoubleQuoted, `"c"`),
		nil,
	)
}

func TestCharsAndVectors(t *testing.T) {
	h := setup(t, "CharsAndVectors")

	h.scan(`#(#\a #\space #\()`+"\n",
		h.other(token.VectorOpen, "#("),
		h.other(token.Char, `#\a`),
		h.space(1),
		h.other(token.Char, `#\space`),
		h.space(1),
		h.other(token.Char, `#\(`),
		h.literal(")"),
		nil,
	)
}

func TestComments(t *testing.T) {
	h := setup(t, "Comments")

	h.scan("a ; comment\n",
		h.symbol("a"),
		nil,
	)

	h.newline()

	h.scan("#| block\n|# b\n",
		h.skipTo(3, 4),
		h.symbol("b"),
		nil,
	)

	h.scan("#!/usr/bin/env lish\nc\n",
		h.skipTo(5, 1),
		h.symbol("c"),
		nil,
	)
}

func TestContinuation(t *testing.T) {
	h := setup(t, "Continuation")

	h.scan(`"open`,
		nil,
	)

	if !h.lexer.Pending() {
		t.Fatal("expected an unterminated string to be pending")
	}

	h.scan("\"\n",
		h.other(token.DoubleQuoted, "\"open\""),
		nil,
	)

	if h.lexer.Pending() {
		t.Fatal("expected nothing pending")
	}
}

func TestSymbols(t *testing.T) {
	h := setup(t, "Symbols")

	h.scan("ns::sym $HOME :kw -1.5 str->int\n",
		h.symbol("ns::sym"),
		h.space(1),
		h.symbol("$HOME"),
		h.space(1),
		h.symbol(":kw"),
		h.space(1),
		h.symbol("-1.5"),
		h.space(1),
		h.symbol("str->int"),
		nil,
	)
}

type harness struct {
	index  int
	lexer  *T
	source loc.T
	t      *testing.T
}

var skip = token.New(token.Error, "", loc.T{}) //nolint:gochecknoglobals

func setup(t *testing.T, label string) *harness {
	return &harness{
		index: 1,
		lexer: New(label),
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
		t: t,
	}
}

func (h *harness) expect(tokens ...*token.T) {
	for _, e := range tokens {
		if e == skip {
			continue
		}

		a := h.lexer.Token()

		switch {
		case a == e:
			continue
		case a == nil:
			h.t.Fatalf("Expected %v but there are no tokens", e)
		case e == nil:
			h.t.Fatalf("Expected no tokens; got %v", a)
		case *a != *e:
			h.t.Fatalf("Expected %v; got %v", e, a)
		}
	}
}

func (h *harness) literal(s string) *token.T {
	return h.other(token.Class(s[0]), s)
}

func (h *harness) newline() {
	h.index = 1
	h.source.Line++
}

func (h *harness) other(id token.Class, s string) *token.T {
	h.source.Char = h.index
	h.index += len(s)

	return token.New(id, s, h.source)
}

func (h *harness) scan(s string, tokens ...*token.T) {
	h.lexer.Scan(s)
	h.expect(tokens...)
}

func (h *harness) skipTo(line, char int) *token.T {
	h.source.Line = line
	h.index = char

	return skip
}

func (h *harness) space(n int) *token.T {
	h.index += n

	return skip
}

func (h *harness) symbol(s string) *token.T {
	return h.other(token.Symbol, s)
}
