package lisp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	e, _ := newEnv(t)

	tests := []struct {
		x    Expression
		want string
	}{
		{e.True(), "t"},
		{e.Nil(), "nil"},
		{e.Int(-42), "-42"},
		{e.Float(3), "3.0"},
		{e.Float(2.5), "2.5"},
		{e.Float(math.Inf(1)), "+Inf"},
		{e.Str("a\"b"), `"a\"b"`},
		{e.Str("it's"), `"it's"`},
		{e.Str("tab\there"), `"tab\there"`},
		{e.Char(' '), `#\space`},
		{e.Char('\n'), `#\newline`},
		{e.Char('x'), `#\x`},
		{build(e, l("a", 1, l("b"))), "(a 1 (b))"},
		{e.ListTail([]Expression{e.Int(1)}, e.Int(2)), "(1 . 2)"},
		{build(e, l("quote", "x")), "'x"},
		{build(e, l("bquote", l("a", ",", "b", ",@", "c"))), "`(a ,b ,@c)"},
		{e.Vector([]Expression{e.Int(1), e.Sym("a")}), "#(1 a)"},
		{e.Alloc(Process{Pid: 7, Running: true}), "#<PID: 7 Running>"},
		{e.Alloc(Process{Pid: 7, Status: 1}), "#<PID: 7, EXIT STATUS: 1,  Complete>"},
		{e.Alloc(&HashMap{Map: map[string]Expression{"b": e.Int(2), "a": e.Int(1)}}), "(make-hash ((a . 1) (b . 2)))"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.x.String())
	}
}

func TestPrintCycle(t *testing.T) {
	e, _ := newEnv(t)

	x := e.List(e.Int(1), e.Int(2))
	p := x.Value().(Pair)
	q := p.Tail.Value().(Pair)
	q.Tail = x
	p.Tail.Mutate(q)

	require.Equal(t, "(1 2 ...)", x.String())
}

func TestText(t *testing.T) {
	e, _ := newEnv(t)

	require.Equal(t, "a b", e.Str("a b").Text())
	require.Equal(t, "x", e.Char('x').Text())
	require.Equal(t, "sym", e.Sym("sym").Text())
	require.Equal(t, "(1 2)", e.List(e.Int(1), e.Int(2)).Text())
}

func TestItems(t *testing.T) {
	e, _ := newEnv(t)

	items, ok := e.Nil().Items()
	require.True(t, ok)
	require.Empty(t, items)

	items, ok = build(e, l(1, 2, 3)).Items()
	require.True(t, ok)
	require.Len(t, items, 3)

	_, ok = e.Cons(e.Int(1), e.Int(2)).Items()
	require.False(t, ok)

	_, ok = e.Int(1).Items()
	require.False(t, ok)
}

func TestLength(t *testing.T) {
	e, _ := newEnv(t)

	tests := []struct {
		x    Expression
		want int
	}{
		{e.Nil(), 0},
		{e.Str("héllo"), 5},
		{e.Int(9), 1},
		{e.Sym("abc"), 1},
		{e.True(), 1},
		{build(e, l(1, 2, 3)), 3},
		{e.ListTail([]Expression{e.Int(1), e.Int(2)}, e.Int(3)), 2},
		{e.Vector([]Expression{e.Int(1), e.Int(2)}), 2},
		{e.Alloc(&HashMap{Map: map[string]Expression{"a": e.Nil()}}), 1},
	}

	for _, tt := range tests {
		n, err := tt.x.Length()
		require.NoError(t, err, tt.x.String())
		require.Equal(t, tt.want, n, tt.x.String())
	}
}

func TestCircularList(t *testing.T) {
	e, _ := newEnv(t)

	for size := 1; size <= 4; size++ {
		x := build(e, l(1, 2, 3, 4)[:size])

		last := x
		for !last.Value().(Pair).Tail.IsNil() {
			last = last.Value().(Pair).Tail
		}

		p := last.Value().(Pair)
		p.Tail = x
		last.Mutate(p)

		_, err := x.Length()
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, TypeMismatch, kind)

		_, ok = x.Items()
		require.False(t, ok)
	}
}

func TestTruthy(t *testing.T) {
	e, _ := newEnv(t)

	require.False(t, e.Nil().Truthy())
	require.True(t, e.Int(0).Truthy())
	require.True(t, e.Str("").Truthy())
}

func TestStaleExpressionPanics(t *testing.T) {
	e, _ := newEnv(t)

	x := e.Int(1)
	e.Collect()

	require.False(t, x.Valid())
	require.Panics(t, func() { _ = x.Value() })
}
