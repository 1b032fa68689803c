package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeLookupWalksOutward(t *testing.T) {
	e, _ := newEnv(t)

	outer := NewScope(e.RootScope())
	inner := NewScope(outer)

	e.bind(outer, "x", e.Int(1), "")

	r, s := inner.Lookup("x")
	require.NotNil(t, r)
	require.Same(t, outer, s)
	require.Equal(t, "root", inner.Namespace())

	_, ok := inner.Get("x")
	require.False(t, ok)
}

func TestNamespaces(t *testing.T) {
	e, _ := newEnv(t)

	run(t, e, l("ns-create", l("quote", "util")))
	require.Equal(t, "util", e.Namespace())
	require.Equal(t, "util", run(t, e, "*ns*").Text())

	run(t, e, l("def", l("quote", "helper"), 1))
	run(t, e, l("def", l("quote", "root::shared"), 2))
	run(t, e, l("ns-pop"))

	require.Equal(t, "root", e.Namespace())
	require.Equal(t, "1", run(t, e, "util::helper").String())
	require.Equal(t, "2", run(t, e, "shared").String())
	require.Equal(t, Unbound, runErr(t, e, "helper").Kind)

	require.Equal(t, "t", run(t, e, l("ns-exists?", l("quote", "util"))).String())
	require.Equal(t, `#("root" "util")`, run(t, e, l("ns-list")).String())
	require.Equal(t, "#(*ns* helper)", run(t, e, l("ns-symbols", l("quote", "util"))).String())

	err := runErr(t, e, l("ns-create", l("quote", "util")))
	require.Equal(t, Namespace, err.Kind)

	require.Equal(t, Namespace, runErr(t, e, l("ns-pop")).Kind)
}

func TestNsEnter(t *testing.T) {
	e, _ := newEnv(t)

	run(t, e, l("ns-create", l("quote", "util")))
	run(t, e, l("def", l("quote", "helper"), 1))
	run(t, e, l("ns-pop"))

	run(t, e, l("ns-enter", l("quote", "util")))
	require.Equal(t, "util", e.Namespace())
	require.Equal(t, "1", run(t, e, "helper").String())
	run(t, e, l("ns-pop"))
	require.Equal(t, "root", e.Namespace())

	err := runErr(t, e, l("ns-enter", l("quote", "absent")))
	require.Equal(t, Namespace, err.Kind)
	require.Equal(t, "root", e.Namespace())

	err = runErr(t, e, l("let", l(), l("ns-enter", l("quote", "util"))))
	require.Equal(t, Namespace, err.Kind)
	require.Equal(t, "root", e.Namespace())
}

func TestNsPopNeedsNamespaceBelow(t *testing.T) {
	e, _ := newEnv(t)

	run(t, e, l("ns-create", l("quote", "util")))
	run(t, e, l("ns-pop"))

	util, ok := e.NsScope("util")
	require.True(t, ok)

	lexical := NewScope(e.RootScope())
	e.push(lexical)
	e.push(util)

	err := e.NsPop()
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, Namespace, kind)
	require.Same(t, util, e.Scope())

	e.pop()
	require.Same(t, lexical, e.Scope())
	e.pop()
	require.Equal(t, "root", e.Namespace())
}

func TestNamespaceInLexicalScope(t *testing.T) {
	e, _ := newEnv(t)

	err := runErr(t, e, l("let", l(), l("ns-create", l("quote", "x"))))
	require.Equal(t, Namespace, err.Kind)
}

func TestDefNamespaceMustEnclose(t *testing.T) {
	e, _ := newEnv(t)

	err := runErr(t, e, l("def", l("quote", "other::x"), 1))
	require.Equal(t, Namespace, err.Kind)
}

func TestUndefOnlyCurrentScope(t *testing.T) {
	e, _ := newEnv(t)

	run(t, e, l("def", l("quote", "x"), 1))

	err := runErr(t, e, l("let", l(), l("undef", l("quote", "x"))))
	require.Equal(t, Unbound, err.Kind)
	require.Contains(t, err.Message, "can only undef symbols in current scope")
}

func TestDoc(t *testing.T) {
	e, _ := newEnv(t)

	run(t, e, l("def", l("quote", "f"), e.Str("Adds."), l("fn", l("a", "b"), "a")))

	require.Equal(t, "f\nType: Lambda\nNamespace: root\n\nUsage: (f a b)\n\nAdds.\n",
		run(t, e, l("doc", l("quote", "f"))).Text())
	require.Equal(t, "Adds.", run(t, e, l("doc-raw", l("quote", "f"))).Text())
	require.Equal(t, "t", run(t, e, l("def?", l("quote", "f"))).String())
	require.Equal(t, "nil", run(t, e, l("def?", l("quote", "g"))).String())
}
