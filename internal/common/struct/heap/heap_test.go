package heap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type leaf struct {
	freed *bool
}

func (l *leaf) Trace(*Tracer) {}

func (l *leaf) Free() {
	if l.freed != nil {
		*l.freed = true
	}
}

type node struct {
	children []Handle
}

func (n *node) Trace(t *Tracer) {
	for _, c := range n.children {
		t.Mark(c)
	}
}

func TestInsertGet(t *testing.T) {
	a := New()

	l := &leaf{}
	h := a.Insert(l)

	o, err := a.Get(h)
	require.NoError(t, err)
	require.Same(t, l, o)
	require.Equal(t, 1, a.Live())
}

func TestZeroHandleIsStale(t *testing.T) {
	a := New()

	_, err := a.Get(Handle{})

	var stale *StaleError
	require.True(t, errors.As(err, &stale))
}

func TestCollectUnreachable(t *testing.T) {
	a := New()

	freed := false
	h := a.Insert(&leaf{freed: &freed})

	require.Equal(t, 1, a.Collect(nil))
	require.True(t, freed)

	_, err := a.Get(h)
	require.Error(t, err)
	require.Equal(t, 0, a.Live())
}

func TestCollectKeepsRootedAndChildren(t *testing.T) {
	a := New()

	c1 := a.Insert(&leaf{})
	c2 := a.Insert(&leaf{})
	p := a.InsertRooted(&node{children: []Handle{c1, c2}})
	orphan := a.Insert(&leaf{})

	require.Equal(t, 1, a.Collect(nil))

	for _, h := range []Handle{p, c1, c2} {
		_, err := a.Get(h)
		require.NoError(t, err)
	}

	_, err := a.Get(orphan)
	require.Error(t, err)

	require.True(t, a.Rooted(p))
	require.False(t, a.Rooted(c1))
	require.False(t, a.Rooted(orphan))

	require.NoError(t, a.Unroot(p))
	require.False(t, a.Rooted(p))
	require.Equal(t, 3, a.Collect(nil))
	require.Equal(t, 4, a.Collected())
}

func TestCollectFromCallerRoots(t *testing.T) {
	a := New()

	h := a.Insert(&leaf{})

	n := a.Collect(func(t *Tracer) {
		t.Mark(h)
	})
	require.Zero(t, n)

	_, err := a.Get(h)
	require.NoError(t, err)
}

func TestCycles(t *testing.T) {
	a := New()

	x := &node{}
	y := &node{}
	hx := a.Insert(x)
	hy := a.Insert(y)
	x.children = []Handle{hy}
	y.children = []Handle{hx}

	require.Zero(t, a.Collect(func(t *Tracer) { t.Mark(hx) }))
	require.Equal(t, 2, a.Collect(nil))
}

func TestReuseBumpsGeneration(t *testing.T) {
	a := New()

	old := a.Insert(&leaf{})
	a.Collect(nil)

	fresh := a.Insert(&leaf{})
	require.Equal(t, old.Index(), fresh.Index())

	_, err := a.Get(old)
	require.Error(t, err)

	_, err = a.Get(fresh)
	require.NoError(t, err)
}

func TestOnce(t *testing.T) {
	a := New()

	seen := 0
	a.Collect(func(t *Tracer) {
		for i := 0; i < 3; i++ {
			if t.Once("scope") {
				seen++
			}
		}
	})

	require.Equal(t, 1, seen)
}
