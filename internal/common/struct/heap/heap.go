// Released under an MIT license. See LICENSE.

// Package heap provides the slot arena that backs every lish value.
//
// Objects are addressed by generational handles. A handle whose slot has
// been reclaimed (and possibly reused) is stale; dereferencing it yields a
// *StaleError instead of another object's contents. Reclamation is a
// stop-the-world mark and sweep driven by the caller's roots plus any
// explicitly rooted handles.
package heap

import (
	"fmt"
)

// Handle refers to an object in a T. The zero Handle refers to nothing.
type Handle struct {
	index uint32
	gen   uint32
}

// Object is anything that can be stored in a T. Trace must mark every
// handle the object refers to.
type Object interface {
	Trace(t *Tracer)
}

// Freer is implemented by objects that hold host resources.
type Freer interface {
	Free()
}

// StaleError is returned (or panicked) when a handle outlives its object.
type StaleError struct {
	Handle Handle
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("stale handle %d.%d", e.Handle.index, e.Handle.gen)
}

// T (heap) is a generational arena.
type T struct {
	collected int
	free      []uint32
	slots     []slot
}

type heap = T

type slot struct {
	gen    uint32
	marked bool
	object Object
	roots  int
}

// New creates a new T.
func New() *T {
	// Slot zero is never handed out so the zero Handle is always invalid.
	return &T{slots: []slot{{gen: 1}}}
}

// Index returns a number identifying the slot h refers to.
func (h Handle) Index() uint32 {
	return h.index
}

// IsZero returns true if h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.index == 0
}

// Collect marks everything reachable from roots and from rooted handles
// and frees the rest. It returns the number of objects freed.
func (a *heap) Collect(roots func(t *Tracer)) int {
	t := &Tracer{heap: a, seen: map[any]struct{}{}}

	for i := range a.slots {
		a.slots[i].marked = false
	}

	for i := range a.slots {
		s := &a.slots[i]
		if s.object != nil && s.roots > 0 {
			t.Mark(Handle{index: uint32(i), gen: s.gen})
		}
	}

	if roots != nil {
		roots(t)
	}

	t.drain()

	n := 0

	for i := range a.slots {
		s := &a.slots[i]
		if s.object == nil || s.marked {
			continue
		}

		if f, ok := s.object.(Freer); ok {
			f.Free()
		}

		s.object = nil
		s.roots = 0
		s.gen++

		a.free = append(a.free, uint32(i))

		n++
	}

	a.collected += n

	return n
}

// Collected returns the total number of objects freed by Collect.
func (a *heap) Collected() int {
	return a.collected
}

// Get returns the object h refers to.
func (a *heap) Get(h Handle) (Object, error) {
	s, err := a.slot(h)
	if err != nil {
		return nil, err
	}

	return s.object, nil
}

// Insert stores o and returns an unrooted handle to it.
func (a *heap) Insert(o Object) Handle {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]

		s := &a.slots[i]
		s.object = o

		return Handle{index: i, gen: s.gen}
	}

	a.slots = append(a.slots, slot{gen: 1, object: o})

	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

// InsertRooted stores o and returns a rooted handle to it.
func (a *heap) InsertRooted(o Object) Handle {
	h := a.Insert(o)
	a.slots[h.index].roots++

	return h
}

// Live returns the number of objects currently stored.
func (a *heap) Live() int {
	return len(a.slots) - 1 - len(a.free)
}

// Root increments the root count for h.
func (a *heap) Root(h Handle) error {
	s, err := a.slot(h)
	if err != nil {
		return err
	}

	s.roots++

	return nil
}

// Rooted returns true if h is currently rooted.
func (a *heap) Rooted(h Handle) bool {
	s, err := a.slot(h)

	return err == nil && s.roots > 0
}

// Set replaces the object h refers to.
func (a *heap) Set(h Handle, o Object) error {
	s, err := a.slot(h)
	if err != nil {
		return err
	}

	s.object = o

	return nil
}

// Unroot decrements the root count for h.
func (a *heap) Unroot(h Handle) error {
	s, err := a.slot(h)
	if err != nil {
		return err
	}

	if s.roots > 0 {
		s.roots--
	}

	return nil
}

func (a *heap) slot(h Handle) (*slot, error) {
	if h.index == 0 || int(h.index) >= len(a.slots) {
		return nil, &StaleError{Handle: h}
	}

	s := &a.slots[h.index]
	if s.gen != h.gen || s.object == nil {
		return nil, &StaleError{Handle: h}
	}

	return s, nil
}

// Tracer is passed to Object.Trace during collection.
type Tracer struct {
	heap  *T
	seen  map[any]struct{}
	stack []Handle
}

// Mark records h as reachable. Stale handles are ignored.
func (t *Tracer) Mark(h Handle) {
	s, err := t.heap.slot(h)
	if err != nil || s.marked {
		return
	}

	s.marked = true

	t.stack = append(t.stack, h)
}

// Once returns true the first time it is called with key during a
// collection. It lets shared non-heap structures be traced once.
func (t *Tracer) Once(key any) bool {
	if _, ok := t.seen[key]; ok {
		return false
	}

	t.seen[key] = struct{}{}

	return true
}

// Marking is iterative so deep lists do not grow the Go stack.
func (t *Tracer) drain() {
	for n := len(t.stack); n > 0; n = len(t.stack) {
		h := t.stack[n-1]
		t.stack = t.stack[:n-1]

		t.heap.slots[h.index].object.Trace(t)
	}
}
