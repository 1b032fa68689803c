// Released under an MIT license. See LICENSE.

package lisp

import (
	"sort"

	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
)

// Reference is a binding: an expression plus the namespace that owns it
// and an optional documentation string.
type Reference struct {
	Doc       string
	Exp       Expression
	Namespace string
}

// Scope maps symbols to references. Only namespace scopes have a name.
// A scope's outer link never changes after creation.
type Scope struct {
	data  map[string]*Reference
	name  string
	outer *Scope
}

// NewScope creates a scope nested inside outer.
func NewScope(outer *Scope) *Scope {
	return &Scope{data: map[string]*Reference{}, outer: outer}
}

// Get returns the reference bound to key in s itself.
func (s *Scope) Get(key string) (*Reference, bool) {
	r, ok := s.data[key]

	return r, ok
}

// Keys returns the sorted names bound in s itself.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Lookup walks outward from s and returns the first binding for key.
func (s *Scope) Lookup(key string) (*Reference, *Scope) {
	for ; s != nil; s = s.outer {
		if r, ok := s.data[key]; ok {
			return r, s
		}
	}

	return nil, nil
}

// Name returns the namespace name for s or "" for lexical scopes.
func (s *Scope) Name() string {
	return s.name
}

// Outer returns the enclosing scope.
func (s *Scope) Outer() *Scope {
	return s.outer
}

// Namespace returns the name of the closest enclosing namespace.
func (s *Scope) Namespace() string {
	for ; s != nil; s = s.outer {
		if s.name != "" {
			return s.name
		}
	}

	return ""
}

// Remove deletes key from s itself.
func (s *Scope) Remove(key string) bool {
	_, ok := s.data[key]
	delete(s.data, key)

	return ok
}

// Set binds key in s itself.
func (s *Scope) Set(key string, r *Reference) {
	s.data[key] = r
}

// Trace marks every binding in s and its enclosing scopes.
func (s *Scope) Trace(t *heap.Tracer) {
	for ; s != nil; s = s.outer {
		if !t.Once(s) {
			return
		}

		for _, r := range s.data {
			t.Mark(r.Exp.h)
		}
	}
}
