// Released under an MIT license. See LICENSE.

// Package interner provides lish's symbol table.
package interner

import (
	"fmt"
	"sync"
)

// T (interner) maps strings to a single shared copy.
type T struct {
	sync.RWMutex
	m     map[string]string
	bytes int
}

type interner = T

// New creates a new interner.
func New() *interner {
	return &interner{m: map[string]string{}}
}

// Intern returns the shared copy of s, adding it if necessary.
func (i *interner) Intern(s string) string {
	i.RLock()
	v, ok := i.m[s]
	i.RUnlock()

	if ok {
		return v
	}

	i.Lock()
	defer i.Unlock()

	if v, ok = i.m[s]; ok {
		return v
	}

	i.m[s] = s
	i.bytes += len(s)

	return s
}

// Contains returns true if s has been interned.
func (i *interner) Contains(s string) bool {
	i.RLock()
	defer i.RUnlock()

	_, ok := i.m[s]

	return ok
}

// Len returns the number of interned strings.
func (i *interner) Len() int {
	i.RLock()
	defer i.RUnlock()

	return len(i.m)
}

// Bytes returns the number of bytes used by interned strings.
func (i *interner) Bytes() int {
	i.RLock()
	defer i.RUnlock()

	return i.bytes
}

// Stats returns a summary suitable for display.
func (i *interner) Stats() string {
	return fmt.Sprintf("symbols interned: %d\nbytes used: %d", i.Len(), i.Bytes())
}
