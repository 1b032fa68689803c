// Released under an MIT license. See LICENSE.

// Package cache remembers the executables found in each PATH directory.
package cache

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// T (cache) maps directories to the executables they hold. Requests are
// served by a single goroutine.
type T struct {
	executables map[string][]string
	requestq    chan func()
}

type cache = T

// New creates an empty cache.
func New() *T {
	c := &T{
		executables: map[string][]string{},
		requestq:    make(chan func(), 1),
	}

	go c.service()

	return c
}

// Executables returns the sorted names of programs starting with prefix
// in the directories of path. Directories not yet scanned are scanned.
func (c *cache) Executables(path, prefix string) []string {
	seen := map[string]bool{}

	for _, dir := range dirs(path) {
		for _, name := range c.scan(dir, false) {
			if strings.HasPrefix(name, prefix) {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Populate scans every directory in path without waiting.
func (c *cache) Populate(path string) {
	for _, dir := range dirs(path) {
		dir := dir

		go c.scan(dir, true)
	}
}

func (c *cache) scan(dir string, refresh bool) []string {
	resultq := make(chan []string)

	c.requestq <- func() {
		defer close(resultq)

		if e, ok := c.executables[dir]; ok && !refresh {
			resultq <- e

			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			resultq <- nil

			return
		}

		e := []string{}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			info, err := entry.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}

			e = append(e, entry.Name())
		}

		c.executables[dir] = e

		resultq <- e
	}

	return <-resultq
}

func (c *cache) service() {
	for {
		(<-c.requestq)()
	}
}

func dirs(path string) []string {
	ds := []string{}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}

		ds = append(ds, filepath.Clean(dir))
	}

	return ds
}
