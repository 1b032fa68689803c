// Released under an MIT license. See LICENSE.

package lisp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/michaelmacinnis/adapted"
)

// Run name as an external program. Arguments are evaluated with loose
// symbols and no form restriction. Bare words are tilde and glob expanded.
func (e *env) external(name string, args []Expression) (Expression, error) {
	if e.form == FormOnly {
		return e.nilExp, Errorf(FormRestriction,
			"Not a form: %s (external commands are not allowed inside form)", name)
	}

	if e.launcher == nil {
		return e.nilExp, Errorf(Unbound, "Symbol %s not found", name)
	}

	argv := []string{expandTilde(name)}

	_, err := e.WithForm(Any, func() (Expression, error) {
		return e.WithLoose(true, func() (Expression, error) {
			for _, a := range args {
				_, bare := a.Value().(Symbol)

				v, err := e.Eval(a)
				if err != nil {
					return v, err
				}

				argv = append(argv, words(v, bare)...)
			}

			return e.nilExp, nil
		})
	})
	if err != nil {
		return e.nilExp, err
	}

	pid, err := e.launcher.Launch(argv, e.background)
	if err != nil {
		return e.nilExp, Wrap(HostIO, err)
	}

	if e.background {
		return e.Alloc(Process{Pid: pid, Running: true}), nil
	}

	status, err := e.launcher.Wait(pid)
	if err != nil {
		return e.nilExp, Wrap(HostIO, err)
	}

	return e.Alloc(Process{Pid: pid, Status: status}), nil
}

func expandTilde(s string) string {
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return s
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return s
	}

	return filepath.Join(home, s[1:])
}

func words(v Expression, bare bool) []string {
	if items, ok := v.Items(); ok && !v.IsNil() {
		ws := make([]string, 0, len(items))
		for _, item := range items {
			ws = append(ws, item.Text())
		}

		return ws
	}

	s := v.Text()
	if !bare {
		return []string{s}
	}

	s = expandTilde(s)

	if !strings.ContainsAny(s, "*?[") {
		return []string{s}
	}

	m, err := adapted.Glob(s)
	if err != nil || len(m) == 0 {
		return []string{s}
	}

	return m
}
