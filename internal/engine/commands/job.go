// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// Jobs is implemented by launchers that support job control.
type Jobs interface {
	Bg(n int) (int, error)
	Fg(n int) (int, error)
	List() []string
}

// JobFunctions returns the process natives.
func JobFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"bg":   bg,
		"fg":   fg,
		"jobs": jobs,
		"pid":  pid,
		"wait": wait,
	}
}

func jobControl(e *lisp.Env, name string) (Jobs, error) {
	j, ok := e.Launcher().(Jobs)
	if !ok {
		return nil, lisp.Errorf(lisp.HostIO, "%s: job control is not available", name)
	}

	return j, nil
}

func jobNumber(name string, v []lisp.Expression) (int, error) {
	if len(v) == 0 {
		return 0, nil
	}

	n, err := integer(name, v[0])

	return int(n), err
}

func jobs(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	if _, err := check("jobs", args, 0, 0); err != nil {
		return e.Nil(), err
	}

	j, err := jobControl(e, "jobs")
	if err != nil {
		return e.Nil(), err
	}

	out, err := e.Stream("*stdout*")
	if err != nil {
		return e.Nil(), err
	}

	for _, line := range j.List() {
		if err := out.WriteString(line + "\n"); err != nil {
			return e.Nil(), lisp.Wrap(lisp.HostIO, err)
		}
	}

	return e.Nil(), nil
}

func fg(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("fg", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	j, err := jobControl(e, "fg")
	if err != nil {
		return e.Nil(), err
	}

	n, err := jobNumber("fg", v)
	if err != nil {
		return e.Nil(), err
	}

	status, err := j.Fg(n)
	if err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Int(int64(status)), nil
}

func bg(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("bg", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	j, err := jobControl(e, "bg")
	if err != nil {
		return e.Nil(), err
	}

	n, err := jobNumber("bg", v)
	if err != nil {
		return e.Nil(), err
	}

	p, err := j.Bg(n)
	if err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Alloc(lisp.Process{Pid: p, Running: true}), nil
}

func processArg(name string, x lisp.Expression) (lisp.Process, error) {
	p, ok := x.Value().(lisp.Process)
	if !ok {
		return p, mismatch(name, "a process", x)
	}

	return p, nil
}

func pid(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("pid", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	p, err := processArg("pid", v[0])
	if err != nil {
		return e.Nil(), err
	}

	return e.Int(int64(p.Pid)), nil
}

func wait(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("wait", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	p, err := processArg("wait", v[0])
	if err != nil {
		return e.Nil(), err
	}

	if !p.Running {
		return e.Int(int64(p.Status)), nil
	}

	if e.Launcher() == nil {
		return e.Nil(), lisp.Errorf(lisp.HostIO, "wait: no process launcher")
	}

	status, err := e.Launcher().Wait(p.Pid)
	if err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	v[0].Mutate(lisp.Process{Pid: p.Pid, Status: status})

	return e.Int(int64(status)), nil
}
