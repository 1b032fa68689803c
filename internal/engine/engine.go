// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed lish code.
package engine

import (
	"errors"
	"io"
	"os"

	"github.com/michaelmacinnis/lish/internal/engine/boot"
	"github.com/michaelmacinnis/lish/internal/engine/commands"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/michaelmacinnis/lish/internal/reader"
)

// DefaultThreshold is the number of live objects above which the heap is
// collected between top-level forms.
const DefaultThreshold = 100000

// Options configure a new engine.
type Options struct {
	Launcher  lisp.Launcher
	Loose     bool
	MaxDepth  int
	Stderr    io.Writer
	Stdin     io.Reader
	Stdout    io.Writer
	Threshold int
}

// Poller is implemented by launchers that reap finished children.
type Poller interface {
	Poll()
}

// T (engine) is a facade in front of the machinery for evaluating lish code.
type T struct {
	env       *lisp.Env
	poller    Poller
	threshold int
}

type engine = T

// New creates an interpreter with the native library and boot script loaded.
func New(o Options) (*T, error) {
	e := lisp.New(lisp.Config{
		Launcher: o.Launcher,
		Loose:    o.Loose,
		MaxDepth: o.MaxDepth,
		Stderr:   o.Stderr,
		Stdin:    o.Stdin,
		Stdout:   o.Stdout,
	})

	commands.Register(e)
	e.SetReader(reader.Reader(e))

	t := &T{env: e, threshold: o.Threshold}
	if t.threshold <= 0 {
		t.threshold = DefaultThreshold
	}

	t.poller, _ = o.Launcher.(Poller)

	forms, err := e.Read("boot.lisp", boot.Script())
	if err != nil {
		return nil, err
	}

	// Boot must not depend on loose symbols.
	_, err = e.WithLoose(false, func() (lisp.Expression, error) {
		return t.run(forms, false)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Env returns the interpreter's environment.
func (t *engine) Env() *lisp.Env {
	return t.env
}

// EvalFile reads and evaluates the script at path.
func (t *engine) EvalFile(path string) (lisp.Expression, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		err = lisp.Wrap(lisp.HostIO, err)
		t.Report(err)

		return t.env.Nil(), err
	}

	return t.EvalString(path, string(b))
}

// EvalString evaluates every form in text. Errors are reported on
// *stderr* and evaluation continues with the next form. The last error,
// if any, is returned.
func (t *engine) EvalString(name, text string) (lisp.Expression, error) {
	forms, err := t.env.Read(name, text)
	if err != nil {
		t.Report(err)

		return t.env.Nil(), err
	}

	return t.run(forms, true)
}

// Evaluate runs the top-level forms xs in order.
func (t *engine) Evaluate(xs []lisp.Expression) (lisp.Expression, error) {
	return t.run(xs, true)
}

// Exited returns the requested exit code, if exit was called.
func (t *engine) Exited() (int, bool) {
	return t.env.ExitCode()
}

// Interrupt requests that the form currently evaluating stop.
func (t *engine) Interrupt() {
	t.env.Interrupted.Store(true)
}

// Report writes err to *stderr* with its location and, when enabled,
// the captured evaluation stack.
func (t *engine) Report(err error) {
	msg := err.Error() + "\n"

	var le *lisp.Error
	if errors.As(err, &le) {
		for _, s := range le.Stack {
			msg += "  " + s + "\n"
		}
	}

	f, serr := t.env.Stream("*stderr*")
	if serr != nil {
		println(msg)

		return
	}

	if werr := f.WriteString(msg); werr != nil {
		println(msg)
	}
}

func (t *engine) maintain(r lisp.Expression) {
	if t.poller != nil {
		t.poller.Poll()
	}

	if !t.env.CollectRequested() && t.env.Live() <= t.threshold {
		return
	}

	t.env.Root(r)
	t.env.Collect()
	t.env.Unroot(r)
}

func (t *engine) run(xs []lisp.Expression, keepGoing bool) (lisp.Expression, error) {
	for _, x := range xs {
		t.env.Root(x)
	}

	defer func() {
		for _, x := range xs {
			t.env.Unroot(x)
		}
	}()

	var last error

	r := t.env.Nil()

	for _, x := range xs {
		t.env.Interrupted.Store(false)

		v, err := t.env.Run(x)
		if err != nil {
			if !keepGoing {
				return v, err
			}

			t.Report(err)

			last = err
		} else {
			r = v
		}

		t.maintain(r)

		if _, ok := t.env.ExitCode(); ok {
			break
		}
	}

	return r, last
}
