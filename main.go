// Released under an MIT license. See LICENSE.

/*
Lish is a Lisp that doubles as a Unix shell. Symbols that are not bound
run as programs, so the following behave as expected:

	(ls -l)
	(def 'n 3)
	(echo "n is" n)
	(run-bg (sleep 10))
	(jobs)

For more detail, see the lish README and (doc 'name) at the prompt.
*/
package main

import (
	"io"
	"os"
	"os/signal"

	"github.com/michaelmacinnis/lish/internal/engine"
	"github.com/michaelmacinnis/lish/internal/engine/commands"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/michaelmacinnis/lish/internal/system/job"
	"github.com/michaelmacinnis/lish/internal/system/options"
	"github.com/michaelmacinnis/lish/internal/system/process"
	"github.com/michaelmacinnis/lish/internal/ui"
	"golang.org/x/sys/unix"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	o := options.Parse(argv, "lish "+commands.Version)

	terminal := -1
	if o.Interactive {
		terminal = o.Terminal()
	}

	self := process.New(terminal)

	if o.Interactive {
		// Handled, not ignored, so that children start with the defaults.
		signal.Notify(make(chan os.Signal, 1),
			unix.SIGQUIT, unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU)

		if err := self.BecomeForegroundGroup(); err != nil {
			println(err.Error())
		}
	}

	e, err := engine.New(engine.Options{
		Launcher:  job.New(self, o.Interactive),
		Loose:     o.Config.Loose,
		MaxDepth:  o.Config.MaxDepth,
		Threshold: o.Config.GCThreshold,
	})
	if err != nil {
		println(err.Error())

		return 1
	}

	env := e.Env()

	args := make([]lisp.Expression, 0, len(o.Args))
	for _, a := range o.Args {
		args = append(args, env.Str(a))
	}

	_ = env.Define("*args*", env.List(args...), "Command line arguments, starting with the script name.")

	for _, path := range o.Config.Init {
		e.EvalFile(path) //nolint:errcheck
	}

	if code, ok := e.Exited(); ok {
		return code
	}

	switch {
	case o.Command != "":
		_, err = e.EvalString("-c", o.Command)
	case o.Script != "":
		_, err = e.EvalFile(o.Script)
	case o.Interactive:
		return ui.Run(e, ui.Options{
			History:     o.Config.History,
			HistorySize: o.Config.HistorySize,
			Path:        os.Getenv("PATH"),
			Prompt:      o.Config.Prompt,
		})
	default:
		var b []byte

		b, err = io.ReadAll(os.Stdin)
		if err == nil {
			_, err = e.EvalString("stdin", string(b))
		} else {
			println(err.Error())
		}
	}

	if code, ok := e.Exited(); ok {
		return code
	}

	if err != nil {
		return 1
	}

	return 0
}
