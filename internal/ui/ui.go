// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for the lish language.
package ui

import (
	"bytes"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/michaelmacinnis/lish/internal/reader"
	"github.com/michaelmacinnis/lish/internal/system/cache"
	"github.com/michaelmacinnis/lish/internal/system/history"
	"github.com/peterh/liner"
)

// Evaluator is the interface for things that want to process parsed commands.
type Evaluator interface {
	Env() *lisp.Env
	Evaluate(forms []lisp.Expression) (lisp.Expression, error)
	Exited() (int, bool)
	Interrupt()
	Report(err error)
}

// Options control the prompt and history.
type Options struct {
	History     string
	HistorySize int
	Path        string
	Prompt      string
}

const delimiters = "\t\n ()'`,\""

// Run reads and evaluates forms until end of input or exit and returns
// the exit code.
func Run(e Evaluator, o Options) int {
	cooked, err := liner.TerminalMode()
	if err != nil {
		println(err.Error())

		return 1
	}

	cli := liner.NewLiner()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		println(err.Error())

		return 1
	}

	defer cli.Close()

	if o.History != "" {
		if err := history.Load(o.History, cli.ReadHistory); err != nil {
			println(err.Error())
		}

		defer save(cli, o)
	}

	cli.SetCtrlCAborts(true)

	c := cache.New()
	c.Populate(o.Path)

	cli.SetWordCompleter(Completer(e.Env(), c, o.Path))

	// Outside the prompt the terminal is cooked and Ctrl-C is a signal.
	sigq := make(chan os.Signal, 1)
	signal.Notify(sigq, os.Interrupt)

	defer signal.Stop(sigq)

	go func() {
		for range sigq {
			e.Interrupt()
		}
	}()

	r := reader.New(e.Env(), "lish")
	entry := ""

	for {
		prompt := o.Prompt
		if r.Pending() {
			prompt = strings.Repeat(" ", len(prompt))
		}

		if err := uncooked.ApplyMode(); err != nil {
			println(err.Error())

			return 1
		}

		line, err := cli.Prompt(prompt)

		if merr := cooked.ApplyMode(); merr != nil {
			println(merr.Error())

			return 1
		}

		switch err {
		case nil:
		case liner.ErrPromptAborted:
			r.Reset()
			entry = ""

			continue
		default:
			if err != io.EOF {
				println(err.Error())
			}

			os.Stdout.WriteString("exit\n")

			return 0
		}

		entry += line + "\n"

		forms, err := r.Scan(line + "\n")
		if r.Pending() {
			continue
		}

		if s := strings.TrimSpace(entry); s != "" {
			cli.AppendHistory(s)
		}

		entry = ""

		if err != nil {
			e.Report(err)

			continue
		}

		e.Evaluate(forms) //nolint:errcheck

		if code, ok := e.Exited(); ok {
			return code
		}
	}
}

// Completer offers bound symbols, and programs on path when the word
// follows an open parenthesis.
func Completer(e *lisp.Env, c *cache.T, path string) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		start := strings.LastIndexAny(line[:pos], delimiters) + 1

		head, word, tail := line[:start], line[start:pos], line[pos:]
		if word == "" {
			return head, nil, tail
		}

		seen := map[string]bool{}

		for s := e.Scope(); s != nil; s = s.Outer() {
			for _, k := range s.Keys() {
				if strings.HasPrefix(k, word) {
					seen[k] = true
				}
			}
		}

		if c != nil && strings.HasSuffix(head, "(") {
			for _, k := range c.Executables(path, word) {
				seen[k] = true
			}
		}

		cs := make([]string, 0, len(seen))
		for k := range seen {
			cs = append(cs, k)
		}

		sort.Strings(cs)

		return head, cs, tail
	}
}

func save(cli *liner.State, o Options) {
	var b bytes.Buffer

	if _, err := cli.WriteHistory(&b); err != nil {
		println(err.Error())

		return
	}

	err := history.Save(o.History, func(w io.Writer) (int, error) {
		return io.WriteString(w, trim(b.String(), o.HistorySize))
	})
	if err != nil {
		println(err.Error())
	}
}

func trim(s string, n int) string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "")
}
