// Released under an MIT license. See LICENSE.

package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// FileFunctions returns the output and file natives.
func FileFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"close":        closeFile,
		"eprint":       printer("eprint", "*stderr*", text0, ""),
		"eprintln":     printer("eprintln", "*stderr*", text0, "\n"),
		"exists":       exists,
		"flush":        flush,
		"format":       format,
		"open":         open,
		"pr":           printer("pr", "*stdout*", printed, ""),
		"print":        printer("print", "*stdout*", text0, ""),
		"println":      printer("println", "*stdout*", text0, "\n"),
		"read-line":    readLine,
		"umask":        umask,
		"write-string": writeString,
	}
}

func printed(x lisp.Expression) string {
	return x.String()
}

func text0(x lisp.Expression) string {
	return x.Text()
}

func printer(name, stream string, show func(lisp.Expression) string, end string) lisp.Native {
	return func(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
		f, err := e.Stream(stream)
		if err != nil {
			return e.Nil(), err
		}

		var b strings.Builder

		for _, a := range args {
			b.WriteString(show(a))
		}

		b.WriteString(end)

		if err := f.WriteString(b.String()); err != nil {
			return e.Nil(), lisp.Errorf(lisp.HostIO, "%s: %s", name, err)
		}

		return e.Nil(), nil
	}
}

func format(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return e.Str(concat(args)), nil
}

func fileArg(name string, x lisp.Expression) (*lisp.File, error) {
	f, ok := x.Value().(*lisp.File)
	if !ok {
		return nil, mismatch(name, "a file", x)
	}

	return f, nil
}

func open(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("open", args, 1, 2)
	if err != nil {
		return e.Nil(), err
	}

	path, err := text("open", v[0])
	if err != nil {
		return e.Nil(), err
	}

	mode := ":read"
	if len(v) == 2 {
		mode = v[1].Text()
	}

	switch mode {
	case ":read":
		f, err := os.Open(path)
		if err != nil {
			return e.Nil(), lisp.Wrap(lisp.HostIO, err)
		}

		return e.Alloc(lisp.NewReader(lisp.ReadFile, f)), nil
	case ":write", ":append":
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if mode == ":append" {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}

		f, err := os.OpenFile(path, flags, 0o666)
		if err != nil {
			return e.Nil(), lisp.Wrap(lisp.HostIO, err)
		}

		return e.Alloc(lisp.NewWriter(lisp.WriteFile, f)), nil
	}

	return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "open: mode must be :read, :write or :append, got %s", mode)
}

func closeFile(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("close", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	f, err := fileArg("close", v[0])
	if err != nil {
		return e.Nil(), err
	}

	if err := f.Close(); err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Nil(), nil
}

func flush(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("flush", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	f, err := e.Stream("*stdout*")
	if len(v) == 1 {
		f, err = fileArg("flush", v[0])
	}

	if err != nil {
		return e.Nil(), err
	}

	if err := f.Flush(); err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Nil(), nil
}

func readLine(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("read-line", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	f, err := e.Stream("*stdin*")
	if len(v) == 1 {
		f, err = fileArg("read-line", v[0])
	}

	if err != nil {
		return e.Nil(), err
	}

	line, err := f.ReadLine()
	if errors.Is(err, io.EOF) && line == "" {
		return e.Nil(), nil
	} else if err != nil && !errors.Is(err, io.EOF) {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Str(line), nil
}

func writeString(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("write-string", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	f, err := fileArg("write-string", v[0])
	if err != nil {
		return e.Nil(), err
	}

	if err := f.WriteString(v[1].Text()); err != nil {
		return e.Nil(), lisp.Wrap(lisp.HostIO, err)
	}

	return e.Nil(), nil
}

// exists is true if every path exists. A "-i" argument restricts the
// remaining checks to regular files.
func exists(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	count := 0
	regular := false

	for _, a := range args {
		path := a.Text()
		if path == "-i" {
			regular = true

			continue
		}

		count++

		s, err := os.Stat(path)
		if err != nil {
			return e.Nil(), nil
		}

		if regular && !s.Mode().IsRegular() {
			return e.Nil(), nil
		}
	}

	return e.Bool(count > 0), nil
}
