// Released under an MIT license. See LICENSE.

package lisp

import (
	"bufio"
	"errors"
	"io"

	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
)

// FileKind is the state of a File.
type FileKind int

// File states.
const (
	Stdin FileKind = iota
	Stdout
	Stderr
	ReadFile
	WriteFile
	Closed
)

// File is a shared handle to an input or output stream.
type File struct {
	Kind FileKind

	closer io.Closer
	reader *bufio.Reader
	writer *bufio.Writer
}

var errClosed = errors.New("file is closed")

// NewReader creates a File that reads from r.
func NewReader(kind FileKind, r io.Reader) *File {
	f := &File{Kind: kind, reader: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok && kind == ReadFile {
		f.closer = c
	}

	return f
}

// NewWriter creates a File that writes to w.
func NewWriter(kind FileKind, w io.Writer) *File {
	f := &File{Kind: kind, writer: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok && kind == WriteFile {
		f.closer = c
	}

	return f
}

// Close flushes and closes the file. Standard streams are only flushed.
func (f *File) Close() error {
	if f.Kind == Closed {
		return nil
	}

	err := f.Flush()

	if f.closer != nil {
		if cerr := f.closer.Close(); err == nil {
			err = cerr
		}

		f.Kind = Closed
		f.closer = nil
		f.reader = nil
		f.writer = nil
	}

	return err
}

// Flush writes any buffered output.
func (f *File) Flush() error {
	if f.writer == nil {
		return nil
	}

	return f.writer.Flush()
}

// Free releases the host file when the object holding f is collected.
func (f *File) Free() {
	_ = f.Close()
}

// ReadLine returns the next line including its newline. At end of input
// it returns io.EOF with whatever was read.
func (f *File) ReadLine() (string, error) {
	if f.reader == nil {
		return "", errClosed
	}

	return f.reader.ReadString('\n')
}

func (*File) Trace(*heap.Tracer) {}

func (*File) Type() string {
	return "File"
}

// WriteString writes s to the file.
func (f *File) WriteString(s string) error {
	if f.writer == nil {
		return errClosed
	}

	_, err := f.writer.WriteString(s)
	if err != nil {
		return err
	}

	if f.Kind != WriteFile {
		return f.writer.Flush()
	}

	return nil
}

func (f *File) String() string {
	switch f.Kind {
	case Stdin:
		return "#<STDIN>"
	case Stdout:
		return "#<STDOUT>"
	case Stderr:
		return "#<STDERR>"
	case ReadFile:
		return "#<READ FILE>"
	case WriteFile:
		return "#<WRITE FILE>"
	}

	return "#<CLOSED FILE>"
}
