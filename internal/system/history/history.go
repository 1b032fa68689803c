// Released under an MIT license. See LICENSE.

// Package history reads and writes the REPL's history file.
package history

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Load passes the history file at path to read. A missing file is not
// an error.
func Load(path string, read func(r io.Reader) (int, error)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	defer f.Close()

	_, err = read(f)

	return err
}

// Save creates the history file at path, and its directory, and passes
// it to write.
func Save(path string, write func(w io.Writer) (int, error)) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
