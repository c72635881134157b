// Package fs has helpers for updating local files.
package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

var errAborted = errors.New("replacer aborted")

// Replacer is an io.WriteCloser for atomically updating the content of
// a file.  Writes go to a temp file in the target's directory.  Either
// Close or Abort must be called; Close renames the temp file over the
// target while Abort leaves the target unmodified.
type Replacer struct {
	f        *os.File
	err      error
	filename string
	perm     os.FileMode
}

func NewFileReplacer(filename string, perm os.FileMode) (*Replacer, error) {
	filename, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(filename), ".tmp-"+filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	return &Replacer{
		f:        f,
		filename: filename,
		perm:     perm,
	}, nil
}

func (r *Replacer) Write(b []byte) (int, error) {
	n, err := r.f.Write(b)
	if err != nil {
		r.err = err
	}
	return n, err
}

func (r *Replacer) Abort() {
	r.err = errAborted
	_ = r.close()
}

func (r *Replacer) Close() error {
	return r.close()
}

func (r *Replacer) close() (err error) {
	defer func() {
		if err != nil || r.err != nil {
			os.Remove(r.f.Name())
		}
	}()
	if err := r.f.Close(); err != nil {
		return err
	}
	if r.err != nil {
		return r.err
	}
	if err := os.Chmod(r.f.Name(), r.perm); err != nil {
		return err
	}
	return os.Rename(r.f.Name(), r.filename)
}

// ReplaceFile writes a new version of name via fn, replacing the
// original atomically on success and leaving it untouched when fn
// returns an error.
func ReplaceFile(name string, perm os.FileMode, fn func(w io.Writer) error) error {
	r, err := NewFileReplacer(name, perm)
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		r.Abort()
		return err
	}
	return r.Close()
}
