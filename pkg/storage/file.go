package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type FileSystem struct {
	perm   os.FileMode
	exists map[string]struct{}
}

var _ Engine = (*FileSystem)(nil)

func NewFileSystem() *FileSystem {
	return &FileSystem{
		perm:   0666,
		exists: make(map[string]struct{}),
	}
}

func (f *FileSystem) Get(_ context.Context, u *URI) (Reader, error) {
	r, err := os.Open(u.Filepath())
	if err != nil {
		return nil, wrapfileError(u, err)
	}
	return &fileSizer{r, u}, nil
}

func (f *FileSystem) Put(_ context.Context, u *URI) (io.WriteCloser, error) {
	path := u.Filepath()
	if err := f.checkPath(path); err != nil {
		return nil, wrapfileError(u, err)
	}
	w, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, f.perm)
	return w, wrapfileError(u, err)
}

func (f *FileSystem) Size(_ context.Context, u *URI) (int64, error) {
	info, err := os.Stat(u.Filepath())
	if err != nil {
		return 0, wrapfileError(u, err)
	}
	return info.Size(), nil
}

func (f *FileSystem) Exists(_ context.Context, u *URI) (bool, error) {
	_, err := os.Stat(u.Filepath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, wrapfileError(u, err)
	}
	return true, nil
}

func (f *FileSystem) checkPath(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if _, ok := f.exists[dir]; ok {
		return nil
	}
	err := os.MkdirAll(dir, 0755)
	if os.IsExist(err) {
		err = nil
	}
	if err == nil {
		f.exists[dir] = struct{}{}
	}
	return err
}

func wrapfileError(u *URI, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", u, ErrNotFound)
	}
	return err
}

type fileSizer struct {
	*os.File
	uri *URI
}

var _ Reader = (*fileSizer)(nil)
var _ Sizer = (*fileSizer)(nil)

func (f *fileSizer) Size() (int64, error) {
	info, err := os.Stat(f.uri.Filepath())
	if err != nil {
		return 0, wrapfileError(f.uri, err)
	}
	return info.Size(), nil
}
