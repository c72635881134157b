// Package storage accesses byte objects addressed by URI across the
// supported schemes, file, stdio, http, and s3, behind one Engine
// interface.  Engine readers are seekable so bounded windows can be
// taken anywhere in an object no matter where it lives.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/brimdata/takeio"
)

// Reader is the read handle returned by an Engine.  Seeks address the
// whole object, so a window taken over a Reader carves out a range of
// the object itself.
type Reader interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
}

type Sizer interface {
	Size() (int64, error)
}

var (
	ErrNotFound     = errors.New("object not found")
	ErrNotSupported = errors.New("method call on storage engine not supported")
)

type Engine interface {
	Get(context.Context, *URI) (Reader, error)
	Put(context.Context, *URI) (io.WriteCloser, error)
	Exists(context.Context, *URI) (bool, error)
	Size(context.Context, *URI) (int64, error)
}

func NewRemoteEngine() *Router {
	router := NewRouter()
	router.Enable(HTTPScheme)
	router.Enable(HTTPSScheme)
	router.Enable(S3Scheme)
	return router
}

func NewLocalEngine() *Router {
	router := NewRemoteEngine()
	router.Enable(FileScheme)
	router.Enable(StdioScheme)
	return router
}

func Put(ctx context.Context, engine Engine, u *URI, r io.Reader) error {
	w, err := engine.Put(ctx, u)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

func Get(ctx context.Context, engine Engine, u *URI) ([]byte, error) {
	r, err := engine.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	if closeErr := r.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Size reports the size of the object behind r, asking the reader
// directly when it knows and otherwise measuring with a pair of seeks
// that leave the position where it was.
func Size(r Reader) (int64, error) {
	if sizer, ok := r.(Sizer); ok {
		return sizer.Size()
	}
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	_, err = r.Seek(pos, io.SeekStart)
	return size, err
}

// RangeReader reads one bounded range of an object.  It owns the
// engine reader beneath it and must be closed.
type RangeReader struct {
	*takeio.Reader
	closer io.Closer
}

// NewRangeReader returns a reader over at most length bytes of the
// object at u beginning at offset.  The offset is not validated
// against the object size; reads of a range beyond the object simply
// end early, consistent with ranges over growing objects.
func NewRangeReader(ctx context.Context, engine Engine, u *URI, offset, length uint64) (*RangeReader, error) {
	r, err := engine.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		r.Close()
		return nil, err
	}
	window, err := takeio.NewReader(r, length)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &RangeReader{Reader: window, closer: r}, nil
}

func (r *RangeReader) Close() error {
	return r.closer.Close()
}
