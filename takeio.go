// Package takeio provides a bounded, seekable view of an underlying
// stream, generalizing the notion of "take at most n bytes" from
// io.LimitedReader to streams that also support random access.
package takeio

import (
	"errors"
	"fmt"
	"io"
)

// ErrOutOfWindow is returned by Seek when the requested position falls
// outside the window of the underlying stream exposed by a Reader.  It
// is reported before the underlying stream is touched and wraps
// io.ErrUnexpectedEOF so callers probing for truncation see it as an
// unexpected end of data.
var ErrOutOfWindow = fmt.Errorf("seek outside of window: %w", io.ErrUnexpectedEOF)

// Reader exposes at most a fixed number of bytes of an underlying
// stream beginning at the stream's position when the Reader was
// created, while preserving seek access within the bytes exposed.
// Offsets passed to and returned by Seek are absolute offsets of the
// underlying stream, not offsets relative to the window, so code
// holding a Reader addresses the stream exactly as it would without
// the bound.  A Reader assumes exclusive use of the underlying stream.
type Reader struct {
	inner   io.ReadSeeker
	start   uint64
	limit   uint64
	current uint64
}

var _ io.ReadSeeker = (*Reader)(nil)

// NewReader returns a Reader exposing at most limit bytes of rs
// starting at its current position.  The position is captured with a
// zero-delta relative seek and any error from that seek is returned.
// No data is consumed and limit is not validated against the actual
// length of the stream.
func NewReader(rs io.ReadSeeker, limit uint64) (*Reader, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &Reader{
		inner: rs,
		start: uint64(pos),
		limit: limit,
	}, nil
}

// Read reads from the underlying stream, clamping b so that no more
// than the remaining window is consumed.  Once the window is exhausted
// it returns io.EOF without touching the underlying stream, which may
// well have more data but could also block.
func (r *Reader) Read(b []byte) (int, error) {
	rem := r.limit - r.current
	if rem == 0 {
		return 0, io.EOF
	}
	p := b
	if uint64(len(p)) > rem {
		p = p[:rem]
	}
	n, err := r.inner.Read(p)
	r.current += uint64(n)
	return n, err
}

// Seek repositions the underlying stream within the window.  An
// absolute seek is valid only between the window origin and the
// position reached so far, a relative seek anywhere within the window,
// and io.SeekEnd is not supported since the window's end may lie
// beyond the end of the stream.  Invalid requests return an error
// wrapping ErrOutOfWindow before the underlying stream is touched.
// Valid requests are delegated verbatim and the underlying stream's
// new absolute position is returned.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		if offset < int64(r.start) || uint64(offset) > r.start+r.current {
			return 0, ErrOutOfWindow
		}
		pos, err := r.inner.Seek(offset, io.SeekStart)
		if err == nil {
			r.current = uint64(offset) - r.start
		}
		return pos, err
	case io.SeekCurrent:
		dest := int64(r.current) + offset
		if dest < 0 || uint64(dest) > r.limit {
			return 0, ErrOutOfWindow
		}
		pos, err := r.inner.Seek(offset, io.SeekCurrent)
		if err == nil {
			r.current = uint64(dest)
		}
		return pos, err
	case io.SeekEnd:
		return 0, fmt.Errorf("cannot seek from end of window: %w", ErrOutOfWindow)
	default:
		return 0, errors.New("takeio.Reader.Seek: invalid whence")
	}
}
