// Package slicer provides an io.Reader that returns regions of a
// seekable stream.
package slicer

import (
	"io"

	"github.com/brimdata/takeio"
)

// Reader implements io.Reader returning the sliced regions provided to
// it from the underlying stream in order, thus extracting subsets of
// the stream without modifying or copying it.  Each region is read
// through a bounded window so a slice never yields more than its
// length no matter how much data follows it.
type Reader struct {
	slices []Slice
	window *takeio.Reader
	seeker io.ReadSeeker
}

// NewReader returns a Reader over the given slices of rs.  The seek to
// the first slice happens here, so construction can fail.
func NewReader(rs io.ReadSeeker, slices []Slice) (*Reader, error) {
	r := &Reader{
		slices: slices,
		seeker: rs,
	}
	return r, r.next()
}

func (r *Reader) next() error {
	if len(r.slices) == 0 {
		r.window = nil
		return nil
	}
	s := r.slices[0]
	r.slices = r.slices[1:]
	if _, err := r.seeker.Seek(int64(s.Offset), io.SeekStart); err != nil {
		return err
	}
	window, err := takeio.NewReader(r.seeker, s.Length)
	if err != nil {
		return err
	}
	r.window = window
	return nil
}

func (r *Reader) Read(b []byte) (int, error) {
	for {
		if r.window == nil {
			return 0, io.EOF
		}
		n, err := r.window.Read(b)
		if err == io.EOF {
			// The window is exhausted or the stream ended short.
			// Either way move to the next slice.
			if err := r.next(); err != nil {
				return n, err
			}
			if n != 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}
