package slicer

import "io"

// Slice names a region of an underlying stream by absolute offset and
// length.
type Slice struct {
	Offset uint64
	Length uint64
}

func (s Slice) Overlaps(x Slice) bool {
	return x.Offset >= s.Offset && x.Offset < s.Offset+s.Length
}

func (s Slice) NewReader(r io.ReaderAt) *io.SectionReader {
	return io.NewSectionReader(r, int64(s.Offset), int64(s.Length))
}
