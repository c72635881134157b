package takeio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stream(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// trackedStream counts the calls that reach the underlying stream.
type trackedStream struct {
	rs    io.ReadSeeker
	reads int
	seeks int
}

func (t *trackedStream) Read(b []byte) (int, error) {
	t.reads++
	return t.rs.Read(b)
}

func (t *trackedStream) Seek(offset int64, whence int) (int64, error) {
	t.seeks++
	return t.rs.Seek(offset, whence)
}

type failingSeeker struct {
	err error
}

func (f *failingSeeker) Read(b []byte) (int, error) { return 0, f.err }

func (f *failingSeeker) Seek(offset int64, whence int) (int64, error) {
	return 0, f.err
}

// shortErrStream returns a few bytes along with an error, the way an
// os.File can on a failing device.
type shortErrStream struct {
	data []byte
	err  error
}

func (s *shortErrStream) Read(b []byte) (int, error) {
	n := copy(b, s.data)
	s.data = nil
	return n, s.err
}

func (s *shortErrStream) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

func TestReadClampsToWindow(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 20)
	require.NoError(t, err)
	b := make([]byte, 25)
	n, err := r.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, stream(100)[10:30], b[:n])
	n, err = r.Read(b)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadAll(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 20)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, stream(100)[10:30], b)
	pos, err := inner.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(30), pos)
}

func TestZeroLimitDoesNotTouchStream(t *testing.T) {
	tracked := &trackedStream{rs: bytes.NewReader(stream(10))}
	r, err := NewReader(tracked, 0)
	require.NoError(t, err)
	seeks := tracked.seeks
	n, err := r.Read(make([]byte, 10))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, tracked.reads)
	assert.Equal(t, seeks, tracked.seeks)
}

func TestExhaustedWindowDoesNotTouchStream(t *testing.T) {
	tracked := &trackedStream{rs: bytes.NewReader(stream(10))}
	r, err := NewReader(tracked, 5)
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.NoError(t, err)
	reads := tracked.reads
	n, err := r.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, reads, tracked.reads)
}

func TestConstructionSeekError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewReader(&failingSeeker{err: boom}, 10)
	assert.ErrorIs(t, err, boom)
}

func TestSeekAbsoluteBounds(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 10)
	require.NoError(t, err)
	_, err = io.CopyN(io.Discard, r, 5)
	require.NoError(t, err)

	_, err = r.Seek(9, io.SeekStart)
	assert.ErrorIs(t, err, ErrOutOfWindow)
	_, err = r.Seek(16, io.SeekStart)
	assert.ErrorIs(t, err, ErrOutOfWindow)

	pos, err := r.Seek(15, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(15), pos)
	pos, err = r.Seek(10, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)
}

func TestSeekAbsoluteBelowStreamStart(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	tracked := &trackedStream{rs: inner}
	r, err := NewReader(tracked, 10)
	require.NoError(t, err)
	seeks := tracked.seeks
	// Position 9 exists in the underlying stream but is outside the
	// window.
	_, err = r.Seek(9, io.SeekStart)
	assert.ErrorIs(t, err, ErrOutOfWindow)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, seeks, tracked.seeks)
}

func TestSeekRelativeBounds(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 10)
	require.NoError(t, err)
	_, err = io.CopyN(io.Discard, r, 5)
	require.NoError(t, err)

	pos, err := r.Seek(-3, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(12), pos)

	_, err = r.Seek(10, io.SeekCurrent)
	assert.ErrorIs(t, err, ErrOutOfWindow)
	_, err = r.Seek(-2, io.SeekCurrent)
	require.NoError(t, err)
	_, err = r.Seek(-1, io.SeekCurrent)
	assert.ErrorIs(t, err, ErrOutOfWindow)
}

func TestSeekRelativeIntoUnread(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 10)
	require.NoError(t, err)
	// A relative seek may move anywhere in the window, including
	// ahead of what has been read.
	pos, err := r.Seek(10, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(20), pos)
	n, err := r.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
	// An absolute seek may not pass the position reached so far.
	pos, err = r.Seek(20, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(20), pos)
}

func TestSeekAbsoluteNotPastCurrent(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 10)
	require.NoError(t, err)
	_, err = r.Seek(11, io.SeekStart)
	assert.ErrorIs(t, err, ErrOutOfWindow)
	pos, err := r.Seek(10, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)
}

func TestSeekEndUnsupported(t *testing.T) {
	tracked := &trackedStream{rs: bytes.NewReader(stream(100))}
	r, err := NewReader(tracked, 10)
	require.NoError(t, err)
	seeks := tracked.seeks
	_, err = r.Seek(0, io.SeekEnd)
	assert.ErrorIs(t, err, ErrOutOfWindow)
	_, err = r.Seek(-5, io.SeekEnd)
	assert.ErrorIs(t, err, ErrOutOfWindow)
	assert.Equal(t, seeks, tracked.seeks)
}

func TestSeekInvalidWhence(t *testing.T) {
	r, err := NewReader(bytes.NewReader(stream(10)), 10)
	require.NoError(t, err)
	_, err = r.Seek(0, 42)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOutOfWindow)
}

func TestRereadAfterRewind(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(10, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 20)
	require.NoError(t, err)
	first, err := io.ReadAll(r)
	require.NoError(t, err)
	_, err = r.Seek(10, io.SeekStart)
	require.NoError(t, err)
	second, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadErrorPassthrough(t *testing.T) {
	boom := errors.New("device gone")
	r, err := NewReader(&shortErrStream{data: []byte("abc"), err: boom}, 10)
	require.NoError(t, err)
	b := make([]byte, 10)
	n, err := r.Read(b)
	assert.Equal(t, 3, n)
	assert.Same(t, boom, err)
	// The three bytes actually read count against the window.
	pos, err := r.Seek(-3, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestAbsoluteCoordinates(t *testing.T) {
	inner := bytes.NewReader(stream(100))
	_, err := inner.Seek(50, io.SeekStart)
	require.NoError(t, err)
	r, err := NewReader(inner, 10)
	require.NoError(t, err)
	_, err = io.CopyN(io.Discard, r, 4)
	require.NoError(t, err)
	// Positions are those of the underlying stream, not of the window.
	pos, err := r.Seek(-2, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(52), pos)
	b := make([]byte, 2)
	_, err = io.ReadFull(r, b)
	require.NoError(t, err)
	assert.Equal(t, stream(100)[52:54], b)
}
