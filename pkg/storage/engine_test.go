package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	engine := NewLocalEngine()
	u := MustParseURI(filepath.Join(t.TempDir(), "sub", "obj"))

	require.NoError(t, Put(ctx, engine, u, bytes.NewReader([]byte("hello world"))))

	ok, err := engine.Exists(ctx, u)
	require.NoError(t, err)
	assert.True(t, ok)

	size, err := engine.Size(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	b, err := Get(ctx, engine, u)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))
}

func TestFileSystemNotFound(t *testing.T) {
	ctx := context.Background()
	engine := NewLocalEngine()
	u := MustParseURI(filepath.Join(t.TempDir(), "missing"))

	_, err := engine.Get(ctx, u)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = engine.Size(ctx, u)
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err := engine.Exists(ctx, u)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRouterUnsupportedScheme(t *testing.T) {
	ctx := context.Background()
	engine := NewRemoteEngine()
	u := MustParseURI("file:///nope")
	_, err := engine.Get(ctx, u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestRangeReader(t *testing.T) {
	ctx := context.Background()
	engine := NewLocalEngine()
	u := MustParseURI(filepath.Join(t.TempDir(), "obj"))
	require.NoError(t, Put(ctx, engine, u, bytes.NewReader([]byte("0123456789"))))

	r, err := NewRangeReader(ctx, engine, u, 3, 4)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "3456", string(b))
}

func TestRangeReaderBeyondEnd(t *testing.T) {
	ctx := context.Background()
	engine := NewLocalEngine()
	u := MustParseURI(filepath.Join(t.TempDir(), "obj"))
	require.NoError(t, Put(ctx, engine, u, bytes.NewReader([]byte("0123456789"))))

	// A range extending past the object just ends early.
	r, err := NewRangeReader(ctx, engine, u, 8, 100)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "89", string(b))
}

func TestSizeSeekFallback(t *testing.T) {
	r := &plainReader{bytes.NewReader([]byte("0123456789"))}
	b := make([]byte, 4)
	_, err := io.ReadFull(r, b)
	require.NoError(t, err)

	size, err := Size(r)
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	// The fallback must leave the position alone.
	_, err = io.ReadFull(r, b)
	require.NoError(t, err)
	assert.Equal(t, "4567", string(b))
}

func TestBytesReaderSize(t *testing.T) {
	r := NewBytesReader([]byte("abc"))
	size, err := Size(r)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
}

// plainReader is a Reader with no Size method in the Sizer shape, so
// Size must fall back to seeking.
type plainReader struct {
	*bytes.Reader
}

func (*plainReader) Close() error { return nil }
