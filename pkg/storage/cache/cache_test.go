package cache

import (
	"context"
	"io"
	"testing"

	"github.com/brimdata/takeio/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEngine serves fixed bytes and counts Get calls.
type countingEngine struct {
	data []byte
	gets int
}

var _ storage.Engine = (*countingEngine)(nil)

func (e *countingEngine) Get(context.Context, *storage.URI) (storage.Reader, error) {
	e.gets++
	return storage.NewBytesReader(e.data), nil
}

func (e *countingEngine) Put(context.Context, *storage.URI) (io.WriteCloser, error) {
	return nil, storage.ErrNotSupported
}

func (e *countingEngine) Exists(context.Context, *storage.URI) (bool, error) {
	return true, nil
}

func (e *countingEngine) Size(context.Context, *storage.URI) (int64, error) {
	return int64(len(e.data)), nil
}

func TestLocalCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingEngine{data: []byte("0123456789")}
	c, err := NewLocalCache(inner, nil, 4, nil)
	require.NoError(t, err)
	u := storage.MustParseURI("s3://bucket/obj")

	b, err := storage.Get(ctx, c, u)
	require.NoError(t, err)
	assert.Equal(t, inner.data, b)
	assert.Equal(t, 1, inner.gets)

	b, err = storage.Get(ctx, c, u)
	require.NoError(t, err)
	assert.Equal(t, inner.data, b)
	assert.Equal(t, 1, inner.gets)
}

func TestLocalCacheSeekableReads(t *testing.T) {
	ctx := context.Background()
	inner := &countingEngine{data: []byte("0123456789")}
	c, err := NewLocalCache(inner, nil, 4, nil)
	require.NoError(t, err)
	u := storage.MustParseURI("s3://bucket/obj")

	r, err := storage.NewRangeReader(ctx, c, u, 4, 3)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "456", string(b))
}

func TestLocalCacheSkipsUncacheable(t *testing.T) {
	ctx := context.Background()
	inner := &countingEngine{data: []byte("abc")}
	never := func(*storage.URI) bool { return false }
	c, err := NewLocalCache(inner, never, 4, nil)
	require.NoError(t, err)
	u := storage.MustParseURI("s3://bucket/obj")

	for i := 0; i < 2; i++ {
		_, err := storage.Get(ctx, c, u)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.gets)
}

func TestKindFlag(t *testing.T) {
	var k Kind
	require.NoError(t, k.Set(""))
	assert.Equal(t, KindNone, k)
	require.NoError(t, k.Set("local"))
	assert.Equal(t, KindLocal, k)
	require.NoError(t, k.Set("redis"))
	assert.Equal(t, KindRedis, k)
	require.Error(t, k.Set("bogus"))
}
