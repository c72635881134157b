package cache

import (
	"context"
	"io"

	"github.com/brimdata/takeio/pkg/storage"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// LocalCache is a storage.Engine keeping whole objects in an in-memory
// lru cache.  Only Get is intercepted; writes and metadata go straight
// through to the wrapped engine.
type LocalCache struct {
	metrics
	cacheable Cacheable
	engine    storage.Engine
	lru       *lru.Cache[string, []byte]
}

var _ storage.Engine = (*LocalCache)(nil)

func NewLocalCache(engine storage.Engine, cacheable Cacheable, size int, reg prometheus.Registerer) (*LocalCache, error) {
	lru, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &LocalCache{
		metrics:   newMetrics(reg),
		cacheable: cacheable,
		engine:    engine,
		lru:       lru,
	}, nil
}

func (c *LocalCache) Get(ctx context.Context, u *storage.URI) (storage.Reader, error) {
	if c.cacheable != nil && !c.cacheable(u) {
		return c.engine.Get(ctx, u)
	}
	key := u.String()
	if b, ok := c.lru.Get(key); ok {
		c.hits.WithLabelValues(u.Scheme).Inc()
		return storage.NewBytesReader(b), nil
	}
	b, err := storage.Get(ctx, c.engine, u)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, b)
	c.misses.WithLabelValues(u.Scheme).Inc()
	return storage.NewBytesReader(b), nil
}

func (c *LocalCache) Put(ctx context.Context, u *storage.URI) (io.WriteCloser, error) {
	return c.engine.Put(ctx, u)
}

func (c *LocalCache) Exists(ctx context.Context, u *storage.URI) (bool, error) {
	return c.engine.Exists(ctx, u)
}

func (c *LocalCache) Size(ctx context.Context, u *storage.URI) (int64, error) {
	return c.engine.Size(ctx, u)
}
