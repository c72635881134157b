package cache

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/brimdata/takeio/pkg/storage"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
)

// RedisCache is a storage.Engine caching whole objects as redis
// values.  An expiry of zero stores keys without expiration and should
// only be used when redis is configured with an eviction policy.
type RedisCache struct {
	metrics
	cacheable Cacheable
	engine    storage.Engine
	client    *redis.Client
	expiry    time.Duration
}

var _ storage.Engine = (*RedisCache)(nil)

func NewRedisCache(engine storage.Engine, client *redis.Client, cacheable Cacheable, expiry time.Duration, reg prometheus.Registerer) *RedisCache {
	return &RedisCache{
		metrics:   newMetrics(reg),
		cacheable: cacheable,
		engine:    engine,
		client:    client,
		expiry:    expiry,
	}
}

func (c *RedisCache) Get(ctx context.Context, u *storage.URI) (storage.Reader, error) {
	if c.cacheable != nil && !c.cacheable(u) {
		return c.engine.Get(ctx, u)
	}
	key := u.String()
	res := c.client.Get(ctx, key)
	if err := res.Err(); err == nil {
		c.hits.WithLabelValues(u.Scheme).Inc()
		b, err := res.Bytes()
		if err != nil {
			return nil, err
		}
		return storage.NewBytesReader(b), nil
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	b, err := storage.Get(ctx, c.engine, u)
	if err != nil {
		return nil, err
	}
	c.misses.WithLabelValues(u.Scheme).Inc()
	if err := c.client.Set(ctx, key, b, c.expiry).Err(); err != nil {
		return nil, err
	}
	return storage.NewBytesReader(b), nil
}

func (c *RedisCache) Put(ctx context.Context, u *storage.URI) (io.WriteCloser, error) {
	return c.engine.Put(ctx, u)
}

func (c *RedisCache) Exists(ctx context.Context, u *storage.URI) (bool, error) {
	return c.engine.Exists(ctx, u)
}

func (c *RedisCache) Size(ctx context.Context, u *storage.URI) (int64, error) {
	return c.engine.Size(ctx, u)
}
