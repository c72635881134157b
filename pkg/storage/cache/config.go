package cache

import (
	"time"

	"github.com/brimdata/takeio/pkg/storage"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	Kind Kind `yaml:"kind"`
	// LocalCacheSize bounds the number of objects the local cache
	// holds.
	LocalCacheSize int `yaml:"local_cache_size,omitempty"`
	// RedisAddr is the host:port of the redis server backing a redis
	// cache.
	RedisAddr string `yaml:"redis_addr,omitempty"`
	// RedisKeyExpiration is the expiration used when creating keys. A
	// value of zero (meaning no expiration) should only be used when
	// redis is configured with a key eviction policy.
	RedisKeyExpiration time.Duration `yaml:"redis_key_expiration,omitempty"`
}

const DefaultLocalCacheSize = 128

// New wraps engine with the cache conf describes, returning engine
// unchanged when conf turns caching off.
func New(conf Config, engine storage.Engine, cacheable Cacheable, reg prometheus.Registerer) (storage.Engine, error) {
	switch conf.Kind {
	case KindLocal:
		size := conf.LocalCacheSize
		if size <= 0 {
			size = DefaultLocalCacheSize
		}
		return NewLocalCache(engine, cacheable, size, reg)
	case KindRedis:
		client := redis.NewClient(&redis.Options{Addr: conf.RedisAddr})
		return NewRedisCache(engine, client, cacheable, conf.RedisKeyExpiration, reg), nil
	}
	return engine, nil
}
