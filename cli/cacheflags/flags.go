package cacheflags

import (
	"flag"
	"time"

	"github.com/brimdata/takeio/pkg/storage/cache"
)

type Flags struct {
	Config cache.Config
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.Var(&f.Config.Kind, "cache.kind", "kind of object cache (values: none, local, redis)")
	fs.IntVar(&f.Config.LocalCacheSize, "cache.local.size", cache.DefaultLocalCacheSize, "number of objects to keep in the local cache")
	fs.StringVar(&f.Config.RedisAddr, "cache.redis.addr", "localhost:6379", "address of the redis server backing a redis cache")
	fs.DurationVar(&f.Config.RedisKeyExpiration, "cache.redis.keyexpiry", 24*time.Hour, "expiration duration of cached objects in redis")
}
