// Package cache layers read-through caches over a storage engine for
// immutable objects, typically in a cloud object store.
package cache

import (
	"fmt"

	"github.com/brimdata/takeio/pkg/storage"
)

// Cacheable reports whether the object at a URI should be cached.  A
// nil Cacheable caches everything.
type Cacheable func(*storage.URI) bool

type Kind string

const (
	KindNone  Kind = "none"
	KindLocal Kind = "local"
	KindRedis Kind = "redis"
)

func (k *Kind) Set(s string) error {
	switch s {
	case "none", "":
		*k = KindNone
	case "local":
		*k = KindLocal
	case "redis":
		*k = KindRedis
	default:
		return fmt.Errorf("unknown cache kind: %q", s)
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}
