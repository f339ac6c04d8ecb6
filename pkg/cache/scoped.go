package cache

import (
	"context"
	"time"
)

// Scoped prefixes every key before delegating to an inner cache, giving
// deployments that share one Redis database separate namespaces.
//
//	shared := cache.NewRedisCache(cfg)
//	c := cache.NewScoped(shared, "portfolio:staging:")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped wraps inner. A nil inner behaves like [NullCache].
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner cache.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
