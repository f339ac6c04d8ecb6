// Package cache provides byte-oriented key/value caches with TTL expiry.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per key, used by the CLI to keep the last
//     good portfolio snapshot between invocations
//   - [RedisCache]: shared cache for API server instances
//   - [NullCache]: disables caching
//
// Values are opaque bytes; callers encode and decode them. Keys for
// portfolio snapshots come from [SnapshotKey].
package cache

import (
	"context"
	"time"
)

// Cache stores byte values under string keys.
//
// Get returns hit=false without an error when the key is absent or expired.
// A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
