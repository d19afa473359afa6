// Package cache stores generated scenes and plots keyed by their inputs.
//
// Sampling is a pure function of its parameters and seed, so a scene or a
// plot rendered once can be served again from any backend without
// recomputation.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory; used by the CLI
//   - [RedisCache]: a shared Redis instance; used by the HTTP server
//   - [MongoCache]: a MongoDB collection with a TTL index; an alternative
//     shared backend for the HTTP server
//
// [Instrument] wraps any backend so that hits, misses and writes are
// reported through observability.Cache().
//
// # Keys
//
// A [Keyer] derives keys from inputs: [DefaultKeyer] hashes the JSON form
// of a scene plan with SHA-256, and [ScopedKeyer] prefixes every key with a
// namespace.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values by entry kind.
const (
	TTLScene = 30 * 24 * time.Hour
	TTLPlot  = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store.
//
// Get reports a miss with ok=false and a nil error. A zero ttl in Set means
// the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
