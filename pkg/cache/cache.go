// Package cache memoises expensive intermediate results of the plotting
// pipeline, chiefly density grids, which are costly to recompute for large
// samples with smoothing.
//
// Two backends are provided: [FileCache] stores JSON entries on disk for
// the CLI and [NullCache] disables caching. Keys are content hashes built by
// a [Keyer], so an entry is reused only for identical points and options.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLGrid is how long density grids are kept.
const TTLGrid = 7 * 24 * time.Hour

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
