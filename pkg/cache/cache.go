// Package cache provides byte-oriented caching backends for registry lookups
// and rendered cards.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (the default; the service relies on
//     downstream HTTP caches for cards)
//   - [FileCache]: JSON-wrapped entries on local disk, for the CLI
//   - [RedisCache]: a shared Redis instance, for multi-instance deployments
//
// Keys are produced by a [Keyer] so that every component derives them the
// same way and tenants can be separated with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default TTLs for the kinds of entries the service stores.
const (
	// TTLHTTP bounds how long a registry response is reused.
	TTLHTTP = 10 * time.Minute

	// TTLArtifact matches the s-maxage advertised to shared caches.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); a non-nil error means the backend
// itself failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
