// Package cache stores layouts and rendered artifacts keyed by content hash.
//
// # Overview
//
// Converting a deck is deterministic: the same HTML with the same theme
// always yields the same layout, and the same layout always yields the same
// PPTX. The pipeline therefore caches two kinds of entries:
//
//   - Layouts, keyed by the hash of the HTML plus layout options
//   - Artifacts, keyed by the hash of the layout plus format and theme
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for CLI use
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store with a TTL index on expiry
//   - [NullCache]: disables caching
//
// Keys are built by a [Keyer]; [ScopedKeyer] prefixes keys so several
// tenants can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
