// Package cache stores packing results between runs.
//
// Packing is deterministic, so a result is fully determined by the canvas
// width, the photo list and the orderer. [Keyer] turns those inputs into a
// key; a [Cache] maps keys to encoded results with an optional TTL.
//
// Three backends are provided:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a local directory
//   - [RedisCache]: a shared Redis instance, for several workers
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a cached packing result stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the stored value and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// PackKeyOpts holds the packing parameters that affect the result.
type PackKeyOpts struct {
	Width    int    `json:"width"`
	Ordering string `json:"ordering"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PackKey returns the key for the packing of the photo list with the
	// given content hash.
	PackKey(photosHash string, opts PackKeyOpts) string

	// ArtifactKey returns the key for a rendered output of a packing result.
	ArtifactKey(resultHash, format string) string
}

// DefaultKeyer produces unscoped keys of the form "pack:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PackKey implements Keyer.
func (DefaultKeyer) PackKey(photosHash string, opts PackKeyOpts) string {
	return hashKey("pack", photosHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultHash, format string) string {
	return hashKey("artifact", resultHash, format)
}
