// Package cache stores computed scenes between CLI runs.
//
// A scene depends only on the graph content, the focus and the layout
// dimensions, so it can be reused until any of those change. Keys are built
// by a [Keyer] from a hash of the serialized graph; entries expire after
// [TTLScene].
//
// Two implementations are provided: [FileCache] for the CLI, rooted in the
// XDG cache directory, and [NullCache] for disabling caching.
package cache

import (
	"context"
	"time"
)

// TTLScene is how long a cached scene stays valid.
const TTLScene = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// SceneKeyOpts holds the inputs besides the graph that change a scene.
type SceneKeyOpts struct {
	Focus  string `json:"focus"`
	Config any    `json:"config"` // layout dimensions, hashed as JSON
}

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey returns the key for a scene of the graph with the given
	// content hash.
	SceneKey(graphHash string, opts SceneKeyOpts) string
}

// DefaultKeyer produces "scene:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey implements Keyer.
func (DefaultKeyer) SceneKey(graphHash string, opts SceneKeyOpts) string {
	return hashKey("scene", graphHash, opts)
}
