// Package cache stores computed layouts and rendered artifacts.
//
// A layout is a pure function of its items, container width and settings,
// so results can be cached under a content hash of those inputs. The
// [Cache] interface is deliberately small and byte-oriented; backends:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer]. [ScopedKeyer] prefixes every key so
// several tenants or environments can share a backend.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts holds the layout inputs, besides the items, that change the
// result.
type LayoutKeyOpts struct {
	Width        float64 `json:"width"`
	MarginX      float64 `json:"margin_x"`
	MarginY      float64 `json:"margin_y"`
	MarginTop    float64 `json:"margin_top"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
	MarginRight  float64 `json:"margin_right"`
	Accuracy     int     `json:"accuracy"`
	Snap         bool    `json:"snap"`
}

// ArtifactKeyOpts holds the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Labels bool    `json:"labels"`
	Scale  float64 `json:"scale"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the items hashed to itemsHash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout
	// hashed to lineupHash.
	ArtifactKey(lineupHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(lineupHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", lineupHash, opts)
}
