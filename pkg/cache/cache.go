// Package cache provides the conversion-result cache.
//
// Re-running chess over a sprite directory is common (the legacy games
// ship thousands of BMP files), and conversions are deterministic: the
// same input bytes and options always produce the same PNG. The cache
// stores encoded outputs keyed by a hash of the input content plus the
// conversion options, so unchanged files are skipped on subsequent runs.
//
// Two backends are provided: a file-based cache for CLI usage and a null
// cache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for conversion results.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (non-positive means no
	// expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ConvertKeyOpts are the conversion options that affect output bytes and
// therefore participate in the cache key.
type ConvertKeyOpts struct {
	KeyColor  string // "white", "black" or "none"
	Tolerance int
}

// Keyer generates cache keys.
type Keyer interface {
	// ConvertKey generates a key for a conversion result from the
	// SHA-256 hash of the input file content and the options.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ConvertKey generates a conversion cache key.
func (k *DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert:"+inputHash, opts)
}
