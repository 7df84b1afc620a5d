// Package cache provides content-addressed caching for conversion results.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 [Hash] of the input document plus
// the options that affect the result:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ElementsKey(cache.Hash(graphJSON), cache.ElementsKeyOpts{IDs: "uuid"})
//
// [NewScopedKeyer] prefixes every key for namespace isolation.
//
// There is no no-op backend: callers that want caching off pass a nil
// Cache to the pipeline runner.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with per-entry expiry.
type Cache interface {
	// Get returns the stored value. The bool is false on a miss; expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	// ElementsTTL bounds how long graph → elements results are reused.
	ElementsTTL = 24 * time.Hour

	// GraphTTL bounds how long elements → graph results are reused.
	GraphTTL = 24 * time.Hour
)

// ElementsKeyOpts are the options that change a graph → elements result.
type ElementsKeyOpts struct {
	IDs    string `json:"ids,omitempty"`    // identifier generator name
	Prefix string `json:"prefix,omitempty"` // sequence generator prefix
}

// GraphKeyOpts are the options that change an elements → graph result.
type GraphKeyOpts struct {
	ID string `json:"id,omitempty"` // graph id restored on the result
}

// Keyer derives cache keys.
type Keyer interface {
	// ElementsKey keys the element list produced from a graph document.
	ElementsKey(graphHash string, opts ElementsKeyOpts) string

	// GraphKey keys the graph produced from an element list.
	GraphKey(elementsHash string, opts GraphKeyOpts) string
}

// DefaultKeyer produces "elements:<sha256>" and "graph:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ElementsKey implements Keyer.
func (DefaultKeyer) ElementsKey(graphHash string, opts ElementsKeyOpts) string {
	return hashKey("elements", graphHash, opts)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(elementsHash string, opts GraphKeyOpts) string {
	return hashKey("graph", elementsHash, opts)
}
