// Package fetchcache stores upstream HTTP responses for a per-entry lifetime.
package fetchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Entry is a cached upstream response.
type Entry struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// Cache stores entries keyed by request URL.
type Cache interface {
	// Get returns the entry for key. ok is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (entry Entry, ok bool, err error)
	// Set stores entry for ttl.
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	// Close releases backend resources.
	Close() error
}

// Config represents fetch cache configuration.
type Config struct {
	Backend  string
	RedisURL string
	Size     int
}

// New creates the cache selected by cfg.Backend.
func New(cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory, "":
		return NewMemory(cfg.Size)
	case BackendRedis:
		return NewRedis(cfg.RedisURL)
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, errors.Newf("unknown cache backend: %s", cfg.Backend)
	}
}

// Key derives a cache key from a request URL. The URL carries the API key,
// so only its digest is stored.
func Key(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "playtime:fetch:" + hex.EncodeToString(sum[:])
}

// Nop is a cache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, nil
}

func (Nop) Set(context.Context, string, Entry, time.Duration) error {
	return nil
}

func (Nop) Close() error {
	return nil
}
