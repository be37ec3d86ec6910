package fetchcache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemorySize = 1024

type memoryEntry struct {
	entry   Entry
	expires time.Time
}

// Memory is an in-process LRU cache with per-entry expiry.
type Memory struct {
	items *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

// NewMemory creates an LRU cache holding at most size entries.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = defaultMemorySize
	}
	items, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create lru cache")
	}
	return &Memory{items: items, now: time.Now}, nil
}

// Get returns a live entry. Expired entries are evicted on access.
func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	item, ok := m.items.Get(key)
	if !ok {
		return Entry{}, false, nil
	}
	if !m.now().Before(item.expires) {
		m.items.Remove(key)
		return Entry{}, false, nil
	}
	return item.entry, true, nil
}

// Set stores entry until ttl elapses. Non-positive ttls are ignored.
func (m *Memory) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.items.Add(key, memoryEntry{entry: entry, expires: m.now().Add(ttl)})
	return nil
}

// Close purges all entries.
func (m *Memory) Close() error {
	m.items.Purge()
	return nil
}
