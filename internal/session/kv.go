// Package session persists the editing-session state — prompts and
// field mappings — through a key-value store with TTL semantics.
//
// Two windows govern stored entries: entries older than the freshness
// window read back as absent, and entries older than the retention
// window are purged opportunistically.
package session

import (
	"sync"
	"time"
)

// TTL windows.
const (
	// FreshnessWindow is the maximum age at which a stored session is
	// still applied.
	FreshnessWindow = 24 * time.Hour
	// RetentionWindow is the age past which stored sessions are purged.
	RetentionWindow = 7 * 24 * time.Hour
)

// KeyValueStore is a timestamped key-value store with TTL reads.
// Get returns nil (no error) for absent or stale entries; the storage
// backend is an implementation detail.
type KeyValueStore interface {
	Put(key string, value []byte, timestamp time.Time) error
	Get(key string, maxAge time.Duration) ([]byte, error)
	SweepExpired(retention time.Duration) (int, error)
	Close() error
}

// memoryEntry is one stored value with its write timestamp.
type memoryEntry struct {
	value     []byte
	timestamp time.Time
}

// MemoryStore is an in-process KeyValueStore, used when no durable
// session path is configured and throughout the tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Put stores the value under key with the given timestamp.
func (s *MemoryStore) Put(key string, value []byte, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = memoryEntry{value: v, timestamp: timestamp}
	return nil
}

// Get returns the stored value, or nil when absent or older than maxAge.
func (s *MemoryStore) Get(key string, maxAge time.Duration) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().Sub(e.timestamp) > maxAge {
		return nil, nil
	}
	v := make([]byte, len(e.value))
	copy(v, e.value)
	return v, nil
}

// SweepExpired removes entries older than the retention window and
// returns how many were purged.
func (s *MemoryStore) SweepExpired(retention time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-retention)
	purged := 0
	for key, e := range s.entries {
		if e.timestamp.Before(cutoff) {
			delete(s.entries, key)
			purged++
		}
	}
	return purged, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
