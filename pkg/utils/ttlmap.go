package utils

import (
	"sync"
	"time"
)

// TTLMap is a thread-safe map whose entries expire after a fixed duration.
// Callers supply the current time, so expiry is deterministic under test.
// Expired entries are removed lazily on access and during Set sweeps.
type TTLMap[K comparable, V any] struct {
	entries map[K]ttlEntry[V]
	ttl     time.Duration
	mu      sync.Mutex
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewTTLMap creates a TTLMap where entries live for the given duration.
func NewTTLMap[K comparable, V any](ttl time.Duration) *TTLMap[K, V] {
	return &TTLMap[K, V]{
		entries: make(map[K]ttlEntry[V]),
		ttl:     ttl,
	}
}

// Set stores a value, resetting its expiry relative to now. Stale
// entries are swept opportunistically to bound memory without a
// background goroutine.
func (m *TTLMap[K, V]) Set(key K, value V, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Sweep a handful of expired entries while we hold the lock
	swept := 0

	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)

			if swept++; swept >= 16 {
				break
			}
		}
	}

	m.entries[key] = ttlEntry[V]{value: value, expiresAt: now.Add(m.ttl)}
}

// Get returns the value for key if present and not expired as of now.
func (m *TTLMap[K, V]) Get(key K, now time.Time) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if now.After(entry.expiresAt) {
		delete(m.entries, key)

		var zero V

		return zero, false
	}

	return entry.value, true
}

// Delete removes a key regardless of expiry.
func (m *TTLMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// Len returns the number of stored entries, including any not yet swept.
func (m *TTLMap[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
