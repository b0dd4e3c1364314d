package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// Store counts actions per (actor, action, aligned window) key.
// Implementations must be atomic per key under concurrent access.
type Store interface {
	// Increment adds one to the key's counter and returns the new count.
	Increment(ctx context.Context, actorID uint64, action enum.RateAction, windowStart time.Time) (int64, error)
	// Get returns the key's current count, zero when the key is unknown.
	Get(ctx context.Context, actorID uint64, action enum.RateAction, windowStart time.Time) (int64, error)
}

type memKey struct {
	actorID     uint64
	action      enum.RateAction
	windowStart int64
}

// MemStore is an in-process Store for tests and single-node deployments.
type MemStore struct {
	counts map[memKey]int64
	mu     sync.Mutex
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		counts: make(map[memKey]int64),
	}
}

// Increment adds one to the key's counter and returns the new count.
func (s *MemStore) Increment(
	_ context.Context, actorID uint64, action enum.RateAction, windowStart time.Time,
) (int64, error) {
	key := memKey{actorID: actorID, action: action, windowStart: windowStart.Unix()}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++

	return s.counts[key], nil
}

// Get returns the key's current count.
func (s *MemStore) Get(
	_ context.Context, actorID uint64, action enum.RateAction, windowStart time.Time,
) (int64, error) {
	key := memKey{actorID: actorID, action: action, windowStart: windowStart.Unix()}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[key], nil
}
