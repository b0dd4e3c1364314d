package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// RedisStore keeps window counters in Redis so multiple engine instances
// share one view of each actor's activity. Keys expire at twice the
// window size, past which a counter can no longer affect a decision.
type RedisStore struct {
	client     rueidis.Client
	windowSize time.Duration
}

// NewRedisStore creates a Redis-backed store for windows of the given size.
func NewRedisStore(client rueidis.Client, windowSize time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		windowSize: windowSize,
	}
}

// Increment adds one to the key's counter and returns the new count.
// The expiry is set on first increment only; INCR on an existing key
// keeps its TTL.
func (s *RedisStore) Increment(
	ctx context.Context, actorID uint64, action enum.RateAction, windowStart time.Time,
) (int64, error) {
	key := windowKey(actorID, action, windowStart)

	count, err := s.client.Do(ctx, s.client.B().Incr().Key(key).Build()).ToInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		expireCmd := s.client.B().Expire().Key(key).Seconds(int64((2 * s.windowSize).Seconds())).Build()
		if err := s.client.Do(ctx, expireCmd).Error(); err != nil {
			return 0, fmt.Errorf("failed to set counter expiry: %w", err)
		}
	}

	return count, nil
}

// Get returns the key's current count, zero when the key is unknown.
func (s *RedisStore) Get(
	ctx context.Context, actorID uint64, action enum.RateAction, windowStart time.Time,
) (int64, error) {
	key := windowKey(actorID, action, windowStart)

	count, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	return count, nil
}

func windowKey(actorID uint64, action enum.RateAction, windowStart time.Time) string {
	return fmt.Sprintf("rate/%s/%d/%d", action, actorID, windowStart.Unix())
}
