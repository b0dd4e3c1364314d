package votes

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/rueidis"
)

// History tracks rolling vote activity. Unlike the aligned rate
// windows, these are trailing windows over raw timestamps, so a burst
// straddling a bucket boundary is still seen as one burst.
type History interface {
	// AddVote records a vote by voterID and returns the voter's vote
	// count within the trailing window ending at now.
	AddVote(ctx context.Context, voterID uint64, now time.Time, window time.Duration) (int64, error)

	// AddCommentVoter records that voterID voted on commentID under the
	// given fingerprint and returns the number of distinct voters
	// sharing that fingerprint on the comment within the window.
	AddCommentVoter(
		ctx context.Context, commentID, voterID uint64, fingerprint string,
		now time.Time, window time.Duration,
	) (int64, error)
}

// MemHistory is an in-process History for tests and single-node runs.
type MemHistory struct {
	votes  map[uint64][]time.Time
	voters map[string]map[uint64]time.Time
	mu     sync.Mutex
}

// NewMemHistory creates an empty in-memory history.
func NewMemHistory() *MemHistory {
	return &MemHistory{
		votes:  make(map[uint64][]time.Time),
		voters: make(map[string]map[uint64]time.Time),
	}
}

// AddVote records a vote and counts the trailing window.
func (h *MemHistory) AddVote(
	_ context.Context, voterID uint64, now time.Time, window time.Duration,
) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := now.Add(-window)
	kept := h.votes[voterID][:0]

	for _, ts := range h.votes[voterID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	kept = append(kept, now)
	h.votes[voterID] = kept

	return int64(len(kept)), nil
}

// AddCommentVoter records a voter under a fingerprint cluster and counts
// distinct voters still inside the trailing window.
func (h *MemHistory) AddCommentVoter(
	_ context.Context, commentID, voterID uint64, fingerprint string,
	now time.Time, window time.Duration,
) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := fmt.Sprintf("%d/%s", commentID, fingerprint)

	cluster, ok := h.voters[key]
	if !ok {
		cluster = make(map[uint64]time.Time)
		h.voters[key] = cluster
	}

	cutoff := now.Add(-window)
	for id, ts := range cluster {
		if !ts.After(cutoff) {
			delete(cluster, id)
		}
	}

	cluster[voterID] = now

	return int64(len(cluster)), nil
}

// RedisHistory keeps vote timelines in Redis sorted sets so detection
// works across engine instances.
type RedisHistory struct {
	client rueidis.Client
}

// NewRedisHistory creates a Redis-backed history.
func NewRedisHistory(client rueidis.Client) *RedisHistory {
	return &RedisHistory{client: client}
}

// AddVote appends the vote timestamp, trims entries older than the
// window and returns the remaining cardinality.
func (h *RedisHistory) AddVote(
	ctx context.Context, voterID uint64, now time.Time, window time.Duration,
) (int64, error) {
	key := fmt.Sprintf("votes/%d", voterID)
	score := float64(now.UnixMilli())
	// Nanosecond member keeps rapid same-millisecond votes distinct
	member := strconv.FormatInt(now.UnixNano(), 10)

	if err := h.client.Do(ctx,
		h.client.B().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build(),
	).Error(); err != nil {
		return 0, fmt.Errorf("failed to record vote: %w", err)
	}

	cutoff := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)
	if err := h.client.Do(ctx,
		h.client.B().Zremrangebyscore().Key(key).Min("-inf").Max(cutoff).Build(),
	).Error(); err != nil {
		return 0, fmt.Errorf("failed to trim vote history: %w", err)
	}

	count, err := h.client.Do(ctx, h.client.B().Zcard().Key(key).Build()).ToInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}

	if err := h.client.Do(ctx,
		h.client.B().Expire().Key(key).Seconds(int64((2 * window).Seconds())).Build(),
	).Error(); err != nil {
		return 0, fmt.Errorf("failed to set vote history expiry: %w", err)
	}

	return count, nil
}

// AddCommentVoter stores the voter ID as the member, so re-votes by the
// same voter refresh their timestamp instead of inflating the count.
func (h *RedisHistory) AddCommentVoter(
	ctx context.Context, commentID, voterID uint64, fingerprint string,
	now time.Time, window time.Duration,
) (int64, error) {
	key := fmt.Sprintf("brigade/%d/%s", commentID, fingerprint)
	score := float64(now.UnixMilli())
	member := strconv.FormatUint(voterID, 10)

	if err := h.client.Do(ctx,
		h.client.B().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build(),
	).Error(); err != nil {
		return 0, fmt.Errorf("failed to record comment voter: %w", err)
	}

	cutoff := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)
	if err := h.client.Do(ctx,
		h.client.B().Zremrangebyscore().Key(key).Min("-inf").Max(cutoff).Build(),
	).Error(); err != nil {
		return 0, fmt.Errorf("failed to trim comment voters: %w", err)
	}

	count, err := h.client.Do(ctx, h.client.B().Zcard().Key(key).Build()).ToInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to count comment voters: %w", err)
	}

	if err := h.client.Do(ctx,
		h.client.B().Expire().Key(key).Seconds(int64((2 * window).Seconds())).Build(),
	).Error(); err != nil {
		return 0, fmt.Errorf("failed to set comment voter expiry: %w", err)
	}

	return count, nil
}
