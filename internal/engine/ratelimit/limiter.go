package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/setup/config"
	"go.uber.org/zap"
)

// ErrStoreUnavailable is returned when the counter store cannot be
// reached. Check fails closed on it; Peek fails open.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// Decision is the outcome of one rate limit check. Count includes the
// attempt being checked, so a denied attempt still reports its position
// past the limit.
type Decision struct {
	Allowed bool
	Count   int64
	Limit   int64
	ResetAt time.Time
}

// Limiter enforces per-actor aligned window limits. Windows are aligned
// to multiples of the window size, so all actors share the same window
// boundaries and a reset time can be stated exactly.
type Limiter struct {
	store      Store
	mirror     Store
	limits     map[enum.RateAction]int64
	windowSize time.Duration
	logger     *zap.Logger
}

// NewLimiter creates a limiter over the given store. The optional mirror
// receives a best-effort copy of every increment, giving the sweep
// worker a durable record of window activity; pass nil to disable.
func NewLimiter(store Store, mirror Store, cfg *config.RateLimit, logger *zap.Logger) *Limiter {
	return &Limiter{
		store:  store,
		mirror: mirror,
		limits: map[enum.RateAction]int64{
			enum.RateActionComment: cfg.Comment,
			enum.RateActionVote:    cfg.Vote,
			enum.RateActionReport:  cfg.Report,
			enum.RateActionEdit:    cfg.Edit,
		},
		windowSize: time.Duration(cfg.WindowMinutes) * time.Minute,
		logger:     logger.Named("ratelimit"),
	}
}

// WindowSize returns the aligned window duration.
func (l *Limiter) WindowSize() time.Duration {
	return l.windowSize
}

// Check records an attempt and decides whether it is within the actor's
// limit. Denied attempts still count; sustained hammering keeps the
// counter growing for abuse signals to read. A store failure denies the
// attempt and wraps ErrStoreUnavailable.
func (l *Limiter) Check(
	ctx context.Context, actorID uint64, action enum.RateAction, now time.Time,
) (*Decision, error) {
	limit, ok := l.limits[action]
	if !ok {
		return nil, fmt.Errorf("unknown rate action %q", action)
	}

	windowStart := now.Truncate(l.windowSize)

	count, err := l.store.Increment(ctx, actorID, action, windowStart)
	if err != nil {
		return &Decision{Allowed: false, Limit: limit, ResetAt: windowStart.Add(l.windowSize)},
			fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if l.mirror != nil {
		if _, err := l.mirror.Increment(ctx, actorID, action, windowStart); err != nil {
			l.logger.Warn("Failed to mirror rate window",
				zap.Uint64("actorID", actorID),
				zap.String("action", action.String()),
				zap.Error(err))
		}
	}

	decision := &Decision{
		Allowed: count <= limit,
		Count:   count,
		Limit:   limit,
		ResetAt: windowStart.Add(l.windowSize),
	}

	if !decision.Allowed {
		l.logger.Debug("Rate limit exceeded",
			zap.Uint64("actorID", actorID),
			zap.String("action", action.String()),
			zap.Int64("count", count),
			zap.Int64("limit", limit))
	}

	return decision, nil
}

// Peek reports the actor's standing without recording an attempt.
// A store failure fails open: the attempt would be allowed.
func (l *Limiter) Peek(
	ctx context.Context, actorID uint64, action enum.RateAction, now time.Time,
) (*Decision, error) {
	limit, ok := l.limits[action]
	if !ok {
		return nil, fmt.Errorf("unknown rate action %q", action)
	}

	windowStart := now.Truncate(l.windowSize)

	count, err := l.store.Get(ctx, actorID, action, windowStart)
	if err != nil {
		l.logger.Warn("Rate limit store unavailable, failing open on read",
			zap.Uint64("actorID", actorID),
			zap.String("action", action.String()),
			zap.Error(err))

		return &Decision{Allowed: true, Limit: limit, ResetAt: windowStart.Add(l.windowSize)}, nil
	}

	return &Decision{
		Allowed: count < limit,
		Count:   count,
		Limit:   limit,
		ResetAt: windowStart.Add(l.windowSize),
	}, nil
}
