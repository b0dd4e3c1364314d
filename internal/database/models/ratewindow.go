package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/threadguard/threadguard/internal/database/dbretry"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// RateWindowModel handles database operations for aligned rate windows.
// Increment is atomic per (actor, action, window) key so concurrent
// callers never lose updates.
type RateWindowModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewRateWindow creates a new rate window model.
func NewRateWindow(db *bun.DB, logger *zap.Logger) *RateWindowModel {
	return &RateWindowModel{
		db:     db,
		logger: logger.Named("db_rate_window"),
	}
}

// Increment reads-or-creates the counter for the key and increments it,
// returning the post-increment count.
func (r *RateWindowModel) Increment(
	ctx context.Context, actorID uint64, action enum.RateAction, windowStart time.Time,
) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		window := &types.RateWindow{
			ActorID:     actorID,
			Action:      action,
			WindowStart: windowStart,
			Count:       1,
			UpdatedAt:   time.Now(),
		}

		var count int64
		err := r.db.NewInsert().
			Model(window).
			On("CONFLICT (actor_id, action, window_start) DO UPDATE").
			Set("count = rate_window.count + 1").
			Set("updated_at = EXCLUDED.updated_at").
			Returning("count").
			Scan(ctx, &count)
		if err != nil {
			return 0, fmt.Errorf("failed to increment rate window: %w", err)
		}

		return count, nil
	})
}

// Get returns the current count for the key, zero when no row exists.
func (r *RateWindowModel) Get(
	ctx context.Context, actorID uint64, action enum.RateAction, windowStart time.Time,
) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		var count int64

		err := r.db.NewSelect().
			Model((*types.RateWindow)(nil)).
			Column("count").
			Where("actor_id = ?", actorID).
			Where("action = ?", action).
			Where("window_start = ?", windowStart).
			Scan(ctx, &count)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, nil
			}
			return 0, fmt.Errorf("failed to get rate window: %w", err)
		}

		return count, nil
	})
}

// PurgeExpired removes windows that started before the cutoff.
// Removal is an optimization; rate decisions never read expired windows.
func (r *RateWindowModel) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := r.db.NewDelete().
			Model((*types.RateWindow)(nil)).
			Where("window_start < ?", cutoff).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to purge rate windows: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check affected rows: %w", err)
		}

		return affected, nil
	})
}
