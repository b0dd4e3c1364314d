package models

import (
	"context"
	"fmt"
	"time"

	"github.com/threadguard/threadguard/internal/database/dbretry"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SignalModel handles database operations for abuse signals.
type SignalModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSignal creates a new abuse signal model.
func NewSignal(db *bun.DB, logger *zap.Logger) *SignalModel {
	return &SignalModel{
		db:     db,
		logger: logger.Named("db_signal"),
	}
}

// Insert appends an abuse signal.
func (r *SignalModel) Insert(ctx context.Context, signal *types.AbuseSignal) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(signal).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert abuse signal: %w", err)
		}
		return nil
	})
}

// GetByActor retrieves recent signals for an actor, newest first.
func (r *SignalModel) GetByActor(ctx context.Context, actorID uint64, limit int) ([]*types.AbuseSignal, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.AbuseSignal, error) {
		var signals []*types.AbuseSignal

		err := r.db.NewSelect().
			Model(&signals).
			Where("actor_id = ?", actorID).
			Order("detected_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get abuse signals: %w", err)
		}

		return signals, nil
	})
}

// PurgeOlderThan removes signals detected before the cutoff.
func (r *SignalModel) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := r.db.NewDelete().
			Model((*types.AbuseSignal)(nil)).
			Where("detected_at < ?", cutoff).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to purge abuse signals: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check affected rows: %w", err)
		}

		return affected, nil
	})
}
