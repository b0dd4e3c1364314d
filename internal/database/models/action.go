package models

import (
	"context"
	"fmt"

	"github.com/threadguard/threadguard/internal/database/dbretry"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActionModel handles database operations for the moderation audit log.
// The log is append-only: the model exposes inserts and filtered reads,
// never updates or deletes.
type ActionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAction creates a new moderation action model.
func NewAction(db *bun.DB, logger *zap.Logger) *ActionModel {
	return &ActionModel{
		db:     db,
		logger: logger.Named("db_action"),
	}
}

// Insert appends a moderation action to the audit log.
func (r *ActionModel) Insert(ctx context.Context, action *types.ModerationAction) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(action).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert moderation action: %w", err)
		}
		return nil
	})
}

// GetActions retrieves audit records based on filter criteria.
func (r *ActionModel) GetActions(
	ctx context.Context, filter types.ActionFilter, cursor *types.ActionCursor, limit int,
) ([]*types.ModerationAction, *types.ActionCursor, error) {
	var actions []*types.ModerationAction
	var nextCursor *types.ActionCursor

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		// Build base query conditions
		query := r.db.NewSelect().Model(&actions)

		if filter.ModeratorID != 0 {
			query = query.Where("moderator_id = ?", filter.ModeratorID)
		}
		if filter.TargetUserID != 0 {
			query = query.Where("target_user_id = ?", filter.TargetUserID)
		}
		if filter.TargetCommentID != 0 {
			query = query.Where("target_comment_id = ?", filter.TargetCommentID)
		}
		if filter.HasActionType {
			query = query.Where("action_type = ?", filter.ActionType)
		}
		if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
			query = query.Where("created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
		}

		// Apply cursor conditions if cursor exists
		if cursor != nil {
			query = query.Where("(created_at, id) <= (?, ?)", cursor.CreatedAt, cursor.ID)
		}

		// Order by timestamp and ID for stable pagination
		query = query.Order("created_at DESC", "id DESC").
			Limit(limit + 1) // Get one extra to determine if there are more results

		err := query.Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to get moderation actions: %w", err)
		}

		if len(actions) > limit {
			// Use the extra item as the next cursor
			extraItem := actions[limit]
			nextCursor = &types.ActionCursor{
				CreatedAt: extraItem.CreatedAt,
				ID:        extraItem.ID,
			}
			actions = actions[:limit]
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return actions, nextCursor, nil
}

// GetAll retrieves the full audit log ordered oldest first, for export.
func (r *ActionModel) GetAll(ctx context.Context) ([]*types.ModerationAction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ModerationAction, error) {
		var actions []*types.ModerationAction

		err := r.db.NewSelect().
			Model(&actions).
			Order("created_at ASC", "id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get all moderation actions: %w", err)
		}

		return actions, nil
	})
}
