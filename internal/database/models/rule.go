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

// RuleModel handles database operations for automation rules.
type RuleModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewRule creates a new rule model.
func NewRule(db *bun.DB, logger *zap.Logger) *RuleModel {
	return &RuleModel{
		db:     db,
		logger: logger.Named("db_rule"),
	}
}

// GetEnabled retrieves all enabled rules.
func (r *RuleModel) GetEnabled(ctx context.Context) ([]*types.Rule, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Rule, error) {
		var rules []*types.Rule

		err := r.db.NewSelect().
			Model(&rules).
			Where("enabled = TRUE").
			Order("name ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get enabled rules: %w", err)
		}

		return rules, nil
	})
}

// Upsert inserts a rule or updates it by name.
func (r *RuleModel) Upsert(ctx context.Context, rule *types.Rule) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		now := time.Now()
		if rule.CreatedAt.IsZero() {
			rule.CreatedAt = now
		}
		rule.UpdatedAt = now

		_, err := r.db.NewInsert().
			Model(rule).
			On("CONFLICT (name) DO UPDATE").
			Set("enabled = EXCLUDED.enabled").
			Set("conditions = EXCLUDED.conditions").
			Set("actions = EXCLUDED.actions").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert rule: %w", err)
		}
		return nil
	})
}

// SetEnabled toggles a rule by name.
func (r *RuleModel) SetEnabled(ctx context.Context, name string, enabled bool) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.Rule)(nil)).
			Set("enabled = ?", enabled).
			Set("updated_at = ?", time.Now()).
			Where("name = ?", name).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to toggle rule: %w", err)
		}
		return nil
	})
}
