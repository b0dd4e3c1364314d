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

// KeywordModel handles database operations for banned keywords.
// Phrases are stored normalized; the unique constraint keeps one row
// per phrase.
type KeywordModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewKeyword creates a new keyword model.
func NewKeyword(db *bun.DB, logger *zap.Logger) *KeywordModel {
	return &KeywordModel{
		db:     db,
		logger: logger.Named("db_keyword"),
	}
}

// GetEnabled retrieves all enabled keywords.
func (r *KeywordModel) GetEnabled(ctx context.Context) ([]*types.Keyword, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Keyword, error) {
		var keywords []*types.Keyword

		err := r.db.NewSelect().
			Model(&keywords).
			Where("enabled = TRUE").
			Order("phrase ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get enabled keywords: %w", err)
		}

		return keywords, nil
	})
}

// Upsert inserts a keyword or updates it by phrase.
func (r *KeywordModel) Upsert(ctx context.Context, keyword *types.Keyword) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		if keyword.CreatedAt.IsZero() {
			keyword.CreatedAt = time.Now()
		}

		_, err := r.db.NewInsert().
			Model(keyword).
			On("CONFLICT (phrase) DO UPDATE").
			Set("severity = EXCLUDED.severity").
			Set("action = EXCLUDED.action").
			Set("enabled = EXCLUDED.enabled").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert keyword: %w", err)
		}
		return nil
	})
}

// Delete removes a keyword by phrase.
func (r *KeywordModel) Delete(ctx context.Context, phrase string) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewDelete().
			Model((*types.Keyword)(nil)).
			Where("phrase = ?", phrase).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete keyword: %w", err)
		}
		return nil
	})
}
