package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database/dbretry"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrNoEscalation is returned when a report has no escalation history.
var ErrNoEscalation = errors.New("no escalation found")

// EscalationModel handles database operations for escalations.
// Escalation rows are append-only; the newest row per report is the
// current assignment.
type EscalationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewEscalation creates a new escalation model.
func NewEscalation(db *bun.DB, logger *zap.Logger) *EscalationModel {
	return &EscalationModel{
		db:     db,
		logger: logger.Named("db_escalation"),
	}
}

// Insert appends an escalation to a report's history.
func (r *EscalationModel) Insert(ctx context.Context, escalation *types.Escalation) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(escalation).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert escalation: %w", err)
		}
		return nil
	})
}

// GetCurrent retrieves the newest escalation for a report, which
// determines the current assignment.
func (r *EscalationModel) GetCurrent(ctx context.Context, reportID uuid.UUID) (*types.Escalation, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Escalation, error) {
		escalation := new(types.Escalation)

		err := r.db.NewSelect().
			Model(escalation).
			Where("report_id = ?", reportID).
			Order("created_at DESC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNoEscalation
			}
			return nil, fmt.Errorf("failed to get current escalation: %w", err)
		}

		return escalation, nil
	})
}

// GetHistory retrieves all escalations for a report, newest first.
func (r *EscalationModel) GetHistory(ctx context.Context, reportID uuid.UUID) ([]*types.Escalation, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Escalation, error) {
		var escalations []*types.Escalation

		err := r.db.NewSelect().
			Model(&escalations).
			Where("report_id = ?", reportID).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get escalation history: %w", err)
		}

		return escalations, nil
	})
}
