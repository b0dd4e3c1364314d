package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database/dbretry"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

var (
	// ErrReportNotFound is returned when a report ID has no matching row.
	ErrReportNotFound = errors.New("report not found")
	// ErrDuplicateReport is returned when a reporter already has a report
	// on the same comment. Duplicates are rejected, never merged.
	ErrDuplicateReport = errors.New("duplicate report for comment and reporter")
	// ErrStaleReport is returned when a status update lost a race against
	// a concurrent transition on the same report.
	ErrStaleReport = errors.New("report status changed concurrently")
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// ReportModel handles database operations for reports.
type ReportModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReport creates a new report model.
func NewReport(db *bun.DB, logger *zap.Logger) *ReportModel {
	return &ReportModel{
		db:     db,
		logger: logger.Named("db_report"),
	}
}

// Insert stores a new report, enforcing the one-report-per
// (comment, reporter) invariant through the unique index.
func (r *ReportModel) Insert(ctx context.Context, report *types.Report) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(report).
			Exec(ctx)
		if err != nil {
			var pgerr *pgdriver.Error
			if errors.As(err, &pgerr) && pgerr.Field('C') == pgUniqueViolation {
				return ErrDuplicateReport
			}
			return fmt.Errorf("failed to insert report: %w", err)
		}
		return nil
	})
}

// Get retrieves a report by ID.
func (r *ReportModel) Get(ctx context.Context, reportID uuid.UUID) (*types.Report, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Report, error) {
		report := new(types.Report)

		err := r.db.NewSelect().
			Model(report).
			Where("id = ?", reportID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrReportNotFound
			}
			return nil, fmt.Errorf("failed to get report: %w", err)
		}

		return report, nil
	})
}

// UpdateStatus transitions a report from one status to another. The
// update is conditional on the expected current status so concurrent
// transitions on the same report cannot both win.
func (r *ReportModel) UpdateStatus(
	ctx context.Context, reportID uuid.UUID, from, to enum.ReportStatus,
	reviewerID uint64, notes string, now time.Time,
) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		query := r.db.NewUpdate().
			Model((*types.Report)(nil)).
			Set("status = ?", to).
			Set("updated_at = ?", now).
			Where("id = ?", reportID).
			Where("status = ?", from)

		if reviewerID != 0 {
			query = query.Set("reviewer_id = ?", reviewerID)
		}
		if notes != "" {
			query = query.Set("notes = ?", notes)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update report status: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows: %w", err)
		}
		if affected == 0 {
			return ErrStaleReport
		}

		return nil
	})
}

// CountActive returns the number of distinct non-dismissed reports
// against a comment. Each reporter has at most one report per comment,
// so the row count is the distinct reporter count.
func (r *ReportModel) CountActive(ctx context.Context, commentID uint64) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := r.db.NewSelect().
			Model((*types.Report)(nil)).
			Where("comment_id = ?", commentID).
			Where("status != ?", enum.ReportStatusDismissed).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count active reports: %w", err)
		}
		return count, nil
	})
}

// GetPending retrieves the pending review queue ordered by priority,
// oldest first within the same priority.
func (r *ReportModel) GetPending(
	ctx context.Context, cursor *types.ReportCursor, limit int,
) ([]*types.Report, *types.ReportCursor, error) {
	var reports []*types.Report
	var nextCursor *types.ReportCursor

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		query := r.db.NewSelect().
			Model(&reports).
			Where("status = ?", enum.ReportStatusPending)

		if cursor != nil {
			query = query.Where(
				"(priority < ?) OR (priority = ? AND (filed_at, id) >= (?, ?))",
				cursor.Priority, cursor.Priority, cursor.FiledAt, cursor.ID,
			)
		}

		// Order by priority, then filing time for stable pagination
		query = query.Order("priority DESC", "filed_at ASC", "id ASC").
			Limit(limit + 1) // Get one extra to determine if there are more results

		err := query.Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to get pending reports: %w", err)
		}

		if len(reports) > limit {
			extraItem := reports[limit]
			nextCursor = &types.ReportCursor{
				Priority: extraItem.Priority,
				FiledAt:  extraItem.FiledAt,
				ID:       extraItem.ID,
			}
			reports = reports[:limit]
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return reports, nextCursor, nil
}
