package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/setup/config"
	"github.com/threadguard/threadguard/pkg/utils"
	"go.uber.org/zap"
)

// ErrInvalidTransition is returned when a review requests a status
// change the lifecycle does not permit.
var ErrInvalidTransition = errors.New("invalid report status transition")

// Store is the persistence surface the lifecycle needs.
type Store interface {
	Insert(ctx context.Context, report *types.Report) error
	Get(ctx context.Context, reportID uuid.UUID) (*types.Report, error)
	UpdateStatus(
		ctx context.Context, reportID uuid.UUID, from, to enum.ReportStatus,
		reviewerID uint64, notes string, now time.Time,
	) error
	CountActive(ctx context.Context, commentID uint64) (int, error)
	GetPending(ctx context.Context, cursor *types.ReportCursor, limit int) ([]*types.Report, *types.ReportCursor, error)
}

// AutoModerator receives the automated consequences of report
// accumulation. The engine wires this to the action dispatcher.
type AutoModerator interface {
	AutoAct(
		ctx context.Context, actionType enum.ActionType,
		targetUserID, targetCommentID uint64, reason string, now time.Time,
	) error
}

// Lifecycle manages report filing and review transitions. Transitions
// on one report are serialized through a keyed mutex shared with the
// escalation router.
type Lifecycle struct {
	store Store
	auto  AutoModerator
	locks *utils.KeyMutex[uuid.UUID]

	// commentLocks serializes insert-plus-count per comment so the
	// active count passes through every threshold value exactly once.
	commentLocks *utils.KeyMutex[uint64]

	warnThreshold int
	muteThreshold int
	banThreshold  int

	logger *zap.Logger
}

// NewLifecycle creates a lifecycle machine. The locks argument must be
// the same instance handed to the escalation router so transitions and
// escalations on a report exclude each other.
func NewLifecycle(
	store Store, auto AutoModerator, locks *utils.KeyMutex[uuid.UUID],
	cfg *config.Reports, logger *zap.Logger,
) *Lifecycle {
	return &Lifecycle{
		store:         store,
		auto:          auto,
		locks:         locks,
		commentLocks:  utils.NewKeyMutex[uint64](),
		warnThreshold: cfg.AutoWarnThreshold,
		muteThreshold: cfg.AutoMuteThreshold,
		banThreshold:  cfg.AutoBanThreshold,
		logger:        logger.Named("reports"),
	}
}

// File creates a pending report. A reporter gets one report per
// comment; the store rejects duplicates. Crossing an accumulation
// threshold exactly dispatches the corresponding automated action
// against the comment's author.
func (l *Lifecycle) File(
	ctx context.Context, commentID, authorID, reporterID uint64,
	reason enum.ReportReason, notes string, now time.Time,
) (*types.Report, error) {
	report := &types.Report{
		ID:         uuid.New(),
		CommentID:  commentID,
		AuthorID:   authorID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     enum.ReportStatusPending,
		Priority:   reason.Priority(),
		Notes:      notes,
		FiledAt:    now,
		UpdatedAt:  now,
	}

	// Concurrent filings against the same comment must not observe each
	// other's insert before counting, or the count can jump past a
	// threshold without ever landing on it.
	l.commentLocks.Lock(commentID)
	defer l.commentLocks.Unlock(commentID)

	if err := l.store.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to file report: %w", err)
	}

	l.logger.Info("Report filed",
		zap.String("reportID", report.ID.String()),
		zap.Uint64("commentID", commentID),
		zap.Uint64("reporterID", reporterID),
		zap.String("reason", reason.String()))

	if err := l.checkAccumulation(ctx, commentID, authorID, now); err != nil {
		return report, err
	}

	return report, nil
}

// Review applies an explicit moderator transition. The machine never
// closes a report on its own.
func (l *Lifecycle) Review(
	ctx context.Context, reportID uuid.UUID, moderatorID uint64,
	newStatus enum.ReportStatus, notes string, now time.Time,
) (*types.Report, error) {
	l.locks.Lock(reportID)
	defer l.locks.Unlock(reportID)

	report, err := l.store.Get(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if !validTransition(report.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, report.Status, newStatus)
	}

	if err := l.store.UpdateStatus(ctx, reportID, report.Status, newStatus, moderatorID, notes, now); err != nil {
		return nil, fmt.Errorf("failed to transition report: %w", err)
	}

	report.Status = newStatus
	report.ReviewerID = moderatorID
	report.UpdatedAt = now

	if notes != "" {
		report.Notes = notes
	}

	l.logger.Info("Report reviewed",
		zap.String("reportID", reportID.String()),
		zap.Uint64("moderatorID", moderatorID),
		zap.String("status", newStatus.String()))

	return report, nil
}

// Queue returns a page of the pending review queue, highest priority
// first, oldest first within a priority.
func (l *Lifecycle) Queue(
	ctx context.Context, cursor *types.ReportCursor, limit int,
) ([]*types.Report, *types.ReportCursor, error) {
	return l.store.GetPending(ctx, cursor, limit)
}

// checkAccumulation fires the automated consequence when the distinct
// non-dismissed report count lands exactly on a threshold, so each
// threshold fires once per comment.
func (l *Lifecycle) checkAccumulation(ctx context.Context, commentID, authorID uint64, now time.Time) error {
	count, err := l.store.CountActive(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to count reports: %w", err)
	}

	var actionType enum.ActionType

	switch count {
	case l.banThreshold:
		actionType = enum.ActionTypeBanUser
	case l.muteThreshold:
		actionType = enum.ActionTypeMuteUser
	case l.warnThreshold:
		actionType = enum.ActionTypeWarnUser
	default:
		return nil
	}

	reason := fmt.Sprintf("comment %d accumulated %d active reports", commentID, count)

	l.logger.Info("Report accumulation threshold crossed",
		zap.Uint64("commentID", commentID),
		zap.Uint64("authorID", authorID),
		zap.Int("count", count),
		zap.String("actionType", actionType.String()))

	if err := l.auto.AutoAct(ctx, actionType, authorID, commentID, reason, now); err != nil {
		return fmt.Errorf("failed to dispatch automated action: %w", err)
	}

	return nil
}

// validTransition encodes the allowed status graph: pending reports are
// reviewed or closed; reviewed and escalated reports are closed.
// Escalation to escalated status happens through the router, not here.
func validTransition(from, to enum.ReportStatus) bool {
	switch to {
	case enum.ReportStatusReviewed:
		return from == enum.ReportStatusPending
	case enum.ReportStatusResolved, enum.ReportStatusDismissed:
		return from == enum.ReportStatusPending ||
			from == enum.ReportStatusReviewed ||
			from == enum.ReportStatusEscalated
	default:
		return false
	}
}
