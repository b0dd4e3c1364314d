package escalate

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

var (
	// ErrEscalateDownward is returned when the target moderator holds a
	// lower role than the source. Escalations go upward or sideways,
	// never down, and the router never coerces the target.
	ErrEscalateDownward = errors.New("escalation target has a lower role than the source")
	// ErrEscalateSelf is returned when a moderator escalates to themselves.
	ErrEscalateSelf = errors.New("escalation target must differ from the source")
)

// ReportStore is the report persistence surface the router needs.
type ReportStore interface {
	Get(ctx context.Context, reportID uuid.UUID) (*types.Report, error)
	UpdateStatus(
		ctx context.Context, reportID uuid.UUID, from, to enum.ReportStatus,
		reviewerID uint64, notes string, now time.Time,
	) error
}

// EscalationStore persists escalation records.
type EscalationStore interface {
	Insert(ctx context.Context, escalation *types.Escalation) error
	GetCurrent(ctx context.Context, reportID uuid.UUID) (*types.Escalation, error)
}

// ActorStore resolves actors for role validation.
type ActorStore interface {
	Get(ctx context.Context, actorID uint64) (*types.Actor, error)
}

type debounceKey struct {
	reportID uuid.UUID
	fromID   uint64
	toID     uint64
	reason   string
}

// Router reassigns reports between moderators. A report may be
// escalated many times; the newest escalation row is the current
// assignment.
type Router struct {
	reports     ReportStore
	escalations EscalationStore
	actors      ActorStore
	locks       *utils.KeyMutex[uuid.UUID]
	recent      *utils.TTLMap[debounceKey, *types.Escalation]
	logger      *zap.Logger
}

// NewRouter creates a router. The locks argument must be the lifecycle
// machine's keyed mutex so escalations and status transitions on one
// report are mutually exclusive.
func NewRouter(
	reports ReportStore, escalations EscalationStore, actors ActorStore,
	locks *utils.KeyMutex[uuid.UUID], cfg *config.Escalate, logger *zap.Logger,
) *Router {
	return &Router{
		reports:     reports,
		escalations: escalations,
		actors:      actors,
		locks:       locks,
		recent:      utils.NewTTLMap[debounceKey, *types.Escalation](time.Duration(cfg.DebounceSeconds) * time.Second),
		logger:      logger.Named("escalate"),
	}
}

// Escalate reassigns a report to another moderator, forcing its status
// to escalated. An exact duplicate submission inside the debounce
// window returns the existing record instead of creating another.
func (r *Router) Escalate(
	ctx context.Context, reportID uuid.UUID, fromID, toID uint64,
	reason string, now time.Time,
) (*types.Escalation, error) {
	if fromID == toID {
		return nil, fmt.Errorf("%w: moderator %d", ErrEscalateSelf, fromID)
	}

	key := debounceKey{reportID: reportID, fromID: fromID, toID: toID, reason: reason}
	if existing, ok := r.recent.Get(key, now); ok {
		return existing, nil
	}

	from, err := r.actors.Get(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source moderator: %w", err)
	}

	to, err := r.actors.Get(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target moderator: %w", err)
	}

	if !to.Role.AtLeast(from.Role) {
		return nil, fmt.Errorf("%w: %s to %s", ErrEscalateDownward, from.Role, to.Role)
	}

	r.locks.Lock(reportID)
	defer r.locks.Unlock(reportID)

	report, err := r.reports.Get(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	// Escalation reopens closed reports; a redundant update is skipped
	if report.Status != enum.ReportStatusEscalated {
		err := r.reports.UpdateStatus(ctx, reportID, report.Status, enum.ReportStatusEscalated, toID, "", now)
		if err != nil {
			return nil, fmt.Errorf("failed to mark report escalated: %w", err)
		}
	}

	escalation := &types.Escalation{
		ID:        uuid.New(),
		ReportID:  reportID,
		FromID:    fromID,
		ToID:      toID,
		Reason:    reason,
		CreatedAt: now,
	}

	if err := r.escalations.Insert(ctx, escalation); err != nil {
		return nil, fmt.Errorf("failed to record escalation: %w", err)
	}

	r.recent.Set(key, escalation, now)

	r.logger.Info("Report escalated",
		zap.String("reportID", reportID.String()),
		zap.Uint64("fromID", fromID),
		zap.Uint64("toID", toID),
		zap.String("reason", reason))

	return escalation, nil
}

// Current returns the report's active assignment, the newest
// escalation row.
func (r *Router) Current(ctx context.Context, reportID uuid.UUID) (*types.Escalation, error) {
	return r.escalations.GetCurrent(ctx, reportID)
}
