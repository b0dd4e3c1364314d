package dispatch

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
	// ErrMissingTarget is returned when an action type requires a target
	// the caller did not supply.
	ErrMissingTarget = errors.New("action requires a target")
	// ErrRoleBound is returned when a promotion or demotion would move a
	// role outside the user..admin range. Super admins are assigned out
	// of band, never through dispatch.
	ErrRoleBound = errors.New("role change outside the permitted range")
	// ErrAuditFailed wraps an audit write failure that happened after the
	// state change was applied. The applied action is never rolled back.
	ErrAuditFailed = errors.New("audit write failed after applied action")
)

// ActorStore mutates actor standing. Only the dispatcher writes to it.
type ActorStore interface {
	Get(ctx context.Context, actorID uint64) (*types.Actor, error)
	SetBanned(ctx context.Context, actorID uint64, banned bool, now time.Time) error
	SetShadowBanned(ctx context.Context, actorID uint64, shadowBanned bool, now time.Time) error
	SetMutedUntil(ctx context.Context, actorID uint64, until, now time.Time) error
	SetRole(ctx context.Context, actorID uint64, role enum.Role, now time.Time) error
}

// CommentStore applies comment-side effects. It is a collaborator owned
// by the surrounding service; the engine only calls it.
type CommentStore interface {
	Apply(ctx context.Context, actionType enum.ActionType, commentID uint64, details map[string]any, now time.Time) error
}

// AuditStore appends immutable audit records.
type AuditStore interface {
	Insert(ctx context.Context, action *types.ModerationAction) error
}

// Notifier is informed of dispatched actions for downstream effects.
// Calls are fire-and-forget; the dispatcher never awaits them.
type Notifier interface {
	Notify(ctx context.Context, action *types.ModerationAction)
}

type dedupeKey struct {
	actionType      enum.ActionType
	targetUserID    uint64
	targetCommentID uint64
}

// Dispatcher turns decisions into applied, audited moderation actions.
// Identical intents inside the dedup window collapse into one record,
// so two rules deciding the same consequence act once.
type Dispatcher struct {
	actors   ActorStore
	comments CommentStore
	audit    AuditStore
	notifier Notifier

	recent       *utils.TTLMap[dedupeKey, *types.ModerationAction]
	muteDuration time.Duration
	auditRetry   utils.RetryOptions

	logger *zap.Logger
}

// NewDispatcher creates a dispatcher. The notifier may be nil.
func NewDispatcher(
	actors ActorStore, comments CommentStore, audit AuditStore, notifier Notifier,
	cfg *config.Dispatch, logger *zap.Logger,
) *Dispatcher {
	auditRetry := utils.GetAuditRetryOptions()
	if cfg.AuditAttempts > 0 {
		auditRetry.MaxRetries = uint64(cfg.AuditAttempts)
	}

	return &Dispatcher{
		actors:       actors,
		comments:     comments,
		audit:        audit,
		notifier:     notifier,
		recent:       utils.NewTTLMap[dedupeKey, *types.ModerationAction](time.Duration(cfg.DedupeSeconds) * time.Second),
		muteDuration: time.Duration(cfg.MuteHours) * time.Hour,
		auditRetry:   auditRetry,
		logger:       logger.Named("dispatch"),
	}
}

// Dispatch applies one moderation action and appends its audit record.
// The state change lands first; if it fails no audit row is written. If
// the audit write fails after the change applied, the error wraps
// ErrAuditFailed and the returned action is still valid.
func (d *Dispatcher) Dispatch(
	ctx context.Context, actionType enum.ActionType, moderatorID uint64,
	targetUserID, targetCommentID uint64, details map[string]any,
	reason string, now time.Time,
) (*types.ModerationAction, error) {
	if actionType.TargetsUser() && targetUserID == 0 {
		return nil, fmt.Errorf("%w: %s needs a target user", ErrMissingTarget, actionType)
	}

	if actionType.TargetsComment() && targetCommentID == 0 {
		return nil, fmt.Errorf("%w: %s needs a target comment", ErrMissingTarget, actionType)
	}

	key := dedupeKey{actionType: actionType, targetUserID: targetUserID, targetCommentID: targetCommentID}
	if prior, ok := d.recent.Get(key, now); ok {
		d.logger.Debug("Deduplicated dispatch",
			zap.String("actionType", actionType.String()),
			zap.String("priorID", prior.ID.String()))

		return prior, nil
	}

	if err := d.apply(ctx, actionType, targetUserID, targetCommentID, details, now); err != nil {
		return nil, err
	}

	action := &types.ModerationAction{
		ID:              uuid.New(),
		ActionType:      actionType,
		ModeratorID:     moderatorID,
		TargetUserID:    targetUserID,
		TargetCommentID: targetCommentID,
		Details:         details,
		Reason:          reason,
		CreatedAt:       now,
	}

	// Dedupe from the moment the change applied, audit outcome aside,
	// so a retry of the audit path cannot re-apply the state change
	d.recent.Set(key, action, now)

	err := utils.WithRetry(ctx, func() error {
		return d.audit.Insert(ctx, action)
	}, d.auditRetry)
	if err != nil {
		d.logger.Error("Audit write failed after applied action",
			zap.String("actionType", actionType.String()),
			zap.Uint64("targetUserID", targetUserID),
			zap.Uint64("targetCommentID", targetCommentID),
			zap.Error(err))

		return action, fmt.Errorf("%w: %w", ErrAuditFailed, err)
	}

	d.logger.Info("Action dispatched",
		zap.String("actionType", actionType.String()),
		zap.Uint64("moderatorID", moderatorID),
		zap.Uint64("targetUserID", targetUserID),
		zap.Uint64("targetCommentID", targetCommentID))

	if d.notifier != nil {
		go d.notifier.Notify(ctx, action)
	}

	return action, nil
}

// apply performs the state change for the action type.
func (d *Dispatcher) apply(
	ctx context.Context, actionType enum.ActionType,
	targetUserID, targetCommentID uint64, details map[string]any, now time.Time,
) error {
	switch actionType {
	case enum.ActionTypeBanUser:
		return d.actors.SetBanned(ctx, targetUserID, true, now)
	case enum.ActionTypeUnbanUser:
		return d.actors.SetBanned(ctx, targetUserID, false, now)
	case enum.ActionTypeShadowBanUser:
		return d.actors.SetShadowBanned(ctx, targetUserID, true, now)
	case enum.ActionTypeUnshadowBanUser:
		return d.actors.SetShadowBanned(ctx, targetUserID, false, now)
	case enum.ActionTypeMuteUser:
		return d.actors.SetMutedUntil(ctx, targetUserID, now.Add(d.muteFor(details)), now)
	case enum.ActionTypeWarnUser:
		// A warning changes no standing; the audit record is the warning
		return nil
	case enum.ActionTypePromoteUser:
		return d.shiftRole(ctx, targetUserID, 1, now)
	case enum.ActionTypeDemoteUser:
		return d.shiftRole(ctx, targetUserID, -1, now)
	default:
		return d.comments.Apply(ctx, actionType, targetCommentID, details, now)
	}
}

// muteFor reads an explicit duration from the details, falling back to
// the configured default.
func (d *Dispatcher) muteFor(details map[string]any) time.Duration {
	if details != nil {
		if duration, ok := details["duration"].(time.Duration); ok && duration > 0 {
			return duration
		}

		if text, ok := details["duration"].(string); ok {
			if duration, err := time.ParseDuration(text); err == nil && duration > 0 {
				return duration
			}
		}
	}

	return d.muteDuration
}

// shiftRole moves an actor's role one step, bounded to user..admin.
func (d *Dispatcher) shiftRole(ctx context.Context, actorID uint64, step int, now time.Time) error {
	actor, err := d.actors.Get(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load actor: %w", err)
	}

	next := enum.Role(int(actor.Role) + step)
	if next < enum.RoleUser || next > enum.RoleAdmin {
		return fmt.Errorf("%w: %s cannot move %+d", ErrRoleBound, actor.Role, step)
	}

	return d.actors.SetRole(ctx, actorID, next, now)
}
