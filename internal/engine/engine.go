package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database"
	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/engine/dispatch"
	"github.com/threadguard/threadguard/internal/engine/escalate"
	"github.com/threadguard/threadguard/internal/engine/ratelimit"
	"github.com/threadguard/threadguard/internal/engine/reports"
	"github.com/threadguard/threadguard/internal/engine/rules"
	"github.com/threadguard/threadguard/internal/engine/votes"
	"github.com/threadguard/threadguard/internal/redis"
	"github.com/threadguard/threadguard/internal/setup/config"
	"github.com/threadguard/threadguard/pkg/utils"
	"go.uber.org/zap"
)

// Engine bundles the moderation components behind one façade. Every
// entry point takes an explicit now so decisions are reproducible; the
// engine never reads the wall clock.
type Engine struct {
	limiter    *ratelimit.Limiter
	evaluator  *rules.Evaluator
	detector   *votes.Detector
	lifecycle  *reports.Lifecycle
	router     *escalate.Router
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger
}

// Options carries the collaborators the engine cannot build itself.
type Options struct {
	// RateStore counts aligned windows. Defaults to an in-memory store.
	RateStore ratelimit.Store
	// VoteHistory tracks rolling vote activity. Defaults to in-memory.
	VoteHistory votes.History
	// Comments applies comment-side moderation effects. Required.
	Comments dispatch.CommentStore
	// Notifier hears about dispatched actions. Optional.
	Notifier dispatch.Notifier
}

// New wires the engine against the database and the given collaborators.
func New(db database.Client, cfg *config.EngineConfig, opts Options, logger *zap.Logger) (*Engine, error) {
	if opts.Comments == nil {
		return nil, fmt.Errorf("engine requires a comment store")
	}

	repo := db.Model()

	rateStore := opts.RateStore
	if rateStore == nil {
		rateStore = ratelimit.NewMemStore()
	}

	voteHistory := opts.VoteHistory
	if voteHistory == nil {
		voteHistory = votes.NewMemHistory()
	}

	dispatcher := dispatch.NewDispatcher(
		repo.Actor(), opts.Comments, repo.Action(), opts.Notifier, &cfg.Dispatch, logger,
	)

	restriction := time.Duration(cfg.VoteAbuse.RestrictionHours) * time.Hour
	detector := votes.NewDetector(
		voteHistory, repo.Signal(),
		&votingRestrictor{dispatcher: dispatcher, duration: restriction},
		&cfg.VoteAbuse, logger,
	)

	locks := utils.NewKeyMutex[uuid.UUID]()
	lifecycle := reports.NewLifecycle(
		repo.Report(), &autoModerator{dispatcher: dispatcher}, locks, &cfg.Reports, logger,
	)
	router := escalate.NewRouter(
		repo.Report(), repo.Escalation(), repo.Actor(), locks, &cfg.Escalate, logger,
	)

	return &Engine{
		limiter:    ratelimit.NewLimiter(rateStore, repo.RateWindow(), &cfg.RateLimit, logger),
		evaluator:  rules.NewEvaluator(repo.Keyword(), repo.Rule(), logger),
		detector:   detector,
		lifecycle:  lifecycle,
		router:     router,
		dispatcher: dispatcher,
		logger:     logger.Named("engine"),
	}, nil
}

// NewWithRedis wires the engine with Redis-backed counter and vote
// history stores drawn from the connection manager, keeping the
// in-memory fallbacks for tests and single-node runs behind Options.
func NewWithRedis(
	db database.Client, rm *redis.Manager, cfg *config.EngineConfig,
	opts Options, logger *zap.Logger,
) (*Engine, error) {
	if opts.RateStore == nil {
		client, err := rm.GetClient(redis.RatelimitDBIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to get rate limit Redis client: %w", err)
		}

		windowSize := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		opts.RateStore = ratelimit.NewRedisStore(client, windowSize)
	}

	if opts.VoteHistory == nil {
		client, err := rm.GetClient(redis.VoteHistoryDBIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to get vote history Redis client: %w", err)
		}

		opts.VoteHistory = votes.NewRedisHistory(client)
	}

	return New(db, cfg, opts, logger)
}

// ReloadRules refreshes the evaluator's keyword and rule snapshot.
// Call once at startup and again whenever administrators change rules.
func (e *Engine) ReloadRules(ctx context.Context) error {
	return e.evaluator.Reload(ctx)
}

// CheckRate records an attempt against the actor's aligned window and
// reports whether the gated action may proceed. A denied decision
// carries ErrRateLimited; the attempt still counted.
func (e *Engine) CheckRate(
	ctx context.Context, actorID uint64, action enum.RateAction, now time.Time,
) (*ratelimit.Decision, error) {
	decision, err := e.limiter.Check(ctx, actorID, action, now)
	if err != nil {
		return decision, classify(err)
	}

	if !decision.Allowed {
		return decision, fmt.Errorf("%w: %s for actor %d, retry after %s",
			ErrRateLimited, action, actorID, decision.ResetAt.Format(time.RFC3339))
	}

	return decision, nil
}

// PeekRate reports the actor's standing without consuming an attempt.
func (e *Engine) PeekRate(
	ctx context.Context, actorID uint64, action enum.RateAction, now time.Time,
) (*ratelimit.Decision, error) {
	decision, err := e.limiter.Peek(ctx, actorID, action, now)
	if err != nil {
		return decision, classify(err)
	}

	return decision, nil
}

// EvaluateContent runs keyword and rule evaluation over content. The
// decision is advisory; the caller forwards consequences to Dispatch.
func (e *Engine) EvaluateContent(content string, evalCtx *rules.Context) *rules.Decision {
	return e.evaluator.Evaluate(content, evalCtx)
}

// RecordVote analyzes a vote for abuse patterns. Accepted votes may
// still carry signals; a self-vote is rejected with ErrValidation.
func (e *Engine) RecordVote(
	ctx context.Context, voterID, commentID, authorID uint64,
	voteType enum.VoteType, fingerprint string, now time.Time,
) (bool, []*types.AbuseSignal, error) {
	accepted, signals, err := e.detector.Record(ctx, voterID, commentID, authorID, voteType, fingerprint, now)

	return accepted, signals, classify(err)
}

// FileReport creates a pending report against a comment.
func (e *Engine) FileReport(
	ctx context.Context, commentID, authorID, reporterID uint64,
	reason enum.ReportReason, notes string, now time.Time,
) (*types.Report, error) {
	report, err := e.lifecycle.File(ctx, commentID, authorID, reporterID, reason, notes, now)

	return report, classify(err)
}

// ReviewReport applies an explicit moderator status transition.
func (e *Engine) ReviewReport(
	ctx context.Context, reportID uuid.UUID, moderatorID uint64,
	newStatus enum.ReportStatus, notes string, now time.Time,
) (*types.Report, error) {
	report, err := e.lifecycle.Review(ctx, reportID, moderatorID, newStatus, notes, now)

	return report, classify(err)
}

// ReportQueue returns a page of the pending review queue.
func (e *Engine) ReportQueue(
	ctx context.Context, cursor *types.ReportCursor, limit int,
) ([]*types.Report, *types.ReportCursor, error) {
	page, next, err := e.lifecycle.Queue(ctx, cursor, limit)

	return page, next, classify(err)
}

// Escalate reassigns a report to an equal-or-higher-privileged moderator.
func (e *Engine) Escalate(
	ctx context.Context, reportID uuid.UUID, fromID, toID uint64,
	reason string, now time.Time,
) (*types.Escalation, error) {
	escalation, err := e.router.Escalate(ctx, reportID, fromID, toID, reason, now)

	return escalation, classify(err)
}

// Dispatch applies a moderation action and appends its audit record.
func (e *Engine) Dispatch(
	ctx context.Context, actionType enum.ActionType, moderatorID uint64,
	targetUserID, targetCommentID uint64, details map[string]any,
	reason string, now time.Time,
) (*types.ModerationAction, error) {
	action, err := e.dispatcher.Dispatch(
		ctx, actionType, moderatorID, targetUserID, targetCommentID, details, reason, now,
	)

	return action, classify(err)
}

// votingRestrictor forwards detector decisions to the dispatcher as a
// temporary mute issued by the system moderator.
type votingRestrictor struct {
	dispatcher *dispatch.Dispatcher
	duration   time.Duration
}

func (r *votingRestrictor) RestrictVoting(ctx context.Context, actorID uint64, reason string, now time.Time) error {
	details := map[string]any{"duration": r.duration}

	_, err := r.dispatcher.Dispatch(
		ctx, enum.ActionTypeMuteUser, types.SystemModeratorID, actorID, 0, details, reason, now,
	)

	return err
}

// autoModerator forwards report accumulation consequences to the
// dispatcher under the system moderator identity.
type autoModerator struct {
	dispatcher *dispatch.Dispatcher
}

func (a *autoModerator) AutoAct(
	ctx context.Context, actionType enum.ActionType,
	targetUserID, targetCommentID uint64, reason string, now time.Time,
) error {
	details := map[string]any{"commentId": targetCommentID}

	_, err := a.dispatcher.Dispatch(
		ctx, actionType, types.SystemModeratorID, targetUserID, 0, details, reason, now,
	)

	return err
}
