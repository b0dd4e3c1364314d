package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/threadguard/threadguard/internal/database/types"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/setup/config"
	"go.uber.org/zap"
)

// ErrSelfVote is returned when an actor votes on their own comment.
// This is a validation failure, not an abuse signal.
var ErrSelfVote = errors.New("actors cannot vote on their own comments")

// SignalStore persists detected abuse signals.
type SignalStore interface {
	Insert(ctx context.Context, signal *types.AbuseSignal) error
}

// Restrictor applies a temporary voting restriction to an actor.
// The engine wires this to the action dispatcher.
type Restrictor interface {
	RestrictVoting(ctx context.Context, actorID uint64, reason string, now time.Time) error
}

// Detector analyzes the vote stream for abuse patterns. Detection never
// blocks the vote itself; only a self-vote is rejected outright.
type Detector struct {
	history    History
	signals    SignalStore
	restrictor Restrictor

	rapidThreshold int64
	rapidWindow    time.Duration
	brigadeVoters  int64
	brigadeWindow  time.Duration
	actionSeverity int

	logger *zap.Logger
}

// NewDetector creates a detector. A nil restrictor disables automatic
// voting restrictions; signals are still persisted.
func NewDetector(
	history History, signals SignalStore, restrictor Restrictor,
	cfg *config.VoteAbuse, logger *zap.Logger,
) *Detector {
	return &Detector{
		history:        history,
		signals:        signals,
		restrictor:     restrictor,
		rapidThreshold: cfg.RapidThreshold,
		rapidWindow:    time.Duration(cfg.RapidWindowMinutes) * time.Minute,
		brigadeVoters:  cfg.BrigadeVoters,
		brigadeWindow:  time.Duration(cfg.BrigadeWindowMinutes) * time.Minute,
		actionSeverity: cfg.ActionSeverity,
		logger:         logger.Named("votes"),
	}
}

// Record analyzes one vote. It returns whether the vote is accepted,
// plus any signals the vote triggered. Signals accompany an accepted
// vote; only self-votes are rejected.
func (d *Detector) Record(
	ctx context.Context, voterID, commentID, authorID uint64,
	voteType enum.VoteType, fingerprint string, now time.Time,
) (bool, []*types.AbuseSignal, error) {
	if voterID == authorID {
		signal := &types.AbuseSignal{
			SignalType:  enum.SignalTypeSelfVoteManipulation,
			ActorID:     voterID,
			CommentID:   commentID,
			Severity:    1,
			Fingerprint: fingerprint,
			DetectedAt:  now,
		}
		if err := d.signals.Insert(ctx, signal); err != nil {
			d.logger.Warn("Failed to persist self-vote signal",
				zap.Uint64("voterID", voterID), zap.Error(err))
		}

		return false, nil, fmt.Errorf("%w: voter %d on comment %d", ErrSelfVote, voterID, commentID)
	}

	var signals []*types.AbuseSignal

	count, err := d.history.AddVote(ctx, voterID, now, d.rapidWindow)
	if err != nil {
		return false, nil, fmt.Errorf("failed to track vote history: %w", err)
	}

	if count > d.rapidThreshold {
		signals = append(signals, &types.AbuseSignal{
			SignalType:  enum.SignalTypeRapidVoting,
			ActorID:     voterID,
			CommentID:   commentID,
			Severity:    scaleSeverity(count, d.rapidThreshold),
			Fingerprint: fingerprint,
			DetectedAt:  now,
		})
	}

	if d.brigadeVoters > 0 && fingerprint != "" {
		distinct, err := d.history.AddCommentVoter(ctx, commentID, voterID, fingerprint, now, d.brigadeWindow)
		if err != nil {
			return false, nil, fmt.Errorf("failed to track comment voters: %w", err)
		}

		if distinct > d.brigadeVoters {
			signals = append(signals, &types.AbuseSignal{
				SignalType:  enum.SignalTypeBrigading,
				ActorID:     voterID,
				CommentID:   commentID,
				Severity:    scaleSeverity(distinct, d.brigadeVoters),
				Fingerprint: fingerprint,
				DetectedAt:  now,
			})
		}
	}

	for _, signal := range signals {
		if err := d.signals.Insert(ctx, signal); err != nil {
			return true, signals, fmt.Errorf("failed to persist abuse signal: %w", err)
		}

		d.logger.Info("Detected vote abuse",
			zap.String("signalType", signal.SignalType.String()),
			zap.Uint64("actorID", signal.ActorID),
			zap.Uint64("commentID", signal.CommentID),
			zap.String("voteType", voteType.String()),
			zap.Int("severity", signal.Severity))

		if d.restrictor != nil && signal.Severity >= d.actionSeverity {
			reason := fmt.Sprintf("automated voting restriction: %s severity %d",
				signal.SignalType, signal.Severity)
			if err := d.restrictor.RestrictVoting(ctx, voterID, reason, now); err != nil {
				return true, signals, fmt.Errorf("failed to apply voting restriction: %w", err)
			}
		}
	}

	return true, signals, nil
}

// scaleSeverity grows severity with how far past the threshold the
// count is, capped at 5.
func scaleSeverity(count, threshold int64) int {
	severity := 1 + (count-threshold)/threshold
	if severity > 5 {
		severity = 5
	}

	return int(severity)
}
