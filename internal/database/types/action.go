package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// SystemModeratorID marks audit records produced by automated decisions
// rather than a human moderator.
const SystemModeratorID uint64 = 0

// ModerationAction is an immutable audit record of one applied
// moderation action. Rows are append-only and never mutated or deleted.
type ModerationAction struct {
	ID              uuid.UUID       `bun:",pk,type:uuid"` // Unique action identifier
	ActionType      enum.ActionType `bun:",notnull"`      // What was done
	ModeratorID     uint64          `bun:",nullzero"`     // Who did it (SystemModeratorID for automated actions)
	TargetUserID    uint64          `bun:",nullzero"`     // Affected user, if any
	TargetCommentID uint64          `bun:",nullzero"`     // Affected comment, if any
	Details         map[string]any  `bun:"type:jsonb"`    // Free-form structured context
	Reason          string          `bun:",type:text"`    // Why the action was taken
	CreatedAt       time.Time       `bun:",notnull"`      // When the action took effect
}

// System returns true if the action was taken by the engine itself.
func (a *ModerationAction) System() bool {
	return a.ModeratorID == SystemModeratorID
}

// ActionFilter provides filter criteria for reading the audit log.
// Zero values match everything.
type ActionFilter struct {
	ModeratorID     uint64
	TargetUserID    uint64
	TargetCommentID uint64
	ActionType      enum.ActionType
	HasActionType   bool // Distinguishes ActionType zero value from "no filter"
	StartDate       time.Time
	EndDate         time.Time
}

// ActionCursor represents a pagination cursor for audit log reads.
type ActionCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}
