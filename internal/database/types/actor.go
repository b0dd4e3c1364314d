package types

import (
	"time"

	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// Actor represents a platform user's current moderation standing.
// Standing fields are mutated only through the action dispatcher so that
// every change has a matching audit record.
type Actor struct {
	ID           uint64    `bun:",pk"`       // Platform user ID
	Role         enum.Role `bun:",notnull"`  // Privilege level, total order for escalation checks
	Banned       bool      `bun:",notnull"`  // Permanently blocked from the platform
	ShadowBanned bool      `bun:",notnull"`  // Content visible only to the actor themselves
	MutedUntil   time.Time `bun:",nullzero"` // Posting/voting blocked until this time (zero when not muted)
	CreatedAt    time.Time `bun:",notnull"`  // When the account was created
	UpdatedAt    time.Time `bun:",notnull"`  // When standing last changed
}

// Muted returns true if the actor is muted at the given time.
func (a *Actor) Muted(now time.Time) bool {
	return now.Before(a.MutedUntil)
}

// AccountAge returns how old the account is at the given time.
func (a *Actor) AccountAge(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}
