package types

import (
	"time"

	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// RuleConditions holds the threshold predicates of an automation rule.
// A zero value means the condition is unset and always passes.
type RuleConditions struct {
	// MaxAccountAgeDays matches actors whose account is at most this many days old.
	MaxAccountAgeDays int `json:"maxAccountAgeDays,omitempty"`
	// MinRecentComments matches actors with at least this many comments in the recent window.
	MinRecentComments int `json:"minRecentComments,omitempty"`
	// MinRecentReports matches actors with at least this many reports filed against them recently.
	MinRecentReports int `json:"minRecentReports,omitempty"`
}

// Rule is a named automation rule evaluated against content events.
// Rules are immutable during an evaluation; administrators change them
// between evaluations and the evaluator reloads its snapshot.
type Rule struct {
	ID         uint64            `bun:",pk,autoincrement"`  // Unique numeric identifier
	Name       string            `bun:",notnull,unique"`    // Human-readable rule name
	Enabled    bool              `bun:",notnull"`           // Disabled rules are skipped entirely
	Conditions RuleConditions    `bun:"type:jsonb,notnull"` // Threshold predicates over the event context
	Actions    []enum.AutoAction `bun:"type:jsonb,notnull"` // Ordered actions applied when conditions hold
	CreatedAt  time.Time         `bun:",notnull"`           // When the rule was created
	UpdatedAt  time.Time         `bun:",notnull"`           // When the rule last changed
}

// Keyword is a banned phrase with a severity and a triggered action.
// The phrase is stored in normalized form and matched case-insensitively;
// one row exists per phrase.
type Keyword struct {
	ID        uint64          `bun:",pk,autoincrement"` // Unique numeric identifier
	Phrase    string          `bun:",notnull,unique"`   // Normalized phrase text
	Severity  int             `bun:",notnull"`          // Signal strength 1-5
	Action    enum.AutoAction `bun:",notnull"`          // Action triggered on match (flag/hide/delete/warn)
	Enabled   bool            `bun:",notnull"`          // Disabled keywords are skipped
	CreatedAt time.Time       `bun:",notnull"`          // When the keyword was added
}
