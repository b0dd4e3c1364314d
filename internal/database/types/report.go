package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/threadguard/threadguard/internal/database/types/enum"
)

// Report is a user-filed report against a comment. Duplicate filings by
// the same reporter on the same comment are rejected at the store
// boundary, never merged.
type Report struct {
	ID         uuid.UUID         `bun:",pk,type:uuid"` // Unique report identifier
	CommentID  uint64            `bun:",notnull"`      // Comment being reported
	AuthorID   uint64            `bun:",notnull"`      // Author of the comment at filing time
	ReporterID uint64            `bun:",notnull"`      // Actor who filed the report
	Reason     enum.ReportReason `bun:",notnull"`      // Why the comment was reported
	Status     enum.ReportStatus `bun:",notnull"`      // Current lifecycle state
	Priority   int               `bun:",notnull"`      // Queue priority derived from the reason
	Notes      string            `bun:",type:text"`    // Free-form reporter or reviewer notes
	ReviewerID uint64            `bun:",nullzero"`     // Moderator who last reviewed the report
	FiledAt    time.Time         `bun:",notnull"`      // When the report was filed
	UpdatedAt  time.Time         `bun:",notnull"`      // When the status last changed
}

// ReportCursor represents a pagination cursor for the pending queue.
type ReportCursor struct {
	Priority int
	FiledAt  time.Time
	ID       uuid.UUID
}

// Escalation reassigns a report to an equal-or-higher-privileged
// moderator. Rows are append-only; the newest row per report is the
// current assignment and older rows remain as history.
type Escalation struct {
	ID        uuid.UUID `bun:",pk,type:uuid"`      // Unique escalation identifier
	ReportID  uuid.UUID `bun:",notnull,type:uuid"` // Report being escalated
	FromID    uint64    `bun:",notnull"`           // Moderator handing the report off
	ToID      uint64    `bun:",notnull"`           // Moderator receiving the report
	Reason    string    `bun:",type:text"`         // Why the report was escalated
	CreatedAt time.Time `bun:",notnull"`           // When the escalation was created
}
