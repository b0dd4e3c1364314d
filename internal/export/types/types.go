package types

// AuditRecord is one flattened moderation action in an export file.
type AuditRecord struct {
	ID              string
	ActionType      string
	ModeratorID     uint64
	TargetUserID    uint64
	TargetCommentID uint64
	Reason          string
	Details         string
	CreatedAt       string
}
