package enum

// ReportStatus represents the lifecycle state of a user-filed report.
//
//go:generate go tool enumer -type=ReportStatus -trimprefix=ReportStatus
type ReportStatus int

const (
	// ReportStatusPending indicates a report waiting for moderator review.
	ReportStatusPending ReportStatus = iota
	// ReportStatusReviewed indicates a moderator has looked at the report but not closed it.
	ReportStatusReviewed
	// ReportStatusResolved indicates the report was closed with action taken.
	ReportStatusResolved
	// ReportStatusDismissed indicates the report was closed without action.
	ReportStatusDismissed
	// ReportStatusEscalated indicates the report is assigned to a higher-level moderator.
	ReportStatusEscalated
)

// Terminal returns true if the status closes the report.
// Escalated reports are not terminal since they can be reviewed again.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// ReportReason represents why a comment was reported.
//
//go:generate go tool enumer -type=ReportReason -trimprefix=ReportReason
type ReportReason int

const (
	// ReportReasonSpam flags unsolicited or repetitive content.
	ReportReasonSpam ReportReason = iota
	// ReportReasonOffensive flags offensive or hateful content.
	ReportReasonOffensive
	// ReportReasonHarassment flags targeted harassment of another user.
	ReportReasonHarassment
	// ReportReasonSpoiler flags unmarked spoilers.
	ReportReasonSpoiler
	// ReportReasonNsfw flags adult content outside designated areas.
	ReportReasonNsfw
	// ReportReasonOffTopic flags content unrelated to the thread.
	ReportReasonOffTopic
	// ReportReasonOther covers anything without a dedicated reason.
	ReportReasonOther
)

// Priority returns the intrinsic queue priority for the reason.
// Higher values are reviewed first; the value never changes report status.
func (r ReportReason) Priority() int {
	switch r {
	case ReportReasonHarassment:
		return 5
	case ReportReasonOffensive:
		return 4
	case ReportReasonSpam:
		return 3
	case ReportReasonSpoiler, ReportReasonNsfw:
		return 2
	case ReportReasonOffTopic, ReportReasonOther:
		return 1
	default:
		return 1
	}
}
