package enum

// RateAction represents an action category subject to per-window rate limits.
//
//go:generate go tool enumer -type=RateAction -trimprefix=RateAction
type RateAction int

const (
	// RateActionComment covers posting new comments.
	RateActionComment RateAction = iota
	// RateActionVote covers casting votes.
	RateActionVote
	// RateActionReport covers filing reports.
	RateActionReport
	// RateActionEdit covers editing existing comments.
	RateActionEdit
)
