package enum

// SignalType represents a detected voting abuse pattern.
//
//go:generate go tool enumer -type=SignalType -trimprefix=SignalType
type SignalType int

const (
	// SignalTypeRapidVoting indicates a voter exceeding the rolling-window vote threshold.
	SignalTypeRapidVoting SignalType = iota
	// SignalTypeBrigading indicates correlated voters piling onto one comment.
	SignalTypeBrigading
	// SignalTypeSelfVoteManipulation indicates repeated attempts to vote on own content.
	SignalTypeSelfVoteManipulation
)
