package enum

// VoteType represents the direction of a vote on a comment.
//
//go:generate go tool enumer -type=VoteType -trimprefix=VoteType
type VoteType int

const (
	VoteTypeUp VoteType = iota
	VoteTypeDown
)
