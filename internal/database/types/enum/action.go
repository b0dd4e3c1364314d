package enum

// ActionType represents a moderation action recorded in the audit log.
//
//go:generate go tool enumer -type=ActionType -trimprefix=ActionType
type ActionType int

const (
	// ActionTypeDeleteComment removes a comment from public view.
	ActionTypeDeleteComment ActionType = iota
	// ActionTypeRestoreComment reverses a prior deletion.
	ActionTypeRestoreComment
	// ActionTypeLockThread prevents new replies under a comment.
	ActionTypeLockThread
	// ActionTypeUnlockThread reopens a locked thread.
	ActionTypeUnlockThread
	// ActionTypePinComment pins a comment to the top of its thread.
	ActionTypePinComment
	// ActionTypeUnpinComment removes a pin.
	ActionTypeUnpinComment
	// ActionTypeTagComment attaches a moderator tag to a comment.
	ActionTypeTagComment
	// ActionTypeUntagComment removes a moderator tag.
	ActionTypeUntagComment
	// ActionTypeWarnUser issues a formal warning to a user.
	ActionTypeWarnUser
	// ActionTypeMuteUser temporarily blocks a user from posting and voting.
	ActionTypeMuteUser
	// ActionTypeBanUser permanently blocks a user.
	ActionTypeBanUser
	// ActionTypeShadowBanUser hides a user's content from everyone but themselves.
	ActionTypeShadowBanUser
	// ActionTypeUnbanUser reverses a ban.
	ActionTypeUnbanUser
	// ActionTypeUnshadowBanUser reverses a shadow ban.
	ActionTypeUnshadowBanUser
	// ActionTypePromoteUser raises a user's role by one step.
	ActionTypePromoteUser
	// ActionTypeDemoteUser lowers a user's role by one step.
	ActionTypeDemoteUser
)

// TargetsUser returns true if the action mutates actor standing.
func (a ActionType) TargetsUser() bool {
	switch a {
	case ActionTypeWarnUser, ActionTypeMuteUser, ActionTypeBanUser, ActionTypeShadowBanUser,
		ActionTypeUnbanUser, ActionTypeUnshadowBanUser, ActionTypePromoteUser, ActionTypeDemoteUser:
		return true
	default:
		return false
	}
}

// TargetsComment returns true if the action mutates comment state.
func (a ActionType) TargetsComment() bool {
	switch a {
	case ActionTypeDeleteComment, ActionTypeRestoreComment, ActionTypeLockThread, ActionTypeUnlockThread,
		ActionTypePinComment, ActionTypeUnpinComment, ActionTypeTagComment, ActionTypeUntagComment:
		return true
	default:
		return false
	}
}

// AutoAction represents an automated consequence chosen by the rule evaluator.
//
//go:generate go tool enumer -type=AutoAction -trimprefix=AutoAction
type AutoAction int

const (
	// AutoActionFlag marks content for moderator attention without hiding it.
	AutoActionFlag AutoAction = iota
	// AutoActionWarn issues a warning to the author.
	AutoActionWarn
	// AutoActionHide hides content pending review.
	AutoActionHide
	// AutoActionDelete removes content outright.
	AutoActionDelete
	// AutoActionEscalate queues the decision for a human moderator.
	AutoActionEscalate
)
