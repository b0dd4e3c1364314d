package enum

// Role represents an actor's privilege level.
// The integer values form a total order used for escalation target checks.
//
//go:generate go tool enumer -type=Role -trimprefix=Role
type Role int

const (
	// RoleUser is a regular platform user with no moderation privileges.
	RoleUser Role = iota
	// RoleModerator can review reports and act on comments.
	RoleModerator
	// RoleAdmin can act on users and manage moderators.
	RoleAdmin
	// RoleSuperAdmin is the highest privilege level, assigned out of band.
	RoleSuperAdmin
)

// AtLeast returns true if the role is equal to or above the other role.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}
