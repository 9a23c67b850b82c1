// Package authz decides whether a role may perform a workflow action on a
// lead. Decisions are pure: the reporting-scope check is supplied by the
// caller as a predicate, so the gate itself never touches storage.
package authz

import (
	"github.com/acreflow/leadflow/pkg/domain/types"
)

// SubordinatePredicate reports whether the candidate user is inside the
// actor's reporting scope. Supplied by the directory service.
type SubordinatePredicate func(candidate types.UserID) bool

// CanAssign reports whether actorRole may make a fresh assignment of an
// unowned lead. System-initiated intake (no actor) is always permitted.
func CanAssign(actorRole types.Role, systemInitiated bool) bool {
	if systemInitiated {
		return true
	}
	return actorRole.Level() >= types.RoleTeamLeader.Level()
}

// CanForward reports whether actorRole may forward a lead to a user holding
// targetRole. Escalation goes to the immediate superior or straight to the
// super admin. Delegation requires team-leader rank or above, a strictly
// lower target role, and the target inside the actor's reporting scope.
func CanForward(actorRole, targetRole types.Role, target types.UserID, isSubordinate SubordinatePredicate) bool {
	if !actorRole.IsValid() || !targetRole.IsValid() {
		return false
	}

	// Escalation: one level up, or directly to the top.
	if superior, ok := actorRole.Superior(); ok {
		if targetRole == superior || targetRole == types.RoleSuperAdmin {
			return true
		}
	}

	// Delegation: downward within the actor's own scope.
	if actorRole.Level() >= types.RoleTeamLeader.Level() && actorRole.Above(targetRole) {
		return isSubordinate != nil && isSubordinate(target)
	}

	return false
}

// CanResolve reports whether the actor may complete, reject, or set work
// progress on the lead. Ownership of the tail entry is the engine's check;
// this confirms it redundantly so a gate bypass cannot widen access.
func CanResolve(actor types.UserID, tailOwner types.UserID) bool {
	return actor != "" && actor == tailOwner
}

// CanHideFollowUp reports whether the actor may hide a follow-up comment:
// head-admin and above, or the comment's original author.
func CanHideFollowUp(actorRole types.Role, actor types.UserID, author types.UserID) bool {
	if actorRole.Level() >= types.RoleHeadAdmin.Level() {
		return true
	}
	return actor != "" && actor == author
}

// CanReadHidden reports whether the role may request the full follow-up
// ledger including hidden entries.
func CanReadHidden(actorRole types.Role) bool {
	return actorRole.Level() >= types.RoleHeadAdmin.Level()
}
