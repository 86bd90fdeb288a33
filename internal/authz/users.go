package authz

import (
	"github.com/shiomura/team-task-api/internal/models"
)

// CanManageUsers reports whether the actor may list, approve, reject, or
// otherwise administer user accounts.
func CanManageUsers(actor *models.User) bool {
	return actor.Role == models.RoleSuperAdmin && actor.IsActive()
}

// CanDeleteUser reports whether the actor may delete the target account.
// Self-deletion is always denied, and a super admin account can never be
// deleted through this path, no override.
func CanDeleteUser(actor, target *models.User) bool {
	if !CanManageUsers(actor) {
		return false
	}
	if actor.ID == target.ID {
		return false
	}
	if target.Role == models.RoleSuperAdmin {
		return false
	}
	return true
}

// CanChangeUserRole reports whether the actor may change the target's role.
// Self-role-change is always denied regardless of rank.
func CanChangeUserRole(actor, target *models.User) bool {
	if !CanManageUsers(actor) {
		return false
	}
	return actor.ID != target.ID
}

// CanRejectUser reports whether the target is in a rejectable state:
// still pending approval with the pending role.
func CanRejectUser(target *models.User) bool {
	return target.Status == models.UserStatusPendingApproval && target.Role == models.RolePending
}
