// Package authz is the per-operation permission engine. Each check is the
// logical OR of its rule set; the first matching rule grants access and no
// rule ever vetoes a grant. Checks are pure over already-loaded records so
// they can be tested without a store.
package authz

import (
	"github.com/shiomura/team-task-api/internal/hierarchy"
	"github.com/shiomura/team-task-api/internal/models"
)

// CanViewTask reports whether the actor may read the task.
func CanViewTask(actor *models.User, task *models.Task, d hierarchy.Directory) bool {
	if actor.Role == models.RoleSuperAdmin {
		return true
	}
	if task.CreatedBy == actor.ID {
		return true
	}

	switch actor.Role {
	case models.RoleManager:
		return d.IsInManagerTeam(task.AssigneeID, actor.ID)
	case models.RoleSupervisor:
		if task.AssigneeID == actor.ID {
			return true
		}
		assignee := d.User(task.AssigneeID)
		return assignee != nil && assignee.SupervisorID != nil && *assignee.SupervisorID == actor.ID
	case models.RoleMember:
		return task.AssigneeID == actor.ID
	}

	return false
}

// CanCreateTask reports whether the actor may create a task for the given
// assignee.
func CanCreateTask(actor *models.User, assigneeID uint64, d hierarchy.Directory) bool {
	return actor.IsActive() && d.CanAssignTo(actor, assigneeID)
}

// CanEditTask reports whether the actor may change task fields other than
// status.
func CanEditTask(actor *models.User, task *models.Task, d hierarchy.Directory) bool {
	if task.CreatedBy == actor.ID {
		return true
	}
	if actor.Role == models.RoleSuperAdmin {
		return true
	}
	if actor.Role == models.RoleManager && d.IsInManagerTeam(task.AssigneeID, actor.ID) {
		return true
	}
	if actor.Role == models.RoleSupervisor {
		assignee := d.User(task.AssigneeID)
		if assignee != nil && assignee.SupervisorID != nil && *assignee.SupervisorID == actor.ID {
			return true
		}
	}
	// The current assignee may edit their own task, but only above member rank.
	if task.AssigneeID == actor.ID {
		switch actor.Role {
		case models.RoleSupervisor, models.RoleManager, models.RoleSuperAdmin:
			return true
		}
	}
	return false
}

// CanReassignTask reports whether the actor may change the task's assignee to
// newAssigneeID. Requires edit permission, a reassignment-capable standing,
// and the new assignee being in the actor's assignable set.
func CanReassignTask(actor *models.User, task *models.Task, newAssigneeID uint64, d hierarchy.Directory) bool {
	if !CanEditTask(actor, task, d) {
		return false
	}

	capable := false
	if task.CreatedBy == actor.ID {
		capable = true
	}
	if task.AssigneeID == actor.ID {
		switch actor.Role {
		case models.RoleSupervisor, models.RoleManager, models.RoleSuperAdmin:
			capable = true
		}
	}
	if actor.Role == models.RoleManager || actor.Role == models.RoleSuperAdmin {
		capable = true
	}
	if !capable {
		return false
	}

	return d.CanAssignTo(actor, newAssigneeID)
}

// CanUpdateTaskStatus reports whether the actor may change only the task's
// status.
func CanUpdateTaskStatus(actor *models.User, task *models.Task, d hierarchy.Directory) bool {
	if task.AssigneeID == actor.ID {
		return true
	}
	if task.CreatedBy == actor.ID {
		return true
	}
	if actor.Role == models.RoleSuperAdmin {
		return true
	}
	if actor.Role == models.RoleManager && d.IsInManagerTeam(task.AssigneeID, actor.ID) {
		return true
	}
	if actor.Role == models.RoleSupervisor {
		assignee := d.User(task.AssigneeID)
		if assignee != nil && assignee.SupervisorID != nil && *assignee.SupervisorID == actor.ID {
			return true
		}
	}
	return false
}

// CanDeleteTask reports whether the actor may delete the task. Supervisors
// and members never hold delete rights.
func CanDeleteTask(actor *models.User, task *models.Task, d hierarchy.Directory) bool {
	if actor.Role == models.RoleSuperAdmin {
		return true
	}
	if actor.Role == models.RoleManager {
		return task.CreatedBy == actor.ID || d.IsInManagerTeam(task.AssigneeID, actor.ID)
	}
	return false
}
