// Package hierarchy resolves team membership and assignability over the
// fixed-depth manager -> supervisor -> member tree. All functions are pure
// over an in-memory Directory snapshot; callers take fresh snapshots per
// decision, so concurrent hierarchy edits take effect on the next request.
package hierarchy

import (
	"github.com/shiomura/team-task-api/internal/models"
)

// Directory is a point-in-time snapshot of all user records, keyed by ID.
type Directory map[uint64]*models.User

// NewDirectory builds a Directory from a slice of users.
func NewDirectory(users []models.User) Directory {
	d := make(Directory, len(users))
	for i := range users {
		d[users[i].ID] = &users[i]
	}
	return d
}

// User returns the user with the given ID, or nil.
func (d Directory) User(id uint64) *models.User {
	return d[id]
}

// IsInManagerTeam reports whether the user belongs to the manager's team:
// either their manager link points at the manager directly, or they are a
// member whose supervisor's manager link points at the manager. This is a
// two-hop lookup, never a general traversal; the tree is fixed-depth.
func (d Directory) IsInManagerTeam(userID, managerID uint64) bool {
	u := d[userID]
	if u == nil {
		return false
	}

	if u.ManagerID != nil && *u.ManagerID == managerID {
		return true
	}

	if u.Role == models.RoleMember && u.SupervisorID != nil {
		if sup := d[*u.SupervisorID]; sup != nil {
			return sup.ManagerID != nil && *sup.ManagerID == managerID
		}
	}

	return false
}

// AssignableUsers returns the users the actor may set as a task assignee.
// Only active users are eligible targets. Assignability is deliberately a
// superset of the editable team: managers can reach every other manager so
// cross-team reassignment stays possible.
func (d Directory) AssignableUsers(actor *models.User) []*models.User {
	var out []*models.User

	switch actor.Role {
	case models.RoleSuperAdmin:
		for _, u := range d {
			if u.ID != actor.ID && u.IsActive() {
				out = append(out, u)
			}
		}

	case models.RoleManager:
		for _, u := range d {
			if !u.IsActive() {
				continue
			}
			switch u.Role {
			case models.RoleSupervisor, models.RoleMember:
				if d.IsInManagerTeam(u.ID, actor.ID) {
					out = append(out, u)
				}
			case models.RoleManager:
				if u.ID != actor.ID {
					out = append(out, u)
				}
			}
		}

	case models.RoleSupervisor:
		for _, u := range d {
			if !u.IsActive() {
				continue
			}
			if u.ID == actor.ID {
				out = append(out, u)
				continue
			}
			if u.Role == models.RoleMember && u.SupervisorID != nil && *u.SupervisorID == actor.ID {
				out = append(out, u)
			}
		}

	case models.RoleMember:
		if self := d[actor.ID]; self != nil && self.IsActive() {
			out = append(out, self)
		}
	}

	return out
}

// CanAssignTo reports whether the actor may assign a task to the given user.
func (d Directory) CanAssignTo(actor *models.User, assigneeID uint64) bool {
	for _, u := range d.AssignableUsers(actor) {
		if u.ID == assigneeID {
			return true
		}
	}
	return false
}
