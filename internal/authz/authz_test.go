package authz

import (
	"testing"

	"github.com/shiomura/team-task-api/internal/hierarchy"
	"github.com/shiomura/team-task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint64) *uint64 { return &v }

// Fixture tree, same shape throughout:
//
//	M1 (1) -> S1 (3) -> X (5)
//	M2 (2) -> S2 (4) -> Y (7)
//	Admin (8)
func testDirectory() hierarchy.Directory {
	return hierarchy.NewDirectory([]models.User{
		{ID: 1, Role: models.RoleManager, Status: models.UserStatusActive},
		{ID: 2, Role: models.RoleManager, Status: models.UserStatusActive},
		{ID: 3, Role: models.RoleSupervisor, Status: models.UserStatusActive, ManagerID: ptr(1)},
		{ID: 4, Role: models.RoleSupervisor, Status: models.UserStatusActive, ManagerID: ptr(2)},
		{ID: 5, Role: models.RoleMember, Status: models.UserStatusActive, SupervisorID: ptr(3), ManagerID: ptr(1)},
		{ID: 7, Role: models.RoleMember, Status: models.UserStatusActive, SupervisorID: ptr(4), ManagerID: ptr(2)},
		{ID: 8, Role: models.RoleSuperAdmin, Status: models.UserStatusActive},
	})
}

func taskFor(assignee, creator uint64) *models.Task {
	return &models.Task{ID: 100, AssigneeID: assignee, CreatedBy: creator}
}

func TestCanViewTask(t *testing.T) {
	d := testDirectory()

	tests := []struct {
		name     string
		actorID  uint64
		task     *models.Task
		allowed  bool
	}{
		{"super admin sees everything", 8, taskFor(7, 4), true},
		{"creator always sees own task", 4, taskFor(7, 4), true},
		{"manager sees team task", 1, taskFor(5, 3), true},
		{"manager blind to other team", 2, taskFor(5, 3), false},
		{"supervisor sees own assignment", 3, taskFor(3, 1), true},
		{"supervisor sees direct report's task", 3, taskFor(5, 1), true},
		{"supervisor blind to other team member", 4, taskFor(5, 1), false},
		{"member sees own assignment", 5, taskFor(5, 3), true},
		{"member blind to peer's task", 7, taskFor(5, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := d.User(tt.actorID)
			require.NotNil(t, actor)
			assert.Equal(t, tt.allowed, CanViewTask(actor, tt.task, d))
		})
	}
}

func TestCanEditTask(t *testing.T) {
	d := testDirectory()

	tests := []struct {
		name    string
		actorID uint64
		task    *models.Task
		allowed bool
	}{
		{"creator edits", 3, taskFor(5, 3), true},
		{"super admin edits", 8, taskFor(5, 3), true},
		{"manager edits team task", 1, taskFor(5, 3), true},
		{"manager cannot edit other team", 2, taskFor(5, 3), false},
		{"supervisor edits report's task", 3, taskFor(5, 1), true},
		{"supervisor-assignee edits own task", 3, taskFor(3, 1), true},
		{"member-assignee cannot edit", 5, taskFor(5, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := d.User(tt.actorID)
			require.NotNil(t, actor)
			assert.Equal(t, tt.allowed, CanEditTask(actor, tt.task, d))
		})
	}
}

func TestCanReassignTask(t *testing.T) {
	d := testDirectory()

	t.Run("manager reassigns within team", func(t *testing.T) {
		m1 := d.User(1)
		assert.True(t, CanReassignTask(m1, taskFor(5, 3), 3, d))
	})

	t.Run("manager reassigns to peer manager", func(t *testing.T) {
		// Cross-team reassignment through the deliberately broad
		// manager-to-manager assignability.
		m1 := d.User(1)
		assert.True(t, CanReassignTask(m1, taskFor(5, 3), 2, d))
	})

	t.Run("manager cannot reassign to foreign member", func(t *testing.T) {
		m1 := d.User(1)
		assert.False(t, CanReassignTask(m1, taskFor(5, 3), 7, d))
	})

	t.Run("supervisor creator reassigns within own members", func(t *testing.T) {
		s1 := d.User(3)
		assert.True(t, CanReassignTask(s1, taskFor(5, 3), 3, d))
	})

	t.Run("member cannot reassign", func(t *testing.T) {
		x := d.User(5)
		assert.False(t, CanReassignTask(x, taskFor(5, 5), 3, d))
	})
}

func TestCanUpdateTaskStatus(t *testing.T) {
	d := testDirectory()

	tests := []struct {
		name    string
		actorID uint64
		task    *models.Task
		allowed bool
	}{
		{"assignee updates own status", 5, taskFor(5, 3), true},
		{"creator updates status", 3, taskFor(5, 3), true},
		{"manager updates team status", 1, taskFor(5, 4), true},
		{"supervisor updates report status", 3, taskFor(5, 1), true},
		{"super admin updates any", 8, taskFor(7, 4), true},
		{"unrelated member denied", 7, taskFor(5, 3), false},
		{"other team supervisor denied", 4, taskFor(5, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := d.User(tt.actorID)
			require.NotNil(t, actor)
			assert.Equal(t, tt.allowed, CanUpdateTaskStatus(actor, tt.task, d))
		})
	}
}

func TestCanDeleteTask(t *testing.T) {
	d := testDirectory()

	t.Run("manager deletes team task created by supervisor", func(t *testing.T) {
		// Member X under M1/S1: M1 deletes a task assigned to X that S1
		// created. Team task, allowed.
		m1 := d.User(1)
		assert.True(t, CanDeleteTask(m1, taskFor(5, 3), d))
	})

	t.Run("supervisors never delete", func(t *testing.T) {
		s2 := d.User(4)
		for _, task := range []*models.Task{
			taskFor(7, 4), // own report, own creation
			taskFor(4, 4), // assigned to self, created by self
			taskFor(5, 1),
		} {
			assert.False(t, CanDeleteTask(s2, task, d))
		}
	})

	t.Run("manager deletes own creation outside team", func(t *testing.T) {
		m2 := d.User(2)
		assert.True(t, CanDeleteTask(m2, taskFor(5, 2), d))
	})

	t.Run("members never delete", func(t *testing.T) {
		x := d.User(5)
		assert.False(t, CanDeleteTask(x, taskFor(5, 5), d))
	})

	t.Run("super admin deletes any", func(t *testing.T) {
		admin := d.User(8)
		assert.True(t, CanDeleteTask(admin, taskFor(7, 4), d))
	})
}

func TestUserAdministration(t *testing.T) {
	admin := &models.User{ID: 8, Role: models.RoleSuperAdmin, Status: models.UserStatusActive}
	otherAdmin := &models.User{ID: 9, Role: models.RoleSuperAdmin, Status: models.UserStatusActive}
	manager := &models.User{ID: 1, Role: models.RoleManager, Status: models.UserStatusActive}
	member := &models.User{ID: 5, Role: models.RoleMember, Status: models.UserStatusActive}

	t.Run("only super admins manage users", func(t *testing.T) {
		assert.True(t, CanManageUsers(admin))
		assert.False(t, CanManageUsers(manager))
		assert.False(t, CanManageUsers(member))
	})

	t.Run("suspended super admin cannot manage", func(t *testing.T) {
		suspended := &models.User{ID: 11, Role: models.RoleSuperAdmin, Status: models.UserStatusSuspended}
		assert.False(t, CanManageUsers(suspended))
	})

	t.Run("super admin cannot delete super admin", func(t *testing.T) {
		assert.False(t, CanDeleteUser(admin, otherAdmin))
	})

	t.Run("self deletion always denied", func(t *testing.T) {
		assert.False(t, CanDeleteUser(admin, admin))
	})

	t.Run("super admin deletes regular user", func(t *testing.T) {
		assert.True(t, CanDeleteUser(admin, member))
	})

	t.Run("self role change always denied", func(t *testing.T) {
		assert.False(t, CanChangeUserRole(admin, admin))
	})

	t.Run("super admin changes other roles", func(t *testing.T) {
		assert.True(t, CanChangeUserRole(admin, manager))
		assert.True(t, CanChangeUserRole(admin, otherAdmin))
	})

	t.Run("rejection only for pending registrations", func(t *testing.T) {
		pending := &models.User{ID: 20, Role: models.RolePending, Status: models.UserStatusPendingApproval}
		assert.True(t, CanRejectUser(pending))
		assert.False(t, CanRejectUser(member))
		assert.False(t, CanRejectUser(&models.User{ID: 21, Role: models.RoleMember, Status: models.UserStatusPendingApproval}))
	})
}
