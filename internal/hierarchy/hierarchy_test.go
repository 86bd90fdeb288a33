package hierarchy

import (
	"testing"

	"github.com/shiomura/team-task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint64) *uint64 { return &v }

// buildFixture returns a directory with two manager trees:
//
//	M1 (1) -> S1 (3) -> X (5)
//	       -> D (6, member reporting directly to M1)
//	M2 (2) -> S2 (4) -> Y (7)
//
// plus a super admin (8), a pending user (9), and a suspended member (10)
// under S1.
func buildFixture() Directory {
	return NewDirectory([]models.User{
		{ID: 1, Name: "M1", Role: models.RoleManager, Status: models.UserStatusActive},
		{ID: 2, Name: "M2", Role: models.RoleManager, Status: models.UserStatusActive},
		{ID: 3, Name: "S1", Role: models.RoleSupervisor, Status: models.UserStatusActive, ManagerID: ptr(1)},
		{ID: 4, Name: "S2", Role: models.RoleSupervisor, Status: models.UserStatusActive, ManagerID: ptr(2)},
		{ID: 5, Name: "X", Role: models.RoleMember, Status: models.UserStatusActive, SupervisorID: ptr(3), ManagerID: ptr(1)},
		{ID: 6, Name: "D", Role: models.RoleMember, Status: models.UserStatusActive, ManagerID: ptr(1)},
		{ID: 7, Name: "Y", Role: models.RoleMember, Status: models.UserStatusActive, SupervisorID: ptr(4), ManagerID: ptr(2)},
		{ID: 8, Name: "Admin", Role: models.RoleSuperAdmin, Status: models.UserStatusActive},
		{ID: 9, Name: "P", Role: models.RolePending, Status: models.UserStatusPendingApproval},
		{ID: 10, Name: "Z", Role: models.RoleMember, Status: models.UserStatusSuspended, SupervisorID: ptr(3), ManagerID: ptr(1)},
	})
}

func TestIsInManagerTeam(t *testing.T) {
	d := buildFixture()

	tests := []struct {
		name      string
		userID    uint64
		managerID uint64
		want      bool
	}{
		{"direct manager link", 6, 1, true},
		{"member via supervisor hop", 5, 1, true},
		{"supervisor under manager", 3, 1, true},
		{"wrong manager", 5, 2, false},
		{"other team supervisor", 4, 1, false},
		{"manager is not in own team", 1, 1, false},
		{"unknown user", 999, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsInManagerTeam(tt.userID, tt.managerID))
		})
	}
}

// Member whose supervisor link survives but whose own manager link was
// cleared still counts as team via the supervisor hop.
func TestIsInManagerTeam_SupervisorHopOnly(t *testing.T) {
	d := NewDirectory([]models.User{
		{ID: 1, Role: models.RoleManager, Status: models.UserStatusActive},
		{ID: 3, Role: models.RoleSupervisor, Status: models.UserStatusActive, ManagerID: ptr(1)},
		{ID: 5, Role: models.RoleMember, Status: models.UserStatusActive, SupervisorID: ptr(3)},
	})

	assert.True(t, d.IsInManagerTeam(5, 1))
}

func ids(users []*models.User) []uint64 {
	out := make([]uint64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestAssignableUsers_SuperAdmin(t *testing.T) {
	d := buildFixture()
	admin := d.User(8)
	require.NotNil(t, admin)

	got := ids(d.AssignableUsers(admin))

	// Every active user except self. Pending and suspended users excluded.
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4, 5, 6, 7}, got)
}

func TestAssignableUsers_Manager(t *testing.T) {
	d := buildFixture()
	m1 := d.User(1)
	require.NotNil(t, m1)

	got := ids(d.AssignableUsers(m1))

	// Own supervisors and members (direct and via supervisor) plus every
	// other manager. Never self, never the suspended member.
	assert.ElementsMatch(t, []uint64{2, 3, 5, 6}, got)
	assert.NotContains(t, got, uint64(1))
	assert.NotContains(t, got, uint64(10))
}

func TestAssignableUsers_Supervisor(t *testing.T) {
	d := buildFixture()
	s1 := d.User(3)
	require.NotNil(t, s1)

	got := ids(d.AssignableUsers(s1))

	// Self plus own active members only.
	assert.ElementsMatch(t, []uint64{3, 5}, got)
}

func TestAssignableUsers_Member(t *testing.T) {
	d := buildFixture()
	x := d.User(5)
	require.NotNil(t, x)

	assert.Equal(t, []uint64{5}, ids(d.AssignableUsers(x)))
}

func TestAssignableUsers_Pending(t *testing.T) {
	d := buildFixture()
	p := d.User(9)
	require.NotNil(t, p)

	assert.Empty(t, d.AssignableUsers(p))
}

// A member may only ever appear in the assignable set of a super admin,
// their own manager, their own supervisor, or themselves.
func TestMemberAssignabilityIsScoped(t *testing.T) {
	d := buildFixture()
	const memberX = uint64(5)

	for _, actorID := range []uint64{1, 2, 3, 4, 5, 6, 7, 8} {
		actor := d.User(actorID)
		require.NotNil(t, actor)

		visible := d.CanAssignTo(actor, memberX)
		switch actorID {
		case 8, 1, 3, 5: // super admin, own manager, own supervisor, self
			assert.True(t, visible, "actor %d should reach member X", actorID)
		default:
			assert.False(t, visible, "actor %d should not reach member X", actorID)
		}
	}
}
