package services

import (
	"testing"
	"time"

	"github.com/shiomura/team-task-api/internal/models"
	"github.com/shiomura/team-task-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService

	admin   *models.User
	admin2  *models.User
	manager *models.User
	sup     *models.User
	member  *models.User
	pending *models.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	suite.service = NewUserService(userRepo, nil, "admin@example.com")

	suite.admin = suite.createUser("admin", models.RoleSuperAdmin, models.UserStatusActive, nil, nil)
	suite.admin2 = suite.createUser("admin2", models.RoleSuperAdmin, models.UserStatusActive, nil, nil)
	suite.manager = suite.createUser("manager", models.RoleManager, models.UserStatusActive, nil, nil)
	suite.sup = suite.createUser("sup", models.RoleSupervisor, models.UserStatusActive, nil, &suite.manager.ID)
	suite.member = suite.createUser("member", models.RoleMember, models.UserStatusActive, &suite.sup.ID, &suite.manager.ID)
	suite.pending = suite.createUser("newbie", models.RolePending, models.UserStatusPendingApproval, nil, nil)
}

func (suite *UserServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserServiceTestSuite) createUser(name string, role models.Role, status models.UserStatus, supervisorID, managerID *uint64) *models.User {
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		Status:       status,
		SupervisorID: supervisorID,
		ManagerID:    managerID,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserServiceTestSuite) TestApproveUser_Member() {
	user, err := suite.service.ApproveUser(ApproveUserInput{
		ActorID:      suite.admin.ID,
		TargetID:     suite.pending.ID,
		Role:         models.RoleMember,
		SupervisorID: &suite.sup.ID,
		ManagerID:    &suite.manager.ID,
	})

	suite.Require().NoError(err)
	suite.Equal(models.RoleMember, user.Role)
	suite.Equal(models.UserStatusActive, user.Status)
	suite.Require().NotNil(user.SupervisorID)
	suite.Equal(suite.sup.ID, *user.SupervisorID)
	suite.Require().NotNil(user.ApprovedBy)
	suite.Equal(suite.admin.ID, *user.ApprovedBy)
	suite.NotNil(user.ApprovedAt)
}

func (suite *UserServiceTestSuite) TestApproveUser_MemberMissingBothPlacements() {
	// Approving as member without supervisor or manager must report both
	// fields at once.
	_, err := suite.service.ApproveUser(ApproveUserInput{
		ActorID:  suite.admin.ID,
		TargetID: suite.pending.ID,
		Role:     models.RoleMember,
	})

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Fields, "supervisor_id")
	suite.Contains(validationErr.Fields, "manager_id")
}

func (suite *UserServiceTestSuite) TestApproveUser_SupervisorRefWrongRole() {
	// A member placed under another member is rejected.
	_, err := suite.service.ApproveUser(ApproveUserInput{
		ActorID:      suite.admin.ID,
		TargetID:     suite.pending.ID,
		Role:         models.RoleMember,
		SupervisorID: &suite.member.ID,
		ManagerID:    &suite.manager.ID,
	})

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Fields, "supervisor_id")
}

func (suite *UserServiceTestSuite) TestApproveUser_NonAdminForbidden() {
	_, err := suite.service.ApproveUser(ApproveUserInput{
		ActorID:  suite.manager.ID,
		TargetID: suite.pending.ID,
		Role:     models.RoleManager,
	})

	suite.Require().ErrorIs(err, ErrForbidden)
}

func (suite *UserServiceTestSuite) TestRejectUser() {
	err := suite.service.RejectUser(suite.admin.ID, suite.pending.ID, "duplicate account")
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.User{}).Where("id = ?", suite.pending.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *UserServiceTestSuite) TestRejectUser_AlreadyActive() {
	err := suite.service.RejectUser(suite.admin.ID, suite.member.ID, "")

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Fields, "status")
}

func (suite *UserServiceTestSuite) TestDeleteUser() {
	err := suite.service.DeleteUser(suite.admin.ID, suite.member.ID)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.User{}).Where("id = ?", suite.member.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *UserServiceTestSuite) TestDeleteUser_WithTasksRefused() {
	task := &models.Task{
		Title:        "Open item",
		AssigneeID:   suite.member.ID,
		CreatedBy:    suite.sup.ID,
		AssignedDate: time.Now(),
		TargetDate:   time.Now().Add(24 * time.Hour),
		Status:       models.TaskStatusInProgress,
		Priority:     models.TaskPriorityHigh,
	}
	suite.Require().NoError(suite.db.Create(task).Error)

	err := suite.service.DeleteUser(suite.admin.ID, suite.member.ID)
	suite.Require().ErrorIs(err, ErrUserHasTasks)

	// The creator is referenced too.
	err = suite.service.DeleteUser(suite.admin.ID, suite.sup.ID)
	suite.Require().ErrorIs(err, ErrUserHasTasks)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SuperAdminTargetDenied() {
	// Even another super admin cannot delete a super admin account.
	err := suite.service.DeleteUser(suite.admin.ID, suite.admin2.ID)
	suite.Require().ErrorIs(err, ErrForbidden)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfDenied() {
	err := suite.service.DeleteUser(suite.manager.ID, suite.manager.ID)
	suite.Require().ErrorIs(err, ErrForbidden)
}

func (suite *UserServiceTestSuite) TestChangeUserRole() {
	user, err := suite.service.ChangeUserRole(suite.admin.ID, suite.member.ID, models.RoleSupervisor)
	suite.Require().NoError(err)
	suite.Equal(models.RoleSupervisor, user.Role)
}

func (suite *UserServiceTestSuite) TestChangeUserRole_SelfDenied() {
	_, err := suite.service.ChangeUserRole(suite.admin.ID, suite.admin.ID, models.RoleManager)
	suite.Require().ErrorIs(err, ErrForbidden)
}

func (suite *UserServiceTestSuite) TestChangeUserRole_InvalidRole() {
	_, err := suite.service.ChangeUserRole(suite.admin.ID, suite.member.ID, models.RolePending)

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Fields, "role")
}

func (suite *UserServiceTestSuite) TestListPendingUsers() {
	users, total, err := suite.service.ListPendingUsers(suite.admin.ID, 0, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(users, 1)
	suite.Equal(suite.pending.ID, users[0].ID)
}

func (suite *UserServiceTestSuite) TestListUsers_NonAdminForbidden() {
	_, _, err := suite.service.ListUsers(ListUsersInput{ActorID: suite.sup.ID})
	suite.Require().ErrorIs(err, ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
