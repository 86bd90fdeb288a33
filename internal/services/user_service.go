package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shiomura/team-task-api/internal/authz"
	"github.com/shiomura/team-task-api/internal/mailer"
	"github.com/shiomura/team-task-api/internal/models"
	"github.com/shiomura/team-task-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles user administration: approval, rejection, role changes,
// and deletion. Every operation is gated on the super admin role.
type UserService struct {
	userRepo     repository.UserRepository
	mailer       *mailer.Mailer
	adminContact string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, m *mailer.Mailer, adminContact string) *UserService {
	return &UserService{
		userRepo:     userRepo,
		mailer:       m,
		adminContact: adminContact,
	}
}

// ListUsersInput represents filters for listing users.
type ListUsersInput struct {
	ActorID  uint64
	Status   *models.UserStatus
	Role     *models.Role
	Page     int
	PageSize int
}

// ListUsers returns all users. Super admin only.
func (s *UserService) ListUsers(input ListUsersInput) ([]models.User, int64, error) {
	actor, err := s.loadUser(input.ActorID)
	if err != nil {
		return nil, 0, err
	}
	if !authz.CanManageUsers(actor) {
		return nil, 0, forbiddenf("only super admins can list users")
	}

	users, total, err := s.userRepo.List(repository.UserFilter{
		Status:   input.Status,
		Role:     input.Role,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// ListPendingUsers returns users awaiting approval. Super admin only.
func (s *UserService) ListPendingUsers(actorID uint64, page, pageSize int) ([]models.User, int64, error) {
	status := models.UserStatusPendingApproval
	return s.ListUsers(ListUsersInput{
		ActorID:  actorID,
		Status:   &status,
		Page:     page,
		PageSize: pageSize,
	})
}

// ApproveUserInput represents an approval decision.
type ApproveUserInput struct {
	ActorID      uint64
	TargetID     uint64
	Role         models.Role
	SupervisorID *uint64
	ManagerID    *uint64
}

// ApproveUser moves a pending user to active with the given role. Members
// must be placed under both a supervisor and a manager; supervisors under a
// manager. All violated fields are reported together, never silently
// defaulted.
func (s *UserService) ApproveUser(input ApproveUserInput) (*models.User, error) {
	actor, err := s.loadUser(input.ActorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageUsers(actor) {
		return nil, forbiddenf("only super admins can approve users")
	}

	target, err := s.loadUser(input.TargetID)
	if err != nil {
		return nil, err
	}

	fields := fieldErrors{}
	if !input.Role.IsApprovable() {
		fields.add("role", "role must be one of super_admin, manager, supervisor, member")
	}

	switch input.Role {
	case models.RoleMember:
		if input.SupervisorID == nil {
			fields.add("supervisor_id", "supervisor_id is required for members")
		} else if err := s.checkRef(*input.SupervisorID, models.RoleSupervisor, fields, "supervisor_id"); err != nil {
			return nil, err
		}
		if input.ManagerID == nil {
			fields.add("manager_id", "manager_id is required for members")
		} else if err := s.checkRef(*input.ManagerID, models.RoleManager, fields, "manager_id"); err != nil {
			return nil, err
		}
	case models.RoleSupervisor:
		if input.ManagerID == nil {
			fields.add("manager_id", "manager_id is required for supervisors")
		} else if err := s.checkRef(*input.ManagerID, models.RoleManager, fields, "manager_id"); err != nil {
			return nil, err
		}
	}

	if err := fields.err(); err != nil {
		return nil, err
	}

	now := time.Now()
	target.Role = input.Role
	target.Status = models.UserStatusActive
	target.ApprovedBy = &actor.ID
	target.ApprovedAt = &now

	switch input.Role {
	case models.RoleMember:
		target.SupervisorID = input.SupervisorID
		target.ManagerID = input.ManagerID
	case models.RoleSupervisor:
		target.SupervisorID = nil
		target.ManagerID = input.ManagerID
	default:
		target.SupervisorID = nil
		target.ManagerID = nil
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendApprovalEmail(target, input.Role, actor); err != nil {
			log.Printf("Failed to send approval email to %s: %v", target.Email, err)
		}
	}

	return target, nil
}

// RejectUser deletes a registration that is still pending approval. The
// record is not retained.
func (s *UserService) RejectUser(actorID, targetID uint64, reason string) error {
	actor, err := s.loadUser(actorID)
	if err != nil {
		return err
	}
	if !authz.CanManageUsers(actor) {
		return forbiddenf("only super admins can reject users")
	}

	target, err := s.loadUser(targetID)
	if err != nil {
		return err
	}

	if !authz.CanRejectUser(target) {
		return &ValidationError{Fields: map[string]string{
			"status": "only pending registrations can be rejected",
		}}
	}

	if err := s.userRepo.Delete(target.ID); err != nil {
		return fmt.Errorf("failed to delete rejected user: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendRejectionEmail(target, reason, s.adminContact); err != nil {
			log.Printf("Failed to send rejection email to %s: %v", target.Email, err)
		}
	}

	return nil
}

// DeleteUser permanently deletes a user account. Self-deletion and deletion
// of super admin accounts are always denied. Deletion is refused while any
// task references the target, so no dangling assignee or creator IDs are
// left behind.
func (s *UserService) DeleteUser(actorID, targetID uint64) error {
	actor, err := s.loadUser(actorID)
	if err != nil {
		return err
	}

	target, err := s.loadUser(targetID)
	if err != nil {
		return err
	}

	if !authz.CanDeleteUser(actor, target) {
		switch {
		case actor.ID == target.ID:
			return forbiddenf("you cannot delete your own account")
		case target.Role == models.RoleSuperAdmin:
			return forbiddenf("super admin accounts cannot be deleted")
		default:
			return forbiddenf("only super admins can delete users")
		}
	}

	if err := s.userRepo.Delete(target.ID); err != nil {
		if errors.Is(err, repository.ErrUserReferenced) {
			return ErrUserHasTasks
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ChangeUserRole changes the target's role. Self-role-change is always
// denied, even for super admins.
func (s *UserService) ChangeUserRole(actorID, targetID uint64, role models.Role) (*models.User, error) {
	actor, err := s.loadUser(actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.loadUser(targetID)
	if err != nil {
		return nil, err
	}

	if !authz.CanChangeUserRole(actor, target) {
		if actor.ID == target.ID {
			return nil, forbiddenf("you cannot change your own role")
		}
		return nil, forbiddenf("only super admins can change roles")
	}

	if !role.IsApprovable() {
		return nil, &ValidationError{Fields: map[string]string{
			"role": "role must be one of super_admin, manager, supervisor, member",
		}}
	}

	target.Role = role
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}

	return target, nil
}

// checkRef verifies a hierarchy reference points at an existing user with the
// expected role, recording a field error otherwise.
func (s *UserService) checkRef(id uint64, want models.Role, fields fieldErrors, field string) error {
	ref, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fields.add(field, fmt.Sprintf("%s does not reference an existing user", field))
			return nil
		}
		return fmt.Errorf("failed to verify %s: %w", field, err)
	}
	if ref.Role != want {
		fields.add(field, fmt.Sprintf("%s must reference a user with role %s", field, want))
	}
	return nil
}

func (s *UserService) loadUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
