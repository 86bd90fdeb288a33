package models

import (
	"time"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleMember     Role = "member"
	RolePending    Role = "pending"
)

// IsApprovable reports whether r is a real operational role. RolePending is
// never a valid approval target.
func (r Role) IsApprovable() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleSupervisor, RoleMember:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive          UserStatus = "active"
	UserStatusPendingApproval UserStatus = "pending_approval"
	UserStatusSuspended       UserStatus = "suspended"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'pending'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'pending_approval'" json:"status"`

	// Hierarchy links. A member reports to a supervisor and a manager, a
	// supervisor reports to a manager. Enforced at approval time, not at
	// the schema level.
	SupervisorID *uint64 `json:"supervisor_id"`
	ManagerID    *uint64 `json:"manager_id"`

	ApprovedBy *uint64    `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`

	ResetPasswordToken   *string    `gorm:"type:varchar(64);index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Manager    *User `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// IsActive reports whether the user is a fully-privileged actor. Role and
// status are independent axes; a suspended manager is still a manager, but
// not an actor.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
