package dto

import (
	"time"

	"github.com/shiomura/team-task-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         models.Role       `json:"role"`
	Status       models.UserStatus `json:"status"`
	SupervisorID *uint64           `json:"supervisor_id,omitempty"`
	ManagerID    *uint64           `json:"manager_id,omitempty"`
	ApprovedBy   *uint64           `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time        `json:"approved_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// UserRefDTO is the minimal user shape embedded in task responses
type UserRefDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		SupervisorID: user.SupervisorID,
		ManagerID:    user.ManagerID,
		ApprovedBy:   user.ApprovedBy,
		ApprovedAt:   user.ApprovedAt,
		CreatedAt:    user.CreatedAt,
	}
}

// ToUserRefDTO converts a User model to its embedded reference shape
func ToUserRefDTO(user models.User) UserRefDTO {
	return UserRefDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, limit int, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	return UserListResponse{
		Users: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}
}
