package repository

import (
	"errors"
	"fmt"

	"github.com/shiomura/team-task-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrStoreUnavailable is returned when the underlying store fails for a
	// reason other than a missing record (timeout, connection loss).
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUserReferenced is returned when deleting a user that tasks still
	// reference as assignee or creator.
	ErrUserReferenced = errors.New("user is still referenced by tasks")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email. Lookup is case-insensitive; emails
	// are stored lowercased.
	FindByEmail(email string) (*models.User, error)

	// FindByResetToken finds a user by their password reset token
	FindByResetToken(token string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// List retrieves users with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// ListAll retrieves every user record
	ListAll() ([]models.User, error)

	// Delete permanently deletes a user. Fails with ErrUserReferenced when
	// tasks still reference the user; the check and the delete run in one
	// transaction.
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Status   *models.UserStatus
	Role     *models.Role
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateStatus sets the task status, applying the completed-date side
	// effect atomically with the status write. A no-op when the task is
	// already in the requested status.
	UpdateStatus(id uint64, status models.TaskStatus) (*models.Task, error)

	// Delete permanently deletes a task
	Delete(id uint64) error

	// CountReferencingUser counts tasks referencing the user as assignee or
	// creator
	CountReferencingUser(userID uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *uint64
	CreatedBy  *uint64
}

// wrapStoreErr normalizes store-layer failures to ErrStoreUnavailable while
// keeping gorm.ErrRecordNotFound distinguishable.
func wrapStoreErr(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
