package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiomura/team-task-api/internal/database"
	"github.com/shiomura/team-task-api/internal/models"
	"github.com/shiomura/team-task-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	return wrapStoreErr(r.db.Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &user, nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &user, nil
}

// FindByResetToken finds a user by their password reset token
func (r *GormUserRepository) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("reset_password_token = ?", token).First(&user).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	return wrapStoreErr(r.db.Save(user).Error)
}

// List retrieves users with filtering and pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	listQuery := query.Order("created_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var users []models.User
	if err := listQuery.Find(&users).Error; err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	return users, total, nil
}

// ListAll retrieves every user record
func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return users, nil
}

// Delete permanently deletes a user unless tasks still reference them.
// The reference count and the delete run in the same transaction.
func (r *GormUserRepository) Delete(id uint64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Task{}).
			Where("assignee_id = ? OR created_by = ?", id, id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: %d task(s)", ErrUserReferenced, refs)
		}

		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserReferenced) {
			return err
		}
		return wrapStoreErr(err)
	}
	return nil
}
