package repository

import (
	"time"

	"github.com/shiomura/team-task-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return wrapStoreErr(r.db.Create(task).Error)
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	return &task, nil
}

// List retrieves tasks matching the filter, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Preload("Assignee").Preload("Creator").Find(&tasks).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return wrapStoreErr(r.db.Save(task).Error)
}

// UpdateStatus sets the task status inside a transaction. Transitioning into
// completed stamps CompletedDate; transitioning out clears it. Setting the
// status a task already has is a no-op, so repeated calls leave
// CompletedDate untouched.
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) (*models.Task, error) {
	var task models.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}

		if task.Status == status {
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       status,
			"last_updated": now,
		}
		if status == models.TaskStatusCompleted {
			updates["completed_date"] = now
		} else if task.Status == models.TaskStatusCompleted {
			updates["completed_date"] = nil
		}

		return tx.Model(&task).Updates(updates).Error
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &task, nil
}

// Delete permanently deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return wrapStoreErr(r.db.Delete(&models.Task{}, id).Error)
}

// CountReferencingUser counts tasks referencing the user as assignee or creator
func (r *GormTaskRepository) CountReferencingUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("assignee_id = ? OR created_by = ?", userID, userID).
		Count(&count).Error
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}
