package dto

import (
	"time"

	"github.com/shiomura/team-task-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	AssigneeID    uint64              `json:"assignee_id"`
	CreatedBy     uint64              `json:"created_by"`
	AssignedDate  time.Time           `json:"assigned_date"`
	TargetDate    time.Time           `json:"target_date"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	Tags          []string            `json:"tags"`
	CompletedDate *time.Time          `json:"completed_date"`
	LastUpdated   time.Time           `json:"last_updated"`
	CreatedAt     time.Time           `json:"created_at"`
	Assignee      *UserRefDTO         `json:"assignee,omitempty"`
	Creator       *UserRefDTO         `json:"creator,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		AssigneeID:    task.AssigneeID,
		CreatedBy:     task.CreatedBy,
		AssignedDate:  task.AssignedDate,
		TargetDate:    task.TargetDate,
		Status:        task.Status,
		Priority:      task.Priority,
		Tags:          task.Tags,
		CompletedDate: task.CompletedDate,
		LastUpdated:   task.LastUpdated,
		CreatedAt:     task.CreatedAt,
	}

	// Include relations if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserRefDTO(*task.Assignee)
		dto.Assignee = &assignee
	}
	if task.Creator != nil && task.Creator.ID != 0 {
		creator := ToUserRefDTO(*task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, limit int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}
}
