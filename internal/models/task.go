package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not-started"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether p is a known task priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task deletion is permanent; no soft-delete column.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	AssigneeID  uint64       `gorm:"not null;index" json:"assignee_id"`
	CreatedBy   uint64       `gorm:"not null;index" json:"created_by"`
	AssignedDate time.Time   `json:"assigned_date"`
	TargetDate  time.Time    `gorm:"not null" json:"target_date"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Tags        []string     `gorm:"serializer:json" json:"tags"`

	// CompletedDate is set exactly when Status transitions into completed
	// and cleared when it transitions out.
	CompletedDate *time.Time `json:"completed_date"`
	LastUpdated   time.Time  `gorm:"autoUpdateTime" json:"last_updated"`
	CreatedAt     time.Time  `json:"created_at"`

	// Relations
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator  *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
