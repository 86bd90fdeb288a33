package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shiomura/team-task-api/internal/authz"
	"github.com/shiomura/team-task-api/internal/hierarchy"
	"github.com/shiomura/team-task-api/internal/models"
	"github.com/shiomura/team-task-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles task business logic. Every authorization decision is
// made against a fresh Directory snapshot; there is no caching of hierarchy
// membership. The permission check and the subsequent write are not atomic
// against concurrent hierarchy edits, which is an accepted check-then-act
// window for this low-contention tooling. Status updates are the exception:
// their side effect runs inside the write transaction.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	ActorID  uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Page     int
	PageSize int
}

// ListTasks returns the tasks visible to the actor, filtered and paginated.
// Visibility is evaluated per task through the authorization engine.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	actor, d, err := s.actorAndDirectory(input.ActorID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.TaskFilter{
		Status:   input.Status,
		Priority: input.Priority,
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	visible := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if authz.CanViewTask(actor, &task, d) {
			visible = append(visible, task)
		}
	}

	total := int64(len(visible))
	if input.Page > 0 && input.PageSize > 0 {
		start := (input.Page - 1) * input.PageSize
		if start >= len(visible) {
			return []models.Task{}, total, nil
		}
		end := start + input.PageSize
		if end > len(visible) {
			end = len(visible)
		}
		visible = visible[start:end]
	}

	return visible, total, nil
}

// GetTask returns a task if the actor may view it.
func (s *TaskService) GetTask(actorID, taskID uint64) (*models.Task, error) {
	actor, d, err := s.actorAndDirectory(actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID, "Assignee", "Creator")
	if err != nil {
		return nil, err
	}

	if !authz.CanViewTask(actor, task, d) {
		return nil, forbiddenf("you do not have permission to view this task")
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ActorID     uint64
	Title       string
	Description string
	AssigneeID  uint64
	TargetDate  time.Time
	Status      models.TaskStatus
	Priority    models.TaskPriority
	Tags        []string
}

// CreateTask creates a task after validating the fields and the actor's
// right to assign to the chosen assignee.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	actor, d, err := s.actorAndDirectory(input.ActorID)
	if err != nil {
		return nil, err
	}

	fields := fieldErrors{}
	if input.Title == "" {
		fields.add("title", "title is required")
	}
	if input.AssigneeID == 0 {
		fields.add("assignee_id", "assignee_id is required")
	}
	if input.TargetDate.IsZero() {
		fields.add("target_date", "target_date is required")
	}
	if input.Status == "" {
		input.Status = models.TaskStatusNotStarted
	} else if !input.Status.IsValid() {
		fields.add("status", "status must be one of not-started, in-progress, completed")
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	} else if !input.Priority.IsValid() {
		fields.add("priority", "priority must be one of low, medium, high, urgent")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if !authz.CanCreateTask(actor, input.AssigneeID, d) {
		return nil, forbiddenf("you cannot assign tasks to this user")
	}

	now := time.Now()
	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		AssigneeID:   input.AssigneeID,
		CreatedBy:    actor.ID,
		AssignedDate: now,
		TargetDate:   input.TargetDate,
		Status:       input.Status,
		Priority:     input.Priority,
		Tags:         input.Tags,
	}
	if task.Status == models.TaskStatusCompleted {
		task.CompletedDate = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Creator")
}

// UpdateTaskInput represents input for updating task fields other than
// status. A non-nil AssigneeID is a reassignment and is checked separately.
type UpdateTaskInput struct {
	ActorID     uint64
	Title       *string
	Description *string
	AssigneeID  *uint64
	TargetDate  *time.Time
	Priority    *models.TaskPriority
	Tags        *[]string
}

// UpdateTask updates an existing task if the actor passes the edit check,
// and the reassignment check when the assignee changes.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	actor, d, err := s.actorAndDirectory(input.ActorID)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if !authz.CanEditTask(actor, task, d) {
		return nil, forbiddenf("you do not have permission to edit this task")
	}

	fields := fieldErrors{}
	if input.Title != nil {
		if *input.Title == "" {
			fields.add("title", "title cannot be empty")
		} else {
			task.Title = *input.Title
		}
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.TargetDate != nil {
		if input.TargetDate.IsZero() {
			fields.add("target_date", "target_date cannot be empty")
		} else {
			task.TargetDate = *input.TargetDate
		}
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			fields.add("priority", "priority must be one of low, medium, high, urgent")
		} else {
			task.Priority = *input.Priority
		}
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if input.AssigneeID != nil && *input.AssigneeID != task.AssigneeID {
		if !authz.CanReassignTask(actor, task, *input.AssigneeID, d) {
			return nil, forbiddenf("you cannot reassign this task to that user")
		}
		task.AssigneeID = *input.AssigneeID
		task.AssignedDate = time.Now()
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Creator")
}

// UpdateTaskStatus changes only the task's status. The completed-date side
// effect is applied atomically with the status write.
func (s *TaskService) UpdateTaskStatus(actorID, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.IsValid() {
		return nil, &ValidationError{Fields: map[string]string{
			"status": "status must be one of not-started, in-progress, completed",
		}}
	}

	actor, d, err := s.actorAndDirectory(actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if !authz.CanUpdateTaskStatus(actor, task, d) {
		return nil, forbiddenf("you do not have permission to update this task's status")
	}

	updated, err := s.taskRepo.UpdateStatus(task.ID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.taskRepo.FindByID(updated.ID, "Assignee", "Creator")
}

// DeleteTask permanently deletes a task if the actor passes the delete check.
func (s *TaskService) DeleteTask(actorID, taskID uint64) error {
	actor, d, err := s.actorAndDirectory(actorID)
	if err != nil {
		return err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if !authz.CanDeleteTask(actor, task, d) {
		return forbiddenf("you do not have permission to delete this task")
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListAssignableUsers returns the users the actor may assign tasks to,
// ordered by ID.
func (s *TaskService) ListAssignableUsers(actorID uint64) ([]models.User, error) {
	actor, d, err := s.actorAndDirectory(actorID)
	if err != nil {
		return nil, err
	}

	assignable := d.AssignableUsers(actor)
	sort.Slice(assignable, func(i, j int) bool {
		return assignable[i].ID < assignable[j].ID
	})

	out := make([]models.User, len(assignable))
	for i, u := range assignable {
		out[i] = *u
	}
	return out, nil
}

// actorAndDirectory loads the acting user and a fresh snapshot of all users.
func (s *TaskService) actorAndDirectory(actorID uint64) (*models.User, hierarchy.Directory, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load users: %w", err)
	}

	d := hierarchy.NewDirectory(users)
	actor := d.User(actorID)
	if actor == nil {
		return nil, nil, ErrUserNotFound
	}

	return actor, d, nil
}

func (s *TaskService) findTask(id uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
