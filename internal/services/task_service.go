package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskForbidden      = errors.New("user does not have permission to modify this task")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidPriority    = errors.New("priority must be High, Medium or Low")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
	ErrNoAssignees        = errors.New("at least one assignee is required")
	ErrNoTasksCreated     = errors.New("no assignee resolved to an active staff user")
	ErrStatusRollback     = errors.New("task is in a terminal state and rollback is disabled")
	ErrAssigneeNotStaff   = errors.New("assignee is not an active staff user")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	audit    *AuditService

	allowRollback bool
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, audit *AuditService, allowRollback bool) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		audit:         audit,
		allowRollback: allowRollback,
	}
}

// CreateTasksInput represents input for a fan-out task creation: one task is
// created per assignee, all sharing title, description, priority and due date.
type CreateTasksInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	AssigneeIDs []uint64
}

// CreateTasksResult reports the outcome of a fan-out creation. Skipped holds
// the assignee IDs that did not resolve to an active staff user; siblings
// already created for other assignees are kept, not rolled back.
type CreateTasksResult struct {
	Created []models.Task
	Skipped []uint64
}

// CreateTasks creates one task per assignee.
func (s *TaskService) CreateTasks(input CreateTasksInput, actor *models.User) (*CreateTasksResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrTaskForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.IsValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}
	if len(input.AssigneeIDs) == 0 {
		return nil, ErrNoAssignees
	}

	result := &CreateTasksResult{}
	now := time.Now()

	for _, assigneeID := range uniqueUint64(input.AssigneeIDs) {
		assignee, err := s.userRepo.FindByID(assigneeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Skipped = append(result.Skipped, assigneeID)
				continue
			}
			return nil, fmt.Errorf("failed to resolve assignee: %w", err)
		}
		if !assignee.Active || assignee.Role != models.RoleStaff {
			result.Skipped = append(result.Skipped, assigneeID)
			continue
		}

		task := models.Task{
			Title:        strings.TrimSpace(input.Title),
			Description:  input.Description,
			Priority:     input.Priority,
			Status:       models.TaskStatusNew,
			AssigneeID:   assignee.ID,
			AssigneeName: assignee.Name,
			AssignedAt:   now,
			DueDate:      input.DueDate,
			CreatedBy:    actor.Login,
		}
		if err := s.taskRepo.Create(&task); err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		result.Created = append(result.Created, task)
	}

	if len(result.Created) == 0 {
		return nil, ErrNoTasksCreated
	}

	s.audit.Recordf("create_tasks", actor.Login, "%q to %d assignee(s), %d skipped",
		input.Title, len(result.Created), len(result.Skipped))
	return result, nil
}

// SetStatus transitions a task. Staff may only transition tasks assigned to
// them; the administrator may transition any task. When rollback is disabled,
// tasks cannot leave Completed or Rejected.
func (s *TaskService) SetStatus(taskID uint64, status models.TaskStatus, actor *models.User) (*models.Task, error) {
	if !models.IsValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !actor.IsAdmin() && task.AssigneeID != actor.ID {
		return nil, ErrTaskForbidden
	}

	if !s.allowRollback && task.Status != status {
		if task.Status == models.TaskStatusCompleted || task.Status == models.TaskStatusRejected {
			return nil, ErrStatusRollback
		}
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.audit.Recordf("task_status", actor.Login, "task %d -> %s", task.ID, status)
	return task, nil
}

// UpdateTaskInput represents an administrator's full edit of a task. The
// identifier, current status and original assignment timestamp are preserved.
type UpdateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	AssigneeID  uint64
}

// UpdateTask replaces a task's editable fields, re-resolving the assignee.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, actor *models.User) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrTaskForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !models.IsValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignee, err := s.userRepo.FindByID(input.AssigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotStaff
		}
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}
	if !assignee.Active || assignee.Role != models.RoleStaff {
		return nil, ErrAssigneeNotStaff
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.Priority = input.Priority
	task.DueDate = input.DueDate
	task.AssigneeID = assignee.ID
	task.AssigneeName = assignee.Name

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.audit.Recordf("edit_task", actor.Login, "task %d", task.ID)
	return task, nil
}

// DeleteTask removes a task. Submissions referencing it keep their dangling
// task_id; there is no cascade.
func (s *TaskService) DeleteTask(taskID uint64, actor *models.User) error {
	if !actor.IsAdmin() {
		return ErrTaskForbidden
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.audit.Recordf("delete_task", actor.Login, "task %d", taskID)
	return nil
}

// Annotate sets the administrative note on a task.
func (s *TaskService) Annotate(taskID uint64, note string, actor *models.User) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrTaskForbidden
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.AdminNote = note
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.audit.Recordf("annotate_task", actor.Login, "task %d", task.ID)
	return task, nil
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks visible to the actor. Staff only ever see their
// own assignments regardless of the requested filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter, actor *models.User) ([]models.Task, int64, error) {
	if !actor.IsAdmin() {
		filter.AssigneeID = &actor.ID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
