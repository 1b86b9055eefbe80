package dto

import (
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Priority     models.TaskPriority `json:"priority"`
	Status       models.TaskStatus   `json:"status"`
	AssigneeID   uint64              `json:"assignee_id"`
	AssigneeName string              `json:"assignee_name"`
	AssignedAt   time.Time           `json:"assigned_at"`
	DueDate      *time.Time          `json:"due_date"`
	CreatedBy    string              `json:"created_by"`
	AdminNote    string              `json:"admin_note,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CreateTasksResponse reports a fan-out creation: the sibling tasks that were
// created plus the assignee IDs that were skipped.
type CreateTasksResponse struct {
	Tasks   []TaskDTO `json:"tasks"`
	Skipped []uint64  `json:"skipped_assignee_ids,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Priority:     task.Priority,
		Status:       task.Status,
		AssigneeID:   task.AssigneeID,
		AssigneeName: task.AssigneeName,
		AssignedAt:   task.AssignedAt,
		DueDate:      task.DueDate,
		CreatedBy:    task.CreatedBy,
		AdminNote:    task.AdminNote,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
