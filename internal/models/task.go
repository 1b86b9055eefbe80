package models

import "time"

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "New"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusRejected   TaskStatus = "Rejected"
)

// IsValidTaskStatus reports whether s is one of the defined task statuses.
func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted, TaskStatusRejected:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

// IsValidTaskPriority reports whether p is one of the defined priorities.
func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// Task is a unit of work assigned by the administrator to one staff member.
// Fan-out creation produces one Task per assignee; siblings share title and
// description but are independent rows. Deletes are hard deletes: submissions
// referencing a deleted task keep their dangling task_id.
type Task struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Priority     TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Status       TaskStatus   `gorm:"type:varchar(20);not null;default:'New'" json:"status"`
	AssigneeID   uint64       `gorm:"not null;index" json:"assignee_id"`
	AssigneeName string       `gorm:"type:varchar(255);not null" json:"assignee_name"`
	AssignedAt   time.Time    `json:"assigned_at"`
	DueDate      *time.Time   `json:"due_date"`
	CreatedBy    string       `gorm:"type:varchar(50);not null" json:"created_by"`
	AdminNote    string       `gorm:"type:text" json:"admin_note"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	Assignee User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
