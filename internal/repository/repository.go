package repository

import (
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByLogin finds a user by login handle, case-insensitively
	FindByLogin(login string) (*models.User, error)

	// List returns all users ordered by ID
	List() ([]models.User, error)

	// Update saves the full user record
	Update(user *models.User) error

	// UpdateLastAccess stamps the last-access timestamp on a user row
	UpdateLastAccess(id uint64, at time.Time) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update saves the full task record
	Update(task *models.Task) error

	// Delete hard deletes a task. Submissions referencing it keep their
	// dangling task_id; there is no cascade.
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssigneeID *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	Pagination utils.PaginationParams
}

// SubmissionRepository defines the interface for labor submission data access
type SubmissionRepository interface {
	// Create creates a new submission
	Create(submission *models.Submission) error

	// FindByID finds a submission by its opaque identifier
	FindByID(id string) (*models.Submission, error)

	// List retrieves submissions with filtering and pagination
	List(filter SubmissionFilter) ([]models.Submission, int64, error)

	// ListAll returns every submission, used by the summary recompute
	ListAll() ([]models.Submission, error)

	// Update saves the full submission record
	Update(submission *models.Submission) error

	// Delete hard deletes a submission
	Delete(id string) error
}

// SubmissionFilter holds filtering options for listing submissions.
// DateFrom/DateTo compare against the ISO date column, inclusive.
type SubmissionFilter struct {
	OwnerID    *uint64
	TaskID     *uint64
	Status     *models.ValidationStatus
	DateFrom   *string
	DateTo     *string
	Pagination utils.PaginationParams
}

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	// Append adds one audit record
	Append(entry *models.AuditLog) error

	// List returns the most recent entries, newest first
	List(limit int) ([]models.AuditLog, error)
}

// SummaryRepository defines the interface for the derived per-user summary
type SummaryRepository interface {
	// Rewrite replaces the whole summary table with the given rows
	Rewrite(rows []models.UserSummary) error

	// List returns all summary rows ordered by owner ID
	List() ([]models.UserSummary, error)
}
