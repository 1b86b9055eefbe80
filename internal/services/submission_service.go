package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrSubmissionForbidden = errors.New("user does not have permission to modify this submission")
	ErrSubmissionLocked    = errors.New("submission has been validated or rejected and can no longer be changed by its owner")
	ErrInvalidWorkType     = errors.New("work type is not in the catalog")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime         = errors.New("time must be in HH:MM or HH:MM:SS format")
	ErrTaskNotAssigned     = errors.New("linked task is not assigned to the submitter")
	ErrInvalidValidation   = errors.New("invalid validation status")
	ErrValidationRollback  = errors.New("submission validation is final and rollback is disabled")
)

// SubmissionService handles labor report business logic.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	taskRepo       repository.TaskRepository
	audit          *AuditService

	allowRollback bool
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(submissionRepo repository.SubmissionRepository, taskRepo repository.TaskRepository, audit *AuditService, allowRollback bool) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		taskRepo:       taskRepo,
		audit:          audit,
		allowRollback:  allowRollback,
	}
}

// CreateSubmissionInput represents input for filing a labor report.
type CreateSubmissionInput struct {
	TaskID   *uint64
	Date     string
	Time     string
	WorkType string
	Location string
	Notes    string
}

// CreateSubmission files a labor report for the actor. The validation status
// is always Pending regardless of input, and a linked task must be one of the
// actor's own assignments.
func (s *SubmissionService) CreateSubmission(input CreateSubmissionInput, actor *models.User) (*models.Submission, error) {
	if err := s.validateFields(input, actor.ID); err != nil {
		return nil, err
	}

	submission := &models.Submission{
		ID:               uuid.NewString(),
		TaskID:           input.TaskID,
		OwnerID:          actor.ID,
		OwnerName:        actor.Name,
		Date:             input.Date,
		Time:             input.Time,
		WorkType:         input.WorkType,
		Location:         input.Location,
		ResponsibleName:  actor.Name,
		Notes:            input.Notes,
		ValidationStatus: models.ValidationPending,
		CreatedBy:        actor.Login,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.audit.Recordf("create_submission", actor.Login, "%s (task:%v)", submission.ID, input.TaskID)
	return submission, nil
}

// UpdateSubmission edits a labor report. The owner may edit only while the
// report is Pending; the administrator may edit at any status. Identifier,
// creator and creation time are preserved; the edit is stamped.
func (s *SubmissionService) UpdateSubmission(id string, input CreateSubmissionInput, actor *models.User) (*models.Submission, error) {
	submission, err := s.findForWrite(id, actor)
	if err != nil {
		return nil, err
	}

	// the task link is checked against the report's owner, not the editor,
	// so an administrator edit cannot re-link to a task of someone else
	if err := s.validateFields(input, submission.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now()
	submission.TaskID = input.TaskID
	submission.Date = input.Date
	submission.Time = input.Time
	submission.WorkType = input.WorkType
	submission.Location = input.Location
	submission.Notes = input.Notes
	submission.EditedAt = &now
	submission.EditedBy = actor.Login

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	s.audit.Recordf("edit_submission", actor.Login, "%s", submission.ID)
	return submission, nil
}

// DeleteSubmission removes a labor report under the same permission rule as
// editing.
func (s *SubmissionService) DeleteSubmission(id string, actor *models.User) error {
	submission, err := s.findForWrite(id, actor)
	if err != nil {
		return err
	}

	if err := s.submissionRepo.Delete(submission.ID); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	s.audit.Recordf("delete_submission", actor.Login, "%s", submission.ID)
	return nil
}

// SetValidationInput represents an administrator's validation decision.
type SetValidationInput struct {
	Status    models.ValidationStatus
	AdminNote string
}

// SetValidation sets the validation status of a labor report. When rollback
// is disabled, a report that already left Pending cannot be moved again.
func (s *SubmissionService) SetValidation(id string, input SetValidationInput, actor *models.User) (*models.Submission, error) {
	if !actor.IsAdmin() {
		return nil, ErrSubmissionForbidden
	}
	if !models.IsValidValidationStatus(input.Status) {
		return nil, ErrInvalidValidation
	}

	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if !s.allowRollback &&
		submission.ValidationStatus != models.ValidationPending &&
		submission.ValidationStatus != input.Status {
		return nil, ErrValidationRollback
	}

	now := time.Now()
	submission.ValidationStatus = input.Status
	submission.AdminNote = input.AdminNote
	submission.EditedAt = &now
	submission.EditedBy = actor.Login

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	s.audit.Recordf("set_validation", actor.Login, "%s -> %s", submission.ID, input.Status)
	return submission, nil
}

// GetSubmission returns a labor report by identifier.
func (s *SubmissionService) GetSubmission(id string) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return submission, nil
}

// ListSubmissions returns labor reports visible to the actor. Staff only
// ever see their own reports regardless of the requested filter.
func (s *SubmissionService) ListSubmissions(filter repository.SubmissionFilter, actor *models.User) ([]models.Submission, int64, error) {
	if !actor.IsAdmin() {
		filter.OwnerID = &actor.ID
	}

	submissions, total, err := s.submissionRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}

// findForWrite loads a submission and applies the owner-while-pending /
// admin-any-status permission rule shared by edit and delete.
func (s *SubmissionService) findForWrite(id string, actor *models.User) (*models.Submission, error) {
	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if actor.IsAdmin() {
		return submission, nil
	}
	if submission.OwnerID != actor.ID {
		return nil, ErrSubmissionForbidden
	}
	if submission.ValidationStatus != models.ValidationPending {
		return nil, ErrSubmissionLocked
	}
	return submission, nil
}

func (s *SubmissionService) validateFields(input CreateSubmissionInput, ownerID uint64) error {
	if !constants.IsValidWorkType(input.WorkType) {
		return ErrInvalidWorkType
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return ErrInvalidDate
	}
	if !validClockTime(input.Time) {
		return ErrInvalidTime
	}

	if input.TaskID != nil {
		task, err := s.taskRepo.FindByID(*input.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotAssigned
			}
			return fmt.Errorf("failed to resolve linked task: %w", err)
		}
		if task.AssigneeID != ownerID {
			return ErrTaskNotAssigned
		}
	}

	return nil
}

func validClockTime(value string) bool {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("15:04:05", value); err == nil {
		return true
	}
	if _, err := time.Parse("15:04", value); err == nil {
		return true
	}
	return false
}
