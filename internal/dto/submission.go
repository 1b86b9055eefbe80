package dto

import (
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/utils"
)

// SubmissionDTO represents a labor report in API responses
type SubmissionDTO struct {
	ID               string                  `json:"id"`
	TaskID           *uint64                 `json:"task_id"`
	OwnerID          uint64                  `json:"owner_id"`
	OwnerName        string                  `json:"owner_name"`
	Date             string                  `json:"date"`
	Time             string                  `json:"time"`
	WorkType         string                  `json:"work_type"`
	Location         string                  `json:"location"`
	ResponsibleName  string                  `json:"responsible_name"`
	Notes            string                  `json:"notes"`
	ValidationStatus models.ValidationStatus `json:"validation_status"`
	AdminNote        string                  `json:"admin_note,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	EditedAt         *time.Time              `json:"edited_at"`
	CreatedBy        string                  `json:"created_by"`
	EditedBy         string                  `json:"edited_by,omitempty"`
}

// SubmissionListResponse represents a paginated list of labor reports
type SubmissionListResponse struct {
	Submissions []SubmissionDTO          `json:"submissions"`
	Pagination  utils.PaginationResponse `json:"pagination"`
}

// ToSubmissionDTO converts a Submission model to SubmissionDTO
func ToSubmissionDTO(submission models.Submission) SubmissionDTO {
	return SubmissionDTO{
		ID:               submission.ID,
		TaskID:           submission.TaskID,
		OwnerID:          submission.OwnerID,
		OwnerName:        submission.OwnerName,
		Date:             submission.Date,
		Time:             submission.Time,
		WorkType:         submission.WorkType,
		Location:         submission.Location,
		ResponsibleName:  submission.ResponsibleName,
		Notes:            submission.Notes,
		ValidationStatus: submission.ValidationStatus,
		AdminNote:        submission.AdminNote,
		CreatedAt:        submission.CreatedAt,
		EditedAt:         submission.EditedAt,
		CreatedBy:        submission.CreatedBy,
		EditedBy:         submission.EditedBy,
	}
}

// ToSubmissionDTOs converts a slice of submissions
func ToSubmissionDTOs(submissions []models.Submission) []SubmissionDTO {
	items := make([]SubmissionDTO, len(submissions))
	for i, submission := range submissions {
		items[i] = ToSubmissionDTO(submission)
	}
	return items
}
