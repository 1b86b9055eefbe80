package repository

import (
	"github.com/yukikurage/labor-report-api/internal/database"
	"github.com/yukikurage/labor-report-api/internal/models"
	"gorm.io/gorm"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create creates a new submission
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// FindByID finds a submission by its opaque identifier
func (r *GormSubmissionRepository) FindByID(id string) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// List retrieves submissions with filtering and pagination
func (r *GormSubmissionRepository) List(filter SubmissionFilter) ([]models.Submission, int64, error) {
	var submissions []models.Submission

	query := r.db.Model(&models.Submission{})

	if filter.OwnerID != nil {
		query = query.Where("submissions.owner_id = ?", *filter.OwnerID)
	}
	if filter.TaskID != nil {
		query = query.Where("submissions.task_id = ?", *filter.TaskID)
	}
	if filter.Status != nil {
		query = query.Where("submissions.validation_status = ?", *filter.Status)
	}
	// ISO dates order lexicographically, so string comparison is enough
	if filter.DateFrom != nil {
		query = query.Where("submissions.date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("submissions.date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("submissions.created_at DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	if err := listQuery.Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

// ListAll returns every submission in storage order
func (r *GormSubmissionRepository) ListAll() ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.Order("created_at").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Update saves the full submission record
func (r *GormSubmissionRepository) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

// Delete hard deletes a submission
func (r *GormSubmissionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Submission{}).Error
}
