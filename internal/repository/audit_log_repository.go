package repository

import (
	"github.com/yukikurage/labor-report-api/internal/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository is a GORM implementation of AuditLogRepository
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append adds one audit record
func (r *GormAuditLogRepository) Append(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// List returns the most recent entries, newest first
func (r *GormAuditLogRepository) List(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	query := r.db.Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
