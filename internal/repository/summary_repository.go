package repository

import (
	"github.com/yukikurage/labor-report-api/internal/models"
	"gorm.io/gorm"
)

// GormSummaryRepository is a GORM implementation of SummaryRepository
type GormSummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &GormSummaryRepository{db: db}
}

// Rewrite replaces the whole summary table. The clear and the insert run in
// one transaction so readers never see a half-written table, even though the
// data is only a recomputable cache.
func (r *GormSummaryRepository) Rewrite(rows []models.UserSummary) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.UserSummary{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// List returns all summary rows ordered by owner ID
func (r *GormSummaryRepository) List() ([]models.UserSummary, error) {
	var rows []models.UserSummary
	if err := r.db.Order("owner_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
