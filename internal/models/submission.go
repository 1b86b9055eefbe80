package models

import "time"

type ValidationStatus string

const (
	ValidationPending   ValidationStatus = "Pending"
	ValidationValidated ValidationStatus = "Validated"
	ValidationRejected  ValidationStatus = "Rejected"
)

// IsValidValidationStatus reports whether s is a defined validation status.
func IsValidValidationStatus(s ValidationStatus) bool {
	switch s {
	case ValidationPending, ValidationValidated, ValidationRejected:
		return true
	}
	return false
}

// Submission is one labor report filed by a staff member, optionally linked
// to a task assigned to them. The owner may edit or delete it only while the
// validation status is Pending; the administrator may at any status.
type Submission struct {
	ID               string           `gorm:"type:varchar(64);primarykey" json:"id"`
	TaskID           *uint64          `gorm:"index" json:"task_id"`
	OwnerID          uint64           `gorm:"not null;index" json:"owner_id"`
	OwnerName        string           `gorm:"type:varchar(255);not null" json:"owner_name"`
	Date             string           `gorm:"type:varchar(10);not null" json:"date"`
	Time             string           `gorm:"type:varchar(8);not null" json:"time"`
	WorkType         string           `gorm:"type:varchar(100);not null" json:"work_type"`
	Location         string           `gorm:"type:varchar(255)" json:"location"`
	ResponsibleName  string           `gorm:"type:varchar(255)" json:"responsible_name"`
	Notes            string           `gorm:"type:text" json:"notes"`
	ValidationStatus ValidationStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"validation_status"`
	AdminNote        string           `gorm:"type:text" json:"admin_note"`
	CreatedAt        time.Time        `json:"created_at"`
	EditedAt         *time.Time       `json:"edited_at"`
	CreatedBy        string           `gorm:"type:varchar(50);not null" json:"created_by"`
	EditedBy         string           `gorm:"type:varchar(50)" json:"edited_by"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
