package models

import "time"

// UserSummary is a derived per-user aggregate of submission counts. It is
// recomputed wholesale from the submissions table and holds no authoritative
// state; readers wanting fresh numbers recompute first.
type UserSummary struct {
	OwnerID        uint64     `gorm:"primarykey" json:"owner_id"`
	OwnerName      string     `gorm:"type:varchar(255);not null" json:"owner_name"`
	Total          int64      `gorm:"not null" json:"total"`
	PendingCount   int64      `gorm:"not null" json:"pending_count"`
	ValidatedCount int64      `gorm:"not null" json:"validated_count"`
	RejectedCount  int64      `gorm:"not null" json:"rejected_count"`
	LastActivity   *time.Time `json:"last_activity"`
}
