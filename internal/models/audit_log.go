package models

import "time"

// AuditLog is an append-only business event record. It is written
// best-effort and only ever read back for display.
type AuditLog struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Event       string    `gorm:"type:varchar(100);not null" json:"event"`
	ActorHandle string    `gorm:"type:varchar(50);not null" json:"actor_handle"`
	Detail      string    `gorm:"type:text" json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}
