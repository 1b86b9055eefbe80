package dto

import (
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
)

// SummaryDTO represents one derived per-user aggregate row
type SummaryDTO struct {
	OwnerID        uint64     `json:"owner_id"`
	OwnerName      string     `json:"owner_name"`
	Total          int64      `json:"total"`
	PendingCount   int64      `json:"pending_count"`
	ValidatedCount int64      `json:"validated_count"`
	RejectedCount  int64      `json:"rejected_count"`
	LastActivity   *time.Time `json:"last_activity"`
}

// AuditLogDTO represents an audit trail entry in API responses
type AuditLogDTO struct {
	ID          uint64    `json:"id"`
	Event       string    `json:"event"`
	ActorHandle string    `json:"actor_handle"`
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToSummaryDTOs converts summary rows
func ToSummaryDTOs(rows []models.UserSummary) []SummaryDTO {
	items := make([]SummaryDTO, len(rows))
	for i, row := range rows {
		items[i] = SummaryDTO{
			OwnerID:        row.OwnerID,
			OwnerName:      row.OwnerName,
			Total:          row.Total,
			PendingCount:   row.PendingCount,
			ValidatedCount: row.ValidatedCount,
			RejectedCount:  row.RejectedCount,
			LastActivity:   row.LastActivity,
		}
	}
	return items
}

// ToAuditLogDTOs converts audit entries
func ToAuditLogDTOs(entries []models.AuditLog) []AuditLogDTO {
	items := make([]AuditLogDTO, len(entries))
	for i, entry := range entries {
		items[i] = AuditLogDTO{
			ID:          entry.ID,
			Event:       entry.Event,
			ActorHandle: entry.ActorHandle,
			Detail:      entry.Detail,
			CreatedAt:   entry.CreatedAt,
		}
	}
	return items
}
