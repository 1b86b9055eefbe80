package services

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
)

// AuditService writes the append-only business event trail. Recording is
// best-effort: a failed append is logged at warn level and never propagated,
// so it cannot mask the outcome of the operation being audited.
type AuditService struct {
	auditRepo repository.AuditLogRepository
	logger    zerolog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo repository.AuditLogRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends one audit entry.
func (s *AuditService) Record(event, actorHandle, detail string) {
	entry := &models.AuditLog{
		Event:       event,
		ActorHandle: actorHandle,
		Detail:      detail,
	}
	if err := s.auditRepo.Append(entry); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event", event).
			Str("actor", actorHandle).
			Msg("failed to append audit entry")
	}
}

// Recordf appends one audit entry with a formatted detail string.
func (s *AuditService) Recordf(event, actorHandle, format string, args ...interface{}) {
	s.Record(event, actorHandle, fmt.Sprintf(format, args...))
}

// List returns the most recent entries for display.
func (s *AuditService) List(limit int) ([]models.AuditLog, error) {
	entries, err := s.auditRepo.List(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
