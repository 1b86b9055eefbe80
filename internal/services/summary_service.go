package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
)

// SummaryService maintains the derived per-user submission aggregates. The
// summary table is a cache: it is recomputed wholesale from the submissions
// table and never updated incrementally.
type SummaryService struct {
	submissionRepo repository.SubmissionRepository
	summaryRepo    repository.SummaryRepository
	audit          *AuditService
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(submissionRepo repository.SubmissionRepository, summaryRepo repository.SummaryRepository, audit *AuditService) *SummaryService {
	return &SummaryService{
		submissionRepo: submissionRepo,
		summaryRepo:    summaryRepo,
		audit:          audit,
	}
}

// Recompute scans every submission, aggregates counts per owner and rewrites
// the summary table, returning the fresh rows ordered by owner ID.
func (s *SummaryService) Recompute(actor *models.User) ([]models.UserSummary, error) {
	submissions, err := s.submissionRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	byOwner := make(map[uint64]*models.UserSummary)
	for _, sub := range submissions {
		row, ok := byOwner[sub.OwnerID]
		if !ok {
			row = &models.UserSummary{
				OwnerID:   sub.OwnerID,
				OwnerName: sub.OwnerName,
			}
			byOwner[sub.OwnerID] = row
		}

		row.Total++
		switch sub.ValidationStatus {
		case models.ValidationPending:
			row.PendingCount++
		case models.ValidationValidated:
			row.ValidatedCount++
		case models.ValidationRejected:
			row.RejectedCount++
		}

		createdAt := sub.CreatedAt
		if row.LastActivity == nil || createdAt.After(*row.LastActivity) {
			last := createdAt
			row.LastActivity = &last
		}
	}

	rows := make([]models.UserSummary, 0, len(byOwner))
	for _, row := range byOwner {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].OwnerID < rows[j].OwnerID })

	if err := s.summaryRepo.Rewrite(rows); err != nil {
		return nil, fmt.Errorf("failed to rewrite summary: %w", err)
	}

	s.audit.Recordf("recompute_summary", actor.Login, "%d owner(s) at %s",
		len(rows), time.Now().Format(time.RFC3339))
	return rows, nil
}

// List returns the summary rows as last computed.
func (s *SummaryService) List() ([]models.UserSummary, error) {
	rows, err := s.summaryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list summary: %w", err)
	}
	return rows, nil
}
