package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/labor-report-api/internal/dto"
	apierrors "github.com/yukikurage/labor-report-api/internal/errors"
	"github.com/yukikurage/labor-report-api/internal/middleware"
	"github.com/yukikurage/labor-report-api/internal/services"
)

// SummaryHandler serves the derived per-user aggregates and the audit trail.
type SummaryHandler struct {
	summaryService *services.SummaryService
	auditService   *services.AuditService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService *services.SummaryService, auditService *services.AuditService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		auditService:   auditService,
	}
}

// GetSummary returns the summary rows as last computed. Callers wanting
// fresh numbers call Recompute first; the table is only a cache.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	rows, err := h.summaryService.List()
	if err != nil {
		apierrors.RespondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": dto.ToSummaryDTOs(rows)})
}

// Recompute rebuilds the summary table from the submissions and returns the
// fresh rows.
func (h *SummaryHandler) Recompute(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	rows, err := h.summaryService.Recompute(principal)
	if err != nil {
		apierrors.RespondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": dto.ToSummaryDTOs(rows)})
}

// ListAuditLog returns the most recent audit entries for display.
func (h *SummaryHandler) ListAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	entries, err := h.auditService.List(limit)
	if err != nil {
		apierrors.RespondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": dto.ToAuditLogDTOs(entries)})
}
