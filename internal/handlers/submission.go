package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/labor-report-api/internal/dto"
	apierrors "github.com/yukikurage/labor-report-api/internal/errors"
	"github.com/yukikurage/labor-report-api/internal/middleware"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"github.com/yukikurage/labor-report-api/internal/services"
	"github.com/yukikurage/labor-report-api/internal/utils"
)

// SubmissionHandler coordinates labor report HTTP handlers.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// SubmissionRequest is the shared payload for creating and editing a report.
type SubmissionRequest struct {
	TaskID   *uint64 `json:"task_id"`
	Date     string  `json:"date" binding:"required"`
	Time     string  `json:"time" binding:"required"`
	WorkType string  `json:"work_type" binding:"required"`
	Location string  `json:"location"`
	Notes    string  `json:"notes"`
}

func (r SubmissionRequest) toInput() services.CreateSubmissionInput {
	return services.CreateSubmissionInput{
		TaskID:   r.TaskID,
		Date:     r.Date,
		Time:     r.Time,
		WorkType: r.WorkType,
		Location: r.Location,
		Notes:    r.Notes,
	}
}

// ListSubmissions returns labor reports visible to the caller. Staff see
// their own; the administrator can filter by owner, status and date range.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.SubmissionFilter{
		Pagination: params,
	}

	if v := c.Query("owner_id"); v != "" {
		ownerID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid owner_id")
			return
		}
		filter.OwnerID = &ownerID
	}
	if v := c.Query("task_id"); v != "" {
		taskID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task_id")
			return
		}
		filter.TaskID = &taskID
	}
	if v := c.Query("status"); v != "" {
		status := models.ValidationStatus(v)
		if !models.IsValidValidationStatus(status) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("date_from"); v != "" {
		filter.DateFrom = &v
	}
	if v := c.Query("date_to"); v != "" {
		filter.DateTo = &v
	}

	submissions, total, err := h.submissionService.ListSubmissions(filter, principal)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmissionListResponse{
		Submissions: dto.ToSubmissionDTOs(submissions),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetSubmission returns a single labor report.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	submission, err := h.submissionService.GetSubmission(c.Param("id"))
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	if !principal.IsAdmin() && submission.OwnerID != principal.ID {
		apierrors.NotFound(c, "submission not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// CreateSubmission files a labor report for the caller.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.CreateSubmission(req.toInput(), principal)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmissionDTO(*submission))
}

// UpdateSubmission edits a labor report.
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.UpdateSubmission(c.Param("id"), req.toInput(), principal)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// DeleteSubmission removes a labor report.
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.submissionService.DeleteSubmission(c.Param("id"), principal); err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Submission deleted",
	})
}

// SetValidation records the administrator's validation decision.
func (h *SubmissionHandler) SetValidation(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type SetValidationRequest struct {
		Status    string `json:"status" binding:"required"`
		AdminNote string `json:"admin_note"`
	}

	var req SetValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.SetValidation(c.Param("id"), services.SetValidationInput{
		Status:    models.ValidationStatus(req.Status),
		AdminNote: req.AdminNote,
	}, principal)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

func respondSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSubmissionForbidden),
		errors.Is(err, services.ErrSubmissionLocked):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrValidationRollback):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidWorkType),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidTime),
		errors.Is(err, services.ErrTaskNotAssigned),
		errors.Is(err, services.ErrInvalidValidation):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.RespondInternal(c, err)
	}
}
