package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
	"github.com/noah-isme/alumni-directory-api/pkg/middleware/security"
	"github.com/noah-isme/alumni-directory-api/pkg/response"
)

type moderationService interface {
	List(ctx context.Context, query dto.UpdateRequestQuery) (*dto.UpdateRequestPage, error)
	Get(ctx context.Context, id string) (*dto.UpdateRequestDetail, error)
	GetAlumni(ctx context.Context, rollNumber string) (*models.Alumni, error)
	Approve(ctx context.Context, id string, decision dto.ReviewDecisionRequest) (*models.Alumni, error)
	Reject(ctx context.Context, id string, decision dto.ReviewDecisionRequest) error
}

type directoryExporter interface {
	Export(ctx context.Context, query dto.SearchQuery, format string) (*dto.ExportFile, error)
}

// VolunteerHandler serves the moderation routes. Every route sits behind
// middleware.VolunteerAuth.
type VolunteerHandler struct {
	service  moderationService
	exporter directoryExporter
}

// NewVolunteerHandler constructs the handler.
func NewVolunteerHandler(service moderationService, exporter directoryExporter) *VolunteerHandler {
	return &VolunteerHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List update requests
// @Tags Volunteer
// @Produce json
// @Security VolunteerToken
// @Param status query string false "pending (default), approved, rejected or all"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, max 50"
// @Success 200 {object} dto.UpdateRequestPage
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /volunteer/update-requests [get]
func (h *VolunteerHandler) List(c *gin.Context) {
	var query dto.UpdateRequestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Get godoc
// @Summary Get an update request with its field diff
// @Tags Volunteer
// @Produce json
// @Security VolunteerToken
// @Param id path string true "Update request ID"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} response.Envelope
// @Router /volunteer/update-requests/{id} [get]
func (h *VolunteerHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DataResponse{Data: detail})
}

// Approve godoc
// @Summary Approve an update request and merge it into the record
// @Tags Volunteer
// @Accept json
// @Produce json
// @Security VolunteerToken
// @Param id path string true "Update request ID"
// @Param payload body dto.ReviewDecisionRequest false "Reviewer notes"
// @Success 200 {object} dto.ApproveResponse
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /volunteer/update-requests/{id}/approve [post]
func (h *VolunteerHandler) Approve(c *gin.Context) {
	decision, ok := bindDecision(c)
	if !ok {
		return
	}
	record, err := h.service.Approve(c.Request.Context(), c.Param("id"), decision)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ApproveResponse{Success: true, Message: "Update request approved", Alumni: record})
}

// Reject godoc
// @Summary Reject an update request
// @Tags Volunteer
// @Accept json
// @Produce json
// @Security VolunteerToken
// @Param id path string true "Update request ID"
// @Param payload body dto.ReviewDecisionRequest false "Reviewer notes"
// @Success 200 {object} dto.RejectResponse
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /volunteer/update-requests/{id}/reject [post]
func (h *VolunteerHandler) Reject(c *gin.Context) {
	decision, ok := bindDecision(c)
	if !ok {
		return
	}
	if err := h.service.Reject(c.Request.Context(), c.Param("id"), decision); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RejectResponse{Success: true, Message: "Update request rejected"})
}

// GetAlumni godoc
// @Summary Get the full alumni record
// @Tags Volunteer
// @Produce json
// @Security VolunteerToken
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} response.Envelope
// @Router /volunteer/alumni/{rollNumber} [get]
func (h *VolunteerHandler) GetAlumni(c *gin.Context) {
	record, err := h.service.GetAlumni(c.Request.Context(), c.Param("rollNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DataResponse{Data: record})
}

// Export godoc
// @Summary Export a filtered slice of the directory
// @Tags Volunteer
// @Produce text/csv
// @Produce application/pdf
// @Security VolunteerToken
// @Param format query string false "csv (default) or pdf"
// @Param name query string false "Same filters as /search"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /volunteer/alumni/export [get]
func (h *VolunteerHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export not configured"))
		return
	}
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid export parameters"))
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), query, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// bindDecision reads the optional review body. A missing body means no notes.
func bindDecision(c *gin.Context) (dto.ReviewDecisionRequest, bool) {
	var decision dto.ReviewDecisionRequest
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return decision, true
	}
	if err := c.ShouldBindJSON(&decision); err != nil && !errors.Is(err, io.EOF) {
		if security.IsTooLarge(err) {
			response.Error(c, appErrors.ErrPayloadTooLarge)
			return decision, false
		}
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid review payload"))
		return decision, false
	}
	return decision, true
}
