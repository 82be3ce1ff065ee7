package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
	"github.com/noah-isme/alumni-directory-api/pkg/middleware/security"
	"github.com/noah-isme/alumni-directory-api/pkg/response"
)

type updateRequestSubmitter interface {
	Submit(ctx context.Context, req dto.SubmitUpdateRequest) (*models.UpdateRequest, error)
}

// UpdateRequestHandler accepts anonymous correction proposals.
type UpdateRequestHandler struct {
	service updateRequestSubmitter
}

// NewUpdateRequestHandler constructs the handler.
func NewUpdateRequestHandler(service updateRequestSubmitter) *UpdateRequestHandler {
	return &UpdateRequestHandler{service: service}
}

// Submit godoc
// @Summary Propose a correction to an alumni record
// @Tags Update Requests
// @Accept json
// @Produce json
// @Param payload body dto.SubmitUpdateRequest true "Proposal"
// @Success 201 {object} dto.SubmitUpdateResponse
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /update-request [post]
func (h *UpdateRequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if security.IsTooLarge(err) {
			response.Error(c, appErrors.ErrPayloadTooLarge)
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "rollNumber, oldData and newData are required"))
		return
	}
	request, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto.SubmitUpdateResponse{
		Success:   true,
		Message:   "Update request submitted",
		RequestID: request.ID,
	})
}
