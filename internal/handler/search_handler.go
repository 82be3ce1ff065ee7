package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
	"github.com/noah-isme/alumni-directory-api/pkg/response"
)

type searchService interface {
	Search(ctx context.Context, query dto.SearchQuery) (*dto.SearchResponse, error)
}

// SearchHandler serves the public directory search.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search godoc
// @Summary Search the alumni directory
// @Description Every parameter is optional and matched case-insensitively. With no usable parameter the result is empty.
// @Tags Search
// @Produce json
// @Param name query string false "Name contains"
// @Param rollNumber query string false "Roll number (exact)"
// @Param lastOrganization query string false "Organization contains"
// @Param lastPosition query string false "Position contains"
// @Param collegeClubs query string false "Clubs contain"
// @Param natureOfJob query string false "Nature of job (exact)"
// @Param country query string false "Country (exact)"
// @Param city query string false "City word prefix, India or overseas"
// @Param yearOfEntry query int false "Year of entry"
// @Param programName query string false "Program (exact)"
// @Param specialization query string false "Specialization (exact)"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, max 50"
// @Success 200 {object} dto.SearchResponse
// @Failure 500 {object} response.Envelope
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid search parameters"))
		return
	}
	result, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
