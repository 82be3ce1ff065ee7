package dto

import "github.com/noah-isme/alumni-directory-api/internal/models"

// SubmitUpdateRequest is the anonymous correction payload.
type SubmitUpdateRequest struct {
	RollNumber string          `json:"rollNumber" validate:"required"`
	OldData    models.FieldSet `json:"oldData" validate:"required"`
	NewData    models.FieldSet `json:"newData" validate:"required"`
}

// SubmitUpdateResponse acknowledges an accepted proposal.
type SubmitUpdateResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// ReviewDecisionRequest is the optional approve/reject body.
type ReviewDecisionRequest struct {
	Notes      string `json:"notes" validate:"max=2000"`
	ReviewedBy string `json:"reviewedBy" validate:"max=120"`
}

// UpdateRequestQuery mirrors the reviewer list query string.
type UpdateRequestQuery struct {
	Status string `form:"status"`
	Page   string `form:"page"`
	Limit  string `form:"limit"`
}

// UpdateRequestPage is one page of the moderation queue.
type UpdateRequestPage struct {
	Data       []models.UpdateRequest `json:"data"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalCount int                    `json:"totalCount"`
	HasMore    bool                   `json:"hasMore"`
}

// UpdateRequestDetail pairs a request with its computed diff.
type UpdateRequestDetail struct {
	models.UpdateRequest
	Changes []models.FieldChange `json:"changes"`
}

// ApproveResponse returns the record as it stands after the merge.
type ApproveResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Alumni  *models.Alumni `json:"alumni"`
}

// RejectResponse acknowledges a rejection.
type RejectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse wraps a single resource.
type DataResponse struct {
	Data interface{} `json:"data"`
}
