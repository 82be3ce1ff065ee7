package dto

import (
	"strings"

	"github.com/noah-isme/alumni-directory-api/internal/models"
)

// SearchQuery mirrors the GET /search query string. Values arrive untrusted.
type SearchQuery struct {
	Name             string `form:"name"`
	RollNumber       string `form:"rollNumber"`
	LastOrganization string `form:"lastOrganization"`
	LastPosition     string `form:"lastPosition"`
	CollegeClubs     string `form:"collegeClubs"`
	NatureOfJob      string `form:"natureOfJob"`
	Country          string `form:"country"`
	City             string `form:"city"`
	YearOfEntry      string `form:"yearOfEntry"`
	ProgramName      string `form:"programName"`
	Specialization   string `form:"specialization"`
	Page             string `form:"page"`
	Limit            string `form:"limit"`
}

// Filter trims every parameter. A yearOfEntry without a leading integer is dropped.
func (q SearchQuery) Filter() models.AlumniSearchFilter {
	filter := models.AlumniSearchFilter{
		Name:             strings.TrimSpace(q.Name),
		RollNumber:       strings.TrimSpace(q.RollNumber),
		LastOrganization: strings.TrimSpace(q.LastOrganization),
		LastPosition:     strings.TrimSpace(q.LastPosition),
		CollegeClubs:     strings.TrimSpace(q.CollegeClubs),
		NatureOfJob:      strings.TrimSpace(q.NatureOfJob),
		Country:          strings.TrimSpace(q.Country),
		City:             strings.TrimSpace(q.City),
		ProgramName:      strings.TrimSpace(q.ProgramName),
		Specialization:   strings.TrimSpace(q.Specialization),
	}
	if year, ok := models.ParseLeadingInt(q.YearOfEntry); ok {
		filter.YearOfEntry = &year
	}
	return filter
}

// PageRequest normalises page and limit.
func (q SearchQuery) PageRequest() models.PageRequest {
	return models.NewPageRequest(q.Page, q.Limit)
}

// SearchResponse is the GET /search payload.
type SearchResponse struct {
	Count      int                    `json:"count"`
	Data       []models.AlumniSummary `json:"data"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalCount int                    `json:"totalCount"`
	HasMore    bool                   `json:"hasMore"`
}

// ExportFormat selects the export renderer.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
