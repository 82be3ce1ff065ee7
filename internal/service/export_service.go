package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
	"github.com/noah-isme/alumni-directory-api/pkg/export"
)

type alumniExporter interface {
	Export(ctx context.Context, filter models.AlumniSearchFilter, limit int) ([]models.Alumni, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// exportColumns is the volunteer export layout.
var exportColumns = []export.Column{
	{Key: "rollNumber", Label: "Roll Number", Width: 1.2},
	{Key: "name", Label: "Name", Width: 1.6},
	{Key: "programName", Label: "Program", Width: 0.8},
	{Key: "yearOfEntry", Label: "Entry", Width: 0.6},
	{Key: "yearOfGraduation", Label: "Graduation", Width: 0.7},
	{Key: "email", Label: "Email", Width: 1.8},
	{Key: "phone", Label: "Phone", Width: 1.1},
	{Key: "lastPosition", Label: "Position", Width: 1.3},
	{Key: "lastOrganization", Label: "Organization", Width: 1.5},
	{Key: "location", Label: "Location", Width: 1.3},
	{Key: "country", Label: "Country", Width: 0.9},
}

// ExportService renders filtered directory slices for volunteers.
type ExportService struct {
	repo    alumniExporter
	csv     datasetRenderer
	pdf     datasetRenderer
	maxRows int
	now     func() time.Time
	logger  *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// package defaults.
func NewExportService(repo alumniExporter, maxRows int, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 1000
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, maxRows: maxRows, now: time.Now, logger: logger}
}

// Export renders every record matching query, up to the configured row cap.
func (s *ExportService) Export(ctx context.Context, query dto.SearchQuery, format string) (*dto.ExportFile, error) {
	var (
		renderer    datasetRenderer
		contentType string
	)
	switch dto.ExportFormat(strings.ToLower(strings.TrimSpace(format))) {
	case dto.ExportFormatCSV, "":
		renderer, contentType, format = s.csv, "text/csv", string(dto.ExportFormatCSV)
	case dto.ExportFormatPDF:
		renderer, contentType, format = s.pdf, "application/pdf", string(dto.ExportFormatPDF)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	records, err := s.repo.Export(ctx, query.Filter(), s.maxRows)
	if err != nil {
		return nil, appErrors.Store(err, "export alumni")
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Alumni directory (%d records)", len(records)),
		Columns: exportColumns,
		Rows:    make([]map[string]string, 0, len(records)),
	}
	for i := range records {
		dataset.Rows = append(dataset.Rows, exportRow(&records[i]))
	}

	data, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Info("alumni export rendered", zap.String("format", format), zap.Int("rows", len(records)))

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("alumni-%s.%s", s.now().UTC().Format("20060102-150405"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func exportRow(a *models.Alumni) map[string]string {
	location := deref(a.CurrentLocationIndia)
	if location == "" {
		location = deref(a.CurrentOverseasLocation)
	}
	return map[string]string{
		"rollNumber":       a.RollNumber,
		"name":             a.Name,
		"programName":      deref(a.ProgramName),
		"yearOfEntry":      derefInt(a.YearOfEntry),
		"yearOfGraduation": derefInt(a.YearOfGraduation),
		"email":            deref(a.Email),
		"phone":            deref(a.Phone),
		"lastPosition":     deref(a.LastPosition),
		"lastOrganization": deref(a.LastOrganization),
		"location":         location,
		"country":          deref(a.Country),
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
