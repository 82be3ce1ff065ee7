package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
)

type moderationStub struct {
	decision  dto.ReviewDecisionRequest
	listQuery dto.UpdateRequestQuery
	id        string
	err       error
	approved  *models.Alumni
}

func (s *moderationStub) List(_ context.Context, query dto.UpdateRequestQuery) (*dto.UpdateRequestPage, error) {
	s.listQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UpdateRequestPage{Data: []models.UpdateRequest{}, Page: 1, Limit: 20}, nil
}

func (s *moderationStub) Get(_ context.Context, id string) (*dto.UpdateRequestDetail, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UpdateRequestDetail{
		UpdateRequest: models.UpdateRequest{ID: id, RollNumber: "2015BCS-01", Status: models.UpdateRequestStatusPending},
		Changes:       []models.FieldChange{{Field: "country", Old: "India", New: "Germany"}},
	}, nil
}

func (s *moderationStub) GetAlumni(_ context.Context, rollNumber string) (*models.Alumni, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Alumni{RollNumber: rollNumber, Name: "Asha Rao"}, nil
}

func (s *moderationStub) Approve(_ context.Context, id string, decision dto.ReviewDecisionRequest) (*models.Alumni, error) {
	s.id, s.decision = id, decision
	if s.err != nil {
		return nil, s.err
	}
	return s.approved, nil
}

func (s *moderationStub) Reject(_ context.Context, id string, decision dto.ReviewDecisionRequest) error {
	s.id, s.decision = id, decision
	return s.err
}

type exporterStub struct {
	format string
	query  dto.SearchQuery
	err    error
}

func (s *exporterStub) Export(_ context.Context, query dto.SearchQuery, format string) (*dto.ExportFile, error) {
	s.query, s.format = query, format
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ExportFile{Filename: "alumni-20261016-090000.csv", ContentType: "text/csv", Data: []byte("Roll Number\n2015BCS-01\n")}, nil
}

func volunteerContext(method, target, body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Params = params
	return c, w
}

func TestVolunteerApproveWithoutBody(t *testing.T) {
	stub := &moderationStub{approved: &models.Alumni{RollNumber: "2015BCS-01", Name: "Asha Rao"}}
	h := NewVolunteerHandler(stub, nil)
	c, w := volunteerContext(http.MethodPost, "/api/volunteer/update-requests/abc/approve", "", gin.Params{{Key: "id", Value: "abc"}})

	h.Approve(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", stub.id)
	assert.Empty(t, stub.decision.ReviewedBy)
	var body dto.ApproveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Update request approved", body.Message)
	require.NotNil(t, body.Alumni)
	assert.Equal(t, "Asha Rao", body.Alumni.Name)
}

func TestVolunteerApproveConflict(t *testing.T) {
	h := NewVolunteerHandler(&moderationStub{err: appErrors.ErrConflict}, nil)
	c, w := volunteerContext(http.MethodPost, "/x", `{"notes":"dup"}`, gin.Params{{Key: "id", Value: "abc"}})

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")
}

func TestVolunteerRejectBindsNotes(t *testing.T) {
	stub := &moderationStub{}
	h := NewVolunteerHandler(stub, nil)
	c, w := volunteerContext(http.MethodPost, "/x", `{"notes":"not verifiable","reviewedBy":"meera"}`, gin.Params{{Key: "id", Value: "abc"}})

	h.Reject(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not verifiable", stub.decision.Notes)
	assert.Equal(t, "meera", stub.decision.ReviewedBy)
	assert.JSONEq(t, `{"success":true,"message":"Update request rejected"}`, w.Body.String())
}

func TestVolunteerRejectMalformedBody(t *testing.T) {
	stub := &moderationStub{}
	h := NewVolunteerHandler(stub, nil)
	c, w := volunteerContext(http.MethodPost, "/x", `{"notes":`, gin.Params{{Key: "id", Value: "abc"}})

	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.id)
}

func TestVolunteerListPassesStatus(t *testing.T) {
	stub := &moderationStub{}
	h := NewVolunteerHandler(stub, nil)
	c, w := volunteerContext(http.MethodGet, "/api/volunteer/update-requests?status=all&page=2", "", nil)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "all", stub.listQuery.Status)
	assert.Equal(t, "2", stub.listQuery.Page)
}

func TestVolunteerGetWrapsDetail(t *testing.T) {
	h := NewVolunteerHandler(&moderationStub{}, nil)
	c, w := volunteerContext(http.MethodGet, "/x", "", gin.Params{{Key: "id", Value: "abc"}})

	h.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			ID      string               `json:"id"`
			Changes []models.FieldChange `json:"changes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "abc", body.Data.ID)
	require.Len(t, body.Data.Changes, 1)
	assert.Equal(t, "country", body.Data.Changes[0].Field)
}

func TestVolunteerGetAlumniNotFound(t *testing.T) {
	h := NewVolunteerHandler(&moderationStub{err: appErrors.Clone(appErrors.ErrNotFound, "alumni not found")}, nil)
	c, w := volunteerContext(http.MethodGet, "/x", "", gin.Params{{Key: "rollNumber", Value: "missing"}})

	h.GetAlumni(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVolunteerExportAttachment(t *testing.T) {
	exporter := &exporterStub{}
	h := NewVolunteerHandler(&moderationStub{}, exporter)
	c, w := volunteerContext(http.MethodGet, "/api/volunteer/alumni/export?format=csv&country=India", "", nil)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exporter.format)
	assert.Equal(t, "India", exporter.query.Country)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "alumni-20261016-090000.csv")
	assert.Contains(t, w.Body.String(), "2015BCS-01")
}

func TestVolunteerExportRejectsUnknownFormat(t *testing.T) {
	h := NewVolunteerHandler(&moderationStub{}, &exporterStub{err: appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")})
	c, w := volunteerContext(http.MethodGet, "/x?format=xlsx", "", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
