package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/handler"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	"github.com/noah-isme/alumni-directory-api/internal/service"
	"github.com/noah-isme/alumni-directory-api/pkg/config"
)

type fakeDirectory struct{}

func (fakeDirectory) Search(context.Context, dto.SearchQuery) (*dto.SearchResponse, error) {
	return &dto.SearchResponse{Data: []models.AlumniSummary{}, Page: 1, Limit: 20}, nil
}

func (fakeDirectory) Submit(_ context.Context, req dto.SubmitUpdateRequest) (*models.UpdateRequest, error) {
	return &models.UpdateRequest{ID: "5b8f0c1e-2a6d-4c57-9d1e-7a4b3c2d1e0f", RollNumber: req.RollNumber}, nil
}

func (fakeDirectory) List(context.Context, dto.UpdateRequestQuery) (*dto.UpdateRequestPage, error) {
	return &dto.UpdateRequestPage{Data: []models.UpdateRequest{}, Page: 1, Limit: 20}, nil
}

func (fakeDirectory) Get(_ context.Context, id string) (*dto.UpdateRequestDetail, error) {
	return &dto.UpdateRequestDetail{UpdateRequest: models.UpdateRequest{ID: id}}, nil
}

func (fakeDirectory) GetAlumni(_ context.Context, rollNumber string) (*models.Alumni, error) {
	return &models.Alumni{RollNumber: rollNumber}, nil
}

func (fakeDirectory) Approve(context.Context, string, dto.ReviewDecisionRequest) (*models.Alumni, error) {
	return &models.Alumni{}, nil
}

func (fakeDirectory) Reject(context.Context, string, dto.ReviewDecisionRequest) error { return nil }

func (fakeDirectory) Export(context.Context, dto.SearchQuery, string) (*dto.ExportFile, error) {
	return &dto.ExportFile{Filename: "alumni.csv", ContentType: "text/csv", Data: []byte("x")}, nil
}

func (fakeDirectory) PingContext(context.Context) error { return nil }

type countingLimiter struct{ hits int }

func (l *countingLimiter) Allow(_ context.Context, _ string, limit int, _ time.Duration) (bool, time.Duration, error) {
	l.hits++
	return l.hits <= limit, time.Minute, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api",
		HTTP:      config.HTTPConfig{BodyLimitBytes: 1 << 20},
		Volunteer: config.VolunteerConfig{Token: "reviewer-secret"},
		RateLimit: config.RateLimitConfig{Enabled: true, UpdateRequestLimit: 1, UpdateRequestWindow: time.Hour},
	}
}

func newTestRouter(cfg *config.Config, limiter *countingLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	fake := fakeDirectory{}
	return New(Options{Config: cfg, MetricsSvc: service.NewMetricsService(), RateLimiter: limiter}, Handlers{
		Search:        handler.NewSearchHandler(fake),
		UpdateRequest: handler.NewUpdateRequestHandler(fake),
		Volunteer:     handler.NewVolunteerHandler(fake, fake),
		Metrics:       handler.NewMetricsHandler(service.NewMetricsService(), fake),
	})
}

func serve(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter(testConfig(), &countingLimiter{})

	w := serve(r, http.MethodGet, "/api/search?name=asha", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	for _, path := range []string{"/health", "/api/health"} {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, path, "", "").Code, path)
	}
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", "", "").Code)
}

func TestVolunteerRoutesRequireToken(t *testing.T) {
	r := newTestRouter(testConfig(), &countingLimiter{})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/volunteer/update-requests"},
		{http.MethodGet, "/api/volunteer/update-requests/5b8f0c1e-2a6d-4c57-9d1e-7a4b3c2d1e0f"},
		{http.MethodPost, "/api/volunteer/update-requests/5b8f0c1e-2a6d-4c57-9d1e-7a4b3c2d1e0f/approve"},
		{http.MethodPost, "/api/volunteer/update-requests/5b8f0c1e-2a6d-4c57-9d1e-7a4b3c2d1e0f/reject"},
		{http.MethodGet, "/api/volunteer/alumni/2015BCS-01"},
		{http.MethodGet, "/api/volunteer/alumni/export?format=csv"},
	}
	for _, route := range routes {
		assert.Equal(t, http.StatusUnauthorized, serve(r, route.method, route.path, "", "").Code, route.path)
		assert.Equal(t, http.StatusUnauthorized, serve(r, route.method, route.path, "wrong", "").Code, route.path)
		assert.Equal(t, http.StatusOK, serve(r, route.method, route.path, "reviewer-secret", "").Code, route.path)
	}
}

func TestExportRouteWinsOverRollNumber(t *testing.T) {
	r := newTestRouter(testConfig(), &countingLimiter{})
	w := serve(r, http.MethodGet, "/api/volunteer/alumni/export", "reviewer-secret", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestSubmitIsRateLimited(t *testing.T) {
	limiter := &countingLimiter{}
	r := newTestRouter(testConfig(), limiter)
	body := `{"rollNumber":"2015BCS-01","oldData":{},"newData":{"country":"India"}}`

	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/update-request", "", body).Code)
	w := serve(r, http.MethodPost, "/api/update-request", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimitDisabledByConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Enabled = false
	limiter := &countingLimiter{}
	r := newTestRouter(cfg, limiter)
	body := `{"rollNumber":"2015BCS-01","oldData":{},"newData":{}}`

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/update-request", "", body).Code)
	}
	assert.Zero(t, limiter.hits)
}

func TestDocsHiddenInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.Env = config.EnvProduction
	r := newTestRouter(cfg, &countingLimiter{})
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/docs/index.html", "", "").Code)
}
