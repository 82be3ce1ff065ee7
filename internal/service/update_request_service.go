package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	"github.com/noah-isme/alumni-directory-api/internal/repository"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
)

const defaultReviewer = "volunteer"

type updateRequestStore interface {
	Create(ctx context.Context, req *models.UpdateRequest) error
	GetByID(ctx context.Context, id string) (*models.UpdateRequest, error)
	List(ctx context.Context, filter models.UpdateRequestFilter) ([]models.UpdateRequest, int, error)
	Approve(ctx context.Context, params repository.ReviewParams, apply func(record *models.Alumni) error) (*models.Alumni, error)
	Reject(ctx context.Context, params repository.ReviewParams) error
}

type alumniDirectory interface {
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Alumni, error)
}

type moderationNotifier interface {
	NotifySubmitted(ctx context.Context, req *models.UpdateRequest, changes []models.FieldChange)
}

// UpdateRequestService runs the correction workflow: anonymous intake, then a
// one-way reviewer decision applied to the live record.
type UpdateRequestService struct {
	repo      updateRequestStore
	alumni    alumniDirectory
	notifier  moderationNotifier
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	now       func() time.Time
	logger    *zap.Logger
}

// UpdateRequestServiceOption configures the service.
type UpdateRequestServiceOption func(*UpdateRequestService)

// WithModerationNotifier sets who hears about new requests.
func WithModerationNotifier(notifier moderationNotifier) UpdateRequestServiceOption {
	return func(s *UpdateRequestService) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// WithSearchCache sets the cache flushed after an approval.
func WithSearchCache(cache *CacheService) UpdateRequestServiceOption {
	return func(s *UpdateRequestService) {
		s.cache = cache
	}
}

// WithUpdateRequestMetrics sets the metrics sink.
func WithUpdateRequestMetrics(metrics *MetricsService) UpdateRequestServiceOption {
	return func(s *UpdateRequestService) {
		s.metrics = metrics
	}
}

// WithClock overrides the review timestamp source.
func WithClock(now func() time.Time) UpdateRequestServiceOption {
	return func(s *UpdateRequestService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewUpdateRequestService constructs the service with defaults.
func NewUpdateRequestService(repo updateRequestStore, alumni alumniDirectory, validate *validator.Validate, logger *zap.Logger, opts ...UpdateRequestServiceOption) *UpdateRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &UpdateRequestService{
		repo:      repo,
		alumni:    alumni,
		validator: validate,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit stores a pending proposal for an existing record and queues the
// moderation email. Notification problems never fail the submission.
func (s *UpdateRequestService) Submit(ctx context.Context, req dto.SubmitUpdateRequest) (*models.UpdateRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "rollNumber, oldData and newData are required")
	}
	rollNumber := strings.TrimSpace(req.RollNumber)
	if rollNumber == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rollNumber is required")
	}

	exists, err := s.alumni.ExistsByRollNumber(ctx, rollNumber)
	if err != nil {
		return nil, appErrors.Store(err, "check roll number")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no alumni record with that roll number")
	}

	request := &models.UpdateRequest{
		RollNumber:  rollNumber,
		OldData:     req.OldData,
		NewData:     req.NewData,
		Status:      models.UpdateRequestStatusPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "update request already exists")
		}
		return nil, appErrors.Store(err, "create update request")
	}
	s.metrics.RecordSubmission()
	s.logger.Info("update request submitted",
		zap.String("request_id", request.ID),
		zap.String("roll_number", request.RollNumber),
		zap.Int("fields", len(request.NewData)),
	)

	if s.notifier != nil {
		s.notifier.NotifySubmitted(ctx, request, models.DiffFieldSets(request.OldData, request.NewData))
	}
	return request, nil
}

// List returns one page of the moderation queue. Status defaults to pending;
// "all" lists every status.
func (s *UpdateRequestService) List(ctx context.Context, query dto.UpdateRequestQuery) (*dto.UpdateRequestPage, error) {
	filter := models.UpdateRequestFilter{}
	switch status := strings.ToLower(strings.TrimSpace(query.Status)); status {
	case "":
		filter.Status = models.UpdateRequestStatusPending
	case "all":
	default:
		filter.Status = models.UpdateRequestStatus(status)
		if !filter.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be pending, approved, rejected or all")
		}
	}

	page := models.NewPageRequest(query.Page, query.Limit)
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Store(err, "list update requests")
	}
	return &dto.UpdateRequestPage{
		Data:       requests,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalCount: total,
		HasMore:    page.HasMore(len(requests), total),
	}, nil
}

// Get returns a request with its field-level diff.
func (s *UpdateRequestService) Get(ctx context.Context, id string) (*dto.UpdateRequestDetail, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateRequestDetail{
		UpdateRequest: *request,
		Changes:       models.DiffFieldSets(request.OldData, request.NewData),
	}, nil
}

// GetAlumni returns the full record a reviewer checks a proposal against.
func (s *UpdateRequestService) GetAlumni(ctx context.Context, rollNumber string) (*models.Alumni, error) {
	record, err := s.alumni.FindByRollNumber(ctx, strings.TrimSpace(rollNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumni not found")
		}
		return nil, appErrors.Store(err, "load alumni")
	}
	return record, nil
}

// Approve merges the proposal onto the live record. The status flip and the
// merge commit together or not at all.
func (s *UpdateRequestService) Approve(ctx context.Context, id string, decision dto.ReviewDecisionRequest) (*models.Alumni, error) {
	request, params, err := s.prepareReview(ctx, id, decision)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Approve(ctx, params, func(record *models.Alumni) error {
		applied, skipped, err := mergeAlumniFields(record, request.NewData)
		if err != nil {
			return err
		}
		if len(skipped) > 0 {
			s.logger.Warn("update request fields ignored",
				zap.String("request_id", request.ID),
				zap.Strings("fields", skipped),
			)
		}
		s.logger.Debug("update request merged", zap.String("request_id", request.ID), zap.Strings("fields", applied))
		return nil
	})
	if err != nil {
		return nil, s.reviewError(err)
	}

	s.metrics.RecordDecision(string(models.UpdateRequestStatusApproved))
	s.cache.InvalidateAll(ctx)
	s.logger.Info("update request approved",
		zap.String("request_id", request.ID),
		zap.String("roll_number", request.RollNumber),
		zap.String("reviewed_by", params.ReviewedBy),
	)
	return record, nil
}

// Reject closes the request without touching the record.
func (s *UpdateRequestService) Reject(ctx context.Context, id string, decision dto.ReviewDecisionRequest) error {
	request, params, err := s.prepareReview(ctx, id, decision)
	if err != nil {
		return err
	}
	if err := s.repo.Reject(ctx, params); err != nil {
		return s.reviewError(err)
	}
	s.metrics.RecordDecision(string(models.UpdateRequestStatusRejected))
	s.logger.Info("update request rejected",
		zap.String("request_id", request.ID),
		zap.String("roll_number", request.RollNumber),
		zap.String("reviewed_by", params.ReviewedBy),
	)
	return nil
}

func (s *UpdateRequestService) prepareReview(ctx context.Context, id string, decision dto.ReviewDecisionRequest) (*models.UpdateRequest, repository.ReviewParams, error) {
	if err := s.validator.Struct(decision); err != nil {
		return nil, repository.ReviewParams{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, repository.ReviewParams{}, err
	}
	if request.Status != models.UpdateRequestStatusPending {
		return nil, repository.ReviewParams{}, appErrors.ErrConflict
	}
	reviewer := strings.TrimSpace(decision.ReviewedBy)
	if reviewer == "" {
		reviewer = defaultReviewer
	}
	return request, repository.ReviewParams{
		ID:         request.ID,
		RollNumber: request.RollNumber,
		ReviewedBy: reviewer,
		ReviewedAt: s.now().UTC(),
		Notes:      optionalString(decision.Notes),
	}, nil
}

func (s *UpdateRequestService) load(ctx context.Context, id string) (*models.UpdateRequest, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "update request not found")
	}
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "update request not found")
		}
		return nil, appErrors.Store(err, "load update request")
	}
	return request, nil
}

func (s *UpdateRequestService) reviewError(err error) error {
	var appErr *appErrors.Error
	switch {
	case errors.Is(err, repository.ErrNotPending):
		return appErrors.ErrConflict
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "alumni not found")
	case errors.As(err, &appErr):
		return appErr
	default:
		return appErrors.Store(err, "review update request")
	}
}

func optionalString(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
