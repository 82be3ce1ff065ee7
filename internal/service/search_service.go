package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/internal/dto"
	"github.com/noah-isme/alumni-directory-api/internal/models"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
)

type alumniSearcher interface {
	Search(ctx context.Context, filter models.AlumniSearchFilter, page models.PageRequest) ([]models.AlumniSummary, int, error)
}

// SearchService runs directory searches with an optional result cache.
type SearchService struct {
	repo     alumniSearcher
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSearchService constructs a SearchService. cache and metrics may be nil.
func NewSearchService(repo alumniSearcher, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

type searchCacheKey struct {
	Filter models.AlumniSearchFilter `json:"f"`
	Page   int                       `json:"p"`
	Limit  int                       `json:"l"`
}

// Search returns one ranked page. A query with no usable parameter returns an
// empty page without touching the store.
func (s *SearchService) Search(ctx context.Context, query dto.SearchQuery) (*dto.SearchResponse, error) {
	filter := query.Filter()
	page := query.PageRequest()

	if filter.IsEmpty() {
		return &dto.SearchResponse{
			Count: 0,
			Data:  []models.AlumniSummary{},
			Page:  page.Page,
			Limit: page.Limit,
		}, nil
	}

	var key string
	if s.cache.Enabled() {
		if k, err := s.cache.Key(searchCacheKey{Filter: filter, Page: page.Page, Limit: page.Limit}); err == nil {
			key = k
			var cached dto.SearchResponse
			if s.cache.Get(ctx, key, &cached) {
				return &cached, nil
			}
		}
	}

	start := time.Now()
	rows, total, err := s.repo.Search(ctx, filter, page)
	s.metrics.ObserveDBQuery("alumni_search", time.Since(start))
	if err != nil {
		return nil, appErrors.Store(err, "search alumni")
	}

	result := &dto.SearchResponse{
		Count:      len(rows),
		Data:       rows,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalCount: total,
		HasMore:    page.HasMore(len(rows), total),
	}
	if key != "" {
		s.cache.Set(ctx, key, result, s.cacheTTL)
	}
	return result, nil
}
