package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/internal/service"
	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
	"github.com/noah-isme/alumni-directory-api/pkg/response"
)

// Limiter decides whether one more hit for key fits the window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// RateLimit throttles a route per client IP. Limiter errors let the request
// through so that a Redis outage does not block intake.
func RateLimit(limiter Limiter, scope string, limit int, window time.Duration, metrics *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP(), limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metrics.RecordRateLimited()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			response.Abort(c, appErrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
