package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-directory-api/internal/service"
)

// unmatchedRoute labels requests no route matched, so probes for random paths
// do not create new series.
const unmatchedRoute = "unmatched"

// Metrics records request duration and count per route template.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
