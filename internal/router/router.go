package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/internal/handler"
	"github.com/noah-isme/alumni-directory-api/internal/middleware"
	"github.com/noah-isme/alumni-directory-api/internal/service"
	"github.com/noah-isme/alumni-directory-api/pkg/config"
	"github.com/noah-isme/alumni-directory-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/alumni-directory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/alumni-directory-api/pkg/middleware/requestid"
	"github.com/noah-isme/alumni-directory-api/pkg/middleware/security"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Search        *handler.SearchHandler
	UpdateRequest *handler.UpdateRequestHandler
	Volunteer     *handler.VolunteerHandler
	Metrics       *handler.MetricsHandler
}

// Options carries the cross-cutting dependencies.
type Options struct {
	Config      *config.Config
	Logger      *zap.Logger
	MetricsSvc  *service.MetricsService
	RateLimiter middleware.Limiter
}

// New builds the gin engine with every route and middleware attached.
func New(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(security.Headers())
	r.Use(security.BodyLimit(cfg.HTTP.BodyLimitBytes))
	r.Use(middleware.Metrics(opts.MetricsSvc))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", h.Metrics.Health)
	api.GET("/search", h.Search.Search)

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = opts.RateLimiter
	}
	api.POST("/update-request",
		middleware.RateLimit(limiter, "update-request", cfg.RateLimit.UpdateRequestLimit, window(cfg.RateLimit.UpdateRequestWindow), opts.MetricsSvc, logr),
		h.UpdateRequest.Submit,
	)

	volunteer := api.Group("/volunteer")
	volunteer.Use(middleware.VolunteerAuth(cfg.Volunteer.Token, logr))
	volunteer.GET("/update-requests", h.Volunteer.List)
	volunteer.GET("/update-requests/:id", h.Volunteer.Get)
	volunteer.POST("/update-requests/:id/approve", h.Volunteer.Approve)
	volunteer.POST("/update-requests/:id/reject", h.Volunteer.Reject)
	volunteer.GET("/alumni/export", h.Volunteer.Export)
	volunteer.GET("/alumni/:rollNumber", h.Volunteer.GetAlumni)

	return r
}

func window(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
