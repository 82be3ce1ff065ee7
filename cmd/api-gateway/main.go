package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/noah-isme/alumni-directory-api/api/swagger"
	"github.com/noah-isme/alumni-directory-api/internal/handler"
	"github.com/noah-isme/alumni-directory-api/internal/repository"
	"github.com/noah-isme/alumni-directory-api/internal/router"
	"github.com/noah-isme/alumni-directory-api/internal/service"
	"github.com/noah-isme/alumni-directory-api/pkg/cache"
	"github.com/noah-isme/alumni-directory-api/pkg/config"
	"github.com/noah-isme/alumni-directory-api/pkg/database"
	"github.com/noah-isme/alumni-directory-api/pkg/export"
	"github.com/noah-isme/alumni-directory-api/pkg/jobs"
	"github.com/noah-isme/alumni-directory-api/pkg/logger"
	"github.com/noah-isme/alumni-directory-api/pkg/mailer"
)

// @title Alumni Directory API
// @version 1.0.0
// @description Public alumni search and volunteer-moderated record corrections
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey VolunteerToken
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		os.Exit(reportFailure(logr, err))
	}
}

// reportFailure logs err and flushes the logger before the process exits,
// since os.Exit skips deferred calls.
func reportFailure(logr *zap.Logger, err error) int {
	logr.Error("server stopped with error", zap.Error(err))
	_ = logr.Sync()
	return 1
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectWithRetry(ctx, cfg.Database, nil, logr)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, search cache and rate limiting disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	alumniRepo := repository.NewAlumniRepository(db)
	updateRepo := repository.NewUpdateRequestRepository(db)

	var searchCache *service.CacheService
	if redisClient != nil {
		searchCache = service.NewCacheService(repository.NewCacheRepository(redisClient), metrics, "search", cfg.Search.CacheTTL, logr, cfg.Search.CacheEnabled)
	}

	var sender mailer.Sender = mailer.NewLogSender(logr)
	if cfg.Notification.Enabled {
		sender = mailer.NewSMTPSender(cfg.Notification)
	}
	notifier := service.NewNotificationService(sender, cfg.Notification.ModerationAddress, metrics, logr)
	queue := jobs.NewQueue("moderation-email", notifier.Handle, jobs.QueueConfig{
		Workers:    cfg.Notification.Workers,
		BufferSize: cfg.Notification.BufferSize,
		MaxRetries: cfg.Notification.MaxRetries,
		RetryDelay: cfg.Notification.RetryDelay,
		Logger:     logr,
	})
	notifier.UseQueue(queue)

	searchSvc := service.NewSearchService(alumniRepo, searchCache, metrics, cfg.Search.CacheTTL, logr)
	exportSvc := service.NewExportService(alumniRepo, cfg.Search.ExportMaxRows, logr, export.NewCSVExporter(), export.NewPDFExporter())
	updateSvc := service.NewUpdateRequestService(updateRepo, alumniRepo, validate, logr,
		service.WithModerationNotifier(notifier),
		service.WithSearchCache(searchCache),
		service.WithUpdateRequestMetrics(metrics),
	)

	var limiter *repository.RateLimitRepository
	if redisClient != nil {
		limiter = repository.NewRateLimitRepository(redisClient, "ratelimit:")
	} else if cfg.RateLimit.Enabled {
		logr.Warn("rate limiting enabled without redis, intake is not throttled")
	}

	opts := router.Options{Config: cfg, Logger: logr, MetricsSvc: metrics}
	if limiter != nil {
		opts.RateLimiter = limiter
	}
	engine := router.New(opts, router.Handlers{
		Search:        handler.NewSearchHandler(searchSvc),
		UpdateRequest: handler.NewUpdateRequestHandler(updateSvc),
		Volunteer:     handler.NewVolunteerHandler(updateSvc, exportSvc),
		Metrics:       handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	queue.Start(ctx)
	defer queue.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logr.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
