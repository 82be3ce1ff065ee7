package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/pkg/config"
)

// DSN renders the lib/pq connection string. Connection and statement timeouts
// are owned by the driver so no store call can block indefinitely.
func DSN(cfg config.DatabaseConfig) string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	if cfg.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", int(cfg.ConnectTimeout.Seconds()))
	}
	if cfg.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", cfg.StatementTimeout.Milliseconds())
	}
	return dsn
}

// NewPostgres returns a configured PostgreSQL client after a single ping.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

var initialRetryInterval = 500 * time.Millisecond

// Connector opens a database handle; swapped out in tests.
type Connector func(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error)

// ConnectWithRetry retries connect with capped exponential backoff. It gives up
// after cfg.ConnectRetries attempts; callers treat that as fatal.
func ConnectWithRetry(ctx context.Context, cfg config.DatabaseConfig, connect Connector, logger *zap.Logger) (*sqlx.DB, error) {
	if connect == nil {
		connect = NewPostgres
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 1
	}
	maxInterval := cfg.MaxRetryInterval
	if maxInterval <= 0 {
		maxInterval = 30 * time.Second
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialRetryInterval
	policy.MaxInterval = maxInterval
	policy.Reset()

	attempt := 0
	db, err := backoff.Retry(ctx, func() (*sqlx.DB, error) {
		attempt++
		return connect(ctx, cfg)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("database connection failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
				zap.Duration("next_retry_in", next),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres after %d attempts: %w", attempt, err)
	}
	logger.Info("database connected", zap.String("host", cfg.Host), zap.Int("port", cfg.Port), zap.String("dbname", cfg.Name))
	return db, nil
}
