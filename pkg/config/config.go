package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Search       SearchConfig
	Volunteer    VolunteerConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
}

type DatabaseConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	Name             string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	ConnectRetries   int
	MaxRetryInterval time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// HTTPConfig bounds the HTTP server.
type HTTPConfig struct {
	BodyLimitBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SearchConfig tunes directory search caching and export.
type SearchConfig struct {
	CacheEnabled  bool
	CacheTTL      time.Duration
	ExportMaxRows int
}

// VolunteerConfig holds the shared reviewer credential. An empty token locks
// every reviewer route.
type VolunteerConfig struct {
	Token string
}

// NotificationConfig configures moderation emails.
type NotificationConfig struct {
	Enabled           bool
	ModerationAddress string
	From              string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SendTimeout       time.Duration
	Workers           int
	BufferSize        int
	MaxRetries        int
	RetryDelay        time.Duration
}

// RateLimitConfig throttles anonymous update-request intake per client IP.
type RateLimitConfig struct {
	Enabled             bool
	UpdateRequestLimit  int
	UpdateRequestWindow time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:             v.GetString("DB_HOST"),
		Port:             v.GetInt("DB_PORT"),
		User:             v.GetString("DB_USER"),
		Password:         v.GetString("DB_PASSWORD"),
		Name:             v.GetString("DB_NAME"),
		SSLMode:          v.GetString("DB_SSL_MODE"),
		MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnectTimeout:   parseDuration(v.GetString("DB_CONNECT_TIMEOUT"), 5*time.Second),
		StatementTimeout: parseDuration(v.GetString("DB_STATEMENT_TIMEOUT"), 10*time.Second),
		ConnectRetries:   v.GetInt("DB_CONNECT_RETRIES"),
		MaxRetryInterval: parseDuration(v.GetString("DB_MAX_RETRY_INTERVAL"), 30*time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	bodyLimit := v.GetInt64("HTTP_BODY_LIMIT")
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20
	}
	cfg.HTTP = HTTPConfig{
		BodyLimitBytes:  bodyLimit,
		ReadTimeout:     parseDuration(v.GetString("HTTP_READ_TIMEOUT"), 15*time.Second),
		WriteTimeout:    parseDuration(v.GetString("HTTP_WRITE_TIMEOUT"), 30*time.Second),
		ShutdownTimeout: parseDuration(v.GetString("HTTP_SHUTDOWN_TIMEOUT"), 10*time.Second),
	}

	cfg.Search = SearchConfig{
		CacheEnabled:  v.GetBool("SEARCH_CACHE_ENABLED"),
		CacheTTL:      parseDuration(v.GetString("SEARCH_CACHE_TTL"), 2*time.Minute),
		ExportMaxRows: v.GetInt("EXPORT_MAX_ROWS"),
	}

	cfg.Volunteer = VolunteerConfig{
		Token: strings.TrimSpace(v.GetString("VOLUNTEER_TOKEN")),
	}

	cfg.Notification = NotificationConfig{
		Enabled:           v.GetBool("NOTIFY_ENABLED"),
		ModerationAddress: v.GetString("NOTIFY_MODERATION_ADDRESS"),
		From:              v.GetString("NOTIFY_FROM"),
		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPort:          v.GetInt("SMTP_PORT"),
		SMTPUser:          v.GetString("SMTP_USER"),
		SMTPPassword:      v.GetString("SMTP_PASSWORD"),
		SendTimeout:       parseDuration(v.GetString("NOTIFY_SEND_TIMEOUT"), 15*time.Second),
		Workers:           v.GetInt("NOTIFY_WORKERS"),
		BufferSize:        v.GetInt("NOTIFY_BUFFER_SIZE"),
		MaxRetries:        v.GetInt("NOTIFY_MAX_RETRIES"),
		RetryDelay:        parseDuration(v.GetString("NOTIFY_RETRY_DELAY"), 5*time.Second),
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled:             v.GetBool("RATE_LIMIT_ENABLED"),
		UpdateRequestLimit:  v.GetInt("RATE_LIMIT_UPDATE_REQUESTS"),
		UpdateRequestWindow: parseDuration(v.GetString("RATE_LIMIT_UPDATE_WINDOW"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "alumni_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "10s")
	v.SetDefault("DB_CONNECT_RETRIES", 5)
	v.SetDefault("DB_MAX_RETRY_INTERVAL", "30s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("HTTP_BODY_LIMIT", 1<<20)
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("SEARCH_CACHE_ENABLED", false)
	v.SetDefault("SEARCH_CACHE_TTL", "2m")
	v.SetDefault("EXPORT_MAX_ROWS", 1000)

	v.SetDefault("VOLUNTEER_TOKEN", "")

	v.SetDefault("NOTIFY_ENABLED", false)
	v.SetDefault("NOTIFY_MODERATION_ADDRESS", "")
	v.SetDefault("NOTIFY_FROM", "no-reply@localhost")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("NOTIFY_SEND_TIMEOUT", "15s")
	v.SetDefault("NOTIFY_WORKERS", 1)
	v.SetDefault("NOTIFY_BUFFER_SIZE", 64)
	v.SetDefault("NOTIFY_MAX_RETRIES", 2)
	v.SetDefault("NOTIFY_RETRY_DELAY", "5s")

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_UPDATE_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_UPDATE_WINDOW", "1h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// viper reports an absent explicit config file as a *fs.PathError rather than
// ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
