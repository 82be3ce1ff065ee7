package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no local .env leaks in.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 5, cfg.Database.ConnectRetries)
	assert.Equal(t, 10*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.BodyLimitBytes)
	assert.Equal(t, 2*time.Minute, cfg.Search.CacheTTL)
	assert.Equal(t, 1000, cfg.Search.ExportMaxRows)
	assert.Empty(t, cfg.Volunteer.Token)
	assert.False(t, cfg.Notification.Enabled)
	assert.Equal(t, time.Hour, cfg.RateLimit.UpdateRequestWindow)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("PORT", "8080")
	t.Setenv("VOLUNTEER_TOKEN", "  reviewer-secret  ")
	t.Setenv("ALLOWED_ORIGINS", "https://alumni.example.org, ,https://admin.example.org")
	t.Setenv("SEARCH_CACHE_TTL", "30s")
	t.Setenv("DB_CONNECT_TIMEOUT", "not-a-duration")
	t.Setenv("HTTP_BODY_LIMIT", "-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "reviewer-secret", cfg.Volunteer.Token)
	assert.Equal(t, []string{"https://alumni.example.org", "https://admin.example.org"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Search.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.BodyLimitBytes)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTIFY_MODERATION_ADDRESS=mods@example.org\nRATE_LIMIT_UPDATE_REQUESTS=3\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("NOTIFY_MODERATION_ADDRESS")
		os.Unsetenv("RATE_LIMIT_UPDATE_REQUESTS")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mods@example.org", cfg.Notification.ModerationAddress)
	assert.Equal(t, 3, cfg.RateLimit.UpdateRequestLimit)
}
