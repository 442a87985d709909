package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/intervalgen/domain/interval"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, 10000, cfg.MaxIntervals)
	assert.Equal(t, 4, cfg.BatchParallelism)
	assert.Equal(t, int64(1024), cfg.Cache.Size)
	assert.Equal(t, "*", cfg.API.CORSOrigins)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals; keep them in sync with the constants.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultMaxIntervals, cfg.MaxIntervals)
	assert.Equal(t, DefaultBatchParallelism, cfg.BatchParallelism)
	assert.Equal(t, int64(DefaultCacheSize), cfg.Cache.Size)
	assert.Equal(t, DefaultCORSOrigins, cfg.API.CORSOrigins)

	app, err := cfg.ToAppConfig()
	require.NoError(t, err)
	assert.Equal(t, NewAppConfig(), app)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("WEEK_START", "sunday")
	t.Setenv("MAX_INTERVALS", "12")
	t.Setenv("CACHE_SIZE", "0")
	t.Setenv("API_CORS_ORIGINS", "https://a.example, https://b.example")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg, err := env.ToAppConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, time.Sunday, cfg.Generation().WeekStart())
	assert.Equal(t, 12, cfg.Generation().MaxIntervals())
	assert.False(t, cfg.Cache().Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestLoadFromEnv_InvalidWeekStart(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("WEEK_START", "someday")

	env, err := LoadFromEnv()
	require.NoError(t, err)

	_, err = env.ToAppConfig()
	require.ErrorIs(t, err, interval.ErrInvalidFieldType)
}

func TestLoadFromEnv_InvalidInt(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "not-a-number")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("INTERVALGEN_PORT", "7000")

	cfg, err := LoadFromEnvWithPrefix("INTERVALGEN")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nWEEK_START=sat\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PORT")
		_ = os.Unsetenv("WEEK_START")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port())
	assert.Equal(t, time.Saturday, cfg.Generation().WeekStart())
}

func TestLoadConfig_EnvWinsOverDotEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "6000")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Port())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

// clearEnvVars unsets every variable EnvConfig reads, restoring them after the test.
func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"HOST",
		"PORT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"WEEK_START",
		"MAX_INTERVALS",
		"BATCH_PARALLELISM",
		"CACHE_SIZE",
		"API_CORS_ORIGINS",
		"INTERVALGEN_PORT",
	}

	for _, v := range vars {
		if old, ok := os.LookupEnv(v); ok {
			t.Setenv(v, old)
		}
		_ = os.Unsetenv(v)
	}
}
