package config

import (
	"fmt"
	"strings"

	"github.com/helixml/intervalgen/domain/interval"
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., CACHE_SIZE).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// WeekStart is the weekday fixed week intervals align to.
	// Env: WEEK_START (default: monday)
	WeekStart string `envconfig:"WEEK_START" default:"monday"`

	// MaxIntervals caps the intervals a single request may produce (0 = unlimited).
	// Env: MAX_INTERVALS (default: 10000)
	MaxIntervals int `envconfig:"MAX_INTERVALS" default:"10000"`

	// BatchParallelism is the number of batch requests generated concurrently.
	// Env: BATCH_PARALLELISM (default: 4)
	BatchParallelism int `envconfig:"BATCH_PARALLELISM" default:"4"`

	// Cache configures the schedule cache.
	Cache CacheEnv `envconfig:"CACHE"`

	// API configures the HTTP API.
	API APIEnv `envconfig:"API"`
}

// CacheEnv holds environment configuration for the schedule cache.
type CacheEnv struct {
	// Size is the number of schedules to keep; 0 disables caching.
	// Env: CACHE_SIZE (default: 1024)
	Size int64 `envconfig:"SIZE" default:"1024"`
}

// APIEnv holds environment configuration for the HTTP API.
type APIEnv struct {
	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: API_CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "INTERVALGEN" would require INTERVALGEN_PORT instead of PORT.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() (AppConfig, error) {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	generation := NewGenerationConfig().
		WithMaxIntervals(e.MaxIntervals).
		WithBatchParallelism(e.BatchParallelism)
	if e.WeekStart != "" {
		day, err := interval.ParseWeekday(e.WeekStart)
		if err != nil {
			return AppConfig{}, fmt.Errorf("WEEK_START: %w", err)
		}
		generation = generation.WithWeekStart(day)
	}
	cfg = applyOption(cfg, WithGenerationConfig(generation))

	cfg = applyOption(cfg, WithCacheConfig(NewCacheConfig().WithSize(e.Cache.Size)))

	if e.API.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.API.CORSOrigins)))
	}

	return cfg, nil
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
