// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost             = "0.0.0.0"
	DefaultPort             = 8080
	DefaultLogLevel         = "INFO"
	DefaultWeekStart        = time.Monday
	DefaultMaxIntervals     = 10000
	DefaultCacheSize        = 1024
	DefaultBatchParallelism = 4
	DefaultCORSOrigins      = "*"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// GenerationConfig configures interval generation defaults and limits.
type GenerationConfig struct {
	weekStart        time.Weekday
	maxIntervals     int
	batchParallelism int
}

// NewGenerationConfig creates a new GenerationConfig with defaults.
func NewGenerationConfig() GenerationConfig {
	return GenerationConfig{
		weekStart:        DefaultWeekStart,
		maxIntervals:     DefaultMaxIntervals,
		batchParallelism: DefaultBatchParallelism,
	}
}

// WeekStart returns the weekday fixed week intervals align to.
func (g GenerationConfig) WeekStart() time.Weekday { return g.weekStart }

// MaxIntervals returns the largest number of intervals one request may produce.
// Zero means unlimited.
func (g GenerationConfig) MaxIntervals() int { return g.maxIntervals }

// BatchParallelism returns how many batch requests are generated concurrently.
func (g GenerationConfig) BatchParallelism() int { return g.batchParallelism }

// WithWeekStart returns a new config with the specified week start.
func (g GenerationConfig) WithWeekStart(day time.Weekday) GenerationConfig {
	g.weekStart = day
	return g
}

// WithMaxIntervals returns a new config with the specified limit.
// Negative values are clamped to zero (unlimited).
func (g GenerationConfig) WithMaxIntervals(n int) GenerationConfig {
	g.maxIntervals = max(n, 0)
	return g
}

// WithBatchParallelism returns a new config with the specified parallelism.
// Values <= 0 are clamped to 1.
func (g GenerationConfig) WithBatchParallelism(n int) GenerationConfig {
	g.batchParallelism = max(n, 1)
	return g
}

// CacheConfig configures the schedule cache.
type CacheConfig struct {
	size int64
}

// NewCacheConfig creates a new CacheConfig with defaults.
func NewCacheConfig() CacheConfig {
	return CacheConfig{size: DefaultCacheSize}
}

// Size returns the maximum number of cached schedules.
func (c CacheConfig) Size() int64 { return c.size }

// Enabled reports whether caching is enabled.
func (c CacheConfig) Enabled() bool { return c.size > 0 }

// WithSize returns a new config with the specified size. Zero disables the cache.
func (c CacheConfig) WithSize(n int64) CacheConfig {
	c.size = max(n, 0)
	return c
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host        string
	port        int
	logLevel    string
	logFormat   LogFormat
	generation  GenerationConfig
	cache       CacheConfig
	corsOrigins []string
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:        DefaultHost,
		port:        DefaultPort,
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		generation:  NewGenerationConfig(),
		cache:       NewCacheConfig(),
		corsOrigins: ParseList(DefaultCORSOrigins),
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the server address (host:port).
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Generation returns the generation config.
func (c AppConfig) Generation() GenerationConfig { return c.generation }

// Cache returns the cache config.
func (c AppConfig) Cache() CacheConfig { return c.cache }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	result := make([]string, len(c.corsOrigins))
	copy(result, c.corsOrigins)
	return result
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithGenerationConfig sets the generation config.
func WithGenerationConfig(g GenerationConfig) AppConfigOption {
	return func(c *AppConfig) { c.generation = g }
}

// WithCacheConfig sets the cache config.
func WithCacheConfig(cc CacheConfig) AppConfigOption {
	return func(c *AppConfig) { c.cache = cc }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.String("week_start", c.generation.WeekStart().String()),
		slog.Int("max_intervals", c.generation.MaxIntervals()),
		slog.Int("batch_parallelism", c.generation.BatchParallelism()),
		slog.Int64("cache_size", c.cache.Size()),
		slog.String("cors_origins", strings.Join(c.corsOrigins, ",")),
	}
}

// ParseList parses a comma-separated string, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
