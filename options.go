package intervalgen

import (
	"log/slog"
	"time"

	"github.com/helixml/intervalgen/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	logger     *slog.Logger
	generation config.GenerationConfig
	cache      config.CacheConfig
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		generation: config.NewGenerationConfig(),
		cache:      config.NewCacheConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithAppConfig applies the generation and cache settings of an AppConfig.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.generation = cfg.Generation()
		c.cache = cfg.Cache()
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithWeekStart sets the default first day of the week for fixed week intervals.
func WithWeekStart(day time.Weekday) Option {
	return func(c *clientConfig) {
		c.generation = c.generation.WithWeekStart(day)
	}
}

// WithMaxIntervals caps the number of intervals a single request may produce.
// Zero disables the limit.
func WithMaxIntervals(n int) Option {
	return func(c *clientConfig) {
		c.generation = c.generation.WithMaxIntervals(n)
	}
}

// WithCacheSize sets how many schedules are memoized. Zero disables the cache.
func WithCacheSize(n int64) Option {
	return func(c *clientConfig) {
		c.cache = c.cache.WithSize(n)
	}
}

// WithBatchParallelism sets how many batch requests are generated concurrently.
func WithBatchParallelism(n int) Option {
	return func(c *clientConfig) {
		c.generation = c.generation.WithBatchParallelism(n)
	}
}
