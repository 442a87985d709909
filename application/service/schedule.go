// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/helixml/intervalgen/domain/interval"
	"github.com/helixml/intervalgen/internal/config"
)

// Schedule generates interval schedules, memoizing results and running
// batches concurrently.
type Schedule struct {
	generation config.GenerationConfig
	cache      *scheduleCache
	closed     *atomic.Bool
	logger     *slog.Logger
}

// NewSchedule creates a new Schedule service. A cache size of zero disables memoization.
func NewSchedule(
	generation config.GenerationConfig,
	cacheCfg config.CacheConfig,
	closed *atomic.Bool,
	logger *slog.Logger,
) (*Schedule, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := newScheduleCache(cacheCfg.Size())
	if err != nil {
		return nil, err
	}
	return &Schedule{
		generation: generation,
		cache:      cache,
		closed:     closed,
		logger:     logger,
	}, nil
}

// Generate partitions the request's range into intervals.
func (s *Schedule) Generate(ctx context.Context, req Request) (ScheduleResult, error) {
	if s.closed != nil && s.closed.Load() {
		return ScheduleResult{}, ErrClientClosed
	}
	if err := ctx.Err(); err != nil {
		return ScheduleResult{}, err
	}

	weekStart, ok := req.WeekStart()
	if !ok {
		weekStart = s.generation.WeekStart()
	}
	maxIntervals := s.generation.MaxIntervals()

	result := ScheduleResult{
		granularity: req.granularity,
		repeatCount: req.repeatCount,
		fixed:       req.fixed,
		weekStart:   weekStart,
	}

	key := cacheKey(req, weekStart, maxIntervals)
	if values, hit := s.cache.get(key); hit {
		result.values = values
		s.logger.Debug("schedule generated", "request", req.String(), "intervals", len(values), "cache_hit", true)
		return result, nil
	}

	values, err := interval.Generate(req.begin, req.end, req.granularity,
		interval.WithRepeatCount(req.repeatCount),
		interval.WithFixed(req.fixed),
		interval.WithWeekStart(weekStart),
		interval.WithMaxIntervals(maxIntervals),
	)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("generate schedule: %w", err)
	}
	s.cache.set(key, values)

	result.values = values
	s.logger.Debug("schedule generated", "request", req.String(), "intervals", len(values), "cache_hit", false)
	return result, nil
}

// GenerateBatch generates every request concurrently and returns the results
// in request order. The first failure cancels the remaining work.
func (s *Schedule) GenerateBatch(ctx context.Context, reqs []Request) ([]ScheduleResult, error) {
	if s.closed != nil && s.closed.Load() {
		return nil, ErrClientClosed
	}

	results := make([]ScheduleResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.generation.BatchParallelism(), 1))

	for i, req := range reqs {
		g.Go(func() error {
			result, err := s.Generate(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("schedule batch generated", "requests", len(reqs))
	return results, nil
}

// Close releases the cache.
func (s *Schedule) Close() {
	s.cache.close()
}
