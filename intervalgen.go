// Package intervalgen provides a library for partitioning calendar date
// ranges into ordered sub-intervals.
//
// Basic usage:
//
//	client, err := intervalgen.New(
//	    intervalgen.WithWeekStart(time.Sunday),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Generate(ctx, service.NewRequest(
//	    begin, end, interval.GranularityMonth,
//	    service.WithFixed(true),
//	))
//
//	for _, v := range result.Values() {
//	    fmt.Println(v)
//	}
package intervalgen

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/helixml/intervalgen/application/service"
	"github.com/helixml/intervalgen/internal/config"
)

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = service.ErrClientClosed

// Client is the main entry point for the intervalgen library.
//
// Access services via struct fields:
//
//	client.Schedules.GenerateBatch(ctx, requests)
type Client struct {
	Schedules *service.Schedule

	logger *slog.Logger
	closed atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	client := &Client{logger: logger}

	schedules, err := service.NewSchedule(cfg.generation, cfg.cache, &client.closed, logger)
	if err != nil {
		return nil, err
	}
	client.Schedules = schedules

	logger.Debug("intervalgen client created",
		slog.String("week_start", cfg.generation.WeekStart().String()),
		slog.Int("max_intervals", cfg.generation.MaxIntervals()),
		slog.Int64("cache_size", cfg.cache.Size()),
	)
	return client, nil
}

// Generate partitions a single request. It is a shortcut for client.Schedules.Generate.
func (c *Client) Generate(ctx context.Context, req service.Request) (service.ScheduleResult, error) {
	return c.Schedules.Generate(ctx, req)
}

// Close releases the schedule cache. Further calls fail with ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	c.Schedules.Close()
	c.logger.Debug("intervalgen client closed")
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// IsClosed reports whether err was caused by using a closed client.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClientClosed)
}
