package service

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"

	"github.com/helixml/intervalgen/domain/interval"
)

// scheduleCache memoizes generated intervals keyed by a digest of the inputs.
// A nil cache never hits.
type scheduleCache struct {
	store *ristretto.Cache
}

func newScheduleCache(size int64) (*scheduleCache, error) {
	if size <= 0 {
		return nil, nil
	}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create schedule cache: %w", err)
	}
	return &scheduleCache{store: store}, nil
}

func (c *scheduleCache) get(key uint64) ([]interval.Value, bool) {
	if c == nil {
		return nil, false
	}
	raw, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	values, ok := raw.([]interval.Value)
	if !ok {
		return nil, false
	}
	result := make([]interval.Value, len(values))
	copy(result, values)
	return result, true
}

func (c *scheduleCache) set(key uint64, values []interval.Value) {
	if c == nil {
		return
	}
	stored := make([]interval.Value, len(values))
	copy(stored, values)
	c.store.Set(key, stored, 1)
}

// wait blocks until buffered writes are applied.
func (c *scheduleCache) wait() {
	if c == nil {
		return
	}
	c.store.Wait()
}

func (c *scheduleCache) close() {
	if c == nil {
		return
	}
	c.store.Close()
}

// cacheKey digests every input that affects generation.
func cacheKey(r Request, weekStart time.Weekday, maxIntervals int) uint64 {
	d := xxhash.New()
	_, _ = fmt.Fprintf(d, "%s|%s|%s|%d|%t|%d|%d",
		interval.FormatDate(r.begin), interval.FormatDate(r.end),
		r.granularity, r.repeatCount, r.fixed, weekStart, maxIntervals)
	return d.Sum64()
}
