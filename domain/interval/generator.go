package interval

import (
	"fmt"
	"time"
)

// DefaultWeekStart is the weekday fixed week intervals align to.
const DefaultWeekStart = time.Monday

// options holds the generation settings.
type options struct {
	repeatCount  int
	fixed        bool
	weekStart    time.Weekday
	maxIntervals int
}

// Option configures Generate.
type Option func(*options)

// WithRepeatCount sets how many granularity units each interval spans.
// For GranularityParts it is the number of parts to split the range into.
func WithRepeatCount(n int) Option {
	return func(o *options) { o.repeatCount = n }
}

// WithFixed selects calendar-aligned boundaries instead of boundaries
// anchored to the begin date. It has no effect for day and parts intervals.
func WithFixed(fixed bool) Option {
	return func(o *options) { o.fixed = fixed }
}

// WithWeekStart sets the weekday that starts a week for fixed week intervals.
func WithWeekStart(day time.Weekday) Option {
	return func(o *options) { o.weekStart = day }
}

// WithMaxIntervals makes Generate fail with ErrTooManyIntervals instead of
// returning more than n intervals. Zero means no limit.
func WithMaxIntervals(n int) Option {
	return func(o *options) { o.maxIntervals = n }
}

// span is an interval under construction.
type span struct {
	from    time.Time
	to      time.Time
	partial bool
}

// Generate partitions the inclusive range [begin, end] into contiguous,
// non-overlapping intervals of the given granularity. Times of day are
// discarded. Either the complete ordered list is returned or an error.
//
// In relative mode (the default) boundaries recur from begin and only the
// last interval may be partial. In fixed mode boundaries follow the calendar
// and both the first and the last interval may be partial, unless the whole
// range collapses into a single interval.
func Generate(begin, end time.Time, granularity Granularity, opts ...Option) ([]Value, error) {
	o := options{
		repeatCount: 1,
		weekStart:   DefaultWeekStart,
	}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := normalize(begin)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	e, err := normalize(end)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if b.IsZero() || e.IsZero() {
		return nil, fmt.Errorf("%w: begin and end dates are required", ErrInvalidRange)
	}
	if _, err := NewValue(b, e, false); err != nil {
		return nil, err
	}
	if o.repeatCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRepeatCount, o.repeatCount)
	}
	if o.weekStart < time.Sunday || o.weekStart > time.Saturday {
		return nil, fmt.Errorf("%w: week start %d is not a weekday", ErrInvalidFieldType, o.weekStart)
	}

	var spans []span
	n := o.repeatCount
	days := daysBetween(b, e)
	months := monthsBetween(b, e)
	switch granularity {
	case GranularityDay:
		spans, err = relative(b, e, dayStep(b, clampCount(n, days)), o.maxIntervals)
	case GranularityWeek:
		weeks := clampCount(n, days/7)
		if o.fixed {
			spans, err = fixed(b, e, weekCalendar(b, weeks, o.weekStart), o.maxIntervals)
		} else {
			spans, err = relative(b, e, dayStep(b, 7*weeks), o.maxIntervals)
		}
	case GranularityMonth:
		spans, err = monthly(b, e, clampCount(n, months), o, isMonthEnd)
	case GranularityQuarter:
		spans, err = monthly(b, e, 3*clampCount(n, months/3), o, isQuarterEnd)
	case GranularityYear:
		years := clampCount(n, e.Year()-b.Year())
		if o.fixed {
			spans, err = fixed(b, e, yearCalendar(b, years), o.maxIntervals)
		} else {
			spans, err = relative(b, e, monthStep(b, 12*years), o.maxIntervals)
		}
	case GranularityParts:
		spans, err = parts(b, e, n, o.maxIntervals)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGranularity, string(granularity))
	}
	if err != nil {
		return nil, err
	}

	values := make([]Value, len(spans))
	for i, s := range spans {
		v, err := NewValue(s.from, s.to, s.partial)
		if err != nil {
			return nil, fmt.Errorf("interval %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// clampCount caps a repeat count at span+2 units, where span is the range
// length in those units. Any larger count already yields a single interval
// overshooting end, so results are unchanged and step arithmetic cannot overflow.
func clampCount(n, span int) int {
	return min(n, span+2)
}

// stepFunc returns the first day of the k-th nominal interval.
type stepFunc func(k int) time.Time

func dayStep(anchor time.Time, days int) stepFunc {
	return func(k int) time.Time { return anchor.AddDate(0, 0, k*days) }
}

func monthStep(anchor time.Time, months int) stepFunc {
	return func(k int) time.Time { return addMonths(anchor, k*months) }
}

// relative emits intervals anchored at begin. The last interval is partial
// when end cuts it short of its nominal end, even if it is the only one.
func relative(begin, end time.Time, start stepFunc, limit int) ([]span, error) {
	var spans []span
	for k := 0; ; k++ {
		from := start(k)
		if from.After(end) {
			break
		}
		if limit > 0 && len(spans) >= limit {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyIntervals, limit)
		}
		to := start(k + 1).AddDate(0, 0, -1)
		partial := false
		if to.After(end) {
			to, partial = end, true
		}
		spans = append(spans, span{from: from, to: to, partial: partial})
	}
	return spans, nil
}

// calendar describes calendar-aligned blocks for fixed mode.
type calendar struct {
	// blockStart returns the first day of the k-th block; block 0 contains begin.
	blockStart stepFunc
	// isBlockEnd reports whether a day closes a complete block.
	isBlockEnd func(time.Time) bool
}

// fixed emits calendar-aligned intervals clipped to [begin, end]. The first
// interval is partial when begin is not a block start and the last when its
// end is not a block end. A single interval is never partial.
func fixed(begin, end time.Time, c calendar, limit int) ([]span, error) {
	var spans []span
	for k := 0; ; k++ {
		from := c.blockStart(k)
		if from.After(end) {
			break
		}
		if limit > 0 && len(spans) >= limit {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyIntervals, limit)
		}
		if from.Before(begin) {
			from = begin
		}
		to := c.blockStart(k + 1).AddDate(0, 0, -1)
		if to.After(end) {
			to = end
		}
		spans = append(spans, span{from: from, to: to})
	}

	if len(spans) > 1 {
		spans[0].partial = !spans[0].from.Equal(c.blockStart(0))
		last := len(spans) - 1
		spans[last].partial = !c.isBlockEnd(spans[last].to)
	}
	return spans, nil
}

func weekCalendar(begin time.Time, weeks int, weekStart time.Weekday) calendar {
	back := (int(begin.Weekday()) - int(weekStart) + 7) % 7
	first := begin.AddDate(0, 0, -back)
	lastDay := (weekStart + 6) % 7
	return calendar{
		blockStart: dayStep(first, 7*weeks),
		isBlockEnd: func(t time.Time) bool { return t.Weekday() == lastDay },
	}
}

func monthCalendar(begin time.Time, months int, isEnd func(time.Time) bool) calendar {
	first := time.Date(begin.Year(), begin.Month(), 1, 0, 0, 0, 0, time.UTC)
	return calendar{
		blockStart: monthStep(first, months),
		isBlockEnd: isEnd,
	}
}

func yearCalendar(begin time.Time, years int) calendar {
	first := time.Date(begin.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return calendar{
		blockStart: monthStep(first, 12*years),
		isBlockEnd: func(t time.Time) bool { return t.Month() == time.December && t.Day() == 31 },
	}
}

// monthly handles month and quarter intervals. isEnd is only consulted in
// fixed mode, to decide whether the trailing interval closes its block.
func monthly(begin, end time.Time, months int, o options, isEnd func(time.Time) bool) ([]span, error) {
	if o.fixed {
		return fixed(begin, end, monthCalendar(begin, months, isEnd), o.maxIntervals)
	}
	return relative(begin, end, monthStep(begin, months), o.maxIntervals)
}

// isQuarterEnd reports whether t is Mar 31, Jun 30, Sep 30 or Dec 31.
func isQuarterEnd(t time.Time) bool {
	return t.Month()%3 == 0 && isMonthEnd(t)
}

// parts splits the range into chunks of floor(days/count) days, at least one
// day each. When the division is not exact the number of chunks differs from
// count and the trailing chunk is partial.
func parts(begin, end time.Time, count, limit int) ([]span, error) {
	if count == 1 {
		return []span{{from: begin, to: end}}, nil
	}
	total := daysBetween(begin, end) + 1
	size := max(total/count, 1)
	return relative(begin, end, dayStep(begin, size), limit)
}
