package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/helixml/intervalgen/domain/interval"
)

// RequestOption configures a schedule request.
type RequestOption func(*Request)

// WithRepeatCount sets how many granularity units each interval spans.
func WithRepeatCount(n int) RequestOption {
	return func(r *Request) { r.repeatCount = n }
}

// WithFixed selects calendar-aligned boundaries.
func WithFixed(fixed bool) RequestOption {
	return func(r *Request) { r.fixed = fixed }
}

// WithWeekStart overrides the configured first day of the week.
func WithWeekStart(day time.Weekday) RequestOption {
	return func(r *Request) {
		r.weekStart = day
		r.weekStartSet = true
	}
}

// Request describes one date range to partition.
type Request struct {
	begin        time.Time
	end          time.Time
	granularity  interval.Granularity
	repeatCount  int
	fixed        bool
	weekStart    time.Weekday
	weekStartSet bool
}

// NewRequest creates a Request. Dates are truncated to calendar days.
func NewRequest(begin, end time.Time, granularity interval.Granularity, opts ...RequestOption) Request {
	r := Request{
		begin:       interval.Date(begin),
		end:         interval.Date(end),
		granularity: granularity,
		repeatCount: 1,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RequestParams holds the textual form of a Request as received by the CLI,
// HTTP and MCP surfaces.
type RequestParams struct {
	Begin       string
	End         string
	Granularity string
	Count       int
	Fixed       bool
	WeekStart   string
}

// ParseRequest validates params and builds a Request. Dates must be
// YYYY-MM-DD; an empty week start leaves the configured default in place.
func ParseRequest(p RequestParams) (Request, error) {
	begin, err := interval.ParseDate(strings.TrimSpace(p.Begin))
	if err != nil {
		return Request{}, fmt.Errorf("begin: %w", err)
	}
	end, err := interval.ParseDate(strings.TrimSpace(p.End))
	if err != nil {
		return Request{}, fmt.Errorf("end: %w", err)
	}
	if strings.TrimSpace(p.Granularity) == "" {
		return Request{}, fmt.Errorf("%w: granularity is required", interval.ErrInvalidFieldType)
	}
	granularity, err := interval.ParseGranularity(p.Granularity)
	if err != nil {
		return Request{}, err
	}

	opts := []RequestOption{WithRepeatCount(p.Count), WithFixed(p.Fixed)}
	if strings.TrimSpace(p.WeekStart) != "" {
		day, err := interval.ParseWeekday(p.WeekStart)
		if err != nil {
			return Request{}, fmt.Errorf("week_start: %w", err)
		}
		opts = append(opts, WithWeekStart(day))
	}
	return NewRequest(begin, end, granularity, opts...), nil
}

// Begin returns the first day of the range.
func (r Request) Begin() time.Time { return r.begin }

// End returns the last day of the range.
func (r Request) End() time.Time { return r.end }

// Granularity returns the requested interval kind.
func (r Request) Granularity() interval.Granularity { return r.granularity }

// RepeatCount returns the number of units per interval.
func (r Request) RepeatCount() int { return r.repeatCount }

// Fixed reports whether boundaries are calendar-aligned.
func (r Request) Fixed() bool { return r.fixed }

// WeekStart returns the requested week start and whether it was set.
func (r Request) WeekStart() (time.Weekday, bool) { return r.weekStart, r.weekStartSet }

// String renders the request for logs and errors.
func (r Request) String() string {
	mode := "relative"
	if r.fixed {
		mode = "fixed"
	}
	return fmt.Sprintf("%s..%s %s x%d %s",
		interval.FormatDate(r.begin), interval.FormatDate(r.end), r.granularity, r.repeatCount, mode)
}

// ScheduleResult holds the intervals generated for a Request.
type ScheduleResult struct {
	values      []interval.Value
	granularity interval.Granularity
	repeatCount int
	fixed       bool
	weekStart   time.Weekday
}

// Values returns a copy of the generated intervals in order.
func (r ScheduleResult) Values() []interval.Value {
	result := make([]interval.Value, len(r.values))
	copy(result, r.values)
	return result
}

// Records returns the structural export of every interval.
func (r ScheduleResult) Records() []interval.Record {
	records := make([]interval.Record, len(r.values))
	for i, v := range r.values {
		records[i] = v.ToRecord()
	}
	return records
}

// Count returns the number of intervals.
func (r ScheduleResult) Count() int { return len(r.values) }

// Granularity returns the interval kind that produced the result.
func (r ScheduleResult) Granularity() interval.Granularity { return r.granularity }

// RepeatCount returns the number of units per interval.
func (r ScheduleResult) RepeatCount() int { return r.repeatCount }

// Fixed reports whether boundaries were calendar-aligned.
func (r ScheduleResult) Fixed() bool { return r.fixed }

// WeekStart returns the week start used for generation.
func (r ScheduleResult) WeekStart() time.Weekday { return r.weekStart }
