// Package interval partitions calendar date ranges into ordered sub-intervals.
package interval

import (
	"encoding/json"
	"fmt"
	"time"
)

// Value is one generated sub-interval: an inclusive calendar date range and
// whether it spans less than the nominal length for its granularity.
// Dates are held at midnight UTC, so two equal values also compare equal with ==.
// An unset date is the zero time, which makes 0001-01-01 unrepresentable;
// setters reject it with ErrInvalidFieldType.
type Value struct {
	begin      time.Time
	end        time.Time
	partial    bool
	partialSet bool
}

// NewValue creates a fully populated Value.
func NewValue(begin, end time.Time, partial bool) (Value, error) {
	var v Value
	if err := v.SetRange(begin, end); err != nil {
		return Value{}, err
	}
	v.SetPartial(partial)
	return v, nil
}

// SetRange assigns the begin and end dates, discarding any time of day.
// A zero time leaves that side untouched. When both sides end up set, begin
// must not fall after end; on failure the value is left unchanged.
func (v *Value) SetRange(begin, end time.Time) error {
	b, err := normalize(begin)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	e, err := normalize(end)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	checkBegin, checkEnd := b, e
	if checkBegin.IsZero() {
		checkBegin = v.begin
	}
	if checkEnd.IsZero() {
		checkEnd = v.end
	}
	if !checkBegin.IsZero() && !checkEnd.IsZero() && compareDates(checkBegin, checkEnd) > 0 {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange, FormatDate(checkBegin), FormatDate(checkEnd))
	}

	if !b.IsZero() {
		v.begin = b
	}
	if !e.IsZero() {
		v.end = e
	}
	return nil
}

// SetPartial marks whether the interval is partial.
func (v *Value) SetPartial(partial bool) {
	v.partial = partial
	v.partialSet = true
}

// BeginDate returns the first day of the interval, or the zero time when unset.
func (v Value) BeginDate() time.Time { return v.begin }

// EndDate returns the last day of the interval, or the zero time when unset.
func (v Value) EndDate() time.Time { return v.end }

// HasBegin reports whether the begin date is set.
func (v Value) HasBegin() bool { return !v.begin.IsZero() }

// HasEnd reports whether the end date is set.
func (v Value) HasEnd() bool { return !v.end.IsZero() }

// Partial reports whether the interval is shorter than its nominal span.
func (v Value) Partial() bool { return v.partial }

// PartialSet reports whether the partial flag has been assigned.
func (v Value) PartialSet() bool { return v.partialSet }

// Days returns the inclusive number of days covered, or 0 when a side is unset.
func (v Value) Days() int {
	if !v.HasBegin() || !v.HasEnd() {
		return 0
	}
	return daysBetween(v.begin, v.end) + 1
}

// Equal reports whether both values hold the same dates and partial flag.
func (v Value) Equal(other Value) bool {
	return v.begin.Equal(other.begin) &&
		v.end.Equal(other.end) &&
		v.partial == other.partial &&
		v.partialSet == other.partialSet
}

// String renders the interval as "begin..end", suffixed with "*" when partial.
func (v Value) String() string {
	s := dateOrPlaceholder(v.begin) + ".." + dateOrPlaceholder(v.end)
	if v.partial {
		s += "*"
	}
	return s
}

func dateOrPlaceholder(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return FormatDate(t)
}

// Record is the plain structural export of a Value. Unset fields are nil.
type Record struct {
	BeginDate *string `json:"begin_date" yaml:"begin_date"`
	EndDate   *string `json:"end_date" yaml:"end_date"`
	IsPartial *bool   `json:"is_partial" yaml:"is_partial"`
}

// ToRecord exports the value with dates formatted as YYYY-MM-DD.
func (v Value) ToRecord() Record {
	var r Record
	if v.HasBegin() {
		s := FormatDate(v.begin)
		r.BeginDate = &s
	}
	if v.HasEnd() {
		s := FormatDate(v.end)
		r.EndDate = &s
	}
	if v.partialSet {
		p := v.partial
		r.IsPartial = &p
	}
	return r
}

// FromRecord rebuilds a Value from its structural export.
func FromRecord(r Record) (Value, error) {
	var begin, end time.Time
	var err error
	if r.BeginDate != nil {
		if begin, err = ParseDate(*r.BeginDate); err != nil {
			return Value{}, fmt.Errorf("begin_date: %w", err)
		}
	}
	if r.EndDate != nil {
		if end, err = ParseDate(*r.EndDate); err != nil {
			return Value{}, fmt.Errorf("end_date: %w", err)
		}
	}

	var v Value
	if err := v.SetRange(begin, end); err != nil {
		return Value{}, err
	}
	if r.IsPartial != nil {
		v.SetPartial(*r.IsPartial)
	}
	return v, nil
}

// ToMap exports the value as a map of primitive values keyed by field name.
func (v Value) ToMap() map[string]any {
	r := v.ToRecord()
	m := map[string]any{
		"begin_date": nil,
		"end_date":   nil,
		"is_partial": nil,
	}
	if r.BeginDate != nil {
		m["begin_date"] = *r.BeginDate
	}
	if r.EndDate != nil {
		m["end_date"] = *r.EndDate
	}
	if r.IsPartial != nil {
		m["is_partial"] = *r.IsPartial
	}
	return m
}

// FromMap rebuilds a Value from a map. Dates may be YYYY-MM-DD strings or
// time.Time values; is_partial must be a bool. Unknown keys and values of
// any other kind fail with ErrInvalidFieldType.
func FromMap(m map[string]any) (Value, error) {
	var r Record
	for key, raw := range m {
		switch key {
		case "begin_date":
			s, err := dateField(key, raw)
			if err != nil {
				return Value{}, err
			}
			r.BeginDate = s
		case "end_date":
			s, err := dateField(key, raw)
			if err != nil {
				return Value{}, err
			}
			r.EndDate = s
		case "is_partial":
			switch p := raw.(type) {
			case nil:
			case bool:
				r.IsPartial = &p
			default:
				return Value{}, fmt.Errorf("%w: is_partial must be a bool, got %T", ErrInvalidFieldType, raw)
			}
		default:
			return Value{}, fmt.Errorf("%w: unknown field %q", ErrInvalidFieldType, key)
		}
	}
	return FromRecord(r)
}

func dateField(key string, raw any) (*string, error) {
	switch d := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &d, nil
	case time.Time:
		if d.IsZero() {
			return nil, nil
		}
		s := FormatDate(Date(d))
		return &s, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a date, got %T", ErrInvalidFieldType, key, raw)
	}
}

// MarshalJSON encodes the value as its Record.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToRecord())
}

// UnmarshalJSON decodes a Record and validates it.
func (v *Value) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFieldType, err)
	}
	decoded, err := FromRecord(r)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalYAML encodes the value as its Record.
func (v Value) MarshalYAML() (any, error) {
	return v.ToRecord(), nil
}
