package jsonapi

import (
	"strconv"

	"github.com/helixml/intervalgen/application/service"
	"github.com/helixml/intervalgen/domain/interval"
)

// TypeInterval is the resource type of a generated interval.
const TypeInterval = "interval"

// IntervalResources converts intervals to resources with 1-based positional ids.
func IntervalResources(values []interval.Value) []*Resource {
	resources := make([]*Resource, len(values))
	for i, v := range values {
		resources[i] = NewResource(TypeInterval, strconv.Itoa(i+1), v.ToRecord())
	}
	return resources
}

// ScheduleMeta describes the inputs that produced a schedule.
func ScheduleMeta(result service.ScheduleResult) *Meta {
	return &Meta{
		"granularity":  result.Granularity().String(),
		"repeat_count": result.RepeatCount(),
		"fixed":        result.Fixed(),
		"week_start":   result.WeekStart().String(),
		"count":        result.Count(),
	}
}

// NewScheduleResponse creates a document listing a schedule's intervals.
func NewScheduleResponse(result service.ScheduleResult) *Document {
	doc := NewListResponse(IntervalResources(result.Values()))
	doc.Meta = ScheduleMeta(result)
	return doc
}
