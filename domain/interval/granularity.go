package interval

import (
	"fmt"
	"strings"
)

// Granularity is the unit of recurrence used to partition a date range.
type Granularity string

// Granularity values.
const (
	GranularityYear    Granularity = "year"
	GranularityQuarter Granularity = "quarter"
	GranularityMonth   Granularity = "month"
	GranularityWeek    Granularity = "week"
	GranularityDay     Granularity = "day"
	GranularityParts   Granularity = "parts"
)

// granularityCodes maps the single-letter shorthands to their granularity.
var granularityCodes = map[string]Granularity{
	"y": GranularityYear,
	"q": GranularityQuarter,
	"m": GranularityMonth,
	"w": GranularityWeek,
	"d": GranularityDay,
	"p": GranularityParts,
}

// Granularities returns every supported granularity, coarsest first.
func Granularities() []Granularity {
	return []Granularity{
		GranularityYear,
		GranularityQuarter,
		GranularityMonth,
		GranularityWeek,
		GranularityDay,
		GranularityParts,
	}
}

// ParseGranularity resolves a granularity name or single-letter code,
// ignoring case and surrounding whitespace.
func ParseGranularity(s string) (Granularity, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if g, ok := granularityCodes[key]; ok {
		return g, nil
	}
	g := Granularity(key)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedGranularity, s)
	}
	return g, nil
}

// String returns the string representation of the granularity.
func (g Granularity) String() string {
	return string(g)
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityYear, GranularityQuarter, GranularityMonth,
		GranularityWeek, GranularityDay, GranularityParts:
		return true
	default:
		return false
	}
}

// Calendar reports whether fixed mode changes the boundaries for g.
// Day and parts intervals always anchor to the begin date.
func (g Granularity) Calendar() bool {
	return g != GranularityDay && g != GranularityParts
}
