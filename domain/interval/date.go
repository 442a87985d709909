package interval

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used for export.
const DateLayout = "2006-01-02"

// Date truncates t to its calendar date at midnight UTC. The calendar fields
// are taken as given in t's own location; the zero time stays zero, so any
// time on 0001-01-01 comes back as the zero time.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD). 0001-01-01 is
// rejected because it is indistinguishable from an unset date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be formatted as YYYY-MM-DD", ErrInvalidFieldType, s)
	}
	if t.IsZero() {
		return time.Time{}, errReservedDate()
	}
	return t, nil
}

// normalize is Date for input that may be unset. A set time that falls on
// 0001-01-01 fails instead of silently becoming unset.
func normalize(t time.Time) (time.Time, error) {
	d := Date(t)
	if d.IsZero() && !t.IsZero() {
		return time.Time{}, errReservedDate()
	}
	return d, nil
}

func errReservedDate() error {
	return fmt.Errorf("%w: 0001-01-01 is reserved for unset dates", ErrInvalidFieldType)
}

// FormatDate formats t as an ISO-8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseWeekday resolves a weekday name ("monday") or its three-letter
// abbreviation ("mon"), ignoring case.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if key == name || key == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", ErrInvalidFieldType, s)
}

// compareDates orders a and b by year, then month, then day.
func compareDates(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isMonthEnd reports whether t is the last day of its month.
func isMonthEnd(t time.Time) bool {
	return t.Day() == daysIn(t.Year(), t.Month())
}

// daysBetween returns the whole days from a to b; both must be normalized dates.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// monthsBetween returns the calendar months from a's month to b's month.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// addMonths returns the date months after anchor with end-of-month clamping.
// Days up to the 28th recur on the same day of the month. Later days recur
// the same number of days before month end as anchor sits in its own month,
// so a 31st anchor lands on the last day of every month.
func addMonths(anchor time.Time, months int) time.Time {
	y, m, d := anchor.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	ty, tm := target.Year(), target.Month()
	if d <= 28 {
		return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
	}
	fromEnd := daysIn(y, m) - d
	return time.Date(ty, tm, daysIn(ty, tm)-fromEnd, 0, 0, 0, 0, time.UTC)
}
