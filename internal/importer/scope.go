package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// autoLookbackDays is the rolling window used by the "auto" scope when no
// persisted sync cursor is available.
const autoLookbackDays = 89

// Window is the half-open time interval [Since, Until) an import run covers.
type Window struct {
	Since time.Time
	Until time.Time
}

var literalDateRe = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])-(0[1-9]|[1-2][0-9]|3[0-1])$`)

// rangeLayouts are the accepted forms for the endpoints of a start>end scope.
var rangeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolveScope turns a scope expression into a concrete window relative to
// now. Recognized forms: today, yesterday, last_week, auto, a literal
// YYYY-MM-DD date, and a start>end range.
//
// Both today and yesterday cover their full calendar day through
// 23:59:59.999; only auto ends at the live clock. Range endpoints are used
// verbatim, all other forms are normalized to whole-day boundaries.
func ResolveScope(scope string, now time.Time) (Window, error) {
	switch scope {
	case "today":
		return dayWindow(now), nil

	case "yesterday":
		return dayWindow(now.AddDate(0, 0, -1)), nil

	case "last_week":
		// Monday through Sunday of the previous ISO week.
		weekday := int(now.Weekday()+6) % 7
		monday := startOfDay(now).AddDate(0, 0, -weekday-7)
		return Window{Since: monday, Until: endOfDay(monday.AddDate(0, 0, 6))}, nil

	case "auto":
		return Window{
			Since: startOfDay(now.AddDate(0, 0, -autoLookbackDays)),
			Until: now,
		}, nil
	}

	if strings.Contains(scope, ">") {
		parts := strings.SplitN(scope, ">", 2)

		since, err := parseRangeEndpoint(parts[0], now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidScope, scope, err)
		}
		until, err := parseRangeEndpoint(parts[1], now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidScope, scope, err)
		}
		if until.Before(since) {
			return Window{}, fmt.Errorf("%w: %q: end precedes start", ErrInvalidScope, scope)
		}

		// Range endpoints are taken verbatim, no day-boundary normalization.
		return Window{Since: since, Until: until}, nil
	}

	if literalDateRe.MatchString(scope) {
		day, err := time.ParseInLocation("2006-01-02", scope, now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidScope, scope, err)
		}
		return dayWindow(day), nil
	}

	return Window{}, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
}

func parseRangeEndpoint(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range rangeLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q", value)
}

func dayWindow(t time.Time) Window {
	return Window{Since: startOfDay(t), Until: endOfDay(t)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is the day's last millisecond, 23:59:59.999.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}
