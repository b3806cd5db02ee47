package deliveries

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing raw timestamp strings.
// Layouts without an explicit offset are interpreted as UTC, matching the
// upstream API which emits timestamptz values in UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// dateOnlyLayouts carry no time-of-day, so they already name a local calendar
// day and are parsed in the target zone directly. This keeps a re-ingested
// CSV export in the same delivery-date buckets it was exported from.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// ToLocal converts an arbitrary raw timestamp value into a local-zone instant
// and the local calendar day (midnight in loc). Parse failures, nil values and
// unsupported types yield two zero times; this function never fails.
//
// The calendar day is derived AFTER the zone conversion so that a timestamp
// just past UTC midnight buckets to the previous local day.
func ToLocal(raw any, loc *time.Location) (instant time.Time, day time.Time) {
	var t time.Time

	switch v := raw.(type) {
	case nil:
		return time.Time{}, time.Time{}
	case time.Time:
		t = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, time.Time{}
		}
		for _, layout := range timestampLayouts {
			parsed, err := time.ParseInLocation(layout, s, time.UTC)
			if err == nil {
				t = parsed
				break
			}
		}
		if t.IsZero() {
			for _, layout := range dateOnlyLayouts {
				parsed, err := time.ParseInLocation(layout, s, loc)
				if err == nil {
					t = parsed
					break
				}
			}
		}
		if t.IsZero() {
			return time.Time{}, time.Time{}
		}
	default:
		return time.Time{}, time.Time{}
	}

	instant = t.In(loc)
	day = time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, loc)
	return instant, day
}

// DayOf truncates a local instant to midnight in loc. Zero in, zero out.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
