// Package timeutil parses the wall-clock times agents type when scheduling
// messages.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultHour is the send time used when only a date is given.
const DefaultHour = 9

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ResolveLocation loads timezone, reporting whether it fell back to UTC.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return time.UTC, true
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC, true
	}
	return loc, false
}

// ParseScheduleTime accepts RFC3339 (its offset wins), a local date-time in
// timezone, or a bare date sent at DefaultHour. The result is in UTC.
func ParseScheduleTime(value, timezone string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("time value is required")
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	loc, _ := ResolveLocation(timezone)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}

	if d, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), DefaultHour, 0, 0, 0, loc).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %s", value)
}
