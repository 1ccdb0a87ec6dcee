package week

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Number identifies an ISO 8601 week.
type Number struct {
	Week int
	Year int
}

// Start returns the first day of the week that contains date, as a calendar date at 00:00 UTC.
// Only the calendar day of date (in its own location) is used, so shifts recorded in
// different zones on the same local day always land in the same week.
func Start(date time.Time, firstDay time.Weekday) time.Time {
	if firstDay < time.Sunday || firstDay > time.Saturday {
		firstDay = time.Monday
	}
	year, month, day := date.Date()
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	delta := (int(d.Weekday()) - int(firstDay) + 7) % 7
	return d.AddDate(0, 0, -delta)
}

// NumberFromDate returns the ISO week number of the start of the week containing
// the provided date. A week start day earlier than Monday can shift the ISO week
// into the previous calendar week.
func NumberFromDate(date time.Time, firstDay time.Weekday) Number {
	year, week := Start(date, firstDay).ISOWeek()
	return Number{Year: year, Week: week}
}

// ParseNumber converts ISO week format ISO 8601 e.g. "2025-W03" to Number
func ParseNumber(isoWeek string) (Number, error) {
	parts := strings.Split(isoWeek, "-")
	if len(parts) != 2 || len(parts[1]) < 2 || parts[1][0] != 'W' {
		return Number{}, fmt.Errorf("invalid ISO week format: %s", isoWeek)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Number{}, fmt.Errorf("invalid year: %w", err)
	}
	w, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return Number{}, fmt.Errorf("invalid week: %w", err)
	}
	if w < 1 || w > 53 {
		return Number{}, fmt.Errorf("week out of range: %d", w)
	}
	return Number{Year: year, Week: w}, nil
}

// ParseWeekday accepts English weekday names, case-insensitive ("monday", "Sun" ...).
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) < 3 {
		return time.Monday, fmt.Errorf("invalid weekday: %q", s)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if full == name || full[:3] == name {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("invalid weekday: %q", s)
}

// Equal returns true when both the year and week match.
func (w Number) Equal(other Number) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// Before reports whether w refers to a week that occurs before other.
func (w Number) Before(other Number) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

// After reports whether w refers to a week that occurs after other.
func (w Number) After(other Number) bool {
	if w.Year != other.Year {
		return w.Year > other.Year
	}
	return w.Week > other.Week
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w Number) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
