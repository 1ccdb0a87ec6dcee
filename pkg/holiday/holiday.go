package holiday

import (
	"fmt"
	"strings"
	"time"
)

type Holiday struct {
	Date time.Time
	Name string
	// Timezone limits the holiday to employees whose export timezone matches, e.g. "Africa/Nairobi".
	// Empty means the holiday applies to everyone.
	Timezone string
}

type day struct {
	year  int
	month time.Month
	day   int
}

// Calendar answers whether a shift date is a bank holiday. The zero value is an empty calendar.
type Calendar struct {
	byDay map[day][]Holiday
}

func NewCalendar(holidays []Holiday) *Calendar {
	c := &Calendar{byDay: make(map[day][]Holiday, len(holidays))}
	for _, h := range holidays {
		k := dayOf(h.Date)
		c.byDay[k] = append(c.byDay[k], h)
	}
	return c
}

// ParseDate parses a holiday date in the "2006-01-02" layout.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid holiday date %q: %w", s, err)
	}
	return d, nil
}

// IsHoliday reports whether the calendar day of date is a holiday for an employee in timezone.
func (c *Calendar) IsHoliday(date time.Time, timezone string) bool {
	_, ok := c.Find(date, timezone)
	return ok
}

func (c *Calendar) Find(date time.Time, timezone string) (Holiday, bool) {
	if c == nil {
		return Holiday{}, false
	}
	for _, h := range c.byDay[dayOf(date)] {
		if h.Timezone == "" || strings.EqualFold(h.Timezone, strings.TrimSpace(timezone)) {
			return h, true
		}
	}
	return Holiday{}, false
}

func (c *Calendar) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, hs := range c.byDay {
		n += len(hs)
	}
	return n
}

func dayOf(t time.Time) day {
	y, m, d := t.Date()
	return day{y, m, d}
}
