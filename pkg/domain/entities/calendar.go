package entities

import (
	"fmt"
	"time"
)

// Default operating window applied when an open day has no configured hours.
// The shop must not be blocked by missing configuration.
const (
	DefaultOpenHour  = 9
	DefaultCloseHour = 17
)

// DayHours is the open/close hour pair for a single weekday (0-24).
type DayHours struct {
	Start int
	End   int
}

// Hours returns the number of operating hours in the window.
func (d DayHours) Hours() int {
	return d.End - d.Start
}

// OperatingCalendar describes which weekdays the shop runs and the operating
// hours of each. It is loaded once per scheduling run and treated as
// immutable for the duration of the run.
type OperatingCalendar struct {
	DaysOpen map[time.Weekday]bool
	Hours    map[time.Weekday]DayHours
}

// NewOperatingCalendar creates a calendar from per-weekday open flags and
// hour windows. Hours entries for closed days are permitted and ignored.
func NewOperatingCalendar(daysOpen map[time.Weekday]bool, hours map[time.Weekday]DayHours) *OperatingCalendar {
	cal := &OperatingCalendar{
		DaysOpen: make(map[time.Weekday]bool, len(daysOpen)),
		Hours:    make(map[time.Weekday]DayHours, len(hours)),
	}
	for day, open := range daysOpen {
		cal.DaysOpen[day] = open
	}
	for day, h := range hours {
		cal.Hours[day] = h
	}
	return cal
}

// DefaultCalendar returns the Mon-Fri 9-17 calendar the original shop
// settings ship with.
func DefaultCalendar() *OperatingCalendar {
	daysOpen := map[time.Weekday]bool{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
		time.Saturday:  false,
		time.Sunday:    false,
	}
	hours := make(map[time.Weekday]DayHours, 7)
	for day, open := range daysOpen {
		if open {
			hours[day] = DayHours{Start: DefaultOpenHour, End: DefaultCloseHour}
		}
	}
	return NewOperatingCalendar(daysOpen, hours)
}

// IsOperatingDay reports whether the shop runs on the weekday of date.
func (c *OperatingCalendar) IsOperatingDay(date time.Time) bool {
	return c.DaysOpen[date.Weekday()]
}

// HasOperatingDay reports whether any weekday is open at all.
func (c *OperatingCalendar) HasOperatingDay() bool {
	for _, open := range c.DaysOpen {
		if open {
			return true
		}
	}
	return false
}

// HoursFor returns the operating window for the weekday of date, falling
// back to the 9-17 default when no window is configured.
func (c *OperatingCalendar) HoursFor(date time.Time) DayHours {
	if h, ok := c.Hours[date.Weekday()]; ok && h.End > h.Start {
		return h
	}
	return DayHours{Start: DefaultOpenHour, End: DefaultCloseHour}
}

// NextOperatingDayOnOrAfter scans forward at most seven days for an
// operating day. If every weekday is closed the input is returned
// unchanged; callers that cannot tolerate that degenerate state must
// reject the calendar via Validate before scheduling.
func (c *OperatingCalendar) NextOperatingDayOnOrAfter(date time.Time) time.Time {
	d := date
	for i := 0; i < 7; i++ {
		if c.IsOperatingDay(d) {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return date
}

// Validate checks the calendar invariants: at least one open weekday, and
// end > start for every open day that has configured hours.
func (c *OperatingCalendar) Validate() error {
	if !c.HasOperatingDay() {
		return fmt.Errorf("operating calendar has no open days")
	}
	for day, open := range c.DaysOpen {
		if !open {
			continue
		}
		h, ok := c.Hours[day]
		if !ok {
			continue // defaulted by HoursFor
		}
		if h.Start < 0 || h.End > 24 {
			return fmt.Errorf("%s hours out of range: %d-%d", day, h.Start, h.End)
		}
		if h.End <= h.Start {
			return fmt.Errorf("%s closes at %d before it opens at %d", day, h.End, h.Start)
		}
	}
	return nil
}
