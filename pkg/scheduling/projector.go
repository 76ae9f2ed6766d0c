package scheduling

import (
	"errors"
	"time"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// ErrJobNotScheduled is returned when a projection is requested for a job
// without committed start and end dates.
var ErrJobNotScheduled = errors.New("job is not scheduled")

// dateOnly truncates a timestamp to its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UnitsCompletedBy returns how many units of a scheduled job should be
// complete by the end of the given date. The projection walks the same
// per-day capacities the duration model used to produce the schedule, so
// the two can never disagree: at the scheduled end date the result is
// exactly the job quantity.
func UnitsCompletedBy(job *entities.Job, timing entities.PartTiming, cal *entities.OperatingCalendar, date time.Time) (int, error) {
	if !job.Scheduled() {
		return 0, ErrJobNotScheduled
	}
	start := dateOnly(*job.ScheduledStart)
	end := dateOnly(*job.ScheduledEnd)
	day := dateOnly(date)

	if day.Before(start) {
		return 0, nil
	}
	if day.After(end) {
		return job.Quantity, nil
	}

	completed := 0
	first := true
	for d := start; !d.After(day); d = d.AddDate(0, 0, 1) {
		if !cal.IsOperatingDay(d) {
			continue
		}
		units := UnitsForDay(timing, cal.HoursFor(d), first)
		first = false
		remaining := job.Quantity - completed
		if units > remaining {
			units = remaining
		}
		completed += units
		if completed >= job.Quantity {
			break
		}
	}
	return completed, nil
}

// UnitsPlannedOn returns how many units of a scheduled job are planned for
// one specific day: the day's capacity, capped at whatever was still
// outstanding the evening before. Closed days and days outside the
// scheduled window plan zero.
func UnitsPlannedOn(job *entities.Job, timing entities.PartTiming, cal *entities.OperatingCalendar, date time.Time) (int, error) {
	if !job.Scheduled() {
		return 0, ErrJobNotScheduled
	}
	start := dateOnly(*job.ScheduledStart)
	end := dateOnly(*job.ScheduledEnd)
	day := dateOnly(date)

	if day.Before(start) || day.After(end) || !cal.IsOperatingDay(day) {
		return 0, nil
	}

	completedByYesterday, err := UnitsCompletedBy(job, timing, cal, day.AddDate(0, 0, -1))
	if err != nil {
		return 0, err
	}
	remaining := job.Quantity - completedByYesterday
	if remaining <= 0 {
		return 0, nil
	}

	// First operating day of the job carries the setup penalty.
	firstOperating := cal.NextOperatingDayOnOrAfter(start)
	units := UnitsForDay(timing, cal.HoursFor(day), day.Equal(firstOperating))
	if units > remaining {
		units = remaining
	}
	return units, nil
}
