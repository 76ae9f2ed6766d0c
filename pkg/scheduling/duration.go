package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

var (
	// ErrInvalidQuantity rejects jobs with quantity < 1 at the boundary.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrNoOperatingDays is the configuration error for a calendar with
	// every weekday closed.
	ErrNoOperatingDays = errors.New("operating calendar has no open days")
)

// Duration is the outcome of the duration model for one job.
//
// TotalHours is the flat setup + quantity*cycle sum used for capacity
// bookkeeping; it is independent of how the work splits across days.
// WorkingDays counts the operating days the job touches; non-operating
// days advance the calendar but are not counted. LastDay is the calendar
// day the final unit completes on.
type Duration struct {
	TotalHours  decimal.Decimal
	WorkingDays int
	LastDay     time.Time
	Estimated   bool
}

// UnitsForDay returns how many units of a job fit into one operating day.
// On the first working day the setup hours come off the top (clamped at
// zero, so a setup longer than the day yields zero units that day). Every
// later full day guarantees progress of at least one unit, so a cycle time
// longer than the operating window cannot stall the walk.
func UnitsForDay(timing entities.PartTiming, hours entities.DayHours, firstDay bool) int {
	cycle := timing.EffectiveCycleHours()
	avail := decimal.NewFromInt(int64(hours.Hours()))
	if firstDay {
		avail = avail.Sub(timing.SetupHours)
		if avail.IsNegative() {
			avail = decimal.Zero
		}
	}
	units := avail.Div(cycle).Floor().IntPart()
	if !firstDay && units < 1 {
		units = 1
	}
	return int(units)
}

// ComputeDuration converts a job's quantity and part timing into elapsed
// shop-operating time starting at startDate. The walk visits operating
// days only, consuming setup on the first of them, and stops on the day
// cumulative units reach the quantity; the final partial day consumes only
// the hours its remaining units need.
func ComputeDuration(timing entities.PartTiming, quantity int, cal *entities.OperatingCalendar, startDate time.Time) (Duration, error) {
	if quantity < 1 {
		return Duration{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if !cal.HasOperatingDay() {
		return Duration{}, ErrNoOperatingDays
	}

	cycle := timing.EffectiveCycleHours()
	total := timing.SetupHours.Add(cycle.Mul(decimal.NewFromInt(int64(quantity))))

	day := cal.NextOperatingDayOnOrAfter(startDate)
	produced := 0
	workingDays := 0
	first := true
	for {
		if cal.IsOperatingDay(day) {
			workingDays++
			produced += UnitsForDay(timing, cal.HoursFor(day), first)
			first = false
			if produced >= quantity {
				break
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return Duration{
		TotalHours:  total,
		WorkingDays: workingDays,
		LastDay:     day,
		Estimated:   timing.Estimated,
	}, nil
}
