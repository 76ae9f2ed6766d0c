package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// scheduleJob runs the duration model and stamps the job the way the
// auto-scheduler would, so projections are checked against a schedule
// produced from the same calendar and timing inputs.
func scheduleJob(t *testing.T, job *entities.Job, timing entities.PartTiming, cal *entities.OperatingCalendar, start time.Time) {
	t.Helper()
	dur, err := ComputeDuration(timing, job.Quantity, cal, start)
	require.NoError(t, err)
	first := cal.NextOperatingDayOnOrAfter(start)
	s := atHour(first, cal.HoursFor(first).Start)
	e := atHour(dur.LastDay, cal.HoursFor(dur.LastDay).End)
	job.Machine = "mill-1"
	job.ScheduledStart = &s
	job.ScheduledEnd = &e
}

func TestUnitsCompletedBy_ExactAtScheduledEnd(t *testing.T) {
	cal := monFriCalendar()
	pt := timing(t, 1, 0.5)
	job := &entities.Job{ID: "J1", PartNumber: "P-100", Quantity: 20}
	scheduleJob(t, job, pt, cal, monday)

	got, err := UnitsCompletedBy(job, pt, cal, *job.ScheduledEnd)
	require.NoError(t, err)
	assert.Equal(t, job.Quantity, got)
}

func TestUnitsCompletedBy_OutsideWindow(t *testing.T) {
	cal := monFriCalendar()
	pt := timing(t, 1, 0.5)
	job := &entities.Job{ID: "J1", PartNumber: "P-100", Quantity: 20}
	scheduleJob(t, job, pt, cal, monday)

	before, err := UnitsCompletedBy(job, pt, cal, job.ScheduledStart.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Zero(t, before)

	after, err := UnitsCompletedBy(job, pt, cal, job.ScheduledEnd.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, job.Quantity, after)
}

func TestUnitsCompletedBy_Monotonic(t *testing.T) {
	cal := monFriCalendar()
	pt := timing(t, 2, 0.75)
	job := &entities.Job{ID: "J2", PartNumber: "P-200", Quantity: 45}
	scheduleJob(t, job, pt, cal, monday)

	prev := 0
	for d := job.ScheduledStart.AddDate(0, 0, -2); !d.After(job.ScheduledEnd.AddDate(0, 0, 2)); d = d.AddDate(0, 0, 1) {
		got, err := UnitsCompletedBy(job, pt, cal, d)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "completed units regressed on %s", d)
		assert.LessOrEqual(t, got, job.Quantity)
		prev = got
	}
	assert.Equal(t, job.Quantity, prev)
}

func TestUnitsPlannedOn(t *testing.T) {
	cal := monFriCalendar()
	pt := timing(t, 1, 0.5) // day 1: 14 units, later days: 16
	job := &entities.Job{ID: "J3", PartNumber: "P-300", Quantity: 20}
	scheduleJob(t, job, pt, cal, monday)

	day1, err := UnitsPlannedOn(job, pt, cal, *job.ScheduledStart)
	require.NoError(t, err)
	assert.Equal(t, 14, day1)

	day2, err := UnitsPlannedOn(job, pt, cal, job.ScheduledStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 6, day2, "final day plans only the remaining units")

	outside, err := UnitsPlannedOn(job, pt, cal, job.ScheduledEnd.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, outside)
}

func TestUnitsPlannedOn_ClosedDayPlansZero(t *testing.T) {
	cal := monFriCalendar()
	pt := timing(t, 1, 0.5)
	// Big enough to span a weekend.
	job := &entities.Job{ID: "J4", PartNumber: "P-400", Quantity: 80}
	friday := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	scheduleJob(t, job, pt, cal, friday)

	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	got, err := UnitsPlannedOn(job, pt, cal, saturday)
	require.NoError(t, err)
	assert.Zero(t, got)

	// The planned units across the window must sum to the quantity.
	total := 0
	for d := *job.ScheduledStart; !d.After(*job.ScheduledEnd); d = d.AddDate(0, 0, 1) {
		n, err := UnitsPlannedOn(job, pt, cal, d)
		require.NoError(t, err)
		total += n
	}
	assert.Equal(t, job.Quantity, total)
}

func TestProjection_UnscheduledJobRejected(t *testing.T) {
	cal := monFriCalendar()
	pt := timing(t, 1, 0.5)
	job := &entities.Job{ID: "J5", PartNumber: "P-500", Quantity: 10}

	_, err := UnitsCompletedBy(job, pt, cal, monday)
	assert.ErrorIs(t, err, ErrJobNotScheduled)
	_, err = UnitsPlannedOn(job, pt, cal, monday)
	assert.ErrorIs(t, err, ErrJobNotScheduled)
}
