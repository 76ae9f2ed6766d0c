package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/infrastructure/events"
	"github.com/rkowalski/shopsched/pkg/infrastructure/repositories/memory"
	"github.com/rkowalski/shopsched/pkg/scheduling"
)

// monday opens at 09:00 on the default calendar
var runStart = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

type serviceFixture struct {
	svc    *ScheduleService
	store  *memory.ScheduleStore
	events *events.InMemoryEventStore
}

func newFixture(t *testing.T, jobs []*entities.Job) *serviceFixture {
	t.Helper()

	machines := []*entities.Machine{
		{ID: "mill-1", Name: "Mill 1", Type: "Mill"},
		{ID: "lathe-1", Name: "Lathe 1", Type: "Lathe"},
	}
	store := memory.NewScheduleStore(machines)
	store.LoadJobs(jobs)

	parts := memory.NewPartRepository()
	timing, err := entities.NewPartTiming(1, 0.5)
	require.NoError(t, err)
	parts.PutTiming("P-100", "A", timing)

	eventStore := events.NewInMemoryEventStore()
	shopConfig := memory.NewShopConfigRepository(entities.DefaultCalendar(), machines)
	svc := NewScheduleService(store, parts, shopConfig, eventStore, nil)
	return &serviceFixture{svc: svc, store: store, events: eventStore}
}

func dueOn(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func backlogJobs() []*entities.Job {
	return []*entities.Job{
		{ID: "J-A", PONumber: "PO-1", PartNumber: "P-100", Revision: "A", Quantity: 30, DueDate: dueOn(2025, 3, 7), RequiredMachineType: "Mill"},
		{ID: "J-B", PONumber: "PO-2", PartNumber: "P-200", Revision: "A", Quantity: 4, DueDate: dueOn(2025, 3, 10), RequiredMachineType: "Lathe"},
		{ID: "J-C", PONumber: "PO-3", PartNumber: "P-300", Revision: "A", Quantity: 8, RequiredMachineType: "Grinder"},
	}
}

func TestAutoSchedule_CommitsAndReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	summary, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ScheduledCount)
	assert.Equal(t, 1, summary.SkippedCount)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "J-C", summary.Skipped[0].JobID)
	assert.Equal(t, string(scheduling.SkipNoCompatibleMachine), summary.Skipped[0].Reason)

	// P-100 has measured timing; P-200 fell back to the shop estimate.
	estimates := make(map[string]bool)
	for _, a := range summary.Assignments {
		estimates[a.JobID] = a.Estimated
	}
	assert.False(t, estimates["J-A"])
	assert.True(t, estimates["J-B"])

	// The run is committed: a fresh load sees the assignments.
	schedules, jobs, err := f.store.LoadCommitted(ctx)
	require.NoError(t, err)
	scheduled := 0
	for _, j := range jobs {
		if j.Scheduled() {
			scheduled++
		}
	}
	assert.Equal(t, 2, scheduled)
	for _, s := range schedules {
		assert.False(t, s.HasOverlap())
	}
}

func TestAutoSchedule_SecondRunLeavesCommittedScheduleAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	first, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)
	require.Equal(t, 2, first.ScheduledCount)

	var windows []entities.ScheduleInterval
	schedules, _, err := f.store.LoadCommitted(ctx)
	require.NoError(t, err)
	for _, s := range schedules {
		windows = append(windows, s.Intervals...)
	}

	second, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ScheduledCount, "already-scheduled jobs must not move")
	assert.Equal(t, 1, second.SkippedCount, "the unschedulable job is reported every run")

	after, _, err := f.store.LoadCommitted(ctx)
	require.NoError(t, err)
	var afterWindows []entities.ScheduleInterval
	for _, s := range after {
		afterWindows = append(afterWindows, s.Intervals...)
	}
	assert.Equal(t, windows, afterWindows)
}

func TestResetSchedule_ReturnsEverythingToBacklog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	_, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetSchedule(ctx))

	schedules, jobs, err := f.store.LoadCommitted(ctx)
	require.NoError(t, err)
	for _, j := range jobs {
		assert.False(t, j.Scheduled())
		assert.Empty(t, j.Machine)
	}
	for _, s := range schedules {
		assert.Empty(t, s.Intervals)
	}

	// A rerun schedules the same jobs again from scratch.
	summary, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ScheduledCount)
}

func TestProjection_MatchesScheduledWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	_, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)

	// J-A: 30 units at 1h setup + 0.5h cycle on 8h days. Monday makes 14
	// (7h after setup), Tuesday the remaining 16.
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	p, err := f.svc.Projection(ctx, "J-A", monday)
	require.NoError(t, err)
	assert.Equal(t, 14, p.UnitsPlanned)
	assert.Equal(t, 14, p.UnitsCompleted)
	assert.False(t, p.Estimated)

	tuesday := monday.AddDate(0, 0, 1)
	p, err = f.svc.Projection(ctx, "J-A", tuesday)
	require.NoError(t, err)
	assert.Equal(t, 16, p.UnitsPlanned)
	assert.Equal(t, 30, p.UnitsCompleted, "projection is exact at the scheduled end")
}

func TestProjection_UnknownJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	_, err := f.svc.Projection(ctx, "missing", runStart)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestProjection_UnscheduledJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	_, err := f.svc.Projection(ctx, "J-A", runStart)
	assert.ErrorIs(t, err, scheduling.ErrJobNotScheduled)
}

func TestAutoSchedule_RejectsClosedCalendar(t *testing.T) {
	ctx := context.Background()

	machines := []*entities.Machine{{ID: "mill-1", Type: "Mill"}}
	store := memory.NewScheduleStore(machines)
	store.LoadJobs(backlogJobs())

	closed := entities.NewOperatingCalendar(map[time.Weekday]bool{}, nil)
	shopConfig := memory.NewShopConfigRepository(closed, machines)
	svc := NewScheduleService(store, memory.NewPartRepository(), shopConfig, nil, nil)

	_, err := svc.AutoSchedule(ctx, runStart)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shop configuration rejected")
}

func TestAutoSchedule_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, backlogJobs())

	var types []string
	f.events.Subscribe([]string{
		events.JobScheduledEvent,
		events.JobSkippedEvent,
		events.ScheduleCommittedEvent,
	}, func(e events.Event) {
		types = append(types, e.Type)
	})

	_, err := f.svc.AutoSchedule(ctx, runStart)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, ty := range types {
		counts[ty]++
	}
	assert.Equal(t, 2, counts[events.JobScheduledEvent])
	assert.Equal(t, 1, counts[events.JobSkippedEvent])
	assert.Equal(t, 1, counts[events.ScheduleCommittedEvent])
}
