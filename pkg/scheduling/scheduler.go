package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// ErrNoMachines is the configuration error for an empty machine list.
var ErrNoMachines = errors.New("no machines configured")

// TimingLookup resolves the part timing for a job. Implementations decide
// how to handle parts missing from the master (the service substitutes
// DefaultPartTiming); a returned error marks the job unschedulable.
type TimingLookup func(job *entities.Job) (entities.PartTiming, error)

// Scheduler greedily assigns a backlog of unscheduled jobs to machines.
// It operates on an in-memory snapshot loaded up front and performs no
// I/O, so a run is deterministic given its inputs.
type Scheduler struct {
	cal      *entities.OperatingCalendar
	machines []*entities.Machine
}

// NewScheduler creates a scheduler for one configuration snapshot. The
// calendar must have at least one open day and the machine list must be
// non-empty; both are fatal configuration errors otherwise.
func NewScheduler(cal *entities.OperatingCalendar, machines []*entities.Machine) (*Scheduler, error) {
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoOperatingDays, err)
	}
	if len(machines) == 0 {
		return nil, ErrNoMachines
	}
	return &Scheduler{cal: cal, machines: machines}, nil
}

// Run executes a single scheduling pass over the backlog, in due-date
// order, recording each placement into the given machine schedules so the
// next job in the loop sees it. Jobs that cannot be placed are reported in
// the result, and the schedules map is the only state mutated; committing
// the assignments is the caller's responsibility.
func (s *Scheduler) Run(now time.Time, schedules map[entities.MachineID]*entities.MachineSchedule, jobs []*entities.Job, timingFor TimingLookup) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.New(),
		StartedAt: now,
	}

	for _, m := range s.machines {
		if _, ok := schedules[m.ID]; !ok {
			schedules[m.ID] = entities.NewMachineSchedule(m)
		}
	}

	backlog := sortBacklog(jobs)

	for _, job := range backlog {
		if err := job.Validate(); err != nil {
			result.Skipped = append(result.Skipped, SkippedJob{
				JobID: job.ID, Reason: SkipInvalidJob, Detail: err.Error(),
			})
			continue
		}

		timing, err := timingFor(job)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedJob{
				JobID: job.ID, Reason: SkipTimingUnavailable, Detail: err.Error(),
			})
			continue
		}

		machine := s.resolveMachine(job)
		if machine == nil {
			detail := "no machines available"
			if job.RequiredMachineType != "" {
				detail = fmt.Sprintf("no machine of type %q configured", job.RequiredMachineType)
			}
			result.Skipped = append(result.Skipped, SkippedJob{
				JobID: job.ID, Reason: SkipNoCompatibleMachine, Detail: detail,
			})
			continue
		}

		sched := schedules[machine.ID]
		start := s.earliestStart(now, sched)
		dur, err := ComputeDuration(timing, job.Quantity, s.cal, start)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedJob{
				JobID: job.ID, Reason: SkipInvalidJob, Detail: err.Error(),
			})
			continue
		}

		endHours := s.cal.HoursFor(dur.LastDay)
		end := atHour(dur.LastDay, endHours.End)

		iv := entities.ScheduleInterval{Start: start, End: end, JobID: job.ID}
		if err := sched.Add(iv); err != nil {
			return nil, fmt.Errorf("scheduling job %s: %w", job.ID, err)
		}

		job.Machine = machine.ID
		job.ScheduledStart = &iv.Start
		job.ScheduledEnd = &iv.End

		result.Scheduled = append(result.Scheduled, entities.Assignment{
			JobID:     job.ID,
			MachineID: machine.ID,
			Start:     start,
			End:       end,
		})
		if timing.Estimated {
			result.Estimated = append(result.Estimated, job.ID)
		}
	}

	return result, nil
}

// sortBacklog selects unscheduled jobs and orders them by due date
// ascending. Jobs without a due date sort last, keeping their original
// backlog order; ties keep original order too (stable sort).
func sortBacklog(jobs []*entities.Job) []*entities.Job {
	var backlog []*entities.Job
	for _, j := range jobs {
		if !j.Scheduled() {
			backlog = append(backlog, j)
		}
	}
	sort.SliceStable(backlog, func(a, b int) bool {
		da, db := backlog[a].DueDate, backlog[b].DueDate
		switch {
		case da == nil:
			return false
		case db == nil:
			return true
		default:
			return da.Before(*db)
		}
	})
	return backlog
}

// resolveMachine picks the target machine for a job: its pinned machine if
// set, otherwise the first configured machine matching the required type,
// or the first machine of any type when the job has no requirement.
func (s *Scheduler) resolveMachine(job *entities.Job) *entities.Machine {
	if job.Machine != "" {
		for _, m := range s.machines {
			if m.ID == job.Machine {
				return m
			}
		}
		return nil
	}
	for _, m := range s.machines {
		if job.RequiredMachineType == "" || m.Type == job.RequiredMachineType {
			return m
		}
	}
	return nil
}

// earliestStart finds the first open slot on a machine: the later of now
// and the machine's last committed end, moved to the next operating day
// and snapped to that day's open hour. A candidate at or past closing
// rolls to the next operating day, and a snapped start may never land
// inside the last committed interval.
func (s *Scheduler) earliestStart(now time.Time, sched *entities.MachineSchedule) time.Time {
	candidate := now
	lastEnd, busy := sched.LastEnd()
	if busy && lastEnd.After(candidate) {
		candidate = lastEnd
	}

	start := s.snapToOpen(candidate)
	if busy && start.Before(lastEnd) {
		start = s.snapToOpen(atHour(dateOnly(lastEnd).AddDate(0, 0, 1), 0))
	}
	return start
}

// snapToOpen normalizes a candidate timestamp to an operating day's open
// hour, rolling past closing time to the next operating day.
func (s *Scheduler) snapToOpen(t time.Time) time.Time {
	day := s.cal.NextOperatingDayOnOrAfter(dateOnly(t))
	if day.Equal(dateOnly(t)) && t.Hour() >= s.cal.HoursFor(t).End {
		day = s.cal.NextOperatingDayOnOrAfter(day.AddDate(0, 0, 1))
	}
	return atHour(day, s.cal.HoursFor(day).Start)
}

// atHour places a whole hour on a calendar day.
func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
