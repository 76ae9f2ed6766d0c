package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rkowalski/shopsched/pkg/application/dto"
	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/domain/repositories"
	"github.com/rkowalski/shopsched/pkg/infrastructure/events"
	"github.com/rkowalski/shopsched/pkg/scheduling"
)

// ErrJobNotFound is returned by Projection for an unknown job ID.
var ErrJobNotFound = errors.New("job not found")

// ScheduleService owns the scheduling workflow: snapshot the shop
// configuration and committed schedules, run the pure scheduling pass, and
// commit the result atomically. All mutating operations serialize on one
// mutex, so an auto-schedule run can never interleave with a reset or a
// manual reassignment for the same shop instance.
type ScheduleService struct {
	mu sync.Mutex

	store      repositories.ScheduleStore
	parts      repositories.PartRepository
	shopConfig repositories.ShopConfigRepository
	events     *events.InMemoryEventStore
	log        *logrus.Logger
}

// NewScheduleService wires the service. The event store may be nil when no
// notification layer is attached; the logger defaults to logrus standard.
func NewScheduleService(
	store repositories.ScheduleStore,
	parts repositories.PartRepository,
	shopConfig repositories.ShopConfigRepository,
	eventStore *events.InMemoryEventStore,
	log *logrus.Logger,
) *ScheduleService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ScheduleService{
		store:      store,
		parts:      parts,
		shopConfig: shopConfig,
		events:     eventStore,
		log:        log,
	}
}

// AutoSchedule runs one scheduling pass as of now. It either commits every
// new assignment or none: a commit failure discards the whole run and the
// caller retries. Skipped jobs stay in the backlog and are reported in the
// summary.
func (s *ScheduleService) AutoSchedule(ctx context.Context, now time.Time) (*dto.ScheduleRunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal, machines, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	scheduler, err := scheduling.NewScheduler(cal, machines)
	if err != nil {
		return nil, fmt.Errorf("shop configuration rejected: %w", err)
	}

	machineSchedules, jobs, err := s.store.LoadCommitted(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading committed schedules: %w", err)
	}
	schedules := make(map[entities.MachineID]*entities.MachineSchedule, len(machineSchedules))
	for _, ms := range machineSchedules {
		schedules[ms.MachineID] = ms
	}

	result, err := scheduler.Run(now, schedules, jobs, s.timingFor)
	if err != nil {
		return nil, err
	}

	if len(result.Scheduled) > 0 {
		if err := s.store.Commit(ctx, result.Scheduled); err != nil {
			s.log.WithFields(logrus.Fields{
				"run_id":    result.RunID,
				"scheduled": result.ScheduledCount(),
			}).WithError(err).Error("schedule commit failed; run discarded")
			return nil, fmt.Errorf("schedule commit rejected, retry the run: %w", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"run_id":    result.RunID,
		"scheduled": result.ScheduledCount(),
		"skipped":   result.SkippedCount(),
	}).Info("auto-schedule run committed")

	s.publishRun(result)
	return s.summarize(result), nil
}

// ResetSchedule clears every job's machine and scheduled dates. The caller
// confirms the action with the user; this method just executes it.
func (s *ScheduleService) ResetSchedule(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ResetAll(ctx); err != nil {
		return fmt.Errorf("resetting schedule: %w", err)
	}
	s.log.Info("schedule reset; all jobs returned to backlog")
	if s.events != nil {
		s.events.Publish(events.ScheduleResetEvent, "schedule", events.ScheduleReset{ClearedAt: time.Now()})
	}
	return nil
}

// Projection reports how many units of a scheduled job should be complete
// by the given date and how many are planned for that specific day,
// derived from the same calendar and timing inputs that produced the
// schedule.
func (s *ScheduleService) Projection(ctx context.Context, jobID string, date time.Time) (*dto.ThroughputProjection, error) {
	cal, err := s.shopConfig.GetCalendar()
	if err != nil {
		return nil, fmt.Errorf("loading shop calendar: %w", err)
	}

	_, jobs, err := s.store.LoadCommitted(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading jobs: %w", err)
	}
	var job *entities.Job
	for _, j := range jobs {
		if j.ID == jobID {
			job = j
			break
		}
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	timing, err := s.timingFor(job)
	if err != nil {
		return nil, err
	}

	completed, err := scheduling.UnitsCompletedBy(job, timing, cal, date)
	if err != nil {
		return nil, err
	}
	planned, err := scheduling.UnitsPlannedOn(job, timing, cal, date)
	if err != nil {
		return nil, err
	}

	return &dto.ThroughputProjection{
		JobID:          job.ID,
		Date:           date,
		UnitsCompleted: completed,
		UnitsPlanned:   planned,
		Quantity:       job.Quantity,
		Estimated:      timing.Estimated,
	}, nil
}

// MachineSchedules returns the committed per-machine schedules for display.
func (s *ScheduleService) MachineSchedules(ctx context.Context) ([]*entities.MachineSchedule, error) {
	schedules, _, err := s.store.LoadCommitted(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading committed schedules: %w", err)
	}
	return schedules, nil
}

func (s *ScheduleService) loadConfig() (*entities.OperatingCalendar, []*entities.Machine, error) {
	cal, err := s.shopConfig.GetCalendar()
	if err != nil {
		return nil, nil, fmt.Errorf("loading shop calendar: %w", err)
	}
	machines, err := s.shopConfig.GetMachines()
	if err != nil {
		return nil, nil, fmt.Errorf("loading machine list: %w", err)
	}
	return cal, machines, nil
}

// timingFor resolves part timings, falling back to the estimated defaults
// when the part master has no entry. Any other repository failure marks
// the job unschedulable.
func (s *ScheduleService) timingFor(job *entities.Job) (entities.PartTiming, error) {
	timing, err := s.parts.GetTiming(job.PartNumber, job.Revision)
	if errors.Is(err, repositories.ErrTimingNotFound) {
		return entities.DefaultPartTiming(), nil
	}
	if err != nil {
		return entities.PartTiming{}, fmt.Errorf("part timing lookup for %s rev %s: %w", job.PartNumber, job.Revision, err)
	}
	return timing, nil
}

func (s *ScheduleService) publishRun(result *scheduling.RunResult) {
	if s.events == nil {
		return
	}
	runID := result.RunID.String()
	for _, a := range result.Scheduled {
		s.events.Publish(events.JobScheduledEvent, a.JobID, events.JobScheduled{
			JobID:     a.JobID,
			MachineID: string(a.MachineID),
			Start:     a.Start,
			End:       a.End,
		})
	}
	for _, sk := range result.Skipped {
		s.events.Publish(events.JobSkippedEvent, sk.JobID, events.JobSkipped{
			JobID:  sk.JobID,
			Reason: string(sk.Reason),
		})
	}
	s.events.Publish(events.ScheduleCommittedEvent, runID, events.ScheduleCommitted{
		RunID:          runID,
		ScheduledCount: result.ScheduledCount(),
		SkippedCount:   result.SkippedCount(),
	})
}

func (s *ScheduleService) summarize(result *scheduling.RunResult) *dto.ScheduleRunSummary {
	estimated := make(map[string]bool, len(result.Estimated))
	for _, id := range result.Estimated {
		estimated[id] = true
	}

	summary := &dto.ScheduleRunSummary{
		RunID:          result.RunID.String(),
		StartedAt:      result.StartedAt,
		ScheduledCount: result.ScheduledCount(),
		SkippedCount:   result.SkippedCount(),
	}
	for _, a := range result.Scheduled {
		summary.Assignments = append(summary.Assignments, dto.AssignmentDTO{
			JobID:     a.JobID,
			MachineID: string(a.MachineID),
			Start:     a.Start,
			End:       a.End,
			Estimated: estimated[a.JobID],
		})
	}
	for _, sk := range result.Skipped {
		summary.Skipped = append(summary.Skipped, dto.SkippedJobDTO{
			JobID:  sk.JobID,
			Reason: string(sk.Reason),
			Detail: sk.Detail,
		})
	}
	return summary
}
