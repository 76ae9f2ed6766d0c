package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/domain/repositories"
)

// ScheduleStore is the in-memory ScheduleStore used by tests and the demo
// CLI path. It owns the job book and derives per-machine schedules from
// the committed jobs on every load.
type ScheduleStore struct {
	mu       sync.RWMutex
	machines []*entities.Machine
	jobs     map[string]*entities.Job
	order    []string
}

// NewScheduleStore creates a store over the configured machine list.
func NewScheduleStore(machines []*entities.Machine) *ScheduleStore {
	return &ScheduleStore{
		machines: machines,
		jobs:     make(map[string]*entities.Job),
	}
}

// Verify interface compliance
var _ repositories.ScheduleStore = (*ScheduleStore)(nil)

// LoadJobs seeds the job book. Existing entries with the same ID are
// replaced.
func (s *ScheduleStore) LoadJobs(jobs []*entities.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range jobs {
		if _, exists := s.jobs[j.ID]; !exists {
			s.order = append(s.order, j.ID)
		}
		copied := *j
		s.jobs[j.ID] = &copied
	}
}

// LoadCommitted returns the current machine schedules (built from the
// committed jobs) and a copy of every job in original insertion order.
func (s *ScheduleStore) LoadCommitted(ctx context.Context) ([]*entities.MachineSchedule, []*entities.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedules := make([]*entities.MachineSchedule, 0, len(s.machines))
	byMachine := make(map[entities.MachineID]*entities.MachineSchedule, len(s.machines))
	for _, m := range s.machines {
		ms := entities.NewMachineSchedule(m)
		schedules = append(schedules, ms)
		byMachine[m.ID] = ms
	}

	jobs := make([]*entities.Job, 0, len(s.order))
	for _, id := range s.order {
		job := s.jobs[id]
		copied := *job
		jobs = append(jobs, &copied)

		if !job.Scheduled() || job.Machine == "" {
			continue
		}
		ms, ok := byMachine[job.Machine]
		if !ok {
			continue // machine removed from configuration; job shows as orphaned
		}
		iv := entities.ScheduleInterval{
			Start: *job.ScheduledStart,
			End:   *job.ScheduledEnd,
			JobID: job.ID,
		}
		if err := ms.Add(iv); err != nil {
			return nil, nil, fmt.Errorf("stored schedule violates the overlap invariant: %w", err)
		}
	}
	return schedules, jobs, nil
}

// Commit applies a batch of assignments all-or-nothing: every assignment
// is validated against the job book before any job is touched.
func (s *ScheduleStore) Commit(ctx context.Context, assignments []entities.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range assignments {
		if _, ok := s.jobs[a.JobID]; !ok {
			return fmt.Errorf("commit rejected: unknown job %s", a.JobID)
		}
		if !a.End.After(a.Start) {
			return fmt.Errorf("commit rejected: job %s has end %s before start %s", a.JobID, a.End, a.Start)
		}
	}
	for _, a := range assignments {
		job := s.jobs[a.JobID]
		start, end := a.Start, a.End
		job.Machine = a.MachineID
		job.ScheduledStart = &start
		job.ScheduledEnd = &end
	}
	return nil
}

// ResetAll returns every job to the backlog.
func (s *ScheduleStore) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		job.ClearSchedule()
	}
	return nil
}
