package repositories

import (
	"context"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// ScheduleStore is the persistence contract for committed schedules.
//
// Commit is all-or-nothing: either every assignment in the batch is
// written or none are, so a crash mid-commit can never leave the store
// mixing old and new assignments for the same job.
type ScheduleStore interface {
	// LoadCommitted reads the current per-machine schedules and every job
	// (scheduled and backlog) at the start of a scheduling run.
	LoadCommitted(ctx context.Context) ([]*entities.MachineSchedule, []*entities.Job, error)

	// Commit atomically applies a batch of new assignments.
	Commit(ctx context.Context, assignments []entities.Assignment) error

	// ResetAll clears every job's machine and scheduled dates, returning
	// the whole book to the backlog. Confirmation is the caller's concern.
	ResetAll(ctx context.Context) error
}
