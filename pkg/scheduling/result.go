package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// SkipReason explains why a job stayed in the backlog.
type SkipReason string

const (
	SkipNoCompatibleMachine SkipReason = "no compatible machine"
	SkipTimingUnavailable   SkipReason = "part timing unavailable"
	SkipInvalidJob          SkipReason = "invalid job"
)

// SkippedJob is one backlog job a run could not place, with the reason it
// was skipped. Skipped jobs are reported, never silently dropped.
type SkippedJob struct {
	JobID  string
	Reason SkipReason
	Detail string
}

// RunResult is the outcome of one auto-schedule pass: the new assignments
// to commit and the jobs left behind.
type RunResult struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Scheduled []entities.Assignment
	Skipped   []SkippedJob

	// Estimated lists jobs whose schedule was computed from default
	// timing estimates rather than part master data.
	Estimated []string
}

// ScheduledCount returns how many jobs the run placed.
func (r *RunResult) ScheduledCount() int { return len(r.Scheduled) }

// SkippedCount returns how many jobs the run left unscheduled.
func (r *RunResult) SkippedCount() int { return len(r.Skipped) }
