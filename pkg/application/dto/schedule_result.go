package dto

import "time"

// AssignmentDTO is one job placement produced by an auto-schedule run.
type AssignmentDTO struct {
	JobID     string    `json:"job_id"`
	MachineID string    `json:"machine_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Estimated bool      `json:"estimated"`
}

// SkippedJobDTO is one job the run could not place, with the reason.
type SkippedJobDTO struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// ScheduleRunSummary is what the notification/UI layer consumes after an
// auto-schedule run: "N jobs scheduled, M skipped" plus the details.
type ScheduleRunSummary struct {
	RunID          string          `json:"run_id"`
	StartedAt      time.Time       `json:"started_at"`
	ScheduledCount int             `json:"scheduled_count"`
	SkippedCount   int             `json:"skipped_count"`
	Assignments    []AssignmentDTO `json:"assignments"`
	Skipped        []SkippedJobDTO `json:"skipped"`
}

// ThroughputProjection reports a scheduled job's progress as of one date.
type ThroughputProjection struct {
	JobID          string    `json:"job_id"`
	Date           time.Time `json:"date"`
	UnitsCompleted int       `json:"units_completed"`
	UnitsPlanned   int       `json:"units_planned"`
	Quantity       int       `json:"quantity"`
	Estimated      bool      `json:"estimated"`
}
