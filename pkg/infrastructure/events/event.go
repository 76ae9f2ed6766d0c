package events

import "time"

// Event types published by the scheduling subsystem. StreamID is the run
// ID for run-level events and the job ID for job-level ones; the
// notification layer subscribes to whichever it cares about.
const (
	JobScheduledEvent      = "job.scheduled"
	JobSkippedEvent        = "job.skipped"
	ScheduleCommittedEvent = "schedule.committed"
	ScheduleResetEvent     = "schedule.reset"
)

// Event is one fact recorded on the scheduling event stream.
type Event struct {
	Type     string
	StreamID string
	Data     interface{}
	Time     time.Time
	Version  int
}

// Handler consumes published events. Handlers run synchronously on the
// publishing goroutine; slow consumers should hand off internally.
type Handler func(Event)

// JobScheduled is the payload of a job.scheduled event.
type JobScheduled struct {
	JobID     string    `json:"job_id"`
	MachineID string    `json:"machine_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// JobSkipped is the payload of a job.skipped event.
type JobSkipped struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
}

// ScheduleCommitted is the payload of a schedule.committed event.
type ScheduleCommitted struct {
	RunID          string `json:"run_id"`
	ScheduledCount int    `json:"scheduled_count"`
	SkippedCount   int    `json:"skipped_count"`
}

// ScheduleReset is the payload of a schedule.reset event.
type ScheduleReset struct {
	ClearedAt time.Time `json:"cleared_at"`
}
