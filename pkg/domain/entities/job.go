package entities

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Job is a purchase-order-derived unit of work: a quantity of one part to
// produce, optionally due by a date, optionally pinned to a machine or a
// machine type. A job with both scheduled timestamps set is committed;
// otherwise it belongs to the unscheduled backlog.
type Job struct {
	ID                  string
	PONumber            string
	Customer            string
	PartNumber          PartNumber
	Revision            Revision
	Quantity            int
	DueDate             *time.Time
	RequiredMachineType string
	Machine             MachineID
	ScheduledStart      *time.Time
	ScheduledEnd        *time.Time
}

// Scheduled reports whether the job holds a committed start and end.
func (j *Job) Scheduled() bool {
	return j.ScheduledStart != nil && j.ScheduledEnd != nil
}

// Validate rejects malformed jobs at the boundary, before scheduling begins.
func (j *Job) Validate() error {
	return validation.ValidateStruct(j,
		validation.Field(&j.ID, validation.Required),
		validation.Field(&j.PartNumber, validation.Required),
		validation.Field(&j.Quantity, validation.Min(1)),
	)
}

// ClearSchedule returns the job to the backlog.
func (j *Job) ClearSchedule() {
	j.Machine = ""
	j.ScheduledStart = nil
	j.ScheduledEnd = nil
}
