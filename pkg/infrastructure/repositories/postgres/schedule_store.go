package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/domain/repositories"
)

const jobColumns = `id, po_number, customer, part_number, revision, quantity, due_date, machine_type, machine, scheduled_start_date, scheduled_end_date`

// ScheduleStore persists jobs and their committed schedules in the
// purchase_orders table. Commit runs in a single transaction so a batch of
// assignments is applied all-or-nothing.
type ScheduleStore struct {
	db       *pgxpool.Pool
	machines []*entities.Machine
}

// NewScheduleStore creates a store over a connection pool and the
// configured machine list (machine metadata lives in shop configuration,
// not in the job table).
func NewScheduleStore(db *pgxpool.Pool, machines []*entities.Machine) *ScheduleStore {
	return &ScheduleStore{db: db, machines: machines}
}

// Verify interface compliance
var _ repositories.ScheduleStore = (*ScheduleStore)(nil)

type jobRow struct {
	ID             string
	PONumber       string
	Customer       string
	PartNumber     string
	Revision       string
	Quantity       int
	DueDate        *time.Time
	MachineType    *string
	Machine        *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
}

func (r *jobRow) toJob() *entities.Job {
	job := &entities.Job{
		ID:             r.ID,
		PONumber:       r.PONumber,
		Customer:       r.Customer,
		PartNumber:     entities.PartNumber(r.PartNumber),
		Revision:       entities.Revision(r.Revision),
		Quantity:       r.Quantity,
		DueDate:        r.DueDate,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
	}
	if r.MachineType != nil {
		job.RequiredMachineType = *r.MachineType
	}
	if r.Machine != nil {
		job.Machine = entities.MachineID(*r.Machine)
	}
	return job
}

// LoadCommitted reads every job and rebuilds the per-machine interval
// lists from the committed rows.
func (s *ScheduleStore) LoadCommitted(ctx context.Context) ([]*entities.MachineSchedule, []*entities.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM purchase_orders ORDER BY id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("querying purchase orders: %w", err)
	}
	defer rows.Close()

	schedules := make([]*entities.MachineSchedule, 0, len(s.machines))
	byMachine := make(map[entities.MachineID]*entities.MachineSchedule, len(s.machines))
	for _, m := range s.machines {
		ms := entities.NewMachineSchedule(m)
		schedules = append(schedules, ms)
		byMachine[m.ID] = ms
	}

	var jobs []*entities.Job
	for rows.Next() {
		var r jobRow
		if err := rows.Scan(&r.ID, &r.PONumber, &r.Customer, &r.PartNumber, &r.Revision,
			&r.Quantity, &r.DueDate, &r.MachineType, &r.Machine, &r.ScheduledStart, &r.ScheduledEnd); err != nil {
			return nil, nil, fmt.Errorf("scanning purchase order row: %w", err)
		}
		job := r.toJob()
		jobs = append(jobs, job)

		if !job.Scheduled() || job.Machine == "" {
			continue
		}
		ms, ok := byMachine[job.Machine]
		if !ok {
			continue
		}
		iv := entities.ScheduleInterval{Start: *job.ScheduledStart, End: *job.ScheduledEnd, JobID: job.ID}
		if err := ms.Add(iv); err != nil {
			return nil, nil, fmt.Errorf("stored schedule violates the overlap invariant: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading purchase orders: %w", err)
	}
	return schedules, jobs, nil
}

// Commit writes a batch of assignments inside one transaction. A missing
// job or any write failure rolls the whole batch back.
func (s *ScheduleStore) Commit(ctx context.Context, assignments []entities.Assignment) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning commit transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `UPDATE purchase_orders SET machine = $1, scheduled_start_date = $2, scheduled_end_date = $3 WHERE id = $4`
	for _, a := range assignments {
		tag, err := tx.Exec(ctx, update, string(a.MachineID), a.Start, a.End, a.JobID)
		if err != nil {
			return fmt.Errorf("committing assignment for job %s: %w", a.JobID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("commit rejected: unknown job %s", a.JobID)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("finalizing commit transaction: %w", err)
	}
	return nil
}

// ResetAll clears machine and scheduled dates on every job.
func (s *ScheduleStore) ResetAll(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `UPDATE purchase_orders SET machine = NULL, scheduled_start_date = NULL, scheduled_end_date = NULL`)
	if err != nil {
		return fmt.Errorf("resetting schedule: %w", err)
	}
	return nil
}
