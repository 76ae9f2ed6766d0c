package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/rkowalski/shopsched/pkg/application/dto"
	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04"
)

// RunSummary renders the result of an auto-schedule run: one table of new
// assignments and, when jobs were skipped, a second table explaining why.
func RunSummary(w io.Writer, summary *dto.ScheduleRunSummary) {
	fmt.Fprintf(w, "Run %s: %d scheduled, %d skipped\n\n",
		summary.RunID, summary.ScheduledCount, summary.SkippedCount)

	if len(summary.Assignments) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Job", "Machine", "Start", "End", "Timing"})
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, a := range summary.Assignments {
			timing := "measured"
			if a.Estimated {
				timing = "estimated"
			}
			table.Append([]string{
				a.JobID,
				a.MachineID,
				a.Start.Format(dateTimeFormat),
				a.End.Format(dateTimeFormat),
				timing,
			})
		}
		table.Render()
	}

	if len(summary.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped jobs:")
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Job", "Reason", "Detail"})
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, sk := range summary.Skipped {
			table.Append([]string{sk.JobID, sk.Reason, sk.Detail})
		}
		table.Render()
	}
}

// MachineSchedules renders the committed intervals of every machine.
func MachineSchedules(w io.Writer, schedules []*entities.MachineSchedule) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Machine", "Type", "Job", "Start", "End"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoMergeCells(true)
	table.SetRowLine(false)

	empty := true
	for _, s := range schedules {
		for _, iv := range s.Intervals {
			empty = false
			table.Append([]string{
				string(s.MachineID),
				s.Type,
				iv.JobID,
				iv.Start.Format(dateTimeFormat),
				iv.End.Format(dateTimeFormat),
			})
		}
	}
	if empty {
		fmt.Fprintln(w, "No committed schedules; every job is in the backlog.")
		return
	}
	table.Render()
}

// Backlog renders the jobs that have no committed schedule yet.
func Backlog(w io.Writer, jobs []*entities.Job) {
	var pending []*entities.Job
	for _, j := range jobs {
		if !j.Scheduled() {
			pending = append(pending, j)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(w, "Backlog is empty.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Job", "PO", "Customer", "Part", "Rev", "Qty", "Due", "Machine Type"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, j := range pending {
		due := ""
		if j.DueDate != nil {
			due = j.DueDate.Format(dateFormat)
		}
		table.Append([]string{
			j.ID,
			j.PONumber,
			j.Customer,
			string(j.PartNumber),
			string(j.Revision),
			fmt.Sprintf("%d", j.Quantity),
			due,
			j.RequiredMachineType,
		})
	}
	table.Render()
}

// Projection renders the throughput projection of one job for one date.
func Projection(w io.Writer, p *dto.ThroughputProjection) {
	fmt.Fprintf(w, "Job %s on %s:\n", p.JobID, p.Date.Format(dateFormat))
	fmt.Fprintf(w, "  Planned this day:  %d units\n", p.UnitsPlanned)
	fmt.Fprintf(w, "  Complete by then:  %d of %d units\n", p.UnitsCompleted, p.Quantity)
	if p.Estimated {
		fmt.Fprintln(w, "  Timing is estimated; no measured setup/cycle for this part.")
	}
}

// ProjectionRange renders per-day projections across a date window.
func ProjectionRange(w io.Writer, projections []*dto.ThroughputProjection) {
	if len(projections) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Planned", "Cumulative"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, p := range projections {
		table.Append([]string{
			p.Date.Format(dateFormat),
			fmt.Sprintf("%d", p.UnitsPlanned),
			fmt.Sprintf("%d / %d", p.UnitsCompleted, p.Quantity),
		})
	}
	table.Render()
}
