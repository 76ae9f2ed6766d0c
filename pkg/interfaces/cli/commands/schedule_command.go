package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkowalski/shopsched/pkg/interfaces/cli/output"
)

type scheduleCommand struct {
	shop *shopContext

	asOf      string
	ganttFile string
}

// ScheduleCommand runs one auto-schedule pass over the backlog and prints
// the resulting assignments.
func ScheduleCommand(shop *shopContext) *cobra.Command {
	sc := &scheduleCommand{shop: shop}

	cmd := &cobra.Command{
		Use:     "schedule",
		Short:   "Assign every unscheduled job to a machine",
		Example: "shopsched schedule --config shop.yaml --jobs jobs.csv --parts parts.csv",
		RunE:    sc.RunE,
	}
	cmd.Flags().StringVar(&sc.asOf, "as-of", "", "Schedule as of this date (YYYY-MM-DD, default now)")
	cmd.Flags().StringVar(&sc.ganttFile, "gantt", "", "Write an SVG Gantt chart of the committed schedule to this file")
	return cmd
}

func (c *scheduleCommand) RunE(cmd *cobra.Command, _ []string) error {
	svc, _, err := c.shop.buildService()
	if err != nil {
		return err
	}

	now := time.Now()
	if c.asOf != "" {
		d, err := time.Parse("2006-01-02", c.asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q (expected YYYY-MM-DD)", c.asOf)
		}
		now = d
	}

	summary, err := svc.AutoSchedule(cmd.Context(), now)
	if err != nil {
		return err
	}
	output.RunSummary(cmd.OutOrStdout(), summary)

	if c.ganttFile != "" {
		schedules, err := svc.MachineSchedules(cmd.Context())
		if err != nil {
			return err
		}
		chart := output.NewGanttChart(schedules)
		if err := os.WriteFile(c.ganttFile, []byte(chart.GenerateSVG(schedules)), 0o644); err != nil {
			return fmt.Errorf("writing Gantt chart: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nGantt chart written to %s\n", c.ganttFile)
	}
	return nil
}
