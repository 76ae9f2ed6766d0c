package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rkowalski/shopsched/pkg/interfaces/cli/output"
)

type showCommand struct {
	shop *shopContext

	ganttFile string
}

// ShowCommand displays the committed machine schedules and the backlog.
func ShowCommand(shop *shopContext) *cobra.Command {
	sc := &showCommand{shop: shop}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show committed machine schedules and the remaining backlog",
		RunE:  sc.RunE,
	}
	cmd.Flags().StringVar(&sc.ganttFile, "gantt", "", "Write an SVG Gantt chart to this file")
	return cmd
}

func (c *showCommand) RunE(cmd *cobra.Command, _ []string) error {
	svc, store, err := c.shop.buildService()
	if err != nil {
		return err
	}

	schedules, err := svc.MachineSchedules(cmd.Context())
	if err != nil {
		return err
	}
	output.MachineSchedules(cmd.OutOrStdout(), schedules)

	_, jobs, err := store.LoadCommitted(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	output.Backlog(cmd.OutOrStdout(), jobs)

	if c.ganttFile != "" {
		chart := output.NewGanttChart(schedules)
		if err := os.WriteFile(c.ganttFile, []byte(chart.GenerateSVG(schedules)), 0o644); err != nil {
			return fmt.Errorf("writing Gantt chart: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nGantt chart written to %s\n", c.ganttFile)
	}
	return nil
}
