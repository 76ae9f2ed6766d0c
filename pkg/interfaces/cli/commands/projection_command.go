package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkowalski/shopsched/pkg/application/dto"
	"github.com/rkowalski/shopsched/pkg/interfaces/cli/output"
)

type projectionCommand struct {
	shop *shopContext

	date string
	days int
}

// ProjectionCommand reports expected throughput for one scheduled job:
// units planned on a date and units complete by it.
func ProjectionCommand(shop *shopContext) *cobra.Command {
	pc := &projectionCommand{shop: shop}

	cmd := &cobra.Command{
		Use:     "projection <job-id>",
		Short:   "Project per-day throughput for a scheduled job",
		Example: "shopsched projection J-1042 --date 2025-03-05 --days 5",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("job ID is required")
			}
			return nil
		},
		RunE: pc.RunE,
	}
	cmd.Flags().StringVar(&pc.date, "date", "", "Date to project for (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&pc.days, "days", 1, "Number of consecutive days to project")
	return cmd
}

func (c *projectionCommand) RunE(cmd *cobra.Command, args []string) error {
	svc, _, err := c.shop.buildService()
	if err != nil {
		return err
	}

	date := time.Now()
	if c.date != "" {
		date, err = time.Parse("2006-01-02", c.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", c.date)
		}
	}
	if c.days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	jobID := args[0]
	if c.days == 1 {
		p, err := svc.Projection(cmd.Context(), jobID, date)
		if err != nil {
			return err
		}
		output.Projection(cmd.OutOrStdout(), p)
		return nil
	}

	projections := make([]*dto.ThroughputProjection, 0, c.days)
	for i := 0; i < c.days; i++ {
		p, err := svc.Projection(cmd.Context(), jobID, date.AddDate(0, 0, i))
		if err != nil {
			return err
		}
		projections = append(projections, p)
	}
	output.ProjectionRange(cmd.OutOrStdout(), projections)
	if projections[0].Estimated {
		fmt.Fprintln(cmd.OutOrStdout(), "Timing is estimated; no measured setup/cycle for this part.")
	}
	return nil
}
