package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

type resetCommand struct {
	shop *shopContext

	confirmed bool
}

// ResetCommand clears every job's schedule, returning the whole book to
// the backlog. Destructive, so it requires --yes.
func ResetCommand(shop *shopContext) *cobra.Command {
	rc := &resetCommand{shop: shop}

	cmd := &cobra.Command{
		Use:     "reset",
		Short:   "Clear all scheduled assignments",
		Example: "shopsched reset --yes",
		RunE:    rc.RunE,
	}
	cmd.Flags().BoolVar(&rc.confirmed, "yes", false, "Confirm clearing every scheduled assignment")
	return cmd
}

func (c *resetCommand) RunE(cmd *cobra.Command, _ []string) error {
	if !c.confirmed {
		return errors.New("reset clears every scheduled assignment; re-run with --yes to confirm")
	}

	svc, _, err := c.shop.buildService()
	if err != nil {
		return err
	}
	if err := svc.ResetSchedule(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Schedule cleared; all jobs returned to the backlog.")
	return nil
}
