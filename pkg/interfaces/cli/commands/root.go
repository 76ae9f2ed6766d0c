package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rkowalski/shopsched/pkg/application/services"
	"github.com/rkowalski/shopsched/pkg/infrastructure/config"
	"github.com/rkowalski/shopsched/pkg/infrastructure/events"
	"github.com/rkowalski/shopsched/pkg/infrastructure/repositories/csv"
	"github.com/rkowalski/shopsched/pkg/infrastructure/repositories/memory"
)

// shopContext carries the shared flags and builds the service stack the
// subcommands run against: shop config from YAML, jobs and part timings
// from CSV, everything held in memory for the duration of the command.
type shopContext struct {
	configPath string
	jobsPath   string
	partsPath  string
	verbose    bool
}

// New assembles the root command.
func New() *cobra.Command {
	shop := &shopContext{}

	cmd := &cobra.Command{
		Use:          "shopsched",
		Short:        "Production scheduling for a small machine shop",
		Long:         "shopsched assigns open jobs to machines over the shop's operating calendar and reports per-day throughput for committed schedules.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&shop.configPath, "config", "shop.yaml", "Shop configuration file (operating days, hours, machines)")
	cmd.PersistentFlags().StringVar(&shop.jobsPath, "jobs", "jobs.csv", "Jobs CSV file")
	cmd.PersistentFlags().StringVar(&shop.partsPath, "parts", "", "Part timings CSV file (optional; missing parts use shop estimates)")
	cmd.PersistentFlags().BoolVarP(&shop.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		ScheduleCommand(shop),
		ShowCommand(shop),
		ProjectionCommand(shop),
		ResetCommand(shop),
	)
	return cmd
}

func (c *shopContext) logger() *logrus.Logger {
	log := logrus.New()
	if c.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// buildService loads the configured shop and returns the wired service
// plus the backing store (the store is kept so commands can re-save or
// display raw jobs).
func (c *shopContext) buildService() (*services.ScheduleService, *memory.ScheduleStore, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, nil, err
	}
	machines, err := cfg.MachineList()
	if err != nil {
		return nil, nil, err
	}
	if len(machines) == 0 {
		return nil, nil, fmt.Errorf("shop config %s declares no machines", c.configPath)
	}

	loader := csv.NewLoader()
	jobs, err := loader.LoadJobs(c.jobsPath)
	if err != nil {
		return nil, nil, err
	}

	store := memory.NewScheduleStore(machines)
	store.LoadJobs(jobs)

	parts := memory.NewPartRepository()
	if c.partsPath != "" {
		timings, err := loader.LoadPartTimings(c.partsPath)
		if err != nil {
			return nil, nil, err
		}
		for pn, revs := range timings {
			for rev, timing := range revs {
				parts.PutTiming(pn, rev, timing)
			}
		}
	}

	shopConfig := memory.NewShopConfigRepository(cal, machines)
	svc := services.NewScheduleService(store, parts, shopConfig, events.NewInMemoryEventStore(), c.logger())
	return svc, store, nil
}
