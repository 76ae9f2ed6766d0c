package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rkowalski/shopsched/pkg/application/services"
	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/infrastructure/events"
	"github.com/rkowalski/shopsched/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Shop floor: two mills and a lathe, Mon-Fri 9-17
	machines := []*entities.Machine{
		{ID: "mill-1", Name: "Haas VF-2", Type: "Mill"},
		{ID: "mill-4x", Name: "4th Axis Mill", Type: "Mill"},
		{ID: "lathe-1", Name: "ST-10", Type: "Lathe"},
	}
	calendar := entities.DefaultCalendar()

	store := memory.NewScheduleStore(machines)
	store.LoadJobs(demoJobs())

	parts := memory.NewPartRepository()
	setupPartMaster(parts)

	eventStore := events.NewInMemoryEventStore()
	eventStore.Subscribe([]string{events.JobScheduledEvent}, func(e events.Event) {
		fmt.Printf("  event: %s %s\n", e.Type, e.StreamID)
	})

	shopConfig := memory.NewShopConfigRepository(calendar, machines)
	svc := services.NewScheduleService(store, parts, shopConfig, eventStore, nil)

	fmt.Println("🏭 Scheduling the open job book...")
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC) // Monday before open
	summary, err := svc.AutoSchedule(ctx, now)
	if err != nil {
		fmt.Printf("❌ Scheduling failed: %v\n", err)
		return
	}

	fmt.Printf("\n📊 Run %s: %d scheduled, %d skipped\n", summary.RunID, summary.ScheduledCount, summary.SkippedCount)
	for _, a := range summary.Assignments {
		note := ""
		if a.Estimated {
			note = " (estimated timing)"
		}
		fmt.Printf("  %s → %s  %s to %s%s\n",
			a.JobID, a.MachineID,
			a.Start.Format("Mon Jan 2 15:04"),
			a.End.Format("Mon Jan 2 15:04"),
			note)
	}
	for _, sk := range summary.Skipped {
		fmt.Printf("  %s skipped: %s (%s)\n", sk.JobID, sk.Reason, sk.Detail)
	}

	// Ask what a mid-run day should deliver for the first job.
	fmt.Println("\n📈 Throughput check for J-1001:")
	for day := 0; day < 3; day++ {
		date := now.AddDate(0, 0, day)
		p, err := svc.Projection(ctx, "J-1001", date)
		if err != nil {
			fmt.Printf("  projection failed: %v\n", err)
			return
		}
		fmt.Printf("  %s: %d planned, %d/%d complete\n",
			date.Format("Mon Jan 2"), p.UnitsPlanned, p.UnitsCompleted, p.Quantity)
	}
}

func demoJobs() []*entities.Job {
	due := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return []*entities.Job{
		{ID: "J-1001", PONumber: "PO-5521", Customer: "Aerotech", PartNumber: "BRKT-204", Revision: "C", Quantity: 30, DueDate: due(2025, 3, 7), RequiredMachineType: "Mill"},
		{ID: "J-1002", PONumber: "PO-5522", Customer: "Hydra Pumps", PartNumber: "SHAFT-88", Revision: "A", Quantity: 12, DueDate: due(2025, 3, 10), RequiredMachineType: "Lathe"},
		{ID: "J-1003", PONumber: "PO-5523", Customer: "Aerotech", PartNumber: "PLATE-17", Revision: "B", Quantity: 50, RequiredMachineType: "Mill"},
		{ID: "J-1004", PONumber: "PO-5524", Customer: "Nordic Valve", PartNumber: "BODY-3", Revision: "A", Quantity: 8, DueDate: due(2025, 3, 5), RequiredMachineType: "Grinder"},
	}
}

func setupPartMaster(parts *memory.PartRepository) {
	put := func(pn entities.PartNumber, rev entities.Revision, setup, cycle float64) {
		timing, err := entities.NewPartTiming(setup, cycle)
		if err != nil {
			panic(err)
		}
		parts.PutTiming(pn, rev, timing)
	}
	put("BRKT-204", "C", 1.0, 0.5)
	put("SHAFT-88", "A", 0.5, 0.75)
	// PLATE-17 has no measured timing; the run falls back to shop estimates.
}
