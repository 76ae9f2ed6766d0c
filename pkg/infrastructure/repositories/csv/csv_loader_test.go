package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJobs(t *testing.T) {
	path := writeCSV(t, "jobs.csv",
		`id,po_number,customer,part_number,revision,quantity,due_date,machine_type,machine,scheduled_start,scheduled_end
J-1,PO-100,Aerotech,BRKT-204,C,30,2025-03-07,Mill,,,
J-2,PO-101,Hydra,SHAFT-88,A,12,,Lathe,lathe-1,2025-03-03T09:00:00Z,2025-03-04T17:00:00Z
`)

	loader := NewLoader()
	jobs, err := loader.LoadJobs(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	j1 := jobs[0]
	assert.Equal(t, "J-1", j1.ID)
	assert.Equal(t, entities.PartNumber("BRKT-204"), j1.PartNumber)
	require.NotNil(t, j1.DueDate)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), *j1.DueDate)
	assert.False(t, j1.Scheduled())

	j2 := jobs[1]
	assert.Nil(t, j2.DueDate)
	assert.Equal(t, entities.MachineID("lathe-1"), j2.Machine)
	assert.True(t, j2.Scheduled())
}

func TestLoadJobs_HeaderMismatch(t *testing.T) {
	path := writeCSV(t, "jobs.csv",
		`id,po_number,quantity
J-1,PO-100,30
`)

	_, err := NewLoader().LoadJobs(path)
	assert.ErrorContains(t, err, "header mismatch")
}

func TestLoadJobs_RowErrorsNameTheRow(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad quantity", `J-1,PO-100,Aerotech,BRKT-204,C,lots,,,,,`, "invalid quantity"},
		{"bad due date", `J-1,PO-100,Aerotech,BRKT-204,C,30,07/03/2025,,,,`, "invalid due_date"},
		{"zero quantity", `J-1,PO-100,Aerotech,BRKT-204,C,0,,,,,`, "Quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "jobs.csv",
				"id,po_number,customer,part_number,revision,quantity,due_date,machine_type,machine,scheduled_start,scheduled_end\n"+tt.row+"\n")
			_, err := NewLoader().LoadJobs(path)
			require.Error(t, err)
			assert.ErrorContains(t, err, "row 2")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadPartTimings(t *testing.T) {
	path := writeCSV(t, "parts.csv",
		`part_number,revision,setup_hours,cycle_hours
BRKT-204,C,1.0,0.5
BRKT-204,D,1.25,0.5
SHAFT-88,A,0.5,0.75
`)

	timings, err := NewLoader().LoadPartTimings(path)
	require.NoError(t, err)
	require.Len(t, timings, 2)
	require.Len(t, timings["BRKT-204"], 2)

	c := timings["BRKT-204"]["C"]
	assert.True(t, c.SetupHours.Equal(decimal.NewFromFloat(1.0)))
	assert.True(t, c.CycleHours.Equal(decimal.NewFromFloat(0.5)))
	assert.False(t, c.Estimated)
}

func TestLoadPartTimings_NegativeHoursRejected(t *testing.T) {
	path := writeCSV(t, "parts.csv",
		`part_number,revision,setup_hours,cycle_hours
BRKT-204,C,-1,0.5
`)

	_, err := NewLoader().LoadPartTimings(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "row 2")
}
