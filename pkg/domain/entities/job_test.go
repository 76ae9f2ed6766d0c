package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJob_Scheduled(t *testing.T) {
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 4, 17, 0, 0, 0, time.UTC)

	job := &Job{ID: "J1", PartNumber: "P-100", Quantity: 5}
	assert.False(t, job.Scheduled())

	job.ScheduledStart = &start
	assert.False(t, job.Scheduled(), "start alone does not make a job scheduled")

	job.ScheduledEnd = &end
	assert.True(t, job.Scheduled())

	job.ClearSchedule()
	assert.False(t, job.Scheduled())
	assert.Empty(t, job.Machine)
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{"valid", Job{ID: "J1", PartNumber: "P-100", Quantity: 1}, false},
		{"missing id", Job{PartNumber: "P-100", Quantity: 1}, true},
		{"missing part number", Job{ID: "J1", Quantity: 1}, true},
		{"zero quantity", Job{ID: "J1", PartNumber: "P-100", Quantity: 0}, true},
		{"negative quantity", Job{ID: "J1", PartNumber: "P-100", Quantity: -4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
