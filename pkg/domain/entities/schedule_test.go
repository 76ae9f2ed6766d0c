package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interval(t *testing.T, jobID string, startDay, endDay int) ScheduleInterval {
	t.Helper()
	return ScheduleInterval{
		Start: time.Date(2025, 3, startDay, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, endDay, 17, 0, 0, 0, time.UTC),
		JobID: jobID,
	}
}

func TestMachineSchedule_AddKeepsEndOrder(t *testing.T) {
	s := NewMachineSchedule(&Machine{ID: "mill-1", Type: "Mill"})

	require.NoError(t, s.Add(interval(t, "b", 10, 12)))
	require.NoError(t, s.Add(interval(t, "a", 3, 5)))
	require.NoError(t, s.Add(interval(t, "c", 17, 19)))

	var order []string
	for _, iv := range s.Intervals {
		order = append(order, iv.JobID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)

	last, ok := s.LastEnd()
	require.True(t, ok)
	assert.Equal(t, 19, last.Day())
}

func TestMachineSchedule_AddRejectsOverlap(t *testing.T) {
	s := NewMachineSchedule(&Machine{ID: "mill-1", Type: "Mill"})
	require.NoError(t, s.Add(interval(t, "a", 3, 7)))

	err := s.Add(interval(t, "b", 5, 10))
	assert.Error(t, err)
	assert.Len(t, s.Intervals, 1)
	assert.False(t, s.HasOverlap())
}

func TestMachineSchedule_TouchingIntervalsDoNotOverlap(t *testing.T) {
	s := NewMachineSchedule(&Machine{ID: "lathe-1", Type: "Lathe"})
	a := interval(t, "a", 3, 5)
	b := ScheduleInterval{Start: a.End, End: a.End.Add(8 * time.Hour), JobID: "b"}

	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))
	assert.False(t, s.HasOverlap())
}

func TestMachineSchedule_AddRejectsInvertedInterval(t *testing.T) {
	s := NewMachineSchedule(&Machine{ID: "mill-1", Type: "Mill"})
	err := s.Add(interval(t, "bad", 10, 8))
	assert.Error(t, err)
}

func TestMachineSchedule_LastEndEmpty(t *testing.T) {
	s := NewMachineSchedule(&Machine{ID: "mill-1", Type: "Mill"})
	_, ok := s.LastEnd()
	assert.False(t, ok)
}
