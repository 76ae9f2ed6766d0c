package entities

import (
	"fmt"
	"sort"
	"time"
)

// ScheduleInterval is one committed block of work on a machine.
type ScheduleInterval struct {
	Start time.Time
	End   time.Time
	JobID string
}

// Overlaps reports whether two intervals share any span of time.
// Touching endpoints (one ends exactly when the other starts) do not count.
func (i ScheduleInterval) Overlaps(other ScheduleInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Assignment is the commit unit produced by an auto-schedule run: job,
// machine and the computed window.
type Assignment struct {
	JobID     string
	MachineID MachineID
	Start     time.Time
	End       time.Time
}

// MachineSchedule holds the committed intervals of one machine, kept sorted
// by end time. Intervals for one machine never overlap.
type MachineSchedule struct {
	MachineID MachineID
	Type      string
	Intervals []ScheduleInterval
}

// NewMachineSchedule creates an empty schedule for a machine.
func NewMachineSchedule(m *Machine) *MachineSchedule {
	return &MachineSchedule{MachineID: m.ID, Type: m.Type}
}

// Add inserts an interval, preserving end-time order, and rejects any
// interval that overlaps an existing one.
func (s *MachineSchedule) Add(iv ScheduleInterval) error {
	if !iv.End.After(iv.Start) {
		return fmt.Errorf("interval for job %s ends %s before it starts %s", iv.JobID, iv.End, iv.Start)
	}
	for _, existing := range s.Intervals {
		if existing.Overlaps(iv) {
			return fmt.Errorf("interval for job %s overlaps job %s on machine %s",
				iv.JobID, existing.JobID, s.MachineID)
		}
	}
	s.Intervals = append(s.Intervals, iv)
	sort.Slice(s.Intervals, func(a, b int) bool {
		return s.Intervals[a].End.Before(s.Intervals[b].End)
	})
	return nil
}

// LastEnd returns the end of the latest committed interval, if any.
func (s *MachineSchedule) LastEnd() (time.Time, bool) {
	if len(s.Intervals) == 0 {
		return time.Time{}, false
	}
	return s.Intervals[len(s.Intervals)-1].End, true
}

// HasOverlap reports whether any two intervals overlap. The invariant is
// checked after every commit.
func (s *MachineSchedule) HasOverlap() bool {
	for i := 1; i < len(s.Intervals); i++ {
		if s.Intervals[i-1].Overlaps(s.Intervals[i]) {
			return true
		}
	}
	return false
}
