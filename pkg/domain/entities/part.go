package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartNumber identifies a part drawing.
type PartNumber string

// Revision identifies a drawing revision of a part.
type Revision string

// PartTiming carries the per-part production timings: fixed setup hours
// consumed once per job, and cycle hours per produced unit.
//
// Estimated marks timings that did not come from the part master; scheduling
// results derived from them are flagged so the shop knows the dates are
// rough.
type PartTiming struct {
	SetupHours decimal.Decimal
	CycleHours decimal.Decimal
	Estimated  bool
}

// Default estimates applied when a part has no timing data on file:
// 15 minutes of setup and 30 minutes per unit.
var (
	defaultSetupHours = decimal.NewFromFloat(0.25)
	defaultCycleHours = decimal.NewFromFloat(0.5)
)

// DefaultPartTiming returns the estimated timing used when the part master
// has no entry for a part number and revision.
func DefaultPartTiming() PartTiming {
	return PartTiming{
		SetupHours: defaultSetupHours,
		CycleHours: defaultCycleHours,
		Estimated:  true,
	}
}

// NewPartTiming creates a validated PartTiming from hour values.
func NewPartTiming(setupHours, cycleHours float64) (PartTiming, error) {
	if setupHours < 0 {
		return PartTiming{}, fmt.Errorf("setup hours must be >= 0, got %v", setupHours)
	}
	if cycleHours < 0 {
		return PartTiming{}, fmt.Errorf("cycle hours must be >= 0, got %v", cycleHours)
	}
	return PartTiming{
		SetupHours: decimal.NewFromFloat(setupHours),
		CycleHours: decimal.NewFromFloat(cycleHours),
	}, nil
}

// EffectiveCycleHours returns the cycle time used for capacity math. A zero
// cycle time is treated as one unit per hour so division by zero can never
// occur downstream.
func (t PartTiming) EffectiveCycleHours() decimal.Decimal {
	if t.CycleHours.IsZero() {
		return decimal.NewFromInt(1)
	}
	return t.CycleHours
}
