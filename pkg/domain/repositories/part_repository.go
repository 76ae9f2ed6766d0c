package repositories

import (
	"errors"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// ErrTimingNotFound is returned when the part master has no timing entry
// for a part number and revision. Callers fall back to estimated defaults.
var ErrTimingNotFound = errors.New("part timing not found")

// PartRepository provides access to part master timing data.
type PartRepository interface {
	// GetTiming looks up setup and cycle hours by part number and revision.
	// Returns ErrTimingNotFound when the part has no entry.
	GetTiming(partNumber entities.PartNumber, revision entities.Revision) (entities.PartTiming, error)
}
