package memory

import (
	"sync"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/domain/repositories"
)

type timingKey struct {
	pn  entities.PartNumber
	rev entities.Revision
}

// PartRepository is the in-memory part master.
type PartRepository struct {
	mu      sync.RWMutex
	timings map[timingKey]entities.PartTiming
}

// NewPartRepository creates an empty part master.
func NewPartRepository() *PartRepository {
	return &PartRepository{timings: make(map[timingKey]entities.PartTiming)}
}

// Verify interface compliance
var _ repositories.PartRepository = (*PartRepository)(nil)

// PutTiming records the timing for a part number and revision.
func (r *PartRepository) PutTiming(pn entities.PartNumber, rev entities.Revision, timing entities.PartTiming) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings[timingKey{pn, rev}] = timing
}

// GetTiming looks up a part's timing; ErrTimingNotFound when absent.
func (r *PartRepository) GetTiming(pn entities.PartNumber, rev entities.Revision) (entities.PartTiming, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	timing, ok := r.timings[timingKey{pn, rev}]
	if !ok {
		return entities.PartTiming{}, repositories.ErrTimingNotFound
	}
	return timing, nil
}
