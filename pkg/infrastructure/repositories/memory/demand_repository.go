package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
)

// DemandRepository is an in-memory master production schedule store. The
// cooperative MPS lock is enforced here, at the data-access layer: a
// locked schedule refuses line edits while the planning engine keeps
// reading it freely.
type DemandRepository struct {
	mu    sync.RWMutex
	mpss  map[entities.MPSID]entities.MPS
	lines map[entities.MPSID][]entities.ScheduleLine
}

// NewDemandRepository creates an in-memory demand repository.
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		mpss:  make(map[entities.MPSID]entities.MPS),
		lines: make(map[entities.MPSID][]entities.ScheduleLine),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// AddMPS adds or replaces a schedule header.
func (r *DemandRepository) AddMPS(mps entities.MPS) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mpss[mps.ID] = mps
}

// AddScheduleLine appends a demand line to its MPS. Refused when the MPS
// is unknown or locked.
func (r *DemandRepository) AddScheduleLine(line entities.ScheduleLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mps, exists := r.mpss[line.MPSID]
	if !exists {
		return fmt.Errorf("mps not found: %d", line.MPSID)
	}
	if mps.IsLocked {
		return fmt.Errorf("mps %d is locked", line.MPSID)
	}

	r.lines[line.MPSID] = append(r.lines[line.MPSID], line)
	return nil
}

// SetLocked flips the cooperative edit lock on an MPS.
func (r *DemandRepository) SetLocked(id entities.MPSID, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mps, exists := r.mpss[id]
	if !exists {
		return fmt.Errorf("mps not found: %d", id)
	}
	mps.IsLocked = locked
	r.mpss[id] = mps
	return nil
}

// GetMPS returns a copy of the schedule header, or (nil, nil) when
// unknown.
func (r *DemandRepository) GetMPS(ctx context.Context, id entities.MPSID) (*entities.MPS, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mps, exists := r.mpss[id]
	if !exists {
		return nil, nil
	}
	return &mps, nil
}

// GetScheduleLines returns copies of the MPS's lines in insertion order.
func (r *DemandRepository) GetScheduleLines(ctx context.Context, id entities.MPSID) ([]*entities.ScheduleLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.lines[id]
	lines := make([]*entities.ScheduleLine, 0, len(stored))
	for i := range stored {
		line := stored[i]
		lines = append(lines, &line)
	}
	return lines, nil
}
