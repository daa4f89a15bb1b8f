package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
)

// RunRepository is an in-memory run store. Saves and reads deep-copy the
// node set so a committed run stays immutable no matter what callers do
// with the slices they handed in or got back.
type RunRepository struct {
	mu    sync.RWMutex
	runs  map[entities.RunID]entities.Run
	nodes map[entities.RunID][]entities.RequirementNode
	order []entities.RunID
}

// NewRunRepository creates an in-memory run repository.
func NewRunRepository() *RunRepository {
	return &RunRepository{
		runs:  make(map[entities.RunID]entities.Run),
		nodes: make(map[entities.RunID][]entities.RequirementNode),
	}
}

// Verify interface compliance
var _ repositories.RunRepository = (*RunRepository)(nil)

// SaveRun commits a run header and its complete node set. The write is
// atomic under the repository lock; a duplicate run id is rejected.
func (r *RunRepository) SaveRun(ctx context.Context, run *entities.Run, nodes []*entities.RequirementNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return fmt.Errorf("run %s already exists", run.ID)
	}

	stored := make([]entities.RequirementNode, 0, len(nodes))
	for _, node := range nodes {
		stored = append(stored, cloneNode(node))
	}

	r.runs[run.ID] = *run
	r.nodes[run.ID] = stored
	r.order = append(r.order, run.ID)
	return nil
}

// GetRun returns a copy of the run header, or (nil, nil) when unknown.
func (r *RunRepository) GetRun(ctx context.Context, id entities.RunID) (*entities.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[id]
	if !exists {
		return nil, nil
	}
	return &run, nil
}

// GetRunNodes returns copies of the run's nodes in creation order.
func (r *RunRepository) GetRunNodes(ctx context.Context, id entities.RunID) ([]*entities.RequirementNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.nodes[id]
	nodes := make([]*entities.RequirementNode, 0, len(stored))
	for i := range stored {
		node := cloneNode(&stored[i])
		nodes = append(nodes, &node)
	}
	return nodes, nil
}

// ListRuns returns run headers in creation order, optionally filtered to
// one MPS.
func (r *RunRepository) ListRuns(ctx context.Context, mpsID *entities.MPSID) ([]*entities.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var runs []*entities.Run
	for _, id := range r.order {
		run := r.runs[id]
		if mpsID != nil && run.MPSID != *mpsID {
			continue
		}
		runs = append(runs, &run)
	}
	return runs, nil
}

// DeleteRun removes the run header and all of its nodes together.
func (r *RunRepository) DeleteRun(ctx context.Context, id entities.RunID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[id]; !exists {
		return &entities.RunNotFoundError{RunID: id}
	}

	delete(r.runs, id)
	delete(r.nodes, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored runs.
func (r *RunRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}

// NodeCount returns the total number of stored nodes across all runs.
func (r *RunRepository) NodeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, nodes := range r.nodes {
		total += len(nodes)
	}
	return total
}

// cloneNode copies a node including its pointer fields, so no two stored
// or returned nodes share memory.
func cloneNode(node *entities.RequirementNode) entities.RequirementNode {
	clone := *node
	if node.BOMID != nil {
		id := *node.BOMID
		clone.BOMID = &id
	}
	if node.MPSLineID != nil {
		id := *node.MPSLineID
		clone.MPSLineID = &id
	}
	if node.ParentID != nil {
		id := *node.ParentID
		clone.ParentID = &id
	}
	return clone
}
