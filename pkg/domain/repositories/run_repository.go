package repositories

import (
	"context"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// RunRepository persists planning runs. Implementations must make
// SaveRun atomic: the run header and every node become visible together
// or not at all.
type RunRepository interface {
	// SaveRun commits a run header and its complete node set in one
	// transaction.
	SaveRun(ctx context.Context, run *entities.Run, nodes []*entities.RequirementNode) error

	// GetRun returns the run header, or (nil, nil) when unknown.
	GetRun(ctx context.Context, id entities.RunID) (*entities.Run, error)

	// GetRunNodes returns the run's nodes in creation (id) order.
	GetRunNodes(ctx context.Context, id entities.RunID) ([]*entities.RequirementNode, error)

	// ListRuns returns run headers in creation order, optionally
	// filtered to one MPS.
	ListRuns(ctx context.Context, mpsID *entities.MPSID) ([]*entities.Run, error)

	// DeleteRun removes the run and all of its nodes in one
	// transaction, leaving no orphans. Returns *entities.RunNotFoundError
	// when the run does not exist.
	DeleteRun(ctx context.Context, id entities.RunID) error
}
