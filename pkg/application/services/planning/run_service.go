package planning

import (
	"context"
	"fmt"

	"github.com/mfgkit/mrplan/pkg/application/dto"
	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
)

// RunService coordinates run creation, retrieval and deletion around the
// explosion engine. The repository commit is the single transactional
// boundary: a run's header and nodes persist together or not at all.
type RunService struct {
	engine        *Engine
	demandRepo    repositories.DemandRepository
	inventoryRepo repositories.InventoryRepository
	runRepo       repositories.RunRepository
}

// NewRunService creates a run service.
func NewRunService(
	engine *Engine,
	demandRepo repositories.DemandRepository,
	inventoryRepo repositories.InventoryRepository,
	runRepo repositories.RunRepository,
) *RunService {
	return &RunService{
		engine:        engine,
		demandRepo:    demandRepo,
		inventoryRepo: inventoryRepo,
		runRepo:       runRepo,
	}
}

// CreateRunRequest carries the parameters of one planning run. A zero
// LeadTimeFactor defaults to 1.0.
type CreateRunRequest struct {
	Name               string
	Description        string
	MPSID              entities.MPSID
	LeadTimeFactor     float64
	IncludeSafetyStock bool
}

// CreateRun validates the MPS, explodes every schedule line and commits
// the resulting node set atomically. Validation and explosion failures
// (*entities.MPSNotFoundError, *entities.ProductNotFoundError,
// *entities.CycleDetectedError) abort before anything is persisted.
func (s *RunService) CreateRun(ctx context.Context, req CreateRunRequest) (*entities.Run, error) {
	mps, err := s.demandRepo.GetMPS(ctx, req.MPSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mps %d: %w", req.MPSID, err)
	}
	if mps == nil {
		return nil, &entities.MPSNotFoundError{MPSID: req.MPSID}
	}

	run, err := entities.NewRun(req.Name, req.Description, req.MPSID, req.LeadTimeFactor, req.IncludeSafetyStock)
	if err != nil {
		return nil, err
	}

	lines, err := s.demandRepo.GetScheduleLines(ctx, req.MPSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule lines for mps %d: %w", req.MPSID, err)
	}

	nodes, err := s.engine.Explode(ctx, run, lines)
	if err != nil {
		return nil, err
	}

	if err := s.runRepo.SaveRun(ctx, run, nodes); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	return run, nil
}

// GetRunResult returns a run header with its node set annotated by the
// hierarchy builder and enriched with current item codes and names.
// Items deleted since the run leave the code and name blank.
func (s *RunService) GetRunResult(ctx context.Context, runID entities.RunID) (*dto.RunResult, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	if run == nil {
		return nil, &entities.RunNotFoundError{RunID: runID}
	}

	nodes, err := s.runRepo.GetRunNodes(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get nodes for run %s: %w", runID, err)
	}

	annotated, err := BuildHierarchy(runID, nodes)
	if err != nil {
		return nil, err
	}

	items := make(map[entities.ItemID]*entities.Item)

	result := &dto.RunResult{
		ID:                 run.ID,
		Name:               run.Name,
		Description:        run.Description,
		MPSID:              run.MPSID,
		LeadTimeFactor:     run.LeadTimeFactor,
		IncludeSafetyStock: run.IncludeSafetyStock,
		RunDate:            run.RunDate,
		Items:              make([]dto.ResultNode, 0, len(annotated)),
	}

	for _, a := range annotated {
		item, cached := items[a.Node.ItemID]
		if !cached {
			item, err = s.inventoryRepo.GetItem(ctx, a.Node.ItemID)
			if err != nil {
				return nil, fmt.Errorf("failed to get item %d: %w", a.Node.ItemID, err)
			}
			items[a.Node.ItemID] = item
		}

		node := dto.ResultNode{
			ID:                  a.Node.ID,
			ItemID:              a.Node.ItemID,
			BOMID:               a.Node.BOMID,
			MPSLineID:           a.Node.MPSLineID,
			ParentID:            a.Node.ParentID,
			RequiredDate:        a.Node.RequiredDate,
			OrderReleaseDate:    a.Node.OrderReleaseDate,
			GrossRequirement:    a.Node.GrossRequirement,
			ProjectedOnHand:     a.Node.ProjectedOnHand,
			NetRequirement:      a.Node.NetRequirement,
			PlannedOrderRelease: a.Node.PlannedOrderRelease,
			PlannedOrderReceipt: a.Node.PlannedOrderReceipt,
			IsCritical:          a.Node.IsCritical,
			Level:               a.Level,
			HasChildren:         a.HasChildren,
		}
		if item != nil {
			node.ItemCode = item.Code
			node.ItemName = item.Name
		}

		result.Items = append(result.Items, node)
	}

	return result, nil
}

// ListRuns returns run headers, optionally filtered to one MPS.
func (s *RunService) ListRuns(ctx context.Context, mpsID *entities.MPSID) ([]*entities.Run, error) {
	runs, err := s.runRepo.ListRuns(ctx, mpsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and all of its nodes. Returns
// *entities.RunNotFoundError when the run does not exist.
func (s *RunService) DeleteRun(ctx context.Context, runID entities.RunID) error {
	return s.runRepo.DeleteRun(ctx, runID)
}
