package planning

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
	"github.com/mfgkit/mrplan/pkg/domain/services"
)

// Engine explodes time-phased demand into a flat, parent-linked
// requirement node set. One Explode call is a single synchronous
// traversal; concurrent runs are independent because the engine only
// reads its collaborators and every run owns a fresh node arena.
type Engine struct {
	bomRepo       repositories.BOMRepository
	inventoryRepo repositories.InventoryRepository
}

// NewEngine creates an explosion engine over the given providers.
func NewEngine(bomRepo repositories.BOMRepository, inventoryRepo repositories.InventoryRepository) *Engine {
	return &Engine{
		bomRepo:       bomRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Explode walks every schedule line and returns the complete node set
// for the run. Any failure (unknown demand-line product, BOM cycle)
// returns an error and no nodes; callers must not persist partial
// results.
func (e *Engine) Explode(ctx context.Context, run *entities.Run, lines []*entities.ScheduleLine) ([]*entities.RequirementNode, error) {
	arena := newNodeArena(run.ID, len(lines)*8)

	for _, line := range lines {
		if err := e.explodeLine(ctx, run, arena, line); err != nil {
			return nil, err
		}
	}

	return arena.nodes, nil
}

// explodeLine creates the top-level node for one demand line and
// recurses into its BOM. Lines whose product has no active BOM are
// skipped: those are finished goods bought or stocked directly, not
// planned via MRP.
func (e *Engine) explodeLine(ctx context.Context, run *entities.Run, arena *nodeArena, line *entities.ScheduleLine) error {
	bom, err := e.bomRepo.GetActiveBOM(ctx, line.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get active BOM for product %d: %w", line.ProductID, err)
	}
	if bom == nil {
		return nil
	}

	product, err := e.inventoryRepo.GetItem(ctx, line.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get product %d: %w", line.ProductID, err)
	}
	if product == nil {
		return &entities.ProductNotFoundError{ItemID: line.ProductID}
	}

	net, critical := services.NetRequirement(line.Quantity, product.OnHand, e.safetyStock(run, product.ReorderPoint))

	lineID := line.ID
	bomID := bom.ID
	node := arena.append(&entities.RequirementNode{
		ItemID:              line.ProductID,
		BOMID:               &bomID,
		MPSLineID:           &lineID,
		RequiredDate:        line.RequiredDate,
		OrderReleaseDate:    services.ReleaseDate(line.RequiredDate, product.LeadTimeDays, run.LeadTimeFactor),
		GrossRequirement:    line.Quantity,
		ProjectedOnHand:     product.OnHand,
		NetRequirement:      net,
		PlannedOrderRelease: net,
		PlannedOrderReceipt: net,
		IsCritical:          critical,
	})

	// BOM ids open on the path from this top-level node downward. The
	// guard doubles as the recursion depth bound.
	openBOMs := map[entities.BOMID]bool{bom.ID: true}

	return e.explodeComponents(ctx, run, arena, node, bom, openBOMs)
}

// explodeComponents creates one child node per BOM component of the
// parent and recurses wherever the component itself carries an active
// BOM.
func (e *Engine) explodeComponents(ctx context.Context, run *entities.Run, arena *nodeArena, parent *entities.RequirementNode, bom *entities.BOM, openBOMs map[entities.BOMID]bool) error {
	for i := range bom.Components {
		component := &bom.Components[i]

		item, err := e.inventoryRepo.GetItem(ctx, component.ComponentID)
		if err != nil {
			return fmt.Errorf("failed to get component %d: %w", component.ComponentID, err)
		}

		// Raw materials may legitimately lack a tracked inventory item;
		// degrade to a zero snapshot instead of failing the run.
		onHand := decimal.Zero
		reorderPoint := decimal.Zero
		leadTimeDays := 0
		if item != nil {
			onHand = item.OnHand
			reorderPoint = item.ReorderPoint
			leadTimeDays = item.LeadTimeDays
		}

		gross := parent.PlannedOrderRelease.Mul(component.Quantity)
		net, critical := services.NetRequirement(gross, onHand, e.safetyStock(run, reorderPoint))

		childBOM, err := e.bomRepo.GetActiveBOM(ctx, component.ComponentID)
		if err != nil {
			return fmt.Errorf("failed to get active BOM for component %d: %w", component.ComponentID, err)
		}

		var bomID *entities.BOMID
		if childBOM != nil {
			if openBOMs[childBOM.ID] {
				return &entities.CycleDetectedError{BOMID: childBOM.ID, ItemID: component.ComponentID}
			}
			id := childBOM.ID
			bomID = &id
		}

		parentID := parent.ID
		node := arena.append(&entities.RequirementNode{
			ItemID:    component.ComponentID,
			BOMID:     bomID,
			ParentID:  &parentID,
			MPSLineID: nil,
			// Single-snapshot netting carries the parent's date down;
			// only the release date is offset per item.
			RequiredDate:        parent.RequiredDate,
			OrderReleaseDate:    services.ReleaseDate(parent.RequiredDate, leadTimeDays, run.LeadTimeFactor),
			GrossRequirement:    gross,
			ProjectedOnHand:     onHand,
			NetRequirement:      net,
			PlannedOrderRelease: net,
			PlannedOrderReceipt: net,
			IsCritical:          critical,
		})

		if childBOM != nil {
			openBOMs[childBOM.ID] = true
			if err := e.explodeComponents(ctx, run, arena, node, childBOM, openBOMs); err != nil {
				return err
			}
			delete(openBOMs, childBOM.ID)
		}
	}

	return nil
}

func (e *Engine) safetyStock(run *entities.Run, reorderPoint entities.Quantity) entities.Quantity {
	if run.IncludeSafetyStock {
		return reorderPoint
	}
	return decimal.Zero
}

// nodeArena assigns dense per-run node ids and owns the append-only node
// set. Nodes reference each other by id, never by pointer, so the arena
// contents persist as-is.
type nodeArena struct {
	runID  entities.RunID
	nextID entities.NodeID
	nodes  []*entities.RequirementNode
}

func newNodeArena(runID entities.RunID, capacity int) *nodeArena {
	return &nodeArena{
		runID:  runID,
		nextID: 1,
		nodes:  make([]*entities.RequirementNode, 0, capacity),
	}
}

func (a *nodeArena) append(node *entities.RequirementNode) *entities.RequirementNode {
	node.ID = a.nextID
	node.RunID = a.runID
	a.nextID++
	a.nodes = append(a.nodes, node)
	return node
}
