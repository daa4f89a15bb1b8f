package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunID identifies one planning run.
type RunID = uuid.UUID

// NodeID identifies a requirement node within its run. Ids are dense,
// start at 1 and are assigned in creation order, so a node's parent
// always has a smaller id.
type NodeID int64

// Run is the immutable header of one planning execution. Its node set is
// written together with it in a single commit and never mutated
// afterward; the only later lifecycle event is whole-run deletion.
type Run struct {
	ID          RunID
	Name        string
	Description string
	MPSID       MPSID
	// LeadTimeFactor scales every item lead time for this run, allowing
	// what-if compression or expansion without touching item master data.
	LeadTimeFactor     float64
	IncludeSafetyStock bool
	RunDate            time.Time
}

// NewRun creates a validated Run with a fresh id and timestamp. A zero
// lead-time factor defaults to 1.0.
func NewRun(name, description string, mpsID MPSID, leadTimeFactor float64, includeSafetyStock bool) (*Run, error) {
	if name == "" {
		return nil, fmt.Errorf("run name cannot be empty")
	}
	if mpsID <= 0 {
		return nil, fmt.Errorf("run mps id must be positive, got %d", mpsID)
	}
	if leadTimeFactor < 0 {
		return nil, fmt.Errorf("lead time factor cannot be negative, got %g", leadTimeFactor)
	}
	if leadTimeFactor == 0 {
		leadTimeFactor = 1.0
	}

	return &Run{
		ID:                 uuid.New(),
		Name:               name,
		Description:        description,
		MPSID:              mpsID,
		LeadTimeFactor:     leadTimeFactor,
		IncludeSafetyStock: includeSafetyStock,
		RunDate:            time.Now().UTC(),
	}, nil
}

// RequirementNode is one node of a run's requirement graph. Nodes
// reference each other by id rather than by pointer; the flat set plus
// ParentID links is the persisted form, and hierarchy annotations are
// recomputed on read.
type RequirementNode struct {
	ID     NodeID
	RunID  RunID
	ItemID ItemID
	// BOMID is the active BOM exploded at this node; nil marks a raw
	// material or purchased leaf.
	BOMID *BOMID
	// MPSLineID links a top-level node back to the demand line that
	// produced it; always nil on child nodes.
	MPSLineID *ScheduleLineID
	// ParentID is nil on top-level (demand-originated) nodes.
	ParentID *NodeID

	RequiredDate     time.Time
	OrderReleaseDate time.Time

	GrossRequirement Quantity
	// ProjectedOnHand is the on-hand snapshot read at computation time;
	// it is not updated when the ledger later moves stock.
	ProjectedOnHand Quantity
	NetRequirement  Quantity
	// Lot-for-lot policy: release and receipt both equal the net
	// requirement, no batching applied.
	PlannedOrderRelease Quantity
	PlannedOrderReceipt Quantity

	IsCritical bool
}

// IsTopLevel reports whether the node originates directly from a demand
// line.
func (n *RequirementNode) IsTopLevel() bool {
	return n.ParentID == nil
}
