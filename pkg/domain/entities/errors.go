package entities

import "fmt"

// MPSNotFoundError reports a run request against an unknown MPS.
type MPSNotFoundError struct {
	MPSID MPSID
}

func (e *MPSNotFoundError) Error() string {
	return fmt.Sprintf("mps %d not found", e.MPSID)
}

// ProductNotFoundError reports a demand line whose product has no
// inventory item. It aborts the whole run before anything is persisted.
type ProductNotFoundError struct {
	ItemID ItemID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ItemID)
}

// CycleDetectedError reports a structural cycle in the BOM graph: the
// same BOM was reached twice on one explosion path. The run fails
// atomically; no partial node set survives.
type CycleDetectedError struct {
	BOMID  BOMID
	ItemID ItemID
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("bom %d for item %d is already open on the explosion path", e.BOMID, e.ItemID)
}

// RunNotFoundError reports a query or delete against an unknown run.
type RunNotFoundError struct {
	RunID RunID
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run %s not found", e.RunID)
}

// DataIntegrityError reports a malformed stored node set, such as a
// parent reference pointing outside the run or a loop in the parent
// chain.
type DataIntegrityError struct {
	RunID  RunID
	NodeID NodeID
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("run %s node %d: %s", e.RunID, e.NodeID, e.Reason)
}
