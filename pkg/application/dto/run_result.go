package dto

import (
	"time"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// ResultNode is one requirement node prepared for presentation: the
// stored figures plus the recomputed hierarchy annotations and the
// current item code/name. Code and name are blank when the item has been
// deleted since the run.
type ResultNode struct {
	ID               entities.NodeID          `json:"id"`
	ItemID           entities.ItemID          `json:"item_id"`
	ItemCode         string                   `json:"item_code"`
	ItemName         string                   `json:"item_name"`
	BOMID            *entities.BOMID          `json:"bom_id,omitempty"`
	MPSLineID        *entities.ScheduleLineID `json:"mps_line_id,omitempty"`
	ParentID         *entities.NodeID         `json:"parent_id,omitempty"`
	RequiredDate     time.Time                `json:"required_date"`
	OrderReleaseDate time.Time                `json:"order_release_date"`

	GrossRequirement    entities.Quantity `json:"gross_requirement"`
	ProjectedOnHand     entities.Quantity `json:"projected_on_hand"`
	NetRequirement      entities.Quantity `json:"net_requirement"`
	PlannedOrderRelease entities.Quantity `json:"planned_order_release"`
	PlannedOrderReceipt entities.Quantity `json:"planned_order_receipt"`

	IsCritical bool `json:"is_critical"`

	// Level is the distance from the node's top-level ancestor; top
	// level is 0.
	Level int `json:"level"`
	// HasChildren is true iff some node in the run references this one
	// as parent.
	HasChildren bool `json:"has_children"`
}

// RunResult is a run header with its fully annotated node set.
type RunResult struct {
	ID                 entities.RunID `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	MPSID              entities.MPSID `json:"mps_id"`
	LeadTimeFactor     float64        `json:"lead_time_factor"`
	IncludeSafetyStock bool           `json:"include_safety_stock"`
	RunDate            time.Time      `json:"run_date"`
	Items              []ResultNode   `json:"items"`
}
