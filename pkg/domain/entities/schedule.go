package entities

import (
	"fmt"
	"time"
)

// MPSID identifies a master production schedule.
type MPSID int64

// ScheduleLineID identifies one demand line within an MPS.
type ScheduleLineID int64

// MPS is a master production schedule header. IsLocked is a cooperative
// flag honored by the data-access layer when editing schedule lines; the
// planning engine never takes or checks the lock while exploding.
type MPS struct {
	ID          MPSID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	IsLocked    bool
}

// ScheduleLine is one time-phased demand line: Quantity units of the
// product required by RequiredDate.
type ScheduleLine struct {
	ID           ScheduleLineID
	MPSID        MPSID
	ProductID    ItemID
	Quantity     Quantity
	RequiredDate time.Time
}

// NewScheduleLine creates a validated ScheduleLine.
func NewScheduleLine(id ScheduleLineID, mpsID MPSID, productID ItemID, quantity Quantity, requiredDate time.Time) (*ScheduleLine, error) {
	if id <= 0 {
		return nil, fmt.Errorf("schedule line id must be positive, got %d", id)
	}
	if mpsID <= 0 {
		return nil, fmt.Errorf("schedule line mps id must be positive, got %d", mpsID)
	}
	if productID <= 0 {
		return nil, fmt.Errorf("schedule line product id must be positive, got %d", productID)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("schedule line quantity must be positive, got %s", quantity)
	}
	if requiredDate.IsZero() {
		return nil, fmt.Errorf("schedule line required date cannot be zero")
	}

	return &ScheduleLine{
		ID:           id,
		MPSID:        mpsID,
		ProductID:    productID,
		Quantity:     quantity,
		RequiredDate: requiredDate,
	}, nil
}
