package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an exact decimal quantity. BOM ratios and on-hand balances
// can be fractional (kg, liters, meters), so binary floats are not
// acceptable for netting arithmetic.
type Quantity = decimal.Decimal

// ItemID identifies an inventory item.
type ItemID int64

// UnitOfMeasure identifies the unit an item is counted in.
type UnitOfMeasure string

const (
	UOMPiece    UnitOfMeasure = "piece"
	UOMKilogram UnitOfMeasure = "kg"
	UOMLiter    UnitOfMeasure = "liter"
	UOMMeter    UnitOfMeasure = "meter"
	UOMPack     UnitOfMeasure = "pack"
)

// DefaultLeadTimeDays is substituted when an item carries no explicit
// lead time.
const DefaultLeadTimeDays = 1

// Item is the inventory item master as the planning engine sees it. The
// engine only reads it: OnHand and ReorderPoint together form the
// inventory snapshot a run nets against, and ReorderPoint doubles as the
// safety-stock level when a run opts in.
type Item struct {
	ID           ItemID
	Code         string
	Name         string
	Description  string
	UOM          UnitOfMeasure
	UnitCost     decimal.Decimal
	OnHand       Quantity
	ReorderPoint Quantity
	// LeadTimeDays is the replenishment lead time in days. Zero means
	// "not specified"; the lead-time calculator substitutes
	// DefaultLeadTimeDays.
	LeadTimeDays int
}

// NewItem creates a validated Item.
func NewItem(id ItemID, code, name string, uom UnitOfMeasure) (*Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("item id must be positive, got %d", id)
	}
	if code == "" {
		return nil, fmt.Errorf("item code cannot be empty")
	}
	if uom == "" {
		uom = UOMPiece
	}

	return &Item{
		ID:   id,
		Code: code,
		Name: name,
		UOM:  uom,
	}, nil
}
