package entities

import "fmt"

// BOMID identifies a bill-of-materials header.
type BOMID int64

// BOMComponent is a single line of a bill of materials: Quantity units of
// the component item are consumed per unit of the parent product. The UOM
// is captured at BOM creation time so later item edits do not rewrite
// history.
type BOMComponent struct {
	ComponentID ItemID
	Quantity    Quantity
	UOM         UnitOfMeasure
	Position    int
}

// NewBOMComponent creates a validated BOMComponent.
func NewBOMComponent(componentID ItemID, quantity Quantity, uom UnitOfMeasure, position int) (*BOMComponent, error) {
	if componentID <= 0 {
		return nil, fmt.Errorf("component item id must be positive, got %d", componentID)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("component quantity must be positive, got %s", quantity)
	}

	return &BOMComponent{
		ComponentID: componentID,
		Quantity:    quantity,
		UOM:         uom,
		Position:    position,
	}, nil
}

// BOM is a bill-of-materials header with its ordered component list. At
// most one BOM per product is active at a time; the engine only ever
// explodes active BOMs.
type BOM struct {
	ID         BOMID
	Name       string
	ProductID  ItemID
	Version    string
	IsActive   bool
	Components []BOMComponent
}

// NewBOM creates a validated BOM.
func NewBOM(id BOMID, name string, productID ItemID, version string, components []BOMComponent) (*BOM, error) {
	if id <= 0 {
		return nil, fmt.Errorf("bom id must be positive, got %d", id)
	}
	if productID <= 0 {
		return nil, fmt.Errorf("bom product id must be positive, got %d", productID)
	}
	if version == "" {
		version = "1.0"
	}

	seen := make(map[ItemID]bool, len(components))
	for _, c := range components {
		if c.ComponentID == productID {
			return nil, fmt.Errorf("bom %d: product %d cannot be its own component", id, productID)
		}
		if seen[c.ComponentID] {
			return nil, fmt.Errorf("bom %d: duplicate component %d", id, c.ComponentID)
		}
		if !c.Quantity.IsPositive() {
			return nil, fmt.Errorf("bom %d: component %d quantity must be positive, got %s", id, c.ComponentID, c.Quantity)
		}
		seen[c.ComponentID] = true
	}

	return &BOM{
		ID:         id,
		Name:       name,
		ProductID:  productID,
		Version:    version,
		IsActive:   true,
		Components: components,
	}, nil
}
