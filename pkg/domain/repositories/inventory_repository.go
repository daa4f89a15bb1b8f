package repositories

import (
	"context"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// InventoryRepository provides read access to the inventory item master.
// Each GetItem call is the engine's on-hand snapshot for that item; the
// engine never writes inventory.
type InventoryRepository interface {
	// GetItem returns the inventory item, or (nil, nil) when no item
	// with that id exists. Callers decide whether a missing item is
	// fatal: it is for demand-line products, not for BOM components.
	GetItem(ctx context.Context, id entities.ItemID) (*entities.Item, error)
}
