package repositories

import (
	"context"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// BOMRepository provides read access to bill-of-materials data.
type BOMRepository interface {
	// GetActiveBOM returns the currently active BOM for a product, or
	// (nil, nil) when the product has none. Products without an active
	// BOM are not planned via MRP.
	GetActiveBOM(ctx context.Context, productID entities.ItemID) (*entities.BOM, error)
}
