package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
)

// BOMRepository is an in-memory bill-of-materials store. One BOM per
// product may be active at a time; loading a second active BOM for the
// same product is rejected.
type BOMRepository struct {
	mu              sync.RWMutex
	boms            []entities.BOM
	byID            map[entities.BOMID]int
	activeByProduct map[entities.ItemID]int
}

// NewBOMRepository creates an in-memory BOM repository.
func NewBOMRepository(expectedBOMs int) *BOMRepository {
	return &BOMRepository{
		boms:            make([]entities.BOM, 0, expectedBOMs),
		byID:            make(map[entities.BOMID]int, expectedBOMs),
		activeByProduct: make(map[entities.ItemID]int, expectedBOMs),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadBOMs loads BOMs into the repository.
func (r *BOMRepository) LoadBOMs(boms []*entities.BOM) error {
	for _, bom := range boms {
		if err := r.AddBOM(*bom); err != nil {
			return err
		}
	}
	return nil
}

// AddBOM adds a BOM.
func (r *BOMRepository) AddBOM(bom entities.BOM) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[bom.ID]; exists {
		return fmt.Errorf("bom %d already exists", bom.ID)
	}
	if bom.IsActive {
		if _, exists := r.activeByProduct[bom.ProductID]; exists {
			return fmt.Errorf("product %d already has an active bom", bom.ProductID)
		}
	}

	index := len(r.boms)
	r.boms = append(r.boms, bom)
	r.byID[bom.ID] = index
	if bom.IsActive {
		r.activeByProduct[bom.ProductID] = index
	}
	return nil
}

// GetActiveBOM returns a copy of the product's active BOM, or (nil, nil)
// when the product has none.
func (r *BOMRepository) GetActiveBOM(ctx context.Context, productID entities.ItemID) (*entities.BOM, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.activeByProduct[productID]
	if !exists {
		return nil, nil
	}

	bom := r.boms[i]
	bom.Components = append([]entities.BOMComponent(nil), r.boms[i].Components...)
	return &bom, nil
}
