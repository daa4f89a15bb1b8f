package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
)

// InventoryRepository is an in-memory inventory item master. Reads hand
// out copies so a run's snapshot cannot be mutated behind its back.
type InventoryRepository struct {
	mu    sync.RWMutex
	items []entities.Item
	index map[entities.ItemID]int
}

// NewInventoryRepository creates an in-memory inventory repository.
func NewInventoryRepository(expectedItems int) *InventoryRepository {
	return &InventoryRepository{
		items: make([]entities.Item, 0, expectedItems),
		index: make(map[entities.ItemID]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadItems loads items into the repository.
func (r *InventoryRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		r.AddItem(*item)
	}
	return nil
}

// AddItem adds or replaces an item.
func (r *InventoryRepository) AddItem(item entities.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, exists := r.index[item.ID]; exists {
		r.items[i] = item
		return
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
}

// GetItem returns a copy of the item, or (nil, nil) when unknown.
func (r *InventoryRepository) GetItem(ctx context.Context, id entities.ItemID) (*entities.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, nil
	}
	item := r.items[i]
	return &item, nil
}

// SetOnHand replaces an item's on-hand quantity. This is the touchpoint
// for the external transaction ledger; the planning engine never calls
// it.
func (r *InventoryRepository) SetOnHand(id entities.ItemID, onHand entities.Quantity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return fmt.Errorf("item not found: %d", id)
	}
	r.items[i].OnHand = onHand
	return nil
}
