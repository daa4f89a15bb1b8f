package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

func testBOM(id entities.BOMID, productID entities.ItemID, active bool) entities.BOM {
	return entities.BOM{
		ID:        id,
		ProductID: productID,
		Version:   "1.0",
		IsActive:  active,
		Components: []entities.BOMComponent{
			{ComponentID: productID + 100, Quantity: decimal.NewFromInt(2), UOM: entities.UOMPiece},
		},
	}
}

func TestBOMRepositoryGetActiveBOM(t *testing.T) {
	repo := NewBOMRepository(2)
	if err := repo.AddBOM(testBOM(1, 1, true)); err != nil {
		t.Fatalf("AddBOM: %v", err)
	}
	if err := repo.AddBOM(testBOM(2, 1, false)); err != nil {
		t.Fatalf("AddBOM inactive: %v", err)
	}

	bom, err := repo.GetActiveBOM(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetActiveBOM: %v", err)
	}
	if bom == nil || bom.ID != 1 {
		t.Fatalf("expected BOM 1, got %+v", bom)
	}

	none, err := repo.GetActiveBOM(context.Background(), 99)
	if err != nil {
		t.Fatalf("GetActiveBOM unknown: %v", err)
	}
	if none != nil {
		t.Errorf("product without BOM must return nil, got %+v", none)
	}
}

func TestBOMRepositoryRejectsSecondActiveBOM(t *testing.T) {
	repo := NewBOMRepository(2)
	if err := repo.AddBOM(testBOM(1, 1, true)); err != nil {
		t.Fatalf("AddBOM: %v", err)
	}
	if err := repo.AddBOM(testBOM(2, 1, true)); err == nil {
		t.Error("expected error for second active BOM on the same product")
	}
	if err := repo.AddBOM(testBOM(1, 2, true)); err == nil {
		t.Error("expected error for duplicate bom id")
	}
}

func TestBOMRepositoryReturnsCopies(t *testing.T) {
	repo := NewBOMRepository(1)
	if err := repo.AddBOM(testBOM(1, 1, true)); err != nil {
		t.Fatalf("AddBOM: %v", err)
	}

	bom, err := repo.GetActiveBOM(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetActiveBOM: %v", err)
	}
	bom.Components[0].Quantity = decimal.NewFromInt(999)

	again, _ := repo.GetActiveBOM(context.Background(), 1)
	if !again.Components[0].Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("stored component mutated to %s", again.Components[0].Quantity)
	}
}
