package entities

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewBOMComponent(t *testing.T) {
	t.Run("valid component", func(t *testing.T) {
		c, err := NewBOMComponent(7, decimal.NewFromInt(4), UOMPiece, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ComponentID != 7 {
			t.Errorf("ComponentID = %d, want 7", c.ComponentID)
		}
		if !c.Quantity.Equal(decimal.NewFromInt(4)) {
			t.Errorf("Quantity = %s, want 4", c.Quantity)
		}
	})

	t.Run("rejects non-positive component id", func(t *testing.T) {
		if _, err := NewBOMComponent(0, decimal.NewFromInt(1), UOMPiece, 1); err == nil {
			t.Error("expected error for component id 0")
		}
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		if _, err := NewBOMComponent(7, decimal.Zero, UOMPiece, 1); err == nil {
			t.Error("expected error for zero quantity")
		}
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		if _, err := NewBOMComponent(7, decimal.NewFromInt(-2), UOMPiece, 1); err == nil {
			t.Error("expected error for negative quantity")
		}
	})
}

func TestNewBOM(t *testing.T) {
	components := []BOMComponent{
		{ComponentID: 2, Quantity: decimal.NewFromInt(4), UOM: UOMPiece, Position: 1},
		{ComponentID: 3, Quantity: decimal.NewFromInt(1), UOM: UOMPiece, Position: 2},
	}

	t.Run("valid BOM defaults version and active flag", func(t *testing.T) {
		bom, err := NewBOM(1, "Table BOM", 1, "", components)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bom.Version != "1.0" {
			t.Errorf("Version = %q, want \"1.0\"", bom.Version)
		}
		if !bom.IsActive {
			t.Error("new BOM should be active")
		}
		if len(bom.Components) != 2 {
			t.Errorf("Components = %d, want 2", len(bom.Components))
		}
	})

	t.Run("rejects product as its own component", func(t *testing.T) {
		_, err := NewBOM(1, "self", 2, "1.0", components)
		if err == nil {
			t.Fatal("expected error for self-referencing BOM")
		}
		if !strings.Contains(err.Error(), "own component") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects duplicate components", func(t *testing.T) {
		dup := []BOMComponent{
			{ComponentID: 2, Quantity: decimal.NewFromInt(1), UOM: UOMPiece, Position: 1},
			{ComponentID: 2, Quantity: decimal.NewFromInt(3), UOM: UOMPiece, Position: 2},
		}
		if _, err := NewBOM(1, "dup", 1, "1.0", dup); err == nil {
			t.Error("expected error for duplicate component")
		}
	})

	t.Run("rejects non-positive ids", func(t *testing.T) {
		if _, err := NewBOM(0, "bad", 1, "1.0", nil); err == nil {
			t.Error("expected error for bom id 0")
		}
		if _, err := NewBOM(1, "bad", 0, "1.0", nil); err == nil {
			t.Error("expected error for product id 0")
		}
	})
}
