package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/application/services/planning"
	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/memory"
	"github.com/mfgkit/mrplan/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	inventoryRepo := memory.NewInventoryRepository(4)
	bomRepo := memory.NewBOMRepository(2)
	demandRepo := memory.NewDemandRepository()

	if err := setupFurniturePlant(inventoryRepo, bomRepo, demandRepo); err != nil {
		fmt.Printf("❌ Setup failed: %v\n", err)
		os.Exit(1)
	}

	engine := planning.NewEngine(bomRepo, inventoryRepo)
	runRepo := memory.NewRunRepository()
	runService := planning.NewRunService(engine, demandRepo, inventoryRepo, runRepo)

	fmt.Println("🪑 Planning next month's table production...")
	fmt.Println()

	run, err := runService.CreateRun(ctx, planning.CreateRunRequest{
		Name:               "table production",
		Description:        "50 dining tables for the spring order book",
		MPSID:              1,
		LeadTimeFactor:     1.0,
		IncludeSafetyStock: true,
	})
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		os.Exit(1)
	}

	result, err := runService.GetRunResult(ctx, run.ID)
	if err != nil {
		fmt.Printf("❌ Failed to load results: %v\n", err)
		os.Exit(1)
	}

	if err := output.Render(os.Stdout, result, output.Config{Format: "text"}); err != nil {
		fmt.Printf("❌ Failed to render results: %v\n", err)
		os.Exit(1)
	}
}

// setupFurniturePlant loads a small two-level scenario: a dining table
// built from legs and a top, with the legs themselves built from wood
// blanks.
func setupFurniturePlant(
	inventoryRepo *memory.InventoryRepository,
	bomRepo *memory.BOMRepository,
	demandRepo *memory.DemandRepository,
) error {
	items := []struct {
		id           entities.ItemID
		code, name   string
		uom          entities.UnitOfMeasure
		onHand       int64
		reorderPoint int64
		leadTimeDays int
	}{
		{1, "TBL-100", "Dining Table", entities.UOMPiece, 10, 5, 3},
		{2, "LEG-200", "Table Leg", entities.UOMPiece, 25, 10, 2},
		{3, "TOP-300", "Table Top", entities.UOMPiece, 8, 0, 4},
		{4, "WOOD-400", "Oak Blank", entities.UOMPiece, 60, 20, 7},
	}

	for _, row := range items {
		item, err := entities.NewItem(row.id, row.code, row.name, row.uom)
		if err != nil {
			return err
		}
		item.OnHand = decimal.NewFromInt(row.onHand)
		item.ReorderPoint = decimal.NewFromInt(row.reorderPoint)
		item.LeadTimeDays = row.leadTimeDays
		inventoryRepo.AddItem(*item)
	}

	tableBOM, err := entities.NewBOM(1, "Dining Table BOM", 1, "1.0", []entities.BOMComponent{
		{ComponentID: 2, Quantity: decimal.NewFromInt(4), UOM: entities.UOMPiece, Position: 1},
		{ComponentID: 3, Quantity: decimal.NewFromInt(1), UOM: entities.UOMPiece, Position: 2},
	})
	if err != nil {
		return err
	}
	if err := bomRepo.AddBOM(*tableBOM); err != nil {
		return err
	}

	legBOM, err := entities.NewBOM(2, "Table Leg BOM", 2, "1.0", []entities.BOMComponent{
		{ComponentID: 4, Quantity: decimal.NewFromInt(1), UOM: entities.UOMPiece, Position: 1},
	})
	if err != nil {
		return err
	}
	if err := bomRepo.AddBOM(*legBOM); err != nil {
		return err
	}

	demandRepo.AddMPS(entities.MPS{
		ID:       1,
		Name:     "spring order book",
		IsActive: true,
	})

	requiredDate := time.Now().UTC().AddDate(0, 1, 0)
	line, err := entities.NewScheduleLine(1, 1, 1, decimal.NewFromInt(50), requiredDate)
	if err != nil {
		return err
	}
	return demandRepo.AddScheduleLine(*line)
}
