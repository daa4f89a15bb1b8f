package planning

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/memory"
)

type serviceFixture struct {
	inventoryRepo *memory.InventoryRepository
	bomRepo       *memory.BOMRepository
	demandRepo    *memory.DemandRepository
	runRepo       *memory.RunRepository
	service       *RunService
}

// newServiceFixture wires the two-level table scenario: product A (10 on
// hand) demands 50, consuming 2 units of B (5 on hand) per unit.
func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	inventoryRepo := memory.NewInventoryRepository(2)
	inventoryRepo.AddItem(newTestItem(t, 1, "A", 10, 0, 1))
	inventoryRepo.AddItem(newTestItem(t, 2, "B", 5, 0, 2))

	bomRepo := memory.NewBOMRepository(1)
	if err := bomRepo.AddBOM(newTestBOM(t, 1, 1, component(2, 2))); err != nil {
		t.Fatalf("AddBOM: %v", err)
	}

	demandRepo := memory.NewDemandRepository()
	demandRepo.AddMPS(entities.MPS{ID: 1, Name: "test schedule", IsActive: true})
	line, err := entities.NewScheduleLine(1, 1, 1, decimal.NewFromInt(50), testRequiredDate)
	if err != nil {
		t.Fatalf("NewScheduleLine: %v", err)
	}
	if err := demandRepo.AddScheduleLine(*line); err != nil {
		t.Fatalf("AddScheduleLine: %v", err)
	}

	runRepo := memory.NewRunRepository()
	engine := NewEngine(bomRepo, inventoryRepo)

	return &serviceFixture{
		inventoryRepo: inventoryRepo,
		bomRepo:       bomRepo,
		demandRepo:    demandRepo,
		runRepo:       runRepo,
		service:       NewRunService(engine, demandRepo, inventoryRepo, runRepo),
	}
}

func TestCreateRunAndGetResult(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	run, err := f.service.CreateRun(ctx, CreateRunRequest{
		Name:           "march explosion",
		Description:    "monthly planning",
		MPSID:          1,
		LeadTimeFactor: 1.0,
	})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.ID == uuid.Nil {
		t.Fatal("run id must be assigned")
	}

	result, err := f.service.GetRunResult(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRunResult: %v", err)
	}

	if result.Name != "march explosion" {
		t.Errorf("result name = %q", result.Name)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 result nodes, got %d", len(result.Items))
	}

	top := result.Items[0]
	if top.Level != 0 || !top.HasChildren {
		t.Errorf("top node: level = %d, hasChildren = %v, want 0 and true", top.Level, top.HasChildren)
	}
	if top.ItemCode != "A" {
		t.Errorf("top item code = %q, want A", top.ItemCode)
	}
	if !top.NetRequirement.Equal(decimal.NewFromInt(40)) {
		t.Errorf("top net = %s, want 40", top.NetRequirement)
	}

	child := result.Items[1]
	if child.Level != 1 || child.HasChildren {
		t.Errorf("child node: level = %d, hasChildren = %v, want 1 and false", child.Level, child.HasChildren)
	}
	if child.ItemCode != "B" {
		t.Errorf("child item code = %q, want B", child.ItemCode)
	}
	if !child.GrossRequirement.Equal(decimal.NewFromInt(80)) {
		t.Errorf("child gross = %s, want 80", child.GrossRequirement)
	}
}

func TestCreateRunUnknownMPS(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.CreateRun(context.Background(), CreateRunRequest{
		Name:  "bad",
		MPSID: 42,
	})

	var notFound *entities.MPSNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected MPSNotFoundError, got %v", err)
	}
	if notFound.MPSID != 42 {
		t.Errorf("error mps = %d, want 42", notFound.MPSID)
	}
	if f.runRepo.Count() != 0 {
		t.Error("failed run must not be persisted")
	}
}

func TestCreateRunAbortsAtomicallyOnCycle(t *testing.T) {
	f := newServiceFixture(t)

	// Close the loop: B now requires A.
	if err := f.bomRepo.AddBOM(newTestBOM(t, 2, 2, component(1, 1))); err != nil {
		t.Fatalf("AddBOM: %v", err)
	}

	_, err := f.service.CreateRun(context.Background(), CreateRunRequest{
		Name:  "cyclic",
		MPSID: 1,
	})

	var cycle *entities.CycleDetectedError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleDetectedError, got %v", err)
	}
	if f.runRepo.Count() != 0 || f.runRepo.NodeCount() != 0 {
		t.Errorf("aborted run persisted %d runs and %d nodes, want none",
			f.runRepo.Count(), f.runRepo.NodeCount())
	}
}

func TestGetRunResultUnknownRun(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GetRunResult(context.Background(), uuid.New())

	var notFound *entities.RunNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected RunNotFoundError, got %v", err)
	}
}

func TestDeleteRun(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	run, err := f.service.CreateRun(ctx, CreateRunRequest{Name: "doomed", MPSID: 1})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	if err := f.service.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if f.runRepo.Count() != 0 || f.runRepo.NodeCount() != 0 {
		t.Error("delete must remove the run and every node")
	}

	var notFound *entities.RunNotFoundError
	if err := f.service.DeleteRun(ctx, run.ID); !errors.As(err, &notFound) {
		t.Errorf("second delete: expected RunNotFoundError, got %v", err)
	}
	if _, err := f.service.GetRunResult(ctx, run.ID); !errors.As(err, &notFound) {
		t.Errorf("result after delete: expected RunNotFoundError, got %v", err)
	}
}

func TestListRunsFiltersByMPS(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.demandRepo.AddMPS(entities.MPS{ID: 2, Name: "other schedule", IsActive: true})

	first, err := f.service.CreateRun(ctx, CreateRunRequest{Name: "first", MPSID: 1})
	if err != nil {
		t.Fatalf("CreateRun first: %v", err)
	}
	if _, err := f.service.CreateRun(ctx, CreateRunRequest{Name: "second", MPSID: 2}); err != nil {
		t.Fatalf("CreateRun second: %v", err)
	}

	all, err := f.service.ListRuns(ctx, nil)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(all))
	}

	mpsID := entities.MPSID(1)
	filtered, err := f.service.ListRuns(ctx, &mpsID)
	if err != nil {
		t.Fatalf("ListRuns filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != first.ID {
		t.Errorf("expected only the first run for mps 1, got %d runs", len(filtered))
	}
}

func TestGetRunResultToleratesDeletedItems(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	// Component 3 has a BOM line but no item master record, so its result
	// rows carry a blank code.
	if err := f.bomRepo.AddBOM(newTestBOM(t, 2, 2, component(3, 1))); err != nil {
		t.Fatalf("AddBOM: %v", err)
	}

	run, err := f.service.CreateRun(ctx, CreateRunRequest{Name: "gaps", MPSID: 1})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	result, err := f.service.GetRunResult(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRunResult: %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 result nodes, got %d", len(result.Items))
	}

	leaf := result.Items[2]
	if leaf.ItemID != 3 {
		t.Fatalf("expected item 3 at the leaf, got %d", leaf.ItemID)
	}
	if leaf.ItemCode != "" || leaf.ItemName != "" {
		t.Errorf("untracked item must render blank code and name, got %q/%q", leaf.ItemCode, leaf.ItemName)
	}
	if leaf.Level != 2 {
		t.Errorf("leaf level = %d, want 2", leaf.Level)
	}
}
