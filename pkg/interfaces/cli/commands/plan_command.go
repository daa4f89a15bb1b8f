package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfgkit/mrplan/pkg/application/services/planning"
	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/csv"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/memory"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/postgres"
	"github.com/mfgkit/mrplan/pkg/interfaces/cli/output"
)

// planConfig holds configuration for the plan command
type planConfig struct {
	ScenarioDir  string
	ItemsFile    string
	BOMFile      string
	ScheduleFile string

	RunName            string
	LeadTimeFactor     float64
	IncludeSafetyStock bool

	Format  string
	Verbose bool

	DSN     string
	EnvFile string
}

func newPlanCommand() *cobra.Command {
	var config planConfig

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run an MRP explosion over a CSV scenario",
		Long: `Load items, BOMs and a master schedule from CSV files, explode the
schedule into time-phased net requirements and print the resulting run.

A scenario directory is expected to contain items.csv, bom.csv and
schedule.csv; individual file flags override the directory layout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, config)
		},
	}

	cmd.Flags().StringVar(&config.ScenarioDir, "scenario", "", "path to scenario directory containing CSV files")
	cmd.Flags().StringVar(&config.ItemsFile, "items", "", "path to items CSV file")
	cmd.Flags().StringVar(&config.BOMFile, "bom", "", "path to BOM CSV file")
	cmd.Flags().StringVar(&config.ScheduleFile, "schedule", "", "path to schedule CSV file")
	cmd.Flags().StringVar(&config.RunName, "name", "planning run", "name for the planning run")
	cmd.Flags().Float64Var(&config.LeadTimeFactor, "lead-time-factor", 1.0, "multiplier applied to every item lead time")
	cmd.Flags().BoolVar(&config.IncludeSafetyStock, "safety-stock", true, "net against reorder points as safety stock")
	cmd.Flags().StringVar(&config.Format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "enable verbose output")
	addStoreFlags(cmd, &config.DSN, &config.EnvFile)

	return cmd
}

func runPlan(cmd *cobra.Command, config planConfig) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	files, err := resolveScenarioFiles(config)
	if err != nil {
		return err
	}

	if config.Verbose {
		fmt.Fprintf(out, "🚀 mrplan\n")
		fmt.Fprintf(out, "Input files:\n")
		fmt.Fprintf(out, "  Items: %s\n", files["Items"])
		fmt.Fprintf(out, "  BOM: %s\n", files["BOM"])
		fmt.Fprintf(out, "  Schedule: %s\n", files["Schedule"])
		fmt.Fprintln(out)
		fmt.Fprintln(out, "📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	items, err := csvLoader.LoadItems(files["Items"])
	if err != nil {
		return fmt.Errorf("error loading items: %w", err)
	}

	boms, err := csvLoader.LoadBOMs(files["BOM"])
	if err != nil {
		return fmt.Errorf("error loading BOMs: %w", err)
	}

	const scenarioMPSID = entities.MPSID(1)
	lines, err := csvLoader.LoadScheduleLines(files["Schedule"], scenarioMPSID)
	if err != nil {
		return fmt.Errorf("error loading schedule: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(out, "✅ Data loaded successfully:\n")
		fmt.Fprintf(out, "  Items: %d\n", len(items))
		fmt.Fprintf(out, "  BOMs: %d\n", len(boms))
		fmt.Fprintf(out, "  Schedule Lines: %d\n", len(lines))
		fmt.Fprintln(out)
	}

	inventoryRepo := memory.NewInventoryRepository(len(items))
	if err := inventoryRepo.LoadItems(items); err != nil {
		return fmt.Errorf("failed to load items into repository: %w", err)
	}

	bomRepo := memory.NewBOMRepository(len(boms))
	if err := bomRepo.LoadBOMs(boms); err != nil {
		return fmt.Errorf("failed to load BOMs into repository: %w", err)
	}

	demandRepo := memory.NewDemandRepository()
	demandRepo.AddMPS(entities.MPS{
		ID:       scenarioMPSID,
		Name:     filepath.Base(files["Schedule"]),
		IsActive: true,
	})
	for _, line := range lines {
		if err := demandRepo.AddScheduleLine(*line); err != nil {
			return fmt.Errorf("failed to load schedule line %d: %w", line.ID, err)
		}
	}

	runRepo, closeRepo, err := openRunRepository(config.DSN, config.EnvFile, config.Verbose, out)
	if err != nil {
		return err
	}
	defer closeRepo()

	engine := planning.NewEngine(bomRepo, inventoryRepo)
	runService := planning.NewRunService(engine, demandRepo, inventoryRepo, runRepo)

	if config.Verbose {
		fmt.Fprintln(out, "🔄 Running MRP explosion...")
	}

	startTime := time.Now()
	run, err := runService.CreateRun(ctx, planning.CreateRunRequest{
		Name:               config.RunName,
		MPSID:              scenarioMPSID,
		LeadTimeFactor:     config.LeadTimeFactor,
		IncludeSafetyStock: config.IncludeSafetyStock,
	})
	planningTime := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("error running MRP explosion: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(out, "✅ Explosion completed in %v\n\n", planningTime)
	}

	result, err := runService.GetRunResult(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("error loading run result: %w", err)
	}

	return output.Render(out, result, output.Config{
		Format:       config.Format,
		Verbose:      config.Verbose,
		PlanningTime: planningTime,
	})
}

// resolveScenarioFiles determines the actual file paths to use
func resolveScenarioFiles(config planConfig) (map[string]string, error) {
	itemsPath := config.ItemsFile
	bomPath := config.BOMFile
	schedulePath := config.ScheduleFile

	if config.ScenarioDir != "" {
		if itemsPath == "" {
			itemsPath = filepath.Join(config.ScenarioDir, "items.csv")
		}
		if bomPath == "" {
			bomPath = filepath.Join(config.ScenarioDir, "bom.csv")
		}
		if schedulePath == "" {
			schedulePath = filepath.Join(config.ScenarioDir, "schedule.csv")
		}
	}

	if itemsPath == "" || bomPath == "" || schedulePath == "" {
		return nil, fmt.Errorf("must specify either --scenario directory or all of --items, --bom and --schedule")
	}

	files := map[string]string{
		"Items":    itemsPath,
		"BOM":      bomPath,
		"Schedule": schedulePath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// openRunRepository picks the run store: PostgreSQL when a DSN is
// configured, in-memory otherwise.
func openRunRepository(dsn, envFile string, verbose bool, out io.Writer) (repositories.RunRepository, func(), error) {
	dsn, err := resolveDSN(dsn, envFile)
	if err != nil {
		return nil, nil, err
	}

	if dsn == "" {
		return memory.NewRunRepository(), func() {}, nil
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		fmt.Fprintln(out, "🗄️  Persisting runs to PostgreSQL")
	}
	return postgres.NewRunRepository(db), func() { db.Close() }, nil
}
