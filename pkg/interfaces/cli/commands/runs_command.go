package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mfgkit/mrplan/pkg/application/services/planning"
	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/memory"
	"github.com/mfgkit/mrplan/pkg/infrastructure/repositories/postgres"
	"github.com/mfgkit/mrplan/pkg/interfaces/cli/output"
)

// dsnEnvVar names the environment variable holding the PostgreSQL DSN.
const dsnEnvVar = "MRPLAN_DB_DSN"

func newRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage persisted planning runs",
		Long: `List, inspect and delete planning runs stored in PostgreSQL.
These commands need a DSN, via --dsn or the ` + dsnEnvVar + ` environment
variable (optionally loaded from a dotenv file with --env-file).`,
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsShowCommand())
	cmd.AddCommand(newRunsDeleteCommand())

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var dsn, envFile string
	var mpsID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planning runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeRepo, err := openRunService(dsn, envFile)
			if err != nil {
				return err
			}
			defer closeRepo()

			var filter *entities.MPSID
			if mpsID > 0 {
				id := entities.MPSID(mpsID)
				filter = &id
			}

			runs, err := service.ListRuns(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No planning runs found.")
				return nil
			}

			fmt.Fprintf(out, "%-36s %-24s %-8s %-20s\n", "Run ID", "Name", "MPS", "Run Date")
			for _, run := range runs {
				fmt.Fprintf(out, "%-36s %-24s %-8d %-20s\n",
					run.ID, run.Name, run.MPSID, run.RunDate.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&mpsID, "mps", 0, "only list runs for this MPS id")
	addStoreFlags(cmd, &dsn, &envFile)

	return cmd
}

func newRunsShowCommand() *cobra.Command {
	var dsn, envFile, format string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a planning run with its requirement hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			service, closeRepo, err := openRunService(dsn, envFile)
			if err != nil {
				return err
			}
			defer closeRepo()

			result, err := service.GetRunResult(cmd.Context(), runID)
			if err != nil {
				return err
			}

			return output.Render(cmd.OutOrStdout(), result, output.Config{Format: format})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	addStoreFlags(cmd, &dsn, &envFile)

	return cmd
}

func newRunsDeleteCommand() *cobra.Command {
	var dsn, envFile string

	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a planning run and all of its requirement nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			service, closeRepo, err := openRunService(dsn, envFile)
			if err != nil {
				return err
			}
			defer closeRepo()

			if err := service.DeleteRun(cmd.Context(), runID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted run %s\n", runID)
			return nil
		},
	}

	addStoreFlags(cmd, &dsn, &envFile)

	return cmd
}

// addStoreFlags registers the run-store connection flags shared by the
// plan and runs commands.
func addStoreFlags(cmd *cobra.Command, dsn, envFile *string) {
	cmd.Flags().StringVar(dsn, "dsn", "", "PostgreSQL DSN for run persistence (default: "+dsnEnvVar+" env var)")
	cmd.Flags().StringVar(envFile, "env-file", "", "dotenv file to load before reading "+dsnEnvVar)
}

// resolveDSN returns the DSN from the flag, falling back to the
// environment, optionally after loading a dotenv file. Empty means no
// database is configured.
func resolveDSN(dsn, envFile string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	return os.Getenv(dsnEnvVar), nil
}

// openRunService connects a run service to the configured PostgreSQL
// store. The runs commands operate on persisted runs only, so a missing
// DSN is an error here.
func openRunService(dsn, envFile string) (*planning.RunService, func(), error) {
	dsn, err := resolveDSN(dsn, envFile)
	if err != nil {
		return nil, nil, err
	}
	if dsn == "" {
		return nil, nil, fmt.Errorf("no database configured: set --dsn or %s", dsnEnvVar)
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	runRepo := postgres.NewRunRepository(db)
	inventoryRepo := memory.NewInventoryRepository(0)
	bomRepo := memory.NewBOMRepository(0)
	demandRepo := memory.NewDemandRepository()

	engine := planning.NewEngine(bomRepo, inventoryRepo)
	service := planning.NewRunService(engine, demandRepo, inventoryRepo, runRepo)

	return service, func() { db.Close() }, nil
}
