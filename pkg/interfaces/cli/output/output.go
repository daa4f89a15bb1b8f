package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mfgkit/mrplan/pkg/application/dto"
)

// Config holds configuration for result rendering
type Config struct {
	Format       string
	Verbose      bool
	PlanningTime time.Duration
}

// Render writes a run result in the configured format.
func Render(w io.Writer, result *dto.RunResult, config Config) error {
	switch config.Format {
	case "text":
		return renderText(w, result, config)
	case "json":
		return renderJSON(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// renderText writes a human-readable summary plus the requirement table,
// one row per node, indented by BOM level.
func renderText(w io.Writer, result *dto.RunResult, config Config) error {
	fmt.Fprintf(w, "📊 Planning Run: %s\n", result.Name)
	fmt.Fprintf(w, "=====================%s\n\n", strings.Repeat("=", len(result.Name)))

	fmt.Fprintf(w, "Run ID: %s\n", result.ID)
	fmt.Fprintf(w, "Schedule: %d\n", result.MPSID)
	fmt.Fprintf(w, "Requirement Nodes: %d\n", len(result.Items))
	fmt.Fprintf(w, "Lead Time Factor: %.2f\n", result.LeadTimeFactor)
	fmt.Fprintf(w, "Safety Stock: %s\n", enabledLabel(result.IncludeSafetyStock))
	if config.Verbose {
		fmt.Fprintf(w, "Planning Time: %v\n", config.PlanningTime)
	}
	fmt.Fprintln(w)

	if len(result.Items) == 0 {
		fmt.Fprintf(w, "No requirements were generated for this run.\n")
		return nil
	}

	fmt.Fprintf(w, "📋 Requirements:\n")
	fmt.Fprintf(w, "%-24s %-12s %-12s %-12s %-12s %-12s %s\n",
		"Item", "Gross", "On Hand", "Net", "Release", "Required", "Flags")
	fmt.Fprintf(w, "%-24s %-12s %-12s %-12s %-12s %-12s %s\n",
		strings.Repeat("-", 24), "------------", "------------", "------------",
		"------------", "------------", "-----")

	critical := 0
	for _, node := range result.Items {
		label := node.ItemCode
		if label == "" {
			label = fmt.Sprintf("item %d", node.ItemID)
		}
		label = strings.Repeat("  ", node.Level) + label

		flags := ""
		if node.IsCritical {
			flags = "⚠️ critical"
			critical++
		}

		fmt.Fprintf(w, "%-24s %-12s %-12s %-12s %-12s %-12s %s\n",
			label,
			node.GrossRequirement.String(),
			node.ProjectedOnHand.String(),
			node.NetRequirement.String(),
			node.OrderReleaseDate.Format("2006-01-02"),
			node.RequiredDate.Format("2006-01-02"),
			flags)
	}
	fmt.Fprintln(w)

	if critical > 0 {
		fmt.Fprintf(w, "⚠️  %d item(s) have insufficient stock to cover their gross requirement.\n", critical)
	}

	return nil
}

// renderJSON writes the full result as indented JSON.
func renderJSON(w io.Writer, result *dto.RunResult) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
