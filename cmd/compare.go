package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
)

// compareCmd joins realized monthly aggregates against the objective table.
var compareCmd = &cobra.Command{
	Use:   "compare [events.csv]",
	Short: "Compare realized monthly KPIs against the objective table.",
	Long: `Join each realized month against its target row: objective and
real ratio side by side, the gap in percentage points and the hours the
month lost against each objective.

A missing UEBD target is derived as utilization / availability when both
of those targets are present.

Examples:
  # Plan vs real for a whole year
  rigkpi compare events.csv --targets-file mensual.csv --year 2026`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run target comparison", err)
		}
	},
}
