package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
)

// gapCmd attributes a measured KPI gap to the delay codes behind it.
var gapCmd = &cobra.Command{
	Use:   "gap <baseline.csv> <comparison.csv>",
	Short: "Attribute a KPI gap to the delay codes behind it.",
	Long: `Compare two periods and explain a KPI shortfall code by code.

Both files are folded independently; the per-code average daily hours of
the comparison period are measured against the baseline, and the positive
deltas are scaled so their attributed impacts sum exactly to the measured
gap in percentage points. The table also converts each impact back to
lost hours per day and per period.

The objective ratio is resolved in order: the metric's explicit target
flag, a matching row of --targets-file for the comparison month, and
finally the baseline period's realized ratio.

Examples:
  # Why did UEBD drop in February?
  rigkpi gap january.csv february.csv --year 2026 --month 1 \
    --compare-year 2026 --compare-month 2

  # Against the plan instead of the baseline
  rigkpi gap january.csv february.csv --uebd-target 0.90

  # Availability gap against the monthly objective table
  rigkpi gap january.csv february.csv --metric disponibilidad \
    --compare-year 2026 --compare-month 2 --targets-file mensual.csv`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGap(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run gap attribution", err)
		}
	},
}
