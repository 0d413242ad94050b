package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
)

// summaryCmd emits the executive per-rig summary with a fleet total row.
var summaryCmd = &cobra.Command{
	Use:   "summary [events.csv]",
	Short: "Show the per-rig executive summary with a fleet TOTAL row.",
	Long: `Condense the whole period into one row per rig: days with data,
hour totals per bucket and the two ratios, closed by a TOTAL row
recomputed from the summed fleet hours.

Examples:
  # Fleet summary for a whole export
  rigkpi summary events.csv

  # February summary without the training rig
  rigkpi summary events.csv --year 2026 --month 2 --exclude-rigs PF-99`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run summary aggregation", err)
		}
	},
}
