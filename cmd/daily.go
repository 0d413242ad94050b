package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
)

// dailyCmd emits the per-rig-per-operational-day KPI table.
var dailyCmd = &cobra.Command{
	Use:   "daily [events.csv]",
	Short: "Show Availability and UEBD per rig and operational day.",
	Long: `Fold an equipment-state log into one row per rig and operational day.

Each row carries the hour totals of the five state buckets (effective,
reserve, scheduled maintenance, unscheduled maintenance, other delays),
the derived operative hours and the two ratios:
- Availability = operative / total hours
- UEBD = effective / operative hours

The operational day runs 21:00 to 21:00; an explicit day label in the
source wins over the clock rule.

Examples:
  # Daily table for a whole export
  rigkpi daily events.csv

  # One month only, two rigs
  rigkpi daily events.csv --year 2026 --month febrero --rigs PF-03,PF-07

  # Per-shift breakdown as CSV
  rigkpi daily events.csv --by-shift --output csv --output-file daily.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDaily(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run daily aggregation", err)
		}
	},
}
