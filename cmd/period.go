package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
)

// monthlyCmd rolls the daily records up to one row per rig and month.
var monthlyCmd = &cobra.Command{
	Use:   "monthly [events.csv]",
	Short: "Show monthly Availability and UEBD per rig or for the fleet.",
	Long: `Roll daily records up to calendar months.

Period ratios are recomputed from the summed hours, never averaged from
daily ratios, so months with uneven coverage stay correct.

Examples:
  # Monthly table per rig
  rigkpi monthly events.csv

  # One fleet row per month
  rigkpi monthly events.csv --fleet

  # Shift rollup for one year
  rigkpi monthly events.csv --by-shift --year 2026`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonthly(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run monthly aggregation", err)
		}
	},
}

// annualCmd rolls the daily records up to one row per rig and year.
var annualCmd = &cobra.Command{
	Use:   "annual [events.csv]",
	Short: "Show annual Availability and UEBD per rig or for the fleet.",
	Long: `Roll daily records up to calendar years.

Examples:
  # Annual table per rig
  rigkpi annual events.csv

  # One fleet row per year
  rigkpi annual events.csv --fleet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnnual(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run annual aggregation", err)
		}
	},
}
