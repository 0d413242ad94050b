package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// impactCmd ranks delay codes by their share of the metric denominator.
var impactCmd = &cobra.Command{
	Use:   "impact [events.csv]",
	Short: "Rank delay codes by hours over the metric denominator.",
	Long: `Build the simple per-code impact table for a single period: each
code's hours divided by the metric denominator, in percentage points.
Availability impacts are measured against total hours, UEBD impacts
against operative hours.

Examples:
  # Top UEBD codes fleet-wide
  rigkpi impact events.csv

  # Availability codes per rig, five per rig
  rigkpi impact events.csv --metric disponibilidad --by-rig --top-codes 5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if topCodes := viper.GetInt("top-codes"); topCodes > 0 {
			cfg.ResultLimit = topCodes
		}
		if err := core.ExecuteImpact(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run impact ranking", err)
		}
	},
}
