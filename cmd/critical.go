package cmd

import (
	"rigkpi/core"
	"rigkpi/internal/contract"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// criticalCmd ranks the worst rig-days for a metric.
var criticalCmd = &cobra.Command{
	Use:   "critical [events.csv]",
	Short: "Show the worst rig-days for a metric.",
	Long: `Rank rig-days ascending by the chosen ratio to surface the days
that hurt the KPI the most. Ties break by date, then rig.

Examples:
  # Ten worst UEBD days
  rigkpi critical events.csv --top-days 10

  # Worst availability days of one rig
  rigkpi critical events.csv --metric disponibilidad --rigs PF-03`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if topDays := viper.GetInt("top-days"); topDays > 0 {
			cfg.ResultLimit = topDays
		}
		if err := core.ExecuteCritical(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run critical-day ranking", err)
		}
	},
}
