// Package cmd defines the command-line interface for rigkpi.
package cmd

import (
	"rigkpi/internal/contract"
	"rigkpi/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(annualCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(criticalCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(gapCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("delimiter", "d", contract.DefaultDelimiter, "Field delimiter of the input files")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("rigs", "", "Comma-separated list of rigs to include (empty means all)")
	rootCmd.PersistentFlags().String("exclude-rigs", "", "Comma-separated list of rigs to exclude")
	rootCmd.PersistentFlags().Int("year", 0, "Restrict aggregation to this year (0 = all)")
	rootCmd.PersistentFlags().String("month", "", "Restrict aggregation to this month (1-12 or Spanish name, requires --year)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Results store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Declare command-local flags. Several commands share flag names
	// (metric, targets-file), so each command binds its own flag set to
	// Viper in PreRunE instead of here; an init-time bind would leave only
	// the last command's instances active.
	dailyCmd.Flags().Bool("by-shift", false, "Break daily rows down by shift")

	monthlyCmd.Flags().Bool("fleet", false, "Collapse rigs into a single fleet row per month")
	monthlyCmd.Flags().Bool("by-shift", false, "Roll the shift dimension up per month")

	annualCmd.Flags().Bool("fleet", false, "Collapse rigs into a single fleet row per year")

	criticalCmd.Flags().String("metric", string(schema.MetricUEBD), "Metric to rank by: disponibilidad or uebd")
	criticalCmd.Flags().Int("top-days", 0, "Number of worst days to show (overrides --limit)")

	impactCmd.Flags().String("metric", string(schema.MetricUEBD), "Metric to measure impact against: disponibilidad or uebd")
	impactCmd.Flags().Bool("by-rig", false, "Rank codes per rig against per-rig denominators")
	impactCmd.Flags().Int("top-codes", 0, "Number of codes to show (overrides --limit)")

	gapCmd.Flags().String("metric", string(schema.MetricUEBD), "Metric whose gap is attributed: disponibilidad or uebd")
	gapCmd.Flags().Int("compare-year", 0, "Restrict the comparison period to this year")
	gapCmd.Flags().String("compare-month", "", "Restrict the comparison period to this month (requires --compare-year)")
	gapCmd.Flags().String("uebd-target", "", "UEBD objective as ratio or percentage (0.9 and 90 both work)")
	gapCmd.Flags().String("availability-target", "", "Availability objective as ratio or percentage")
	gapCmd.Flags().String("targets-file", "", "Monthly objective table used when no explicit target is given")
	gapCmd.Flags().String("perf-tag", contract.DefaultPerfTag, "Drill-plan substring feeding the performance accumulator")

	compareCmd.Flags().String("targets-file", "", "Monthly objective table to compare realized aggregates against")

	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
