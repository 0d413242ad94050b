package cmd

import (
	"fmt"

	"rigkpi/internal/contract"
	"rigkpi/internal/kpistore"
	"rigkpi/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	if err := kpistore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize results store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding migrate flags: %w", err)
	}
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeCmd focused on results store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by aggregation commands. This avoids input file
// validation and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the results store and its schema",
	Long: `Manage the optional results store that keeps every aggregation run.

When enabled, rigkpi tracks each run, storing:
- Run metadata (timestamp, configuration, duration)
- The finalized per-rig-per-day KPI rows
- Ranked gap attribution tables

Supported backends: SQLite (default file), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics
  export  - Export run history to Parquet for analytics
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check store status
  RIGKPI_STORE_BACKEND=sqlite rigkpi store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the results store.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Daily row counts and database table sizes

Examples:
  # Check store status
  RIGKPI_STORE_BACKEND=sqlite rigkpi store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := kpistore.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		kpistore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the stored run data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored run data",
	Long: `Delete all stored runs, daily rows and attribution tables.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the rigkpi tables

Examples:
  # Export before clearing
  rigkpi store export --output-file backup
  rigkpi store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := kpistore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports the run history to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export the stored run history to Parquet format.

Parquet files can be queried directly with DuckDB, pandas or Spark.

Requires: --output-file parameter

Examples:
  # Export the run history
  RIGKPI_STORE_BACKEND=sqlite rigkpi store export --output-file rigkpi-data
  duckdb -c "SELECT * FROM read_parquet('rigkpi-data.runs.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := kpistore.ExecuteStoreExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the results store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the results store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  RIGKPI_STORE_BACKEND=sqlite rigkpi store migrate

  # Migrate to specific version
  rigkpi store migrate --target-version 2

  # Rollback to initial state
  rigkpi store migrate --target-version 0`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return storeMigrateSetup(cmd)
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := kpistore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
