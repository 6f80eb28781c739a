package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/history"
	"github.com/huangsam/scorecard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadHistoryBackend reads and validates the history backend settings without
// the full scoring configuration.
func loadHistoryBackend() (schema.DatabaseBackend, string, error) {
	setConfigSearch()
	if err := readConfigFile(); err != nil {
		return "", "", err
	}

	backend, err := contract.ParseDatabaseBackend(viper.GetString("history-backend"))
	if err != nil {
		return "", "", err
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations and opens the store.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadHistoryBackend()
	if err != nil {
		return err
	}

	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historyMigrateSetup loads the backend settings but does NOT open the store or
// create tables, so migrations can run against a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadHistoryBackend()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// sqliteFilePath returns the SQLite file used by the history store.
func sqliteFilePath() string {
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return history.GetHistoryDBFilePath()
}

// historyCmd focused on score history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage score history tracking and exports",
	Long: `Manage the score history used for tracking organizations over time.

When enabled with --history-backend, every score run stores:
- Run metadata (timestamp, rubric version, configuration, duration)
- The flat score record of every organization in the run

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history tracking statistics and connection details",
	Long: `Show the backend, run counts, oldest and latest run, recorded scores and table sizes.

Examples:
  scorecard history status --history-backend sqlite`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("score history is not enabled"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export score history to Parquet for BI tools and analytics",
	Long: `Export all scoring runs and score records to Parquet.

Requires: --output-file parameter

Examples:
  scorecard history export --history-backend sqlite --output-file scorecard.parquet
  duckdb -c "SELECT * FROM read_parquet('scorecard.parquet.scores.parquet') LIMIT 10"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(os.Stdout, storeManager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export score history", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all score history",
	Long: `Delete all stored scoring runs and score records.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  scorecard history export --history-backend sqlite --output-file backup.parquet
  scorecard history clear --history-backend sqlite`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, sqliteFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear score history", err)
		}
		fmt.Println("Score history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the score history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  scorecard history migrate --history-backend postgresql --history-db-connect "host=localhost dbname=scorecard"

  # Rollback everything
  scorecard history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
