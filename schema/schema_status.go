package schema

import "time"

// StoreStatus represents the status of the results store.
type StoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalDailyRows int              `json:"total_daily_rows"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the rigkpi_runs table.
type RunRecord struct {
	RunID     int64
	StartTime time.Time
	EndTime   time.Time
	TotalRows int
	Params    map[string]any
}
