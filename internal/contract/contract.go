// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"rigkpi/schema"
)

// EventSource defines the operations for reading equipment-state logs.
// This allows the aggregation logic to be tested without fixture files.
type EventSource interface {
	// ReadEvents reads every event row from the source, tolerating
	// cell-level garbage, and reports data-quality counters alongside.
	ReadEvents(ctx context.Context) ([]schema.Event, schema.RowStats, error)
}

// TargetSource defines the operations for reading monthly objective tables.
type TargetSource interface {
	// ReadTargets reads the monthly target rows from the source.
	ReadTargets(ctx context.Context) ([]schema.MonthlyTarget, error)
}

// StoreManager defines the interface for managing the results store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for persisting finished run outputs.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data.
	EndRun(runID int64, endTime time.Time, totalRows int) error

	// RecordDailyMetrics stores the finalized per-day records for a run.
	RecordDailyMetrics(runID int64, rows []schema.DailyMetrics) error

	// RecordAttribution stores a ranked attribution table for a run.
	RecordAttribution(runID int64, result *schema.AttributionResult) error

	// GetAllRuns retrieves every run record from the store.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
