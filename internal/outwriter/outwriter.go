// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"rigkpi/internal/contract"
	"rigkpi/schema"

	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDaily prints per-rig daily metrics using the configured output format.
func (ow *OutWriter) WriteDaily(rows []schema.DailyMetrics, cfg *contract.Config, stats schema.RowStats, duration time.Duration) error {
	return PrintDailyResults(rows, cfg, stats, duration)
}

// WritePeriods prints period rollups using the configured output format.
func (ow *OutWriter) WritePeriods(rows []schema.PeriodMetrics, cfg *contract.Config) error {
	return PrintPeriodResults(rows, cfg)
}

// WriteSummary prints the executive per-rig summary using the configured output format.
func (ow *OutWriter) WriteSummary(rows []schema.RigSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaryResults(rows, cfg, duration)
}

// WriteCritical prints the worst-days ranking using the configured output format.
func (ow *OutWriter) WriteCritical(days []schema.CriticalDay, cfg *contract.Config) error {
	return PrintCriticalResults(days, cfg)
}

// WriteImpact prints the fleet per-code impact ranking using the configured output format.
func (ow *OutWriter) WriteImpact(rows []schema.ImpactRow, finalRatio float64, cfg *contract.Config) error {
	return PrintImpactResults(rows, finalRatio, cfg)
}

// WriteImpactByRig prints the per-rig per-code impact ranking using the configured output format.
func (ow *OutWriter) WriteImpactByRig(rows []schema.ImpactRow, cfg *contract.Config) error {
	return PrintImpactByRigResults(rows, cfg)
}

// WriteAttribution prints a gap attribution table using the configured output format.
func (ow *OutWriter) WriteAttribution(result schema.AttributionResult, cfg *contract.Config) error {
	return PrintAttributionResults(result, cfg)
}

// WriteComparisons prints the monthly target-vs-real comparison using the configured output format.
func (ow *OutWriter) WriteComparisons(rows []schema.MonthlyComparison, cfg *contract.Config) error {
	return PrintComparisonResults(rows, cfg)
}

// GetMaxTableCodeWidth calculates the maximum width for delay-code labels in
// table output based on terminal width and table configuration.
func GetMaxTableCodeWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with table formatting
	baseWidth := 45 // Rank + Hours + Impact + Share with borders/padding

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable code width
		return 15
	}
	if available > 70 {
		// Maximum code width to prevent overly long labels
		return 70
	}
	return available
}
