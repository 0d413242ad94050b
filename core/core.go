// Package core has the aggregation and gap-attribution engines.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rigkpi/internal/contract"
	"rigkpi/internal/ingest"
	"rigkpi/internal/outwriter"
	"rigkpi/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteDaily runs the per-rig-per-day aggregation and prints results to stdout.
// It serves as the main entry point for the 'daily' mode.
func ExecuteDaily(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	rows, stats, err := GetDailyResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteDaily(rows, cfg, stats, duration)
}

// GetDailyResults runs the daily aggregation and returns the finalized rows.
// With ByShift set, the rows carry the shift dimension.
func GetDailyResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.DailyMetrics, schema.RowStats, error) {
	fold, err := runTrackedFold(ctx, cfg, mgr, cfg.InputPath)
	if err != nil {
		return nil, schema.RowStats{}, err
	}
	rows := fold.Daily
	if cfg.ByShift {
		rows = fold.ShiftDaily
	}
	return rows, fold.Stats, nil
}

// ExecuteMonthly runs the monthly rollup and prints results to stdout.
func ExecuteMonthly(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return executePeriod(ctx, cfg, mgr, schema.GranularityMonthly)
}

// ExecuteAnnual runs the annual rollup and prints results to stdout.
func ExecuteAnnual(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return executePeriod(ctx, cfg, mgr, schema.GranularityAnnual)
}

// executePeriod folds the input once and rolls the daily records up to the
// requested granularity. Ratios are recomputed from the summed durations.
func executePeriod(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, granularity schema.Granularity) error {
	fold, err := runTrackedFold(ctx, cfg, mgr, cfg.InputPath)
	if err != nil {
		return err
	}
	var rows []schema.PeriodMetrics
	if cfg.ByShift && granularity == schema.GranularityMonthly {
		rows = AggregateShiftMonthly(fold.ShiftDaily)
	} else {
		rows = AggregatePeriod(fold.Daily, granularity, !cfg.Fleet)
	}
	return outwriter.NewOutWriter().WritePeriods(rows, cfg)
}

// ExecuteSummary runs the executive per-rig summary and prints results to stdout.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	rows, err := GetSummaryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSummary(rows, cfg, duration)
}

// GetSummaryResults runs the daily aggregation and condenses it into the
// per-rig executive summary with its trailing fleet total row.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.RigSummary, error) {
	fold, err := runTrackedFold(ctx, cfg, mgr, cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return SummarizeRigs(fold.Daily), nil
}

// ExecuteCritical ranks the worst days for the configured metric and prints
// results to stdout.
func ExecuteCritical(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	fold, err := runTrackedFold(ctx, cfg, mgr, cfg.InputPath)
	if err != nil {
		return err
	}
	days := TopCriticalDays(fold.Daily, cfg.Metric, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteCritical(days, cfg)
}

// ExecuteImpact builds the ranked per-code impact table for the configured
// metric and prints results to stdout. With ByRig set, denominators are the
// per-rig hour totals instead of the fleet-wide ones.
func ExecuteImpact(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	fold, err := runTrackedFold(ctx, cfg, mgr, cfg.InputPath)
	if err != nil {
		return err
	}

	writer := outwriter.NewOutWriter()
	if cfg.ByRig {
		rows := BuildImpactRowsByRig(cfg.Metric, impactPopulationByRig(fold, cfg.Metric), denominatorByRig(fold, cfg.Metric), cfg.ResultLimit)
		return writer.WriteImpactByRig(rows, cfg)
	}

	profile := fold.BuildProfile()
	var denominator, finalRatio float64
	if cfg.Metric == schema.MetricAvailability {
		denominator = fold.Impact.Totals.TotalHours
		finalRatio = profile.AvailabilityRatio
	} else {
		denominator = fold.Impact.Totals.OperativeHours
		finalRatio = profile.UEBDRatio
	}
	rows := BuildImpactRows(cfg.Metric, impactPopulation(fold, cfg.Metric), denominator, cfg.ResultLimit)
	return writer.WriteImpact(rows, finalRatio, cfg)
}

// impactPopulation selects the per-code hour accumulator that erodes the metric.
func impactPopulation(fold *FoldResult, metric schema.Metric) map[string]float64 {
	if metric == schema.MetricAvailability {
		return fold.Impact.AvailabilityByCode
	}
	return fold.Impact.UEBDByCode
}

// impactPopulationByRig is the per-rig variant of impactPopulation.
func impactPopulationByRig(fold *FoldResult, metric schema.Metric) map[RigCode]float64 {
	if metric == schema.MetricAvailability {
		return fold.Impact.AvailabilityByRigCode
	}
	return fold.Impact.UEBDByRigCode
}

// denominatorByRig sums each rig's denominator hours from the finalized
// daily rows. Availability is measured against total hours, UEBD against
// operative hours.
func denominatorByRig(fold *FoldResult, metric schema.Metric) map[string]float64 {
	out := make(map[string]float64)
	for i := range fold.Daily {
		row := &fold.Daily[i]
		if metric == schema.MetricAvailability {
			out[row.Rig] += row.TotalHours
		} else {
			out[row.Rig] += row.OperativeHours
		}
	}
	return out
}

// ExecuteGap runs the baseline and comparison folds, attributes the measured
// KPI gap across delay codes and prints the ranked table to stdout.
func ExecuteGap(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, err := GetGapResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteAttribution(*result, cfg)
}

// GetGapResults performs the full gap attribution: fold both periods, resolve
// the target ratio, measure the gap against the comparison period and scale
// the per-code deltas so they sum exactly to it.
func GetGapResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.AttributionResult, error) {
	baselineOpts := foldOptionsFromConfig(cfg)
	comparisonOpts := baselineOpts
	comparisonOpts.Year = cfg.CompareYear
	comparisonOpts.Month = cfg.CompareMonth

	baseline, err := loadAndFold(ctx, cfg, cfg.BaselinePath, baselineOpts)
	if err != nil {
		return nil, fmt.Errorf("baseline period: %w", err)
	}
	comparison, err := loadAndFold(ctx, cfg, cfg.ComparisonPath, comparisonOpts)
	if err != nil {
		return nil, fmt.Errorf("comparison period: %w", err)
	}

	baseProfile := baseline.BuildProfile()
	compProfile := comparison.BuildProfile()

	var baselineHpd, comparisonHpd map[string]float64
	var baselineRatio, realizedRatio, denominatorHpd float64
	if cfg.Metric == schema.MetricAvailability {
		baselineHpd = baseProfile.AvailabilityCodeHpd
		comparisonHpd = compProfile.AvailabilityCodeHpd
		baselineRatio = baseProfile.AvailabilityRatio
		realizedRatio = compProfile.AvailabilityRatio
		denominatorHpd = compProfile.AvgTotalHpd
	} else {
		baselineHpd = baseProfile.UEBDCodeHpd
		comparisonHpd = compProfile.UEBDCodeHpd
		baselineRatio = baseProfile.UEBDRatio
		realizedRatio = compProfile.UEBDRatio
		denominatorHpd = compProfile.AvgOperativeHpd
	}

	targetRatio, err := resolveTargetRatio(ctx, cfg, baselineRatio)
	if err != nil {
		return nil, err
	}

	deltas := BuildCodeDeltas(baselineHpd, comparisonHpd)
	gapPp := GapPp(targetRatio, realizedRatio)
	result := AttributeGap(cfg.Metric, deltas, denominatorHpd, gapPp, compProfile.DayCount)

	recordAttributionRun(cfg, mgr, &result)
	return &result, nil
}

// resolveTargetRatio picks the objective for the gap measurement. The
// metric's explicit flag wins, then a matching row of the targets file, then
// the baseline period's realized ratio.
func resolveTargetRatio(ctx context.Context, cfg *contract.Config, baselineRatio float64) (float64, error) {
	if cfg.Metric == schema.MetricAvailability && cfg.AvailabilityTarget != nil {
		return *cfg.AvailabilityTarget, nil
	}
	if cfg.Metric == schema.MetricUEBD && cfg.UEBDTarget != nil {
		return *cfg.UEBDTarget, nil
	}

	if cfg.TargetsPath != "" {
		targets, err := ingest.NewTargetReader(cfg.TargetsPath, cfg.Delimiter).ReadTargets(ctx)
		if err != nil {
			return 0, fmt.Errorf("targets file: %w", err)
		}
		DeriveUEBDTargets(targets)
		for i := range targets {
			t := &targets[i]
			if t.Year != cfg.CompareYear || t.Month != cfg.CompareMonth {
				continue
			}
			if cfg.Metric == schema.MetricAvailability && t.AvailabilityRatio != nil {
				return *t.AvailabilityRatio, nil
			}
			if cfg.Metric == schema.MetricUEBD && t.UEBDRatio != nil {
				return *t.UEBDRatio, nil
			}
		}
	}

	return baselineRatio, nil
}

// ExecuteCompare joins the realized monthly aggregates against the target
// table and prints the objective-vs-real rows to stdout.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.TargetsPath == "" {
		return errors.New("--targets-file is required")
	}
	fold, err := runTrackedFold(ctx, cfg, mgr, cfg.InputPath)
	if err != nil {
		return err
	}
	targets, err := ingest.NewTargetReader(cfg.TargetsPath, cfg.Delimiter).ReadTargets(ctx)
	if err != nil {
		return fmt.Errorf("targets file: %w", err)
	}
	DeriveUEBDTargets(targets)

	monthly := AggregatePeriod(fold.Daily, schema.GranularityMonthly, false)
	rows := BuildMonthlyComparisons(monthly, targets)
	return outwriter.NewOutWriter().WriteComparisons(rows, cfg)
}

// foldOptionsFromConfig projects the validated config onto one fold pass.
func foldOptionsFromConfig(cfg *contract.Config) FoldOptions {
	return FoldOptions{
		Year:        cfg.Year,
		Month:       cfg.Month,
		IncludeRigs: cfg.IncludeRigs,
		ExcludeRigs: cfg.ExcludeRigs,
		PerfTag:     cfg.PerfTag,
	}
}

// loadAndFold reads one event file and aggregates it. Reader-level cell
// diagnostics are merged into the fold statistics so a single counter set
// describes the run.
func loadAndFold(ctx context.Context, cfg *contract.Config, path string, opts FoldOptions) (*FoldResult, error) {
	if path == "" {
		return nil, errors.New("input file is required")
	}
	events, readStats, err := ingest.NewEventReader(path, cfg.Delimiter).ReadEvents(ctx)
	if err != nil {
		return nil, err
	}
	fold := AggregateDaily(events, opts)
	fold.Stats.UnparseableCells += readStats.UnparseableCells
	return fold, nil
}

// runTrackedFold is loadAndFold plus run tracking: a run record is opened
// before the fold and the finalized daily rows are persisted under it.
// Tracking failures degrade to warnings and never abort the report.
func runTrackedFold(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) (*FoldResult, error) {
	store, runID := beginRunTracking(cfg, mgr)

	fold, err := loadAndFold(ctx, cfg, path, foldOptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	if store != nil && runID > 0 {
		if err := store.RecordDailyMetrics(runID, fold.Daily); err != nil {
			contract.LogWarn("Run tracking failed to record daily metrics", err)
		}
		endRunTracking(store, runID, len(fold.Daily))
	}
	return fold, nil
}

// recordAttributionRun persists a full attribution table as its own run.
func recordAttributionRun(cfg *contract.Config, mgr contract.StoreManager, result *schema.AttributionResult) {
	store, runID := beginRunTracking(cfg, mgr)
	if store == nil || runID <= 0 {
		return
	}
	if err := store.RecordAttribution(runID, result); err != nil {
		contract.LogWarn("Run tracking failed to record attribution", err)
	}
	endRunTracking(store, runID, len(result.Rows))
}

func beginRunTracking(cfg *contract.Config, mgr contract.StoreManager) (contract.RunStore, int64) {
	if mgr == nil {
		return nil, 0
	}
	store := mgr.GetRunStore()
	if store == nil {
		return nil, 0
	}
	runID, err := store.BeginRun(time.Now(), cfg.RunParams())
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return nil, 0
	}
	return store, runID
}

func endRunTracking(store contract.RunStore, runID int64, totalRows int) {
	if err := store.EndRun(runID, time.Now(), totalRows); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
