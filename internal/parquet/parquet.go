// Package parquet exports KPI aggregation results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"rigkpi/schema"

	"github.com/parquet-go/parquet-go"
)

// AggregationRun represents one aggregation run with metadata.
// This struct maps to the rigkpi_runs database table.
type AggregationRun struct {
	// RunID is the unique identifier for this aggregation run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the aggregation began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the aggregation completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalRows is the number of source rows folded in this run
	TotalRows int32 `parquet:"total_rows,snappy"`

	// ConfigParams contains the JSON-encoded run parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DailyMetricsRow represents one rig-day record of an aggregation run.
// This struct maps to the rigkpi_daily_metrics database table.
type DailyMetricsRow struct {
	// RunID references the parent aggregation run; zero for ad-hoc exports
	RunID int64 `parquet:"run_id,snappy"`

	// Day is the operational date at midnight UTC
	Day time.Time `parquet:"fecha_operativa,snappy"`

	// Rig is the normalized rig identifier
	Rig string `parquet:"perforadora,snappy"`

	// Shift is the shift tag; empty on rig-level rows
	Shift string `parquet:"turno,snappy"`

	TotalHours      float64 `parquet:"horas_totales,snappy"`
	EffectiveHours  float64 `parquet:"horas_efectivo,snappy"`
	ReserveHours    float64 `parquet:"horas_reserva,snappy"`
	SchedMaintHours float64 `parquet:"horas_mant_programada,snappy"`
	UnschedHours    float64 `parquet:"horas_mant_no_programada,snappy"`
	OtherHours      float64 `parquet:"horas_otras,snappy"`
	OperativeHours  float64 `parquet:"horas_operativas,snappy"`

	AvailabilityRatio float64 `parquet:"disponibilidad_ratio,snappy"`
	UEBDRatio         float64 `parquet:"uebd_ratio,snappy"`
}

// GapAttributionRow represents one code's attributed gap share.
// This struct maps to the rigkpi_gap_attribution database table.
type GapAttributionRow struct {
	// RunID references the parent aggregation run; zero for ad-hoc exports
	RunID int64 `parquet:"run_id,snappy"`

	// Metric is the KPI the gap refers to
	Metric string `parquet:"metrica,snappy"`

	Rank int32  `parquet:"ranking_impacto,snappy"`
	Code string `parquet:"codigo,snappy"`

	BaselineHpd   float64 `parquet:"baseline_horas_dia,snappy"`
	ComparisonHpd float64 `parquet:"comparado_horas_dia,snappy"`
	DeltaHpd      float64 `parquet:"delta_horas_dia,snappy"`

	RawImpactPp        float64 `parquet:"impacto_raw_pp,snappy"`
	ScalingFactor      float64 `parquet:"factor_escalamiento,snappy"`
	AttributedImpactPp float64 `parquet:"impacto_atribuido_pp,snappy"`
	GapSharePct        float64 `parquet:"participacion_gap_pct,snappy"`
	CumulativeImpactPp float64 `parquet:"impacto_acumulado_pp,snappy"`
	LostHoursPerDay    float64 `parquet:"perdida_horas_dia_atribuida,snappy"`
	LostHoursPerPeriod float64 `parquet:"perdida_horas_mes_atribuida,snappy"`
}

// PeriodMetricsRow represents one period rollup record.
type PeriodMetricsRow struct {
	Year  int32  `parquet:"anio,snappy"`
	Month int32  `parquet:"mes,snappy"`
	Rig   string `parquet:"perforadora,snappy"`
	Shift string `parquet:"turno,snappy"`

	DaysWithData int32 `parquet:"dias_con_datos,snappy"`

	TotalHours      float64 `parquet:"horas_totales,snappy"`
	EffectiveHours  float64 `parquet:"horas_efectivo,snappy"`
	ReserveHours    float64 `parquet:"horas_reserva,snappy"`
	SchedMaintHours float64 `parquet:"horas_mant_programada,snappy"`
	UnschedHours    float64 `parquet:"horas_mant_no_programada,snappy"`
	OtherHours      float64 `parquet:"horas_otras,snappy"`
	OperativeHours  float64 `parquet:"horas_operativas,snappy"`

	AvailabilityRatio float64 `parquet:"disponibilidad_ratio,snappy"`
	UEBDRatio         float64 `parquet:"uebd_ratio,snappy"`
}

// WriteAggregationRunsParquet writes a slice of AggregationRun structs to a Parquet file.
func WriteAggregationRunsParquet(data []AggregationRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the AggregationRun struct tags
	writer := parquet.NewGenericWriter[AggregationRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteDailyMetricsParquet writes a slice of DailyMetricsRow structs to a Parquet file.
func WriteDailyMetricsParquet(data []DailyMetricsRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[DailyMetricsRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteGapAttributionParquet writes a slice of GapAttributionRow structs to a Parquet file.
func WriteGapAttributionParquet(data []GapAttributionRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[GapAttributionRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePeriodMetricsParquet writes a slice of PeriodMetricsRow structs to a Parquet file.
func WritePeriodMetricsParquet(data []PeriodMetricsRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[PeriodMetricsRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to AggregationRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []AggregationRun {
	result := make([]AggregationRun, len(records))
	for i, rec := range records {
		run := AggregationRun{
			RunID:     rec.RunID,
			StartTime: rec.StartTime,
			TotalRows: int32(rec.TotalRows),
		}
		if !rec.EndTime.IsZero() {
			end := rec.EndTime
			run.EndTime = &end
		}
		if len(rec.Params) > 0 {
			if raw, err := json.Marshal(rec.Params); err == nil {
				params := string(raw)
				run.ConfigParams = &params
			}
		}
		result[i] = run
	}
	return result
}

// ConvertDailyMetrics converts schema.DailyMetrics to DailyMetricsRow for Parquet export.
func ConvertDailyMetrics(runID int64, rows []schema.DailyMetrics) []DailyMetricsRow {
	result := make([]DailyMetricsRow, len(rows))
	for i, row := range rows {
		result[i] = DailyMetricsRow{
			RunID:             runID,
			Day:               row.Day,
			Rig:               row.Rig,
			Shift:             row.Shift,
			TotalHours:        row.TotalHours,
			EffectiveHours:    row.EffectiveHours,
			ReserveHours:      row.ReserveHours,
			SchedMaintHours:   row.SchedMaintHours,
			UnschedHours:      row.UnschedHours,
			OtherHours:        row.OtherHours,
			OperativeHours:    row.OperativeHours,
			AvailabilityRatio: row.AvailabilityRatio,
			UEBDRatio:         row.UEBDRatio,
		}
	}
	return result
}

// ConvertAttributionResult converts a schema.AttributionResult to GapAttributionRow for Parquet export.
func ConvertAttributionResult(runID int64, result *schema.AttributionResult) []GapAttributionRow {
	rows := make([]GapAttributionRow, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = GapAttributionRow{
			RunID:              runID,
			Metric:             string(result.Metric),
			Rank:               int32(row.Rank),
			Code:               row.Code,
			BaselineHpd:        row.BaselineHpd,
			ComparisonHpd:      row.ComparisonHpd,
			DeltaHpd:           row.DeltaHpd,
			RawImpactPp:        row.RawImpactPp,
			ScalingFactor:      row.ScalingFactor,
			AttributedImpactPp: row.AttributedImpactPp,
			GapSharePct:        row.GapSharePct,
			CumulativeImpactPp: row.CumulativeImpactPp,
			LostHoursPerDay:    row.LostHoursPerDay,
			LostHoursPerPeriod: row.LostHoursPerPeriod,
		}
	}
	return rows
}

// ConvertPeriodMetrics converts schema.PeriodMetrics to PeriodMetricsRow for Parquet export.
func ConvertPeriodMetrics(rows []schema.PeriodMetrics) []PeriodMetricsRow {
	result := make([]PeriodMetricsRow, len(rows))
	for i, row := range rows {
		result[i] = PeriodMetricsRow{
			Year:              int32(row.Year),
			Month:             int32(row.Month),
			Rig:               row.Rig,
			Shift:             row.Shift,
			DaysWithData:      int32(row.DaysWithData),
			TotalHours:        row.TotalHours,
			EffectiveHours:    row.EffectiveHours,
			ReserveHours:      row.ReserveHours,
			SchedMaintHours:   row.SchedMaintHours,
			UnschedHours:      row.UnschedHours,
			OtherHours:        row.OtherHours,
			OperativeHours:    row.OperativeHours,
			AvailabilityRatio: row.AvailabilityRatio,
			UEBDRatio:         row.UEBDRatio,
		}
	}
	return result
}
