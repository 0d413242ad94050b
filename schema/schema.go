// Package schema has configs, models and shared helpers for all parts of rigkpi.
package schema

import "time"

// Event is a single equipment-state log row after field-level normalization.
// Optional fields use pointers so that "absent" and "zero" stay distinct;
// defaulting rules are applied by the daily aggregator, not here.
type Event struct {
	Rig             string     // Rig identifier as read from the source
	Start           *time.Time // Start timestamp (nil if unparseable)
	End             *time.Time // End timestamp (nil if unparseable)
	DurationSeconds *float64   // Explicit duration in seconds (nil if absent)
	ShortCode       string     // Status short-code (Efectivo, Reserva, Mantencion, ...)
	PlannedCodeName string     // Planned/unplanned flag (Programada / No Programada)
	CodeNumber      string     // Delay code number
	CodeName        string     // Delay code name
	CodeNameAlt     string     // Alternate code name field
	DelayData       string     // Free-text delay descriptor
	ShiftName       string     // Raw shift name
	WorkDayStarted  string     // Explicit operational-day label (authoritative when parseable)
	DrillPlan       string     // Drill-plan tag, matched by substring for the performance accumulator
}

// DayKey identifies one operational day of one rig.
type DayKey struct {
	Day time.Time // Operational date, truncated to midnight UTC
	Rig string
}

// ShiftDayKey identifies one operational day of one rig on one shift.
type ShiftDayKey struct {
	Day   time.Time
	Rig   string
	Shift string
}

// DailyMetrics holds the six mutually exclusive duration totals for one
// rig and operational day plus the fields derived by Finalize. Records are
// superseded, never mutated, when aggregation is re-run.
type DailyMetrics struct {
	Day   time.Time `json:"fecha_operativa"`
	Rig   string    `json:"perforadora"`
	Shift string    `json:"turno,omitempty"` // empty on rig-level rows

	TotalHours      float64 `json:"horas_totales"`
	EffectiveHours  float64 `json:"horas_efectivo"`
	ReserveHours    float64 `json:"horas_reserva"`
	SchedMaintHours float64 `json:"horas_mant_programada"`
	UnschedHours    float64 `json:"horas_mant_no_programada"`
	OtherHours      float64 `json:"horas_otras"`

	// Derived by Finalize.
	OperativeHours    float64 `json:"horas_operativas"`
	AvailabilityRatio float64 `json:"disponibilidad_ratio"`
	UEBDRatio         float64 `json:"uebd_ratio"`
}

// Finalize computes the derived fields from the duration totals. It is
// idempotent and has no effect beyond writing the derived fields.
func (d *DailyMetrics) Finalize() {
	operative := d.TotalHours - d.SchedMaintHours - d.UnschedHours
	if operative < 0 {
		operative = 0
	}
	d.OperativeHours = operative
	d.AvailabilityRatio = SafeRatio(d.OperativeHours, d.TotalHours)
	d.UEBDRatio = SafeRatio(d.EffectiveHours, d.OperativeHours)
}

// PeriodMetrics is a rollup of DailyMetrics over a month, a year or the
// whole input, per rig or fleet-wide. Ratios are recomputed from the summed
// durations; averaging per-day ratios would bias toward low-exposure days.
type PeriodMetrics struct {
	Year  int    `json:"anio"`
	Month int    `json:"mes,omitempty"` // 0 on annual rows
	Rig   string `json:"perforadora"`   // FLOTA on fleet rows
	Shift string `json:"turno,omitempty"`

	DaysWithData int `json:"dias_con_datos"`

	TotalHours      float64 `json:"horas_totales"`
	EffectiveHours  float64 `json:"horas_efectivo"`
	ReserveHours    float64 `json:"horas_reserva"`
	SchedMaintHours float64 `json:"horas_mant_programada"`
	UnschedHours    float64 `json:"horas_mant_no_programada"`
	OtherHours      float64 `json:"horas_otras"`

	OperativeHours    float64 `json:"horas_operativas"`
	AvailabilityRatio float64 `json:"disponibilidad_ratio"`
	UEBDRatio         float64 `json:"uebd_ratio"`

	// Simple per-day averages of the raw durations, used as the
	// average-hours-per-day inputs to gap attribution.
	AvgEffectivePerDay  float64 `json:"promedio_diario_efectivo_h"`
	AvgReservePerDay    float64 `json:"promedio_diario_reserva_h"`
	AvgSchedMaintPerDay float64 `json:"promedio_diario_mant_programada_h"`
	AvgUnschedPerDay    float64 `json:"promedio_diario_mant_no_programada_h"`
}

// CodeDelta compares one delay code's average daily hours between a
// baseline period and a comparison period.
type CodeDelta struct {
	Code          string  `json:"codigo"`
	BaselineHpd   float64 `json:"baseline_horas_dia"`
	ComparisonHpd float64 `json:"comparado_horas_dia"`
	DeltaHpd      float64 `json:"delta_horas_dia"`
	DeltaPositive float64 `json:"delta_horas_dia_positivo"`
}

// AttributionRow is one code's attributed share of a measured KPI gap.
// The scaling factor is shared by all rows of the same metric so that the
// attributed impacts sum exactly to the gap.
type AttributionRow struct {
	CodeDelta

	RawImpactPp        float64 `json:"impacto_raw_pp"`
	ScalingFactor      float64 `json:"factor_escalamiento"`
	AttributedImpactPp float64 `json:"impacto_atribuido_pp"`
	LostHoursPerDay    float64 `json:"perdida_horas_dia_atribuida"`
	LostHoursPerPeriod float64 `json:"perdida_horas_mes_atribuida"`
	Rank               int     `json:"ranking_impacto"`
	GapSharePct        float64 `json:"participacion_gap_pct"`
	CumulativeImpactPp float64 `json:"impacto_acumulado_pp"`
}

// AttributionResult is the full ranked attribution table for one metric.
type AttributionResult struct {
	Metric         Metric           `json:"metrica"`
	GapPp          float64          `json:"gap_pp"`
	DenominatorHpd float64          `json:"denominador_horas_dia"`
	ComparedDays   int              `json:"dias_comparados"`
	Rows           []AttributionRow `json:"filas"`
}

// ImpactRow is one code's plain hours-over-denominator impact inside a
// single period, with no baseline involved.
type ImpactRow struct {
	Metric           Metric  `json:"metrica"`
	Rig              string  `json:"perforadora,omitempty"`
	Rank             int     `json:"ranking"`
	Code             string  `json:"codigo"`
	Hours            float64 `json:"horas"`
	ImpactRatio      float64 `json:"impacto_ratio"`
	ImpactPp         float64 `json:"impacto_pct_points"`
	DenominatorHours float64 `json:"denominador_horas"`
}

// CriticalDay is one entry of the worst-days ranking for a metric.
type CriticalDay struct {
	Rank   int          `json:"ranking"`
	Metric Metric       `json:"metric"`
	Daily  DailyMetrics `json:"detalle"`
	Ratio  float64      `json:"valor_ratio"`
}

// RigSummary is one row of the executive per-rig summary.
type RigSummary struct {
	Rig          string `json:"perforadora"`
	DaysWithData int    `json:"dias_con_datos"`

	EffectiveHours  float64 `json:"horas_efectivas"`
	OperativeHours  float64 `json:"horas_operativas"`
	TotalHours      float64 `json:"horas_totales"`
	ReserveHours    float64 `json:"horas_reserva"`
	SchedMaintHours float64 `json:"horas_mant_programada"`
	UnschedHours    float64 `json:"horas_mant_no_programada"`
	OtherHours      float64 `json:"horas_otras"`

	AvailabilityRatio float64 `json:"disponibilidad_ratio"`
	UEBDRatio         float64 `json:"uebd_ratio"`
}

// MonthlyTarget holds the objective ratios read from a target table for one
// month. Nil means the target was not supplied.
type MonthlyTarget struct {
	Year              int      `json:"anio"`
	Month             int      `json:"mes_num"`
	AvailabilityRatio *float64 `json:"disponibilidad_ratio_obj"`
	UtilizationRatio  *float64 `json:"utilizacion_ratio_obj"`
	UEBDRatio         *float64 `json:"uebd_ratio_obj"`
}

// MonthlyComparison joins one month's realized aggregate against its target.
type MonthlyComparison struct {
	Year         int    `json:"anio"`
	Month        int    `json:"mes_num"`
	DaysWithData int    `json:"dias_reales_con_datos"`

	TotalHours     float64 `json:"horas_totales_real"`
	OperativeHours float64 `json:"horas_operativas_real"`
	EffectiveHours float64 `json:"horas_efectivo_real"`

	AvailabilityTarget *float64 `json:"disponibilidad_obj_ratio"`
	AvailabilityReal   float64  `json:"disponibilidad_real_ratio"`
	AvailabilityGapPp  *float64 `json:"disponibilidad_gap_pp"`

	UEBDTarget *float64 `json:"uebd_obj_ratio"`
	UEBDReal   float64  `json:"uebd_real_ratio"`
	UEBDGapPp  *float64 `json:"uebd_gap_pp"`

	// Hours lost in the month against each target, zero-floored.
	LostHoursUEBD         *float64 `json:"perdida_horas_uebd_mes"`
	LostHoursAvailability *float64 `json:"perdida_horas_disponibilidad_mes"`
}

// RowStats counts data-quality events observed while folding input rows.
// None of these are errors; they exist for operator diagnostics.
type RowStats struct {
	RowsRead         int `json:"rows_total"`
	UnresolvableDays int `json:"rows_without_operational_day"`
	DurationFallback int `json:"rows_duration_fallback"`
	FilteredByRig    int `json:"rows_filtered_by_rig"`
	UnparseableCells int `json:"rows_with_unparseable_cells"`
}
