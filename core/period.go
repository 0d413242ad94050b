package core

import (
	"sort"

	"rigkpi/schema"
)

type periodKey struct {
	Year  int
	Month int
	Rig   string
	Shift string
}

// AggregatePeriod rolls daily records into monthly or annual aggregates,
// per rig or collapsed into the fleet sentinel. Ratios are recomputed from
// the summed durations after grouping; the per-day averages feed gap
// attribution.
func AggregatePeriod(daily []schema.DailyMetrics, granularity schema.Granularity, byRig bool) []schema.PeriodMetrics {
	grouped := make(map[periodKey]*schema.PeriodMetrics)

	for i := range daily {
		row := &daily[i]
		key := periodKey{Year: row.Day.Year(), Rig: schema.FleetLabel}
		if granularity == schema.GranularityMonthly {
			key.Month = int(row.Day.Month())
		}
		if byRig {
			key.Rig = row.Rig
		}
		accumulatePeriod(grouped, key, row)
	}

	return derivePeriods(grouped)
}

// AggregateShiftMonthly rolls shift-level daily records into one row per
// year x month x rig x shift.
func AggregateShiftMonthly(shiftDaily []schema.DailyMetrics) []schema.PeriodMetrics {
	grouped := make(map[periodKey]*schema.PeriodMetrics)
	for i := range shiftDaily {
		row := &shiftDaily[i]
		key := periodKey{
			Year:  row.Day.Year(),
			Month: int(row.Day.Month()),
			Rig:   row.Rig,
			Shift: row.Shift,
		}
		accumulatePeriod(grouped, key, row)
	}
	return derivePeriods(grouped)
}

func accumulatePeriod(grouped map[periodKey]*schema.PeriodMetrics, key periodKey, row *schema.DailyMetrics) {
	rec, ok := grouped[key]
	if !ok {
		rec = &schema.PeriodMetrics{Year: key.Year, Month: key.Month, Rig: key.Rig, Shift: key.Shift}
		grouped[key] = rec
	}
	rec.DaysWithData++
	rec.TotalHours += row.TotalHours
	rec.EffectiveHours += row.EffectiveHours
	rec.ReserveHours += row.ReserveHours
	rec.SchedMaintHours += row.SchedMaintHours
	rec.UnschedHours += row.UnschedHours
	rec.OtherHours += row.OtherHours
}

func derivePeriods(grouped map[periodKey]*schema.PeriodMetrics) []schema.PeriodMetrics {
	rows := make([]schema.PeriodMetrics, 0, len(grouped))
	for _, rec := range grouped {
		finalizePeriod(rec)
		rows = append(rows, *rec)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Rig != b.Rig {
			return a.Rig < b.Rig
		}
		return a.Shift < b.Shift
	})
	return rows
}

// finalizePeriod recomputes derived fields from the summed durations using
// the same formulas as the daily finalize.
func finalizePeriod(rec *schema.PeriodMetrics) {
	operative := rec.TotalHours - rec.SchedMaintHours - rec.UnschedHours
	if operative < 0 {
		operative = 0
	}
	rec.OperativeHours = operative
	rec.AvailabilityRatio = schema.SafeRatio(rec.OperativeHours, rec.TotalHours)
	rec.UEBDRatio = schema.SafeRatio(rec.EffectiveHours, rec.OperativeHours)

	days := rec.DaysWithData
	if days < 1 {
		days = 1
	}
	rec.AvgEffectivePerDay = rec.EffectiveHours / float64(days)
	rec.AvgReservePerDay = rec.ReserveHours / float64(days)
	rec.AvgSchedMaintPerDay = rec.SchedMaintHours / float64(days)
	rec.AvgUnschedPerDay = rec.UnschedHours / float64(days)
}

// SummarizeRigs builds the executive whole-period summary, one row per rig
// sorted by name plus a trailing TOTAL row recomputed from the summed hours.
func SummarizeRigs(daily []schema.DailyMetrics) []schema.RigSummary {
	grouped := make(map[string]*schema.RigSummary)
	for i := range daily {
		row := &daily[i]
		rec, ok := grouped[row.Rig]
		if !ok {
			rec = &schema.RigSummary{Rig: row.Rig}
			grouped[row.Rig] = rec
		}
		rec.DaysWithData++
		rec.EffectiveHours += row.EffectiveHours
		rec.OperativeHours += row.OperativeHours
		rec.TotalHours += row.TotalHours
		rec.ReserveHours += row.ReserveHours
		rec.SchedMaintHours += row.SchedMaintHours
		rec.UnschedHours += row.UnschedHours
		rec.OtherHours += row.OtherHours
	}

	rows := make([]schema.RigSummary, 0, len(grouped)+1)
	for _, rec := range grouped {
		rows = append(rows, *rec)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Rig < rows[j].Rig })

	total := schema.RigSummary{Rig: schema.FleetTotalRow}
	for i := range rows {
		deriveSummary(&rows[i])
		total.DaysWithData += rows[i].DaysWithData
		total.EffectiveHours += rows[i].EffectiveHours
		total.OperativeHours += rows[i].OperativeHours
		total.TotalHours += rows[i].TotalHours
		total.ReserveHours += rows[i].ReserveHours
		total.SchedMaintHours += rows[i].SchedMaintHours
		total.UnschedHours += rows[i].UnschedHours
		total.OtherHours += rows[i].OtherHours
	}
	deriveSummary(&total)
	return append(rows, total)
}

func deriveSummary(rec *schema.RigSummary) {
	rec.AvailabilityRatio = schema.SafeRatio(rec.OperativeHours, rec.TotalHours)
	rec.UEBDRatio = schema.SafeRatio(rec.EffectiveHours, rec.OperativeHours)
}
